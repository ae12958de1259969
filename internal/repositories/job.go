package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-ats/internal/models"
)

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id uuid.UUID) (*models.Job, error)
	FindByIDs(ids []uuid.UUID) ([]models.Job, error)
	ListActive(limit int) ([]models.Job, error)
	ListByPoster(userID string) ([]models.Job, error)
	FindForPoster(userID string, id uuid.UUID) (*models.Job, error)
	Update(job *models.Job) error
	Deactivate(userID string, id uuid.UUID) error
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(job *models.Job) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (r *jobRepository) FindByID(id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("job %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return &job, nil
}

// FindByIDs returns the active jobs among ids, in no particular order.
func (r *jobRepository) FindByIDs(ids []uuid.UUID) ([]models.Job, error) {
	var jobs []models.Job
	if len(ids) == 0 {
		return jobs, nil
	}
	if err := r.db.Where("id IN ? AND is_active = ?", ids, true).Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to find jobs: %w", err)
	}
	return jobs, nil
}

// ListActive returns active jobs, newest first. A limit <= 0 returns all of them.
func (r *jobRepository) ListActive(limit int) ([]models.Job, error) {
	var jobs []models.Job
	q := r.db.Where("is_active = ?", true).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// ListByPoster returns every posting of userID, active or not, newest first.
func (r *jobRepository) ListByPoster(userID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.
		Where("posted_by = ?", userID).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list posted jobs: %w", err)
	}
	return jobs, nil
}

func (r *jobRepository) FindForPoster(userID string, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.Where("id = ? AND posted_by = ?", id, userID).First(&job).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("job %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return &job, nil
}

func (r *jobRepository) Update(job *models.Job) error {
	job.UpdatedAt = time.Now()
	if err := r.db.Save(job).Error; err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	return nil
}

// Deactivate hides a posting from listings and matching. The row is kept so
// stored analyses can still reference it.
func (r *jobRepository) Deactivate(userID string, id uuid.UUID) error {
	result := r.db.Model(&models.Job{}).
		Where("id = ? AND posted_by = ?", id, userID).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	return nil
}
