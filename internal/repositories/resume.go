package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-ats/internal/models"
)

type ResumeRepository interface {
	Create(resume *models.Resume) error
	FindByID(id uuid.UUID) (*models.Resume, error)
	FindForUser(userID string, id uuid.UUID) (*models.Resume, error)
	ListByUser(userID string) ([]models.Resume, error)
	ListCompleted(userID string, limit int) ([]models.Resume, error)
	Delete(userID string, id uuid.UUID) error
	UpdateStatus(id uuid.UUID, status models.ResumeStatus) error
	UpdateText(id uuid.UUID, text string, wordCount int) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPending(limit int) ([]models.Resume, error)
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

func (r *resumeRepository) Create(resume *models.Resume) error {
	if err := r.db.Create(resume).Error; err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

// FindByID looks a résumé up regardless of owner. Only the worker uses it.
func (r *resumeRepository) FindByID(id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.Where("id = ?", id).First(&resume).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("resume %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}
	return &resume, nil
}

func (r *resumeRepository) FindForUser(userID string, id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&resume).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("resume %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}
	return &resume, nil
}

func (r *resumeRepository) ListByUser(userID string) ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.
		Omit("raw_text").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&resumes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

// ListCompleted returns the user's processed résumés with their text, newest
// first. A limit <= 0 returns all of them.
func (r *resumeRepository) ListCompleted(userID string, limit int) ([]models.Resume, error) {
	var resumes []models.Resume
	q := r.db.
		Where("user_id = ? AND status = ?", userID, models.StatusCompleted).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&resumes).Error; err != nil {
		return nil, fmt.Errorf("failed to list completed resumes: %w", err)
	}
	return resumes, nil
}

func (r *resumeRepository) Delete(userID string, id uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Resume{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete resume: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("resume %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *resumeRepository) UpdateStatus(id uuid.UUID, status models.ResumeStatus) error {
	return r.update(id, map[string]interface{}{
		"status": status,
	})
}

func (r *resumeRepository) UpdateText(id uuid.UUID, text string, wordCount int) error {
	return r.update(id, map[string]interface{}{
		"status":        models.StatusCompleted,
		"raw_text":      text,
		"word_count":    wordCount,
		"error_message": nil,
	})
}

func (r *resumeRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	return r.update(id, map[string]interface{}{
		"status":        models.StatusFailed,
		"error_message": errorMsg,
	})
}

func (r *resumeRepository) update(id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.Resume{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update resume: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("resume %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *resumeRepository) FindPending(limit int) ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.
		Where("status = ?", models.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&resumes).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending resumes: %w", err)
	}
	return resumes, nil
}
