package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-ats/internal/models"
)

// AnalysisRepository stores analyses per user. There is no update: a result is
// immutable once written.
type AnalysisRepository interface {
	Create(analysis *models.Analysis) error
	FindForUser(userID string, id uuid.UUID) (*models.Analysis, error)
	ListByUser(userID string) ([]models.Analysis, error)
	Delete(userID string, id uuid.UUID) error
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(analysis *models.Analysis) error {
	if err := r.db.Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

func (r *analysisRepository) FindForUser(userID string, id uuid.UUID) (*models.Analysis, error) {
	var analysis models.Analysis
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&analysis).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("analysis %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	return &analysis, nil
}

// ListByUser returns the user's analyses, newest first.
func (r *analysisRepository) ListByUser(userID string) ([]models.Analysis, error) {
	var analyses []models.Analysis
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&analyses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return analyses, nil
}

func (r *analysisRepository) Delete(userID string, id uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Analysis{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete analysis: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("analysis %s: %w", id, ErrNotFound)
	}
	return nil
}
