package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/faikerkan/QuailtyHUB/internal/models"
)

// RubricRepository defines data operations for evaluation forms.
type RubricRepository interface {
	List(ctx context.Context) ([]models.Rubric, error)
	GetByID(ctx context.Context, id uint) (models.Rubric, error)
	GetByName(ctx context.Context, name string) (models.Rubric, error)
	GetDefault(ctx context.Context) (models.Rubric, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, rubric *models.Rubric) error
	SetDefault(ctx context.Context, id uint) error
}

type rubricRepository struct {
	db *gorm.DB
}

// NewRubricRepository instantiates the repository.
func NewRubricRepository(db *gorm.DB) RubricRepository {
	return &rubricRepository{db: db}
}

func (r *rubricRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Rubric{}).Preload("CreatedBy")
}

func (r *rubricRepository) List(ctx context.Context) ([]models.Rubric, error) {
	var rubrics []models.Rubric
	if err := r.baseQuery(ctx).Order("created_at DESC").Find(&rubrics).Error; err != nil {
		return nil, err
	}
	return rubrics, nil
}

func (r *rubricRepository) GetByID(ctx context.Context, id uint) (models.Rubric, error) {
	var rubric models.Rubric
	if err := r.baseQuery(ctx).First(&rubric, id).Error; err != nil {
		return models.Rubric{}, err
	}
	return rubric, nil
}

func (r *rubricRepository) GetByName(ctx context.Context, name string) (models.Rubric, error) {
	var rubric models.Rubric
	if err := r.baseQuery(ctx).Where("name = ?", name).First(&rubric).Error; err != nil {
		return models.Rubric{}, err
	}
	return rubric, nil
}

func (r *rubricRepository) GetDefault(ctx context.Context) (models.Rubric, error) {
	var rubric models.Rubric
	if err := r.baseQuery(ctx).Where("is_default = ?", true).First(&rubric).Error; err != nil {
		return models.Rubric{}, err
	}
	return rubric, nil
}

func (r *rubricRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Rubric{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create persists the rubric. The unique index on name backs the
// duplicate check performed at the service layer, so concurrent
// creators cannot both win.
func (r *rubricRepository) Create(ctx context.Context, rubric *models.Rubric) error {
	return r.db.WithContext(ctx).Create(rubric).Error
}

// SetDefault marks the rubric as the active evaluation form and
// clears the flag everywhere else, in one transaction.
func (r *rubricRepository) SetDefault(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Rubric{}).Where("is_default = ?", true).Update("is_default", false).Error; err != nil {
			return err
		}
		result := tx.Model(&models.Rubric{}).Where("id = ?", id).Update("is_default", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
