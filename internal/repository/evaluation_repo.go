package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/faikerkan/QuailtyHUB/internal/models"
)

// EvaluationFilter narrows evaluation queries to one evaluator, one
// call, or the calls of one agent.
type EvaluationFilter struct {
	EvaluatorID *uint
	CallID      *uint
	AgentID     *uint
}

// EvaluationRepository defines data operations for evaluations.
type EvaluationRepository interface {
	List(ctx context.Context, filter EvaluationFilter) ([]models.Evaluation, error)
	GetByID(ctx context.Context, id uint) (models.Evaluation, error)
	Create(ctx context.Context, evaluation *models.Evaluation) error
}

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository instantiates the repository.
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Evaluation{}).
		Preload("Call").
		Preload("Call.Agent").
		Preload("Evaluator").
		Preload("Rubric")
}

func (r *evaluationRepository) List(ctx context.Context, filter EvaluationFilter) ([]models.Evaluation, error) {
	query := r.baseQuery(ctx)

	if filter.EvaluatorID != nil {
		query = query.Where("evaluations.evaluator_id = ?", *filter.EvaluatorID)
	}

	if filter.CallID != nil {
		query = query.Where("evaluations.call_id = ?", *filter.CallID)
	}

	if filter.AgentID != nil {
		query = query.Joins("JOIN call_records ON call_records.id = evaluations.call_id").
			Where("call_records.agent_id = ?", *filter.AgentID)
	}

	var evaluations []models.Evaluation
	if err := query.Order("evaluations.evaluated_at DESC").Find(&evaluations).Error; err != nil {
		return nil, err
	}

	return evaluations, nil
}

func (r *evaluationRepository) GetByID(ctx context.Context, id uint) (models.Evaluation, error) {
	var evaluation models.Evaluation
	if err := r.baseQuery(ctx).First(&evaluation, id).Error; err != nil {
		return models.Evaluation{}, err
	}
	return evaluation, nil
}

func (r *evaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) error {
	return r.db.WithContext(ctx).Create(evaluation).Error
}
