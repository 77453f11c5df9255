package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/faikerkan/QuailtyHUB/internal/models"
)

// AgentScoreRow is one aggregated performance line for an agent.
type AgentScoreRow struct {
	AgentID         uint    `json:"agent_id"`
	AgentName       string  `json:"agent_name"`
	EvaluationCount int64   `json:"evaluation_count"`
	AverageScore    float64 `json:"average_score"`
}

// DashboardRepository supplies aggregates for the admin dashboard.
type DashboardRepository interface {
	CountCalls(ctx context.Context) (int64, error)
	CountEvaluations(ctx context.Context) (int64, error)
	AverageTotalScore(ctx context.Context) (float64, error)
	AgentScores(ctx context.Context) ([]AgentScoreRow, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository constructs the dashboard repository.
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) CountCalls(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CallRecord{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountEvaluations(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Evaluation{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) AverageTotalScore(ctx context.Context) (float64, error) {
	var average *float64
	err := r.db.WithContext(ctx).Model(&models.Evaluation{}).
		Select("AVG(total_score)").
		Scan(&average).Error
	if err != nil || average == nil {
		return 0, err
	}
	return *average, nil
}

func (r *dashboardRepository) AgentScores(ctx context.Context) ([]AgentScoreRow, error) {
	var rows []AgentScoreRow
	err := r.db.WithContext(ctx).Model(&models.Evaluation{}).
		Select("call_records.agent_id AS agent_id, users.username AS agent_name, COUNT(evaluations.id) AS evaluation_count, AVG(evaluations.total_score) AS average_score").
		Joins("JOIN call_records ON call_records.id = evaluations.call_id").
		Joins("JOIN users ON users.id = call_records.agent_id").
		Group("call_records.agent_id, users.username").
		Order("average_score DESC").
		Scan(&rows).Error
	return rows, err
}
