package dto

import (
	"time"

	"github.com/faikerkan/QuailtyHUB/internal/repository"
)

// DashboardResponse aggregates platform performance for administrators.
type DashboardResponse struct {
	TotalCalls       int64                      `json:"total_calls"`
	TotalEvaluations int64                      `json:"total_evaluations"`
	AverageScore     float64                    `json:"average_score"`
	AgentScores      []repository.AgentScoreRow `json:"agent_scores"`
	GeneratedAt      time.Time                  `json:"generated_at"`
	CacheHit         bool                       `json:"cache_hit"`
}
