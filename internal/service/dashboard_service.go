package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/faikerkan/QuailtyHUB/internal/auth"
	"github.com/faikerkan/QuailtyHUB/internal/dto"
	"github.com/faikerkan/QuailtyHUB/internal/repository"
)

const dashboardCacheKey = "dashboard:summary"

// DashboardService produces aggregated performance metrics for admins.
type DashboardService interface {
	Summary(ctx context.Context, actor auth.Actor) (dto.DashboardResponse, error)
}

type dashboardService struct {
	stats    repository.DashboardRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewDashboardService builds the dashboard aggregator.
func NewDashboardService(stats repository.DashboardRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		stats:    stats,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "dashboard_service").Logger(),
		now:      time.Now,
	}
}

func (s *dashboardService) Summary(ctx context.Context, actor auth.Actor) (dto.DashboardResponse, error) {
	if !auth.Can(actor, auth.OpViewDashboard, nil) {
		return dto.DashboardResponse{}, ErrForbidden
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var response dto.DashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				s.logger.Debug().Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	calls, err := s.stats.CountCalls(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	evaluations, err := s.stats.CountEvaluations(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	average, err := s.stats.AverageTotalScore(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	agentScores, err := s.stats.AgentScores(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	response := dto.DashboardResponse{
		TotalCalls:       calls,
		TotalEvaluations: evaluations,
		AverageScore:     average,
		AgentScores:      agentScores,
		GeneratedAt:      s.now().UTC(),
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to write dashboard cache")
			}
		}
	}

	return response, nil
}
