package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/faikerkan/QuailtyHUB/internal/auth"
	"github.com/faikerkan/QuailtyHUB/internal/dto"
	"github.com/faikerkan/QuailtyHUB/internal/models"
	"github.com/faikerkan/QuailtyHUB/internal/observability"
	"github.com/faikerkan/QuailtyHUB/internal/repository"
	"github.com/faikerkan/QuailtyHUB/internal/scoring"
)

// ErrEvaluationNotFound indicates an evaluation could not be found.
var ErrEvaluationNotFound = errors.New("evaluation not found")

// ErrEmptyFinalNote indicates the final note carried no text once
// markup was stripped.
var ErrEmptyFinalNote = errors.New("final note must contain text")

// EvaluationNotifier is told about freshly created evaluations so it
// can fan the event out (in-app notification, message bus).
type EvaluationNotifier interface {
	EvaluationCreated(ctx context.Context, evaluation models.Evaluation)
}

// EvaluationService orchestrates call scoring workflows.
type EvaluationService interface {
	List(ctx context.Context, filter dto.EvaluationFilter, actor auth.Actor) ([]dto.EvaluationResponse, error)
	Get(ctx context.Context, id uint, actor auth.Actor) (dto.EvaluationResponse, error)
	Create(ctx context.Context, payload dto.EvaluationCreateRequest, actor auth.Actor) (dto.EvaluationResponse, error)
}

type evaluationService struct {
	evaluations repository.EvaluationRepository
	calls       repository.CallRepository
	rubrics     repository.RubricRepository
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	notifier    EvaluationNotifier
	logger      zerolog.Logger
}

// NewEvaluationService constructs an EvaluationService instance. The
// notifier may be nil when fan-out is not wired.
func NewEvaluationService(evaluations repository.EvaluationRepository, calls repository.CallRepository, rubrics repository.RubricRepository, validate *validator.Validate, notifier EvaluationNotifier, logger zerolog.Logger) EvaluationService {
	return &evaluationService{
		evaluations: evaluations,
		calls:       calls,
		rubrics:     rubrics,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		notifier:    notifier,
		logger:      logger.With().Str("component", "evaluation_service").Logger(),
	}
}

func (s *evaluationService) List(ctx context.Context, filter dto.EvaluationFilter, actor auth.Actor) ([]dto.EvaluationResponse, error) {
	repoFilter := repository.EvaluationFilter{CallID: filter.CallID}

	// Admins see everything, experts their own work, agents the
	// evaluations of their own calls.
	switch {
	case actor.Superuser || actor.Role == auth.RoleAdmin:
	case actor.Role == auth.RoleExpert:
		evaluatorID := actor.ID
		repoFilter.EvaluatorID = &evaluatorID
	default:
		agentID := actor.ID
		repoFilter.AgentID = &agentID
	}

	evaluations, err := s.evaluations.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	return dto.NewEvaluationResponseSlice(evaluations), nil
}

func (s *evaluationService) Get(ctx context.Context, id uint, actor auth.Actor) (dto.EvaluationResponse, error) {
	evaluation, err := s.evaluations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EvaluationResponse{}, ErrEvaluationNotFound
		}
		return dto.EvaluationResponse{}, err
	}

	resource := auth.Resource{OwnerID: evaluation.EvaluatorID, AgentID: evaluation.Call.AgentID}
	if !auth.Can(actor, auth.OpReadEvaluation, &resource) {
		return dto.EvaluationResponse{}, ErrForbidden
	}

	return dto.NewEvaluationResponse(evaluation), nil
}

func (s *evaluationService) Create(ctx context.Context, payload dto.EvaluationCreateRequest, actor auth.Actor) (dto.EvaluationResponse, error) {
	tracer := otel.Tracer("github.com/faikerkan/QuailtyHUB/internal/service")
	ctx, span := tracer.Start(ctx, "evaluation.create")
	span.SetAttributes(
		attribute.Int64("evaluation.call_id", int64(payload.CallID)),
		attribute.Int64("evaluation.rubric_id", int64(payload.RubricID)),
		attribute.Int64("evaluation.evaluator_id", int64(actor.ID)),
	)
	defer span.End()

	if !auth.Can(actor, auth.OpCreateEvaluation, nil) {
		return dto.EvaluationResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.EvaluationResponse{}, err
	}

	call, err := s.calls.GetByID(ctx, payload.CallID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "call_not_found")
			return dto.EvaluationResponse{}, ErrCallNotFound
		}
		return dto.EvaluationResponse{}, err
	}

	rubric, err := s.rubrics.GetByID(ctx, payload.RubricID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "rubric_not_found")
			return dto.EvaluationResponse{}, ErrRubricNotFound
		}
		return dto.EvaluationResponse{}, err
	}

	sheet, err := scoring.ValidateScores(rubric.Fields, payload.Scores)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "score_validation_failed")
		return dto.EvaluationResponse{}, err
	}

	total := sheet.Total()

	breakdown, err := json.Marshal(sheet)
	if err != nil {
		return dto.EvaluationResponse{}, err
	}

	// Sanitizing can strip a markup-only note down to nothing; the
	// note must still carry text afterwards.
	finalNote := strings.TrimSpace(s.sanitizer.Sanitize(payload.FinalNote))
	if finalNote == "" {
		span.SetStatus(codes.Error, "empty_final_note")
		return dto.EvaluationResponse{}, ErrEmptyFinalNote
	}

	evaluation := models.Evaluation{
		CallID:      call.ID,
		EvaluatorID: actor.ID,
		RubricID:    rubric.ID,
		Scores:      breakdown,
		FinalNote:   finalNote,
		TotalScore:  total,
	}

	if err := s.evaluations.Create(ctx, &evaluation); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation_persist_failed")
		return dto.EvaluationResponse{}, err
	}

	created, err := s.evaluations.GetByID(ctx, evaluation.ID)
	if err != nil {
		return dto.EvaluationResponse{}, err
	}

	if s.notifier != nil {
		s.notifier.EvaluationCreated(ctx, created)
	}

	score, _ := total.Float64()
	observability.EvaluationCreated(score)

	span.SetAttributes(attribute.String("evaluation.total_score", total.StringFixed(2)))
	s.logger.Info().
		Uint("evaluation_id", created.ID).
		Uint("call_id", call.ID).
		Str("total_score", total.StringFixed(2)).
		Msg("evaluation created")

	return dto.NewEvaluationResponse(created), nil
}
