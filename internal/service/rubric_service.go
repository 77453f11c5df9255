package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/faikerkan/QuailtyHUB/internal/auth"
	"github.com/faikerkan/QuailtyHUB/internal/dto"
	"github.com/faikerkan/QuailtyHUB/internal/models"
	"github.com/faikerkan/QuailtyHUB/internal/repository"
	"github.com/faikerkan/QuailtyHUB/internal/scoring"
)

// ErrRubricNotFound indicates the referenced evaluation form does not exist.
var ErrRubricNotFound = errors.New("rubric not found")

// ErrDuplicateRubricName indicates an evaluation form with this name already exists.
var ErrDuplicateRubricName = errors.New("a rubric with this name already exists")

// ErrForbidden indicates the caller's role does not allow the operation.
var ErrForbidden = errors.New("operation not permitted for this role")

// RubricService orchestrates evaluation form workflows.
type RubricService interface {
	List(ctx context.Context, actor auth.Actor) ([]dto.RubricResponse, error)
	Get(ctx context.Context, id uint) (dto.RubricResponse, error)
	GetDefault(ctx context.Context) (dto.RubricResponse, error)
	Create(ctx context.Context, payload dto.RubricCreateRequest, actor auth.Actor) (dto.RubricResponse, error)
	SetDefault(ctx context.Context, id uint, actor auth.Actor) (dto.RubricResponse, error)
	SeedStandard(ctx context.Context, actor auth.Actor) (dto.RubricResponse, bool, error)
}

type rubricService struct {
	rubrics   repository.RubricRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewRubricService constructs a RubricService instance.
func NewRubricService(rubrics repository.RubricRepository, validate *validator.Validate, logger zerolog.Logger) RubricService {
	return &rubricService{
		rubrics:   rubrics,
		validator: validate,
		logger:    logger.With().Str("component", "rubric_service").Logger(),
	}
}

func (s *rubricService) List(ctx context.Context, actor auth.Actor) ([]dto.RubricResponse, error) {
	rubrics, err := s.rubrics.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewRubricResponseSlice(rubrics), nil
}

func (s *rubricService) Get(ctx context.Context, id uint) (dto.RubricResponse, error) {
	rubric, err := s.rubrics.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RubricResponse{}, ErrRubricNotFound
		}
		return dto.RubricResponse{}, err
	}
	return dto.NewRubricResponse(rubric), nil
}

func (s *rubricService) GetDefault(ctx context.Context) (dto.RubricResponse, error) {
	rubric, err := s.rubrics.GetDefault(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RubricResponse{}, ErrRubricNotFound
		}
		return dto.RubricResponse{}, err
	}
	return dto.NewRubricResponse(rubric), nil
}

func (s *rubricService) Create(ctx context.Context, payload dto.RubricCreateRequest, actor auth.Actor) (dto.RubricResponse, error) {
	if !auth.Can(actor, auth.OpManageRubrics, nil) {
		return dto.RubricResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.RubricResponse{}, err
	}

	fields, err := scoring.ValidateDefinition(payload.FieldInputs())
	if err != nil {
		return dto.RubricResponse{}, err
	}

	name := strings.TrimSpace(payload.Name)
	if _, err := s.rubrics.GetByName(ctx, name); err == nil {
		return dto.RubricResponse{}, ErrDuplicateRubricName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.RubricResponse{}, err
	}

	rubric := models.Rubric{
		Name:        name,
		Fields:      fields,
		CreatedByID: actor.ID,
		IsActive:    true,
		IsDefault:   payload.IsDefault,
	}

	// The first form in the system becomes the default evaluation
	// form instead of relying on creation order at read time.
	if !rubric.IsDefault {
		count, err := s.rubrics.Count(ctx)
		if err != nil {
			return dto.RubricResponse{}, err
		}
		rubric.IsDefault = count == 0
	}

	if err := s.rubrics.Create(ctx, &rubric); err != nil {
		return dto.RubricResponse{}, err
	}

	if rubric.IsDefault {
		if err := s.rubrics.SetDefault(ctx, rubric.ID); err != nil {
			return dto.RubricResponse{}, err
		}
	}

	created, err := s.rubrics.GetByID(ctx, rubric.ID)
	if err != nil {
		return dto.RubricResponse{}, err
	}

	s.logger.Info().Uint("rubric_id", created.ID).Str("name", created.Name).Msg("rubric created")

	return dto.NewRubricResponse(created), nil
}

func (s *rubricService) SetDefault(ctx context.Context, id uint, actor auth.Actor) (dto.RubricResponse, error) {
	if !auth.Can(actor, auth.OpManageRubrics, nil) {
		return dto.RubricResponse{}, ErrForbidden
	}

	if err := s.rubrics.SetDefault(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RubricResponse{}, ErrRubricNotFound
		}
		return dto.RubricResponse{}, err
	}

	rubric, err := s.rubrics.GetByID(ctx, id)
	if err != nil {
		return dto.RubricResponse{}, err
	}

	s.logger.Info().Uint("rubric_id", id).Msg("default rubric changed")

	return dto.NewRubricResponse(rubric), nil
}

// SeedStandard creates the standard twelve-field evaluation form when
// no rubric exists yet. The boolean result reports whether a form was
// created by this call.
func (s *rubricService) SeedStandard(ctx context.Context, actor auth.Actor) (dto.RubricResponse, bool, error) {
	if !auth.Can(actor, auth.OpManageRubrics, nil) {
		return dto.RubricResponse{}, false, ErrForbidden
	}

	count, err := s.rubrics.Count(ctx)
	if err != nil {
		return dto.RubricResponse{}, false, err
	}
	if count > 0 {
		rubric, err := s.rubrics.GetDefault(ctx)
		if err != nil {
			return dto.RubricResponse{}, false, err
		}
		return dto.NewRubricResponse(rubric), false, nil
	}

	response, err := s.Create(ctx, standardFormRequest(), actor)
	if err != nil {
		return dto.RubricResponse{}, false, err
	}

	return response, true, nil
}

func standardFormRequest() dto.RubricCreateRequest {
	field := func(key, label, max string) dto.RubricFieldPayload {
		score := decimal.RequireFromString(max)
		return dto.RubricFieldPayload{Key: key, Label: label, Type: "number", MaxScore: &score}
	}

	return dto.RubricCreateRequest{
		Name:      "Standard Evaluation Form",
		IsDefault: true,
		Fields: []dto.RubricFieldPayload{
			field("field_1", "Opening and greeting", "5"),
			field("field_2", "Active listening and understanding", "15"),
			field("field_3", "Analysis and effective questioning", "15"),
			field("field_4", "Speech and noises disturbing the call", "10"),
			field("field_5", "Confident, lively, and courteous tone", "10"),
			field("field_6", "Taking ownership of the customer's issue", "5"),
			field("field_7", "Empathy", "5"),
			field("field_8", "Time and stress management", "5"),
			field("field_9", "Correct routing", "10"),
			field("field_10", "Sharing information clearly and persuasively", "10"),
			field("field_11", "Proper closing announcement", "5"),
			field("field_12", "Informing the assigned team", "5"),
		},
	}
}
