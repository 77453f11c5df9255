package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/faikerkan/QuailtyHUB/internal/models"
	"github.com/faikerkan/QuailtyHUB/internal/scoring"
)

// RubricFieldPayload is one rubric field as submitted by an admin:
// list-form, carrying its own key. The pointer max_score lets the
// validator tell a missing attribute from an explicit zero.
type RubricFieldPayload struct {
	Key      string           `json:"key"`
	Label    string           `json:"label"`
	Type     string           `json:"type"`
	MaxScore *decimal.Decimal `json:"max_score"`
}

// RubricCreateRequest describes the payload for creating an evaluation form.
type RubricCreateRequest struct {
	Name      string               `json:"name" validate:"required,min=3,max=100"`
	Fields    []RubricFieldPayload `json:"fields"`
	IsDefault bool                 `json:"is_default"`
}

// FieldInputs converts the wire payload into the scoring package's input form.
func (r RubricCreateRequest) FieldInputs() []scoring.FieldInput {
	inputs := make([]scoring.FieldInput, 0, len(r.Fields))
	for _, field := range r.Fields {
		inputs = append(inputs, scoring.FieldInput{
			Key:      field.Key,
			Label:    field.Label,
			Kind:     field.Type,
			MaxScore: field.MaxScore,
		})
	}
	return inputs
}

// RubricFieldResponse is one field in rubric API responses.
type RubricFieldResponse struct {
	Key      string          `json:"key"`
	Label    string          `json:"label"`
	Type     string          `json:"type"`
	MaxScore decimal.Decimal `json:"max_score"`
}

// RubricResponse is returned to API clients when viewing evaluation forms.
type RubricResponse struct {
	ID          uint                  `json:"id"`
	Name        string                `json:"name"`
	Fields      []RubricFieldResponse `json:"fields"`
	MaxPoints   decimal.Decimal       `json:"max_points"`
	CreatedBy   string                `json:"created_by"`
	CreatedByID uint                  `json:"created_by_id"`
	IsActive    bool                  `json:"is_active"`
	IsDefault   bool                  `json:"is_default"`
	CreatedAt   time.Time             `json:"created_at"`
}

// NewRubricResponse converts a Rubric model into a DTO.
func NewRubricResponse(model models.Rubric) RubricResponse {
	fields := make([]RubricFieldResponse, 0, len(model.Fields))
	for _, field := range model.Fields {
		fields = append(fields, RubricFieldResponse{
			Key:      field.Key,
			Label:    field.Label,
			Type:     string(field.Kind),
			MaxScore: field.MaxScore,
		})
	}

	return RubricResponse{
		ID:          model.ID,
		Name:        model.Name,
		Fields:      fields,
		MaxPoints:   model.Fields.MaxPoints(),
		CreatedBy:   model.CreatedBy.FullName(),
		CreatedByID: model.CreatedByID,
		IsActive:    model.IsActive,
		IsDefault:   model.IsDefault,
		CreatedAt:   model.CreatedAt,
	}
}

// NewRubricResponseSlice converts rubric models into DTOs.
func NewRubricResponseSlice(rubrics []models.Rubric) []RubricResponse {
	responses := make([]RubricResponse, 0, len(rubrics))
	for _, rubric := range rubrics {
		responses = append(responses, NewRubricResponse(rubric))
	}
	return responses
}
