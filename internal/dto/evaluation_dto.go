package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/faikerkan/QuailtyHUB/internal/models"
	"github.com/faikerkan/QuailtyHUB/internal/scoring"
)

// EvaluationCreateRequest describes the payload for scoring a call.
type EvaluationCreateRequest struct {
	CallID    uint                        `json:"call_id" validate:"required,gt=0"`
	RubricID  uint                        `json:"rubric_id" validate:"required,gt=0"`
	Scores    map[string]scoring.RawScore `json:"scores"`
	FinalNote string                      `json:"final_note" validate:"required,min=3"`
}

// EvaluationFilter describes query string filters for listing evaluations.
type EvaluationFilter struct {
	CallID *uint `query:"call_id"`
}

// EvaluationResponse is returned to API clients when viewing evaluations.
type EvaluationResponse struct {
	ID            uint                 `json:"id"`
	CallID        uint                 `json:"call_id"`
	AgentID       uint                 `json:"agent_id"`
	AgentName     string               `json:"agent_name"`
	EvaluatorID   uint                 `json:"evaluator_id"`
	EvaluatorName string               `json:"evaluator_name"`
	RubricID      uint                 `json:"rubric_id"`
	RubricName    string               `json:"rubric_name"`
	Scores        []scoring.ScoreEntry `json:"scores"`
	FinalNote     string               `json:"final_note"`
	TotalScore    decimal.Decimal      `json:"total_score"`
	EvaluatedAt   time.Time            `json:"evaluated_at"`
}

// NewEvaluationResponse converts an Evaluation model into a DTO.
func NewEvaluationResponse(model models.Evaluation) EvaluationResponse {
	response := EvaluationResponse{
		ID:          model.ID,
		CallID:      model.CallID,
		EvaluatorID: model.EvaluatorID,
		RubricID:    model.RubricID,
		FinalNote:   model.FinalNote,
		TotalScore:  model.TotalScore,
		EvaluatedAt: model.EvaluatedAt,
	}

	if model.Call.ID != 0 {
		response.AgentID = model.Call.AgentID
		response.AgentName = model.Call.Agent.FullName()
	}
	if model.Evaluator.ID != 0 {
		response.EvaluatorName = model.Evaluator.FullName()
	}
	if model.Rubric.ID != 0 {
		response.RubricName = model.Rubric.Name
	}

	var sheet scoring.ScoreSheet
	if err := json.Unmarshal(model.Scores, &sheet); err == nil {
		response.Scores = sheet
	}

	return response
}

// NewEvaluationResponseSlice converts evaluation models into DTOs.
func NewEvaluationResponseSlice(evaluations []models.Evaluation) []EvaluationResponse {
	responses := make([]EvaluationResponse, 0, len(evaluations))
	for _, evaluation := range evaluations {
		responses = append(responses, NewEvaluationResponse(evaluation))
	}
	return responses
}
