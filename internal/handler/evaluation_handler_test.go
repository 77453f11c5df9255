package handler_test

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/faikerkan/QuailtyHUB/internal/dto"
	"github.com/faikerkan/QuailtyHUB/internal/models"
	"github.com/faikerkan/QuailtyHUB/internal/scoring"
)

func seedScoringFixture(t *testing.T, db *gorm.DB, admin, expert, agent models.User) (models.CallRecord, models.Rubric) {
	t.Helper()

	queue := models.CallQueue{Name: "Support"}
	require.NoError(t, db.Create(&queue).Error)

	call := models.CallRecord{
		UploadedByID: expert.ID,
		AgentID:      agent.ID,
		CallQueueID:  queue.ID,
		PhoneNumber:  "05551112233",
		AudioURL:     "https://cdn.example.com/recordings/call.mp3",
		CallDate:     time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&call).Error)

	fields, err := scoring.ValidateDefinition([]scoring.FieldInput{
		{Key: "greeting", Label: "Greeting", Kind: "number", MaxScore: decimalPtr("10")},
		{Key: "listening", Label: "Listening", Kind: "number", MaxScore: decimalPtr("20")},
		{Key: "closing", Label: "Closing", Kind: "number", MaxScore: decimalPtr("30")},
	})
	require.NoError(t, err)

	rubric := models.Rubric{
		Name:        "Support form",
		Fields:      fields,
		CreatedByID: admin.ID,
		IsActive:    true,
		IsDefault:   true,
	}
	require.NoError(t, db.Create(&rubric).Error)

	return call, rubric
}

func decimalPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestEvaluationHandlerCreate(t *testing.T) {
	app, db := setupApp(t)
	admin := seedAccount(t, db, "admin", "admin")
	expert := seedAccount(t, db, "aylin.kaya", "expert")
	agent := seedAccount(t, db, "mehmet.demir", "agent")
	call, rubric := seedScoringFixture(t, db, admin, expert, agent)

	body := fmt.Sprintf(`{
		"call_id": %d,
		"rubric_id": %d,
		"scores": {"greeting": {"score": 8}, "listening": {"score": 16}, "closing": {"score": 28}},
		"final_note": "Good call overall."
	}`, call.ID, rubric.ID)

	req := httptest.NewRequest("POST", "/api/v1/evaluations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, expert))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var createResp struct {
		Success bool                   `json:"success"`
		Data    dto.EvaluationResponse `json:"data"`
	}
	decodeResponse(t, resp, &createResp)
	require.True(t, createResp.Success)
	require.Equal(t, "86.67", createResp.Data.TotalScore.StringFixed(2))
	require.Len(t, createResp.Data.Scores, 3)
	require.Equal(t, expert.ID, createResp.Data.EvaluatorID)
	require.Equal(t, agent.ID, createResp.Data.AgentID)

	// The scored agent receives an in-app notification.
	agentReq := httptest.NewRequest("GET", "/api/v1/notifications?unread=true", nil)
	agentReq.Header.Set("Authorization", bearerFor(t, agent))
	agentResp, err := app.Test(agentReq)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, agentResp.StatusCode)

	var notifications struct {
		Data []dto.NotificationResponse `json:"data"`
	}
	decodeResponse(t, agentResp, &notifications)
	require.Len(t, notifications.Data, 1)
	require.Contains(t, notifications.Data[0].Message, "86.67")
}

func TestEvaluationHandlerRejectsBadScores(t *testing.T) {
	app, db := setupApp(t)
	admin := seedAccount(t, db, "admin", "admin")
	expert := seedAccount(t, db, "aylin.kaya", "expert")
	agent := seedAccount(t, db, "mehmet.demir", "agent")
	call, rubric := seedScoringFixture(t, db, admin, expert, agent)

	cases := []struct {
		name   string
		scores string
	}{
		{"unknown field", `{"tone": {"score": 5}}`},
		{"above maximum", `{"greeting": {"score": 11}}`},
		{"negative", `{"greeting": {"score": -1}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := fmt.Sprintf(`{
				"call_id": %d,
				"rubric_id": %d,
				"scores": %s,
				"final_note": "Invalid submission."
			}`, call.ID, rubric.ID, tc.scores)

			req := httptest.NewRequest("POST", "/api/v1/evaluations", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", bearerFor(t, expert))
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.Evaluation{}).Count(&count).Error)
	require.Zero(t, count, "rejected submissions must not be persisted")
}

func TestEvaluationHandlerRejectsMarkupOnlyFinalNote(t *testing.T) {
	app, db := setupApp(t)
	admin := seedAccount(t, db, "admin", "admin")
	expert := seedAccount(t, db, "aylin.kaya", "expert")
	agent := seedAccount(t, db, "mehmet.demir", "agent")
	call, rubric := seedScoringFixture(t, db, admin, expert, agent)

	body := fmt.Sprintf(`{
		"call_id": %d,
		"rubric_id": %d,
		"scores": {"greeting": {"score": 5}},
		"final_note": "<script>alert(1)</script>"
	}`, call.ID, rubric.ID)
	req := httptest.NewRequest("POST", "/api/v1/evaluations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, expert))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Evaluation{}).Count(&count).Error)
	require.Zero(t, count, "a note with no text must not be persisted")
}

func TestEvaluationHandlerUnknownReferences(t *testing.T) {
	app, db := setupApp(t)
	admin := seedAccount(t, db, "admin", "admin")
	expert := seedAccount(t, db, "aylin.kaya", "expert")
	agent := seedAccount(t, db, "mehmet.demir", "agent")
	call, rubric := seedScoringFixture(t, db, admin, expert, agent)

	body := fmt.Sprintf(`{
		"call_id": 9999,
		"rubric_id": %d,
		"scores": {"greeting": {"score": 5}},
		"final_note": "No such call."
	}`, rubric.ID)
	req := httptest.NewRequest("POST", "/api/v1/evaluations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, expert))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body = fmt.Sprintf(`{
		"call_id": %d,
		"rubric_id": 9999,
		"scores": {"greeting": {"score": 5}},
		"final_note": "No such rubric."
	}`, call.ID)
	req = httptest.NewRequest("POST", "/api/v1/evaluations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, expert))
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestEvaluationHandlerAgentsCannotScore(t *testing.T) {
	app, db := setupApp(t)
	admin := seedAccount(t, db, "admin", "admin")
	expert := seedAccount(t, db, "aylin.kaya", "expert")
	agent := seedAccount(t, db, "mehmet.demir", "agent")
	call, rubric := seedScoringFixture(t, db, admin, expert, agent)

	body := fmt.Sprintf(`{
		"call_id": %d,
		"rubric_id": %d,
		"scores": {"greeting": {"score": 5}},
		"final_note": "Self assessment."
	}`, call.ID, rubric.ID)
	req := httptest.NewRequest("POST", "/api/v1/evaluations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, agent))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
