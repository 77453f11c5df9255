package handler_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/faikerkan/QuailtyHUB/internal/dto"
	"github.com/faikerkan/QuailtyHUB/internal/models"
)

func mp3Content() []byte {
	header := []byte{'I', 'D', '3', 3, 0, 0, 0, 0, 0, 0}
	return append(header, bytes.Repeat([]byte{0}, 64)...)
}

func uploadRequest(t *testing.T, agentID, queueID uint, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("agent_id", fmt.Sprintf("%d", agentID)))
	require.NoError(t, writer.WriteField("call_queue_id", fmt.Sprintf("%d", queueID)))
	require.NoError(t, writer.WriteField("phone_number", "05551112233"))
	require.NoError(t, writer.WriteField("call_date", time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC).Format(time.RFC3339)))
	part, err := writer.CreateFormFile("audio", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func seedQueue(t *testing.T, db *gorm.DB) models.CallQueue {
	t.Helper()
	queue := models.CallQueue{Name: "Support"}
	require.NoError(t, db.Create(&queue).Error)
	return queue
}

func TestCallHandlerUploadAndList(t *testing.T) {
	app, db := setupApp(t)
	expert := seedAccount(t, db, "aylin.kaya", "expert")
	agent := seedAccount(t, db, "mehmet.demir", "agent")
	queue := seedQueue(t, db)

	body, contentType := uploadRequest(t, agent.ID, queue.ID, "call.mp3", mp3Content())
	req := httptest.NewRequest("POST", "/api/v1/calls", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerFor(t, expert))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var createResp struct {
		Success bool             `json:"success"`
		Data    dto.CallResponse `json:"data"`
	}
	decodeResponse(t, resp, &createResp)
	require.True(t, createResp.Success)
	require.Equal(t, agent.ID, createResp.Data.AgentID)
	require.Equal(t, expert.ID, createResp.Data.UploadedByID)
	require.Contains(t, createResp.Data.AudioURL, "call.mp3")

	listReq := httptest.NewRequest("GET", "/api/v1/calls", nil)
	listReq.Header.Set("Authorization", bearerFor(t, expert))
	listResp, err := app.Test(listReq)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, listResp.StatusCode)

	var listBody struct {
		Data []dto.CallResponse `json:"data"`
	}
	decodeResponse(t, listResp, &listBody)
	require.Len(t, listBody.Data, 1)
}

func TestCallHandlerUploadRejectsNonAudio(t *testing.T) {
	app, db := setupApp(t)
	expert := seedAccount(t, db, "aylin.kaya", "expert")
	agent := seedAccount(t, db, "mehmet.demir", "agent")
	queue := seedQueue(t, db)

	body, contentType := uploadRequest(t, agent.ID, queue.ID, "notes.txt", []byte("not a recording"))
	req := httptest.NewRequest("POST", "/api/v1/calls", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerFor(t, expert))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestCallHandlerUploadRequiresFile(t *testing.T) {
	app, db := setupApp(t)
	expert := seedAccount(t, db, "aylin.kaya", "expert")
	agent := seedAccount(t, db, "mehmet.demir", "agent")
	queue := seedQueue(t, db)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("agent_id", fmt.Sprintf("%d", agent.ID)))
	require.NoError(t, writer.WriteField("call_queue_id", fmt.Sprintf("%d", queue.ID)))
	require.NoError(t, writer.WriteField("phone_number", "05551112233"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/v1/calls", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", bearerFor(t, expert))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCallHandlerQueues(t *testing.T) {
	app, db := setupApp(t)
	admin := seedAccount(t, db, "admin", "admin")

	createBody := `{"name": "Retention", "description": "Churn prevention line"}`
	req := httptest.NewRequest("POST", "/api/v1/call-queues", strings.NewReader(createBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, admin))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	listReq := httptest.NewRequest("GET", "/api/v1/call-queues", nil)
	listReq.Header.Set("Authorization", bearerFor(t, admin))
	listResp, err := app.Test(listReq)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, listResp.StatusCode)

	var listBody struct {
		Data []dto.CallQueueResponse `json:"data"`
	}
	decodeResponse(t, listResp, &listBody)
	require.Len(t, listBody.Data, 1)
	require.Equal(t, "Retention", listBody.Data[0].Name)
}
