package dto

import (
	"time"

	"github.com/faikerkan/QuailtyHUB/internal/models"
)

// CallUploadRequest describes the multipart payload for uploading a call recording.
type CallUploadRequest struct {
	AgentID     uint      `form:"agent_id" validate:"required,gt=0"`
	CallQueueID uint      `form:"call_queue_id" validate:"required,gt=0"`
	PhoneNumber string    `form:"phone_number" validate:"required,min=7,max=20"`
	ExternalID  string    `form:"external_id" validate:"omitempty,max=100"`
	CallDate    time.Time `form:"call_date" validate:"required"`
}

// CallFilter describes query string filters for listing calls.
type CallFilter struct {
	AgentID     *uint `query:"agent_id"`
	CallQueueID *uint `query:"call_queue_id"`
}

// CallResponse is returned to API clients when viewing call records.
type CallResponse struct {
	ID           uint      `json:"id"`
	AgentID      uint      `json:"agent_id"`
	AgentName    string    `json:"agent_name"`
	UploadedByID uint      `json:"uploaded_by_id"`
	UploadedBy   string    `json:"uploaded_by"`
	CallQueueID  uint      `json:"call_queue_id"`
	CallQueue    string    `json:"call_queue"`
	PhoneNumber  string    `json:"phone_number"`
	AudioURL     string    `json:"audio_url"`
	ExternalID   string    `json:"external_id"`
	CallDate     time.Time `json:"call_date"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// CallQueueRequest describes the payload for creating a call queue.
type CallQueueRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// CallQueueResponse serializes call queues.
type CallQueueResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCallResponse converts a CallRecord model into a DTO.
func NewCallResponse(model models.CallRecord) CallResponse {
	response := CallResponse{
		ID:           model.ID,
		AgentID:      model.AgentID,
		UploadedByID: model.UploadedByID,
		CallQueueID:  model.CallQueueID,
		PhoneNumber:  model.PhoneNumber,
		AudioURL:     model.AudioURL,
		ExternalID:   model.ExternalID,
		CallDate:     model.CallDate,
		UploadedAt:   model.CreatedAt,
	}

	if model.Agent.ID != 0 {
		response.AgentName = model.Agent.FullName()
	}
	if model.UploadedBy.ID != 0 {
		response.UploadedBy = model.UploadedBy.FullName()
	}
	if model.CallQueue.ID != 0 {
		response.CallQueue = model.CallQueue.Name
	}

	return response
}

// NewCallResponseSlice converts call record models into DTOs.
func NewCallResponseSlice(calls []models.CallRecord) []CallResponse {
	responses := make([]CallResponse, 0, len(calls))
	for _, call := range calls {
		responses = append(responses, NewCallResponse(call))
	}
	return responses
}

// NewCallQueueResponse converts a CallQueue model into a DTO.
func NewCallQueueResponse(model models.CallQueue) CallQueueResponse {
	return CallQueueResponse{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
	}
}

// NewCallQueueResponseSlice converts call queue models into DTOs.
func NewCallQueueResponseSlice(queues []models.CallQueue) []CallQueueResponse {
	responses := make([]CallQueueResponse, 0, len(queues))
	for _, queue := range queues {
		responses = append(responses, NewCallQueueResponse(queue))
	}
	return responses
}
