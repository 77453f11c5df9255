package dto

import (
	"time"

	"github.com/faikerkan/QuailtyHUB/internal/models"
)

// NotificationResponse serializes in-app notifications.
type NotificationResponse struct {
	ID        uint       `json:"id"`
	Kind      string     `json:"kind"`
	Message   string     `json:"message"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewNotificationResponseSlice converts notification models into DTOs.
func NewNotificationResponseSlice(notifications []models.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		responses = append(responses, NotificationResponse{
			ID:        notification.ID,
			Kind:      notification.Kind,
			Message:   notification.Message,
			ReadAt:    notification.ReadAt,
			CreatedAt: notification.CreatedAt,
		})
	}
	return responses
}
