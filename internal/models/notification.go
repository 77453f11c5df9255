package models

import "time"

// Notification is an in-app message for a user, currently produced
// when one of their calls receives an evaluation.
type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Kind      string     `gorm:"size:32;not null" json:"kind"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// NotificationKindEvaluationCreated marks evaluation fan-out messages.
const NotificationKindEvaluationCreated = "evaluation.created"
