package models

import "time"

// CallQueue groups call records by operation (support line, sales,
// retention, ...). Queues are admin-managed reference data.
type CallQueue struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CallRecord is one uploaded call recording awaiting or holding
// evaluations. The audio itself lives in external storage; only the
// secure URL is kept here.
type CallRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UploadedByID uint      `gorm:"not null" json:"uploaded_by_id"`
	AgentID      uint      `gorm:"not null;index" json:"agent_id"`
	CallQueueID  uint      `gorm:"not null" json:"call_queue_id"`
	PhoneNumber  string    `gorm:"size:20;not null" json:"phone_number"`
	AudioURL     string    `gorm:"size:512;not null" json:"audio_url"`
	ExternalID   string    `gorm:"size:100" json:"external_id"`
	CallDate     time.Time `gorm:"not null" json:"call_date"`
	CreatedAt    time.Time `json:"created_at"`

	UploadedBy User      `gorm:"foreignKey:UploadedByID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"uploaded_by"`
	Agent      User      `gorm:"foreignKey:AgentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"agent"`
	CallQueue  CallQueue `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"call_queue"`
}
