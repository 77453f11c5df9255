package models

import (
	"time"

	"github.com/faikerkan/QuailtyHUB/internal/scoring"
)

// Rubric is a named, admin-defined evaluation form: an ordered set of
// weighted fields experts score calls against. Fields are validated
// once at creation and treated as immutable afterwards; evaluations
// snapshot the maxima they were scored with, so editing a persisted
// rubric is deliberately not offered.
type Rubric struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Fields      scoring.FieldList `gorm:"type:json;not null" json:"fields"`
	CreatedByID uint              `gorm:"not null" json:"created_by_id"`
	IsActive    bool              `gorm:"default:true" json:"is_active"`
	IsDefault   bool              `gorm:"default:false;index" json:"is_default"`
	CreatedAt   time.Time         `json:"created_at"`

	CreatedBy User `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"created_by"`
}
