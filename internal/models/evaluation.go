package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Evaluation is one scored instance of a rubric applied to one call
// by one evaluator. Scores holds the normalized per-field breakdown
// (key, label, score, max_score) as computed at creation; TotalScore
// is the write-once normalized percentage. A call may carry any
// number of evaluations.
type Evaluation struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CallID      uint            `gorm:"not null;index" json:"call_id"`
	EvaluatorID uint            `gorm:"not null;index" json:"evaluator_id"`
	RubricID    uint            `gorm:"not null" json:"rubric_id"`
	Scores      datatypes.JSON  `gorm:"not null" json:"scores"`
	FinalNote   string          `gorm:"type:text;not null" json:"final_note"`
	TotalScore  decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"total_score"`
	EvaluatedAt time.Time       `gorm:"autoCreateTime" json:"evaluated_at"`

	Call      CallRecord `gorm:"foreignKey:CallID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"call"`
	Evaluator User       `gorm:"foreignKey:EvaluatorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"evaluator"`
	Rubric    Rubric     `gorm:"foreignKey:RubricID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"rubric"`
}
