package models

import (
	"time"

	"github.com/google/uuid"
)

// Report is the single immutable score report per assessment. Creation is the
// terminal event of scoring; the unique index on AssessmentID enforces the
// at-most-one invariant under concurrent submits.
type Report struct {
	ID           uuid.UUID          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AssessmentID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"assessment_id"`
	TotalScore   float64            `gorm:"not null" json:"total_score"`
	PerSkill     map[string]float64 `gorm:"type:jsonb;serializer:json" json:"per_skill"`
	PerSection   map[string]float64 `gorm:"type:jsonb;serializer:json" json:"per_section"`
	Summary      string             `gorm:"type:text" json:"summary"`
	CreatedAt    time.Time          `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (Report) TableName() string {
	return "assessment_reports"
}
