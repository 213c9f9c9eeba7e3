package models

import (
	"time"

	"github.com/google/uuid"
)

type RefType string

const (
	RefQuestion RefType = "question"
	RefTask     RefType = "task"
)

// ResponseRecord stores one saved answer. Unique per
// (assessment_id, ref_type, ref_id): resubmitting the same item overwrites.
type ResponseRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AssessmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_response_ref" json:"assessment_id"`
	RefType      RefType   `gorm:"type:text;not null;uniqueIndex:idx_response_ref" json:"ref_type"`
	RefID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_response_ref" json:"ref_id"`
	Answer       string    `gorm:"type:text;not null" json:"answer"`
	IsCorrect    *bool     `json:"is_correct,omitempty"`
	Score        float64   `gorm:"not null;default:0" json:"score"`
	CreatedAt    time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (ResponseRecord) TableName() string {
	return "assessment_responses"
}
