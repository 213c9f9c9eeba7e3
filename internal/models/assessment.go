package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AssessmentStatus string

const (
	StatusInvited   AssessmentStatus = "invited"
	StatusStarted   AssessmentStatus = "started"
	StatusSubmitted AssessmentStatus = "submitted"
)

// FrozenQuestion is the immutable, candidate-safe copy of a Question captured
// at assessment creation. It deliberately has no answer key field, so the
// payload can be served to the candidate unmodified.
type FrozenQuestion struct {
	ID          uuid.UUID       `json:"id"`
	Type        QuestionType    `json:"type"`
	Text        string          `json:"text"`
	Choices     []Choice        `json:"choices,omitempty"`
	Language    string          `json:"language,omitempty"`
	StarterCode string          `json:"starter_code,omitempty"`
	Tests       datatypes.JSON  `json:"tests,omitempty"`
	Section     QuestionSection `json:"section"`
}

// FrozenTask is the candidate-safe copy of a Task. The rubric scoring key is
// deliberately omitted.
type FrozenTask struct {
	ID           uuid.UUID `json:"id"`
	Type         TaskType  `json:"type"`
	Title        string    `json:"title"`
	Instructions string    `json:"instructions"`
	ArtifactType string    `json:"artifact_type,omitempty"`
	MaxScore     int       `json:"max_score"`
}

// Assessment is one candidate's test instance: frozen items bound to one
// application and one token. Immutable after creation except for status and
// the two timestamps.
type Assessment struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ApplicationID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"application_id"`
	BlueprintID     uuid.UUID        `gorm:"type:uuid;not null" json:"blueprint_id"`
	Questions       []FrozenQuestion `gorm:"type:jsonb;serializer:json" json:"questions"`
	Tasks           []FrozenTask     `gorm:"type:jsonb;serializer:json" json:"tasks,omitempty"`
	Token           string           `gorm:"type:text;not null;uniqueIndex" json:"-"`
	DurationMinutes int              `gorm:"not null;default:60" json:"duration_minutes"`
	Status          AssessmentStatus `gorm:"type:text;not null;default:'invited'" json:"status"`
	StartedAt       *time.Time       `gorm:"type:timestamp" json:"started_at,omitempty"`
	SubmittedAt     *time.Time       `gorm:"type:timestamp" json:"submitted_at,omitempty"`
	CreatedAt       time.Time        `gorm:"type:timestamp;default:now()" json:"created_at"`

	Application Application `gorm:"foreignKey:ApplicationID" json:"-"`
	Blueprint   Blueprint   `gorm:"foreignKey:BlueprintID" json:"-"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// HasItem reports whether the given reference belongs to this assessment's
// frozen item set. Used to drop tampered form fields.
func (a *Assessment) HasItem(refType RefType, refID uuid.UUID) bool {
	switch refType {
	case RefQuestion:
		for _, q := range a.Questions {
			if q.ID == refID {
				return true
			}
		}
	case RefTask:
		for _, t := range a.Tasks {
			if t.ID == refID {
				return true
			}
		}
	}
	return false
}
