package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type QuestionType string

const (
	QuestionMCQ   QuestionType = "mcq"
	QuestionShort QuestionType = "short"
	QuestionCode  QuestionType = "code"
)

type QuestionSection string

const (
	SectionTechnical QuestionSection = "technical"
	SectionHR        QuestionSection = "hr"
	SectionAptitude  QuestionSection = "aptitude"
)

type Choice struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Question is an authored pool item. Only active questions are eligible for
// selection. AnswerKey is never serialized: candidates only ever see the
// frozen copy, which has no key field at all.
type Question struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Type        QuestionType    `gorm:"type:text;not null" json:"type"`
	Text        string          `gorm:"type:text;not null" json:"text"`
	SkillTags   []string        `gorm:"type:jsonb;serializer:json" json:"skill_tags"`
	Difficulty  int             `gorm:"default:1" json:"difficulty"`
	Choices     []Choice        `gorm:"type:jsonb;serializer:json" json:"choices,omitempty"`
	AnswerKey   string          `gorm:"type:text" json:"-"`
	Language    string          `gorm:"type:text" json:"language,omitempty"`
	StarterCode string          `gorm:"type:text" json:"starter_code,omitempty"`
	Tests       datatypes.JSON  `gorm:"type:jsonb" json:"tests,omitempty"`
	Section     QuestionSection `gorm:"type:text;not null;default:'technical'" json:"section"`
	Active      bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time       `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (Question) TableName() string {
	return "questions"
}

type TaskType string

const (
	TaskUpload   TaskType = "upload"
	TaskCritique TaskType = "critique"
)

// Task is a gig artifact item (upload or critique) that does not fit the
// question shape. Rubric holds the scoring key and is never serialized.
type Task struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Type         TaskType       `gorm:"type:text;not null" json:"type"`
	RoleID       *uuid.UUID     `gorm:"type:uuid" json:"role_id,omitempty"`
	Title        string         `gorm:"type:text;not null" json:"title"`
	Instructions string         `gorm:"type:text;not null" json:"instructions"`
	ArtifactType string         `gorm:"type:text" json:"artifact_type,omitempty"`
	SkillTags    []string       `gorm:"type:jsonb;serializer:json" json:"skill_tags"`
	Rubric       datatypes.JSON `gorm:"type:jsonb" json:"-"`
	MaxScore     int            `gorm:"default:10" json:"max_score"`
	Active       bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time      `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (Task) TableName() string {
	return "tasks"
}
