package models

import (
	"time"

	"github.com/google/uuid"
)

// Skill is the platform-wide skill taxonomy referenced by student profiles
// and question tags.
type Skill struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name string    `gorm:"type:text;uniqueIndex;not null" json:"name"`
}

func (Skill) TableName() string {
	return "skills"
}

// AssessmentSkill is the curated list shown in the apply-time skill dropdown.
// Kept separate from the main taxonomy so the assessment pool can be seeded
// independently.
type AssessmentSkill struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name string    `gorm:"type:text;uniqueIndex;not null" json:"name"`
}

func (AssessmentSkill) TableName() string {
	return "assessment_skills"
}

// ApplicantChosenSkill links an applicant's apply-time skill picks (max 3)
// to their application.
type ApplicantChosenSkill struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_application_chosen_skill" json:"application_id"`
	SkillID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_application_chosen_skill" json:"skill_id"`
	CreatedAt     time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`

	Skill AssessmentSkill `gorm:"foreignKey:SkillID" json:"-"`
}

func (ApplicantChosenSkill) TableName() string {
	return "applicant_chosen_skills"
}

// RoleProfile describes a gig role (designer, video editor, web developer)
// used to scope task selection.
type RoleProfile struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Key         string    `gorm:"type:text;uniqueIndex;not null" json:"key"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
}

func (RoleProfile) TableName() string {
	return "role_profiles"
}
