package models

import (
	"time"

	"github.com/google/uuid"
)

// StudentProfile is a read-only collaborator record. Only the fields the
// assessment engine consumes (declared skills, contact email) are modeled.
type StudentProfile struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string    `gorm:"type:text" json:"full_name"`
	Email    string    `gorm:"type:text;not null" json:"email"`
	Skills   []string  `gorm:"type:jsonb;serializer:json" json:"skills"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}

// Job is a read-only collaborator record, consulted only for notification
// content (title, employer contact).
type Job struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title         string    `gorm:"type:text;not null" json:"title"`
	EmployerName  string    `gorm:"type:text" json:"employer_name"`
	EmployerEmail string    `gorm:"type:text" json:"employer_email"`
	JobType       string    `gorm:"type:text" json:"job_type"`
}

func (Job) TableName() string {
	return "jobs"
}

// Application binds a student to a job posting. At most one assessment is
// ever created per application.
type Application struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID   uuid.UUID `gorm:"type:uuid;not null" json:"student_id"`
	JobID       uuid.UUID `gorm:"type:uuid;not null" json:"job_id"`
	Status      string    `gorm:"type:text;default:'PENDING'" json:"status"`
	AppliedDate time.Time `gorm:"type:timestamp;default:now()" json:"applied_date"`

	Student StudentProfile `gorm:"foreignKey:StudentID" json:"-"`
	Job     Job            `gorm:"foreignKey:JobID" json:"-"`
}

func (Application) TableName() string {
	return "applications"
}
