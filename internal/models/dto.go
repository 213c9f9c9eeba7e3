package models

import "encoding/json"

type CreateAssessmentRequest struct {
	ApplicationID string `json:"application_id" validate:"required,uuid"`
	BlueprintID   string `json:"blueprint_id" validate:"required,uuid"`
}

type CreateAssessmentResponse struct {
	ID              string `json:"id"`
	Token           string `json:"token"`
	Status          string `json:"status"`
	DurationMinutes int    `json:"duration_minutes"`
	QuestionCount   int    `json:"question_count"`
	TaskCount       int    `json:"task_count"`
	Warning         string `json:"warning,omitempty"`
}

// AnswerPayload is one posted answer, keyed by frozen item reference.
type AnswerPayload struct {
	RefType string `json:"ref_type" validate:"required,oneof=question task"`
	RefID   string `json:"ref_id" validate:"required,uuid"`
	Answer  string `json:"answer"`
}

type SaveAnswersRequest struct {
	Answers []AnswerPayload `json:"answers" validate:"required,dive"`
}

type SaveAnswersResponse struct {
	Saved    int    `json:"saved"`
	Expected int    `json:"expected"`
	Message  string `json:"message"`
}

type ResponseCountResponse struct {
	ResponseCount int64 `json:"response_count"`
}

// TakeResponse is the candidate-facing view of an assessment: frozen items
// plus any previously saved answers for form repopulation.
type TakeResponse struct {
	ID              string           `json:"id"`
	Status          string           `json:"status"`
	DurationMinutes int              `json:"duration_minutes"`
	StartedAt       string           `json:"started_at,omitempty"`
	Questions       []FrozenQuestion `json:"questions"`
	Tasks           []FrozenTask     `json:"tasks,omitempty"`
	Responses       []SavedAnswer    `json:"responses"`
}

type SavedAnswer struct {
	RefType string `json:"ref_type"`
	RefID   string `json:"ref_id"`
	Answer  string `json:"answer"`
}

type SubmitResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Report  *Report `json:"report,omitempty"`
}

type CreateBlueprintRequest struct {
	Name            string          `json:"name" validate:"required"`
	Kind            string          `json:"kind" validate:"required,oneof=internship gig"`
	RoleID          string          `json:"role_id" validate:"omitempty,uuid"`
	Rules           json.RawMessage `json:"rules" validate:"required"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,min=10,max=240"`
}

type ArtifactResponse struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
}
