package models

import "errors"

// Domain errors shared by repositories, services and handlers.
var (
	// ErrNoEligibleContent is returned by selection when a blueprint yields
	// zero questions and zero tasks. Callers treat it as a soft warning.
	ErrNoEligibleContent = errors.New("no eligible content for blueprint")

	// ErrAlreadySubmitted guards the terminal assessment state.
	ErrAlreadySubmitted = errors.New("assessment already submitted")

	// ErrNothingToSubmit is returned when submit is called with zero saved responses.
	ErrNothingToSubmit = errors.New("no responses to submit")

	// ErrReportAlreadyExists is the idempotency guard for report creation.
	ErrReportAlreadyExists = errors.New("report already exists for assessment")

	// ErrInvalidToken means the token resolves to no assessment.
	ErrInvalidToken = errors.New("invalid assessment token")

	ErrAssessmentExists = errors.New("assessment already exists for application")
)
