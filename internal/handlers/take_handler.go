package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/skillbridge-assessment/internal/models"
	"alfredoptarigan/skillbridge-assessment/internal/services"
)

type TakeHandler struct {
	collector services.CollectorService
	validate  *validator.Validate
}

func NewTakeHandler(collector services.CollectorService) *TakeHandler {
	return &TakeHandler{
		collector: collector,
		validate:  validator.New(),
	}
}

// HandleTake handles GET /assessments/take/:token. With ?check_responses=1 it
// only reports the saved-answer count, without starting the session.
func (h *TakeHandler) HandleTake(c *fiber.Ctx) error {
	token := c.Params("token")

	if c.Query("check_responses") != "" {
		_, count, err := h.collector.ResponseCount(token)
		if err != nil {
			return mapCollectorError(c, err)
		}
		return c.JSON(models.ResponseCountResponse{ResponseCount: count})
	}

	assessment, responses, err := h.collector.Open(token)
	if err != nil {
		return mapCollectorError(c, err)
	}

	resp := models.TakeResponse{
		ID:              assessment.ID.String(),
		Status:          string(assessment.Status),
		DurationMinutes: assessment.DurationMinutes,
		Questions:       assessment.Questions,
		Tasks:           assessment.Tasks,
		Responses:       make([]models.SavedAnswer, 0, len(responses)),
	}
	if assessment.StartedAt != nil {
		resp.StartedAt = assessment.StartedAt.Format(time.RFC3339)
	}
	for _, record := range responses {
		resp.Responses = append(resp.Responses, models.SavedAnswer{
			RefType: string(record.RefType),
			RefID:   record.RefID.String(),
			Answer:  record.Answer,
		})
	}

	return c.JSON(resp)
}

// HandleSaveAnswers handles POST /assessments/take/:token
func (h *TakeHandler) HandleSaveAnswers(c *fiber.Ctx) error {
	token := c.Params("token")

	var req models.SaveAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	_, saved, err := h.collector.SaveAnswers(token, req.Answers)
	if err != nil {
		return mapCollectorError(c, err)
	}

	return c.JSON(models.SaveAnswersResponse{
		Saved:    saved,
		Expected: len(req.Answers),
		Message:  fmt.Sprintf("Saved %d of %d answers", saved, len(req.Answers)),
	})
}

// mapCollectorError translates collector domain errors into HTTP responses.
func mapCollectorError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrInvalidToken):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Assessment not found",
		})
	case errors.Is(err, models.ErrAlreadySubmitted):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Assessment already submitted",
		})
	case errors.Is(err, models.ErrNothingToSubmit):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No responses to submit",
		})
	default:
		// Never leak internals; a failed scoring run still left the
		// session submitted.
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Something went wrong. Please contact support.",
		})
	}
}
