package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/skillbridge-assessment/internal/models"
	"alfredoptarigan/skillbridge-assessment/internal/services"
)

type AssessmentHandler struct {
	assessmentService services.AssessmentService
	validate          *validator.Validate
}

func NewAssessmentHandler(assessmentService services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentService: assessmentService,
		validate:          validator.New(),
	}
}

// HandleCreate handles POST /assessments
func (h *AssessmentHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateAssessmentRequest

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

	applicationID, err := uuid.Parse(req.ApplicationID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application_id format",
		})
	}
	blueprintID, err := uuid.Parse(req.BlueprintID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid blueprint_id format",
		})
	}

	assessment, err := h.assessmentService.CreateForApplication(c.Context(), applicationID, blueprintID)
	if err != nil {
		if errors.Is(err, models.ErrAssessmentExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Assessment already exists for this application",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	resp := models.CreateAssessmentResponse{
		ID:              assessment.ID.String(),
		Token:           assessment.Token,
		Status:          string(assessment.Status),
		DurationMinutes: assessment.DurationMinutes,
		QuestionCount:   len(assessment.Questions),
		TaskCount:       len(assessment.Tasks),
	}
	if resp.QuestionCount == 0 && resp.TaskCount == 0 {
		resp.Warning = "No eligible content matched the blueprint; assessment issued empty"
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}
