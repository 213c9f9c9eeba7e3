package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/skillbridge-assessment/internal/models"
	"alfredoptarigan/skillbridge-assessment/internal/repositories"
)

type ReportHandler struct {
	assessmentRepo repositories.AssessmentRepository
	reportRepo     repositories.ReportRepository
}

func NewReportHandler(
	assessmentRepo repositories.AssessmentRepository,
	reportRepo repositories.ReportRepository,
) *ReportHandler {
	return &ReportHandler{
		assessmentRepo: assessmentRepo,
		reportRepo:     reportRepo,
	}
}

// HandleGetReport handles GET /reports/:token
func (h *ReportHandler) HandleGetReport(c *fiber.Ctx) error {
	token := c.Params("token")

	assessment, err := h.assessmentRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, models.ErrInvalidToken) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Assessment not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	report, err := h.reportRepo.FindByAssessmentID(assessment.ID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Report not available yet",
		})
	}

	return c.JSON(report)
}
