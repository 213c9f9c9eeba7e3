package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/skillbridge-assessment/internal/models"
	"alfredoptarigan/skillbridge-assessment/internal/services"
)

type SubmitHandler struct {
	collector services.CollectorService
}

func NewSubmitHandler(collector services.CollectorService) *SubmitHandler {
	return &SubmitHandler{collector: collector}
}

// HandleSubmit handles POST /assessments/submit/:token. Submission is final:
// it flips the assessment to its terminal state and scores it synchronously.
func (h *SubmitHandler) HandleSubmit(c *fiber.Ctx) error {
	token := c.Params("token")

	report, err := h.collector.Submit(c.Context(), token)
	if err != nil {
		return mapCollectorError(c, err)
	}

	return c.JSON(models.SubmitResponse{
		Status:  string(models.StatusSubmitted),
		Message: report.Summary,
		Report:  report,
	})
}
