package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/skillbridge-assessment/internal/models"
	"alfredoptarigan/skillbridge-assessment/internal/services"
)

type ArtifactHandler struct {
	storage     services.ArtifactStorageService
	maxFileSize int64
}

func NewArtifactHandler(storage services.ArtifactStorageService, maxFileSize int64) *ArtifactHandler {
	return &ArtifactHandler{
		storage:     storage,
		maxFileSize: maxFileSize,
	}
}

// HandleUpload handles POST /artifacts. The returned filename is what the
// candidate submits as the answer for an upload task.
func (h *ArtifactHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("artifact")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No artifact file uploaded. Please upload 'artifact' as a PDF file.",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Artifact too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, _, err := h.storage.SaveArtifact(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save artifact: %v", err),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.ArtifactResponse{
		Filename:     filename,
		OriginalName: file.Filename,
	})
}
