package handlers

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"alfredoptarigan/skillbridge-assessment/internal/models"
	"alfredoptarigan/skillbridge-assessment/internal/repositories"
)

type BlueprintHandler struct {
	blueprintRepo repositories.BlueprintRepository
	validate      *validator.Validate
}

func NewBlueprintHandler(blueprintRepo repositories.BlueprintRepository) *BlueprintHandler {
	return &BlueprintHandler{
		blueprintRepo: blueprintRepo,
		validate:      validator.New(),
	}
}

// HandleCreate handles POST /blueprints. The rules document is validated
// against the shape its kind demands before anything is stored.
func (h *BlueprintHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateBlueprintRequest

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

	if err := h.validateRules(req.Kind, req.Rules); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	blueprint := &models.Blueprint{
		ID:              uuid.New(),
		Name:            req.Name,
		Kind:            models.BlueprintKind(req.Kind),
		Rules:           datatypes.JSON(req.Rules),
		DurationMinutes: req.DurationMinutes,
	}
	if req.RoleID != "" {
		roleID, err := uuid.Parse(req.RoleID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid role_id format",
			})
		}
		blueprint.RoleID = &roleID
	}

	if err := h.blueprintRepo.Create(blueprint); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(blueprint)
}

// HandleList handles GET /blueprints
func (h *BlueprintHandler) HandleList(c *fiber.Ctx) error {
	blueprints, err := h.blueprintRepo.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"blueprints": blueprints,
	})
}

func (h *BlueprintHandler) validateRules(kind string, raw json.RawMessage) error {
	switch models.BlueprintKind(kind) {
	case models.KindInternship:
		var rules models.InternshipRules
		if err := json.Unmarshal(raw, &rules); err != nil {
			return err
		}
		return h.validate.Struct(rules)
	case models.KindGig:
		var rules models.GigRules
		if err := json.Unmarshal(raw, &rules); err != nil {
			return err
		}
		return h.validate.Struct(rules)
	}
	return nil
}
