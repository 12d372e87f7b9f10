package handlers

import (
	"github.com/gofiber/fiber/v2"

	"heroic/ats-platform/internal/models"
	"heroic/ats-platform/internal/services"
)

const (
	HealthMessage      = "Heroic ATS Platform is Working Fine"
	MemoryClearedReply = "Memory cleared successfully."
)

type MemoryHandler struct {
	analyzer services.AnalyzerService
	errors   *ErrorResponder
}

func NewMemoryHandler(analyzer services.AnalyzerService, errors *ErrorResponder) *MemoryHandler {
	return &MemoryHandler{
		analyzer: analyzer,
		errors:   errors,
	}
}

// HandleClearMemory handles POST /clear_memory. Without a session id every
// session is cleared.
func (h *MemoryHandler) HandleClearMemory(c *fiber.Ctx) error {
	if err := h.analyzer.ClearMemory(c.UserContext(), sessionID(c)); err != nil {
		return h.errors.Respond(c, err)
	}

	return c.JSON(models.MessageResponse{Message: MemoryClearedReply})
}

func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(models.MessageResponse{Message: HealthMessage})
}
