package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"heroic/ats-platform/internal/models"
	"heroic/ats-platform/internal/services"
)

const sessionHeader = "X-Session-ID"

type AnalyzeHandler struct {
	analyzer services.AnalyzerService
	errors   *ErrorResponder
}

func NewAnalyzeHandler(analyzer services.AnalyzerService, errors *ErrorResponder) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		errors:   errors,
	}
}

// HandleAnalyze handles POST /analyze_ats
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("pdf_file")
	if err != nil {
		return h.errors.Respond(c, &services.AnalysisError{
			Kind:    services.KindInvalidInput,
			Message: "pdf_file is required",
		})
	}

	// Reject on the name before buffering the body.
	if err := services.ValidatePDFFilename(fileHeader.Filename); err != nil {
		return h.errors.Respond(c, err)
	}

	data, err := readUpload(fileHeader)
	if err != nil {
		return h.errors.Respond(c, err)
	}

	result, err := h.analyzer.Analyze(c.UserContext(), services.AnalysisRequest{
		FileName:        fileHeader.Filename,
		File:            data,
		JobDescription:  c.FormValue("job_description"),
		ExperienceLevel: c.FormValue("experience_level"),
		SessionID:       sessionID(c),
	})
	if err != nil {
		return h.errors.Respond(c, err)
	}

	return c.JSON(models.AnalyzeResponse{
		AnalysisResult: result.Text,
		SessionID:      result.SessionID,
	})
}

// sessionID reads the session from the form, query string or header, in
// that order. The result outlives the request, so it is copied out of the
// fasthttp buffer.
func sessionID(c *fiber.Ctx) string {
	if id := strings.TrimSpace(c.FormValue("session_id")); id != "" {
		return utils.CopyString(id)
	}
	if id := strings.TrimSpace(c.Query("session_id")); id != "" {
		return utils.CopyString(id)
	}
	return utils.CopyString(strings.TrimSpace(c.Get(sessionHeader)))
}
