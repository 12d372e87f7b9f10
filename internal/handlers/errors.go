package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"heroic/ats-platform/internal/models"
	"heroic/ats-platform/internal/services"
)

// ErrorResponder turns errors into the JSON error body. With exposeDetails
// the raw cause is appended to the public message.
type ErrorResponder struct {
	exposeDetails bool
}

func NewErrorResponder(exposeDetails bool) *ErrorResponder {
	return &ErrorResponder{exposeDetails: exposeDetails}
}

func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindInvalidInput:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func (r *ErrorResponder) Respond(c *fiber.Ctx, err error) error {
	var ae *services.AnalysisError
	if !errors.As(err, &ae) {
		ae = &services.AnalysisError{Kind: services.KindInternal, Message: "An error occurred", Err: err}
	}

	status := statusForKind(ae.Kind)
	detail := ae.Message
	if ae.Err != nil && r.exposeDetails {
		detail = ae.Message + ": " + ae.Err.Error()
	}

	if status >= fiber.StatusInternalServerError {
		log.Printf("❌ %s %s failed [%s]: %v\n", c.Method(), c.Path(), ae.Kind, err)
	} else {
		log.Printf("⚠️  %s %s rejected [%s]: %s\n", c.Method(), c.Path(), ae.Kind, ae.Message)
	}

	return c.Status(status).JSON(models.ErrorResponse{
		Detail: detail,
		Kind:   string(ae.Kind),
		Code:   status,
	})
}

// FiberErrorHandler handles errors that escape handlers, such as body
// limit violations and unknown routes.
func (r *ErrorResponder) FiberErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		kind := services.KindInternal
		if fe.Code < fiber.StatusInternalServerError {
			kind = services.KindInvalidInput
		}
		return c.Status(fe.Code).JSON(models.ErrorResponse{
			Detail: fe.Message,
			Kind:   string(kind),
			Code:   fe.Code,
		})
	}

	return r.Respond(c, err)
}
