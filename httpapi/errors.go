package httpapi

import (
	stderrors "errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Message string `json:"mensagem"`
	Code    string `json:"codigo,omitempty"`
	Details any    `json:"detalhes,omitempty"`
}

// errorHandler is the single translation point from domain errors to HTTP
// responses. Handlers return errors; they never write error bodies.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var verr validation.Errors
	if stderrors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody{
			Message: "payload validation failed",
			Code:    "VALIDATION",
			Details: verr,
		})
	}

	var fiberErr *fiber.Error
	if stderrors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(errorBody{
			Message: fiberErr.Message,
		})
	}

	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	status := richErr.Code
	if status < fiber.StatusContinue {
		status = statusFor(richErr)
	}

	if status >= fiber.StatusInternalServerError {
		s.logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", richErr.Message)
	}

	return c.Status(status).JSON(errorBody{
		Message: richErr.Message,
		Code:    richErr.TextCode,
		Details: richErr.Metadata,
	})
}

func statusFor(richErr *errors.Error) int {
	switch richErr.Category {
	case errors.CategoryAuth:
		return fiber.StatusUnauthorized
	case errors.CategoryAuthz:
		return fiber.StatusForbidden
	case errors.CategoryBadInput, errors.CategoryValidation:
		return fiber.StatusBadRequest
	case errors.CategoryConflict:
		return fiber.StatusConflict
	case errors.CategoryNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
