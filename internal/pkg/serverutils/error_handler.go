package serverutils

import (
	"errors"

	"socratic-notes-be/internal/entity"
	"socratic-notes-be/internal/repository/contract"
	"socratic-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain errors onto HTTP statuses so controllers
// can just return them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		code := statusFor(err)
		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, contract.ErrNoteNotFound),
		errors.Is(err, contract.ErrSessionNotFound),
		errors.Is(err, entity.ErrQuestionNotFound):
		return fiber.StatusNotFound

	case errors.Is(err, entity.ErrInvalidQuestionType),
		errors.Is(err, entity.ErrInvalidIntensityLevel),
		errors.Is(err, entity.ErrEmptyResponse),
		errors.Is(err, service.ErrEmptyNoteContent),
		errors.Is(err, service.ErrNoAnsweredQuestions):
		return fiber.StatusBadRequest

	case errors.Is(err, service.ErrLLMUnavailable):
		return fiber.StatusServiceUnavailable

	case errors.Is(err, service.ErrLLMCallFailed),
		errors.Is(err, service.ErrNoQuestionsGenerated),
		errors.Is(err, service.ErrNoInsightsExtracted):
		return fiber.StatusBadGateway

	default:
		return fiber.StatusInternalServerError
	}
}
