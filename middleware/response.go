package middleware

import (
	"errors"
	"fmt"
	"log"

	"supportdesk/apperror"

	"github.com/gofiber/fiber/v2"
)

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}

// ErrorResponse maps a service error onto the response envelope.
// Storage details are logged here and never sent to the client.
func ErrorResponse(c *fiber.Ctx, err error) error {
	var validation *apperror.ValidationError
	var notFound *apperror.NotFoundError
	var conflict *apperror.ConflictError

	switch {
	case errors.As(err, &validation):
		field := validation.Field
		if field == "" {
			field = "request"
		}
		return ValidationErrorResponse(c, map[string]string{field: validation.Message})
	case errors.As(err, &notFound):
		return JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found.", nil)
	case errors.As(err, &conflict):
		return JsonResponse(c, fiber.StatusConflict, false, conflict.Message, nil)
	default:
		cause := err
		var storage *apperror.StorageError
		if errors.As(err, &storage) && storage.Err != nil {
			cause = fmt.Errorf("%s: %w", storage.Op, storage.Err)
		}
		log.Printf("[HTTP] %s %s failed: %v", c.Method(), c.Path(), cause)
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong. Please try again.", nil)
	}
}
