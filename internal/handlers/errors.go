package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"tienda/internal/models"
	"tienda/internal/repositories"
	"tienda/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError maps service and repository errors onto HTTP responses.
func respondError(c *fiber.Ctx, logger *slog.Logger, message string, err error) error {
	if errors.Is(err, repositories.ErrInvalidRecord) {
		logger.Error(message, "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	}
	if invalidErr, ok := models.AsInvalidProduct(err); ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message":   invalidErr.Message,
			"field":     invalidErr.Field,
			"condition": invalidErr.Condition,
			"error":     err.Error(),
		})
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, repositories.ErrProductNotFound), errors.Is(err, repositories.ErrSaleNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrZeroAdjustment),
		errors.Is(err, services.ErrEmptySale),
		errors.Is(err, services.ErrInvalidQuantity):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrEmailTaken):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	}

	if status == fiber.StatusInternalServerError {
		logger.Error(message, "path", c.Path(), "error", err)
	} else {
		logger.Debug(message, "path", c.Path(), "status", status, "error", err)
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// validationFailed reports struct tag violations per field.
func validationFailed(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return badRequest(c, err)
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// parseID reads a positive integer route parameter.
func parseID(c *fiber.Ctx, param string) (int64, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", param)
	}
	return int64(id), nil
}
