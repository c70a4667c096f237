package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/sprout/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError maps a service failure to the right response status. The
// message keeps the specific reason but strips internals.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrSchema):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrImportIntegrity):
		return apiError(c, fiber.StatusUnprocessableEntity, err.Error())
	default:
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}

// parseDateQuery reads a YYYY-MM-DD query parameter in the handler's
// location. Missing parameters return the fallback.
func (handler *Handler) parseDateQuery(c *fiber.Ctx, name string, fallback time.Time) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", raw, handler.location)
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

func parseIntQuery(c *fiber.Ctx, name string, fallback int) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
