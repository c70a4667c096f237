package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/sprout/internal/services"
)

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	settings, err := handler.settings.Load()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(settings)
}

func (handler *Handler) UpdateSettings(c *fiber.Ctx) error {
	input := services.SettingsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	settings, err := handler.settings.Update(input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(settings)
}

func (handler *Handler) RunRetentionSweep(c *fiber.Ctx) error {
	removed, err := handler.settings.RunRetentionSweep(time.Now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"removed": removed})
}
