package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ExportBackup(c *fiber.Ctx) error {
	envelope, err := handler.backup.Export(time.Now())
	if err != nil {
		return serviceError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="sprout-backup.json"`)
	return c.JSON(envelope)
}

func (handler *Handler) ImportBackup(c *fiber.Ctx) error {
	envelope, err := handler.backup.ParseEnvelope(c.Body())
	if err != nil {
		return serviceError(c, err)
	}
	replace := c.Query("mode", "merge") == "replace"
	if err := handler.backup.Import(envelope, replace); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
