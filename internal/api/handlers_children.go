package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/sprout/internal/services"
)

func (handler *Handler) GetChildren(c *fiber.Ctx) error {
	children, err := handler.children.SearchChildren(c.Query("q"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(children)
}

func (handler *Handler) GetRecentChildren(c *fiber.Ctx) error {
	children, err := handler.children.RecentChildren(parseIntQuery(c, "limit", 5))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(children)
}

func (handler *Handler) GetChild(c *fiber.Ctx) error {
	child, err := handler.children.GetChild(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(child)
}

func (handler *Handler) CreateChild(c *fiber.Ctx) error {
	input := services.ChildInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	child, err := handler.children.CreateChild(input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(child)
}

func (handler *Handler) UpdateChild(c *fiber.Ctx) error {
	input := services.ChildInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	child, err := handler.children.UpdateChild(c.Params("id"), input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(child)
}

func (handler *Handler) DeleteChild(c *fiber.Ctx) error {
	if err := handler.children.DeleteChild(c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) GetCurrentChild(c *fiber.Ctx) error {
	child, found, err := handler.children.CurrentChild()
	if err != nil {
		return serviceError(c, err)
	}
	if !found {
		return c.JSON(fiber.Map{"child": nil})
	}
	return c.JSON(fiber.Map{"child": child})
}

func (handler *Handler) SelectCurrentChild(c *fiber.Ctx) error {
	if err := handler.children.SelectChild(c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) GetChildAge(c *fiber.Ctx) error {
	age, err := handler.children.ChildAge(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(age)
}
