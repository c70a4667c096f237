package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/sprout/internal/services"
)

func (handler *Handler) GetActivities(c *fiber.Ctx) error {
	childID := c.Query("childId")

	if c.Query("page") != "" {
		page := parseIntQuery(c, "page", 1)
		pageSize := parseIntQuery(c, "pageSize", 20)
		activities, pagination, err := handler.activities.ListPage(childID, page, pageSize)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"items": activities, "pagination": pagination})
	}

	if c.Query("date") != "" {
		day, err := handler.parseDateQuery(c, "date", time.Now().In(handler.location))
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid date")
		}
		activities, err := handler.activities.ListByDate(childID, day, handler.location)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(activities)
	}

	if c.Query("from") != "" || c.Query("to") != "" {
		now := time.Now().In(handler.location)
		from, err := handler.parseDateQuery(c, "from", now.AddDate(0, 0, -7))
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid from date")
		}
		to, err := handler.parseDateQuery(c, "to", now)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid to date")
		}
		// Extend "to" to the end of its day so the range is inclusive.
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		activities, err := handler.activities.ListByChildRange(childID, from, to)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(activities)
	}

	activities, err := handler.activities.ListByChild(childID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(activities)
}

func (handler *Handler) GetRecentActivities(c *fiber.Ctx) error {
	limit := parseIntQuery(c, "limit", 10)
	activities, err := handler.activities.ListRecent(c.Query("childId"), limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(activities)
}

func (handler *Handler) GetActivity(c *fiber.Ctx) error {
	activity, err := handler.activities.GetActivity(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(activity)
}

func (handler *Handler) CreateActivity(c *fiber.Ctx) error {
	input := services.ActivityInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	activity, err := handler.activities.CreateActivity(input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(activity)
}

func (handler *Handler) UpdateActivity(c *fiber.Ctx) error {
	input := services.ActivityInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	activity, err := handler.activities.UpdateActivity(c.Params("id"), input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(activity)
}

type endSleepPayload struct {
	EndTime *time.Time `json:"endTime"`
}

func (handler *Handler) EndSleepActivity(c *fiber.Ctx) error {
	payload := endSleepPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	end := time.Now()
	if payload.EndTime != nil {
		end = *payload.EndTime
	}
	activity, err := handler.activities.EndSleep(c.Params("id"), end)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(activity)
}

func (handler *Handler) DeleteActivity(c *fiber.Ctx) error {
	if err := handler.activities.DeleteActivity(c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) GetActivityStats(c *fiber.Ctx) error {
	now := time.Now().In(handler.location)
	from, err := handler.parseDateQuery(c, "from", now.AddDate(0, 0, -6))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid from date")
	}
	to, err := handler.parseDateQuery(c, "to", now)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid to date")
	}

	stats, err := handler.activities.Stats(c.Query("childId"), from, to, handler.location)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(stats)
}
