package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/sprout/internal/models"
	"github.com/terraincognita07/sprout/internal/services"
)

type markAchievedPayload struct {
	ChildID       string     `json:"childId"`
	ReferenceCode string     `json:"referenceCode"`
	Name          string     `json:"name"`
	AchievedDate  *time.Time `json:"achievedDate"`
	Note          string     `json:"note"`
}

func (handler *Handler) GetMilestoneTimeline(c *fiber.Ctx) error {
	entries, err := handler.milestones.Timeline(c.Query("childId"), time.Now())
	if err != nil {
		return serviceError(c, err)
	}
	if category := c.Query("category"); category != "" {
		filtered := make([]services.TimelineEntry, 0, len(entries))
		for _, entry := range entries {
			if entry.Category == category {
				filtered = append(filtered, entry)
			}
		}
		entries = filtered
	}
	return c.JSON(entries)
}

func (handler *Handler) GetAchievedMilestones(c *fiber.Ctx) error {
	entries, err := handler.milestones.Achieved(c.Query("childId"), time.Now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(entries)
}

func (handler *Handler) GetUpcomingMilestones(c *fiber.Ctx) error {
	entries, err := handler.milestones.Upcoming(c.Query("childId"), time.Now(), parseIntQuery(c, "months", 0))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(entries)
}

func (handler *Handler) GetDelayedMilestones(c *fiber.Ctx) error {
	entries, err := handler.milestones.Delayed(c.Query("childId"), time.Now(), parseIntQuery(c, "months", 0))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(entries)
}

func (handler *Handler) MarkMilestoneAchieved(c *fiber.Ctx) error {
	payload := markAchievedPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	achievedDate := time.Now()
	if payload.AchievedDate != nil {
		achievedDate = *payload.AchievedDate
	}
	var milestone models.Milestone
	var err error
	if payload.ReferenceCode != "" {
		milestone, err = handler.milestones.MarkAchieved(payload.ChildID, payload.ReferenceCode, achievedDate, payload.Note)
	} else {
		milestone, err = handler.milestones.MarkAchievedByName(payload.ChildID, payload.Name, achievedDate, payload.Note)
	}
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(milestone)
}

func (handler *Handler) MarkMilestoneNotAchieved(c *fiber.Ctx) error {
	milestone, err := handler.milestones.MarkNotAchieved(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(milestone)
}

type customMilestonePayload struct {
	ChildID string `json:"childId"`
	services.MilestoneInput
}

func (handler *Handler) CreateCustomMilestone(c *fiber.Ctx) error {
	payload := customMilestonePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	milestone, err := handler.milestones.CreateCustom(payload.ChildID, payload.MilestoneInput)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(milestone)
}

func (handler *Handler) UpdateMilestone(c *fiber.Ctx) error {
	input := services.MilestoneInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	milestone, err := handler.milestones.UpdateMilestone(c.Params("id"), input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(milestone)
}

func (handler *Handler) DeleteMilestone(c *fiber.Ctx) error {
	if err := handler.milestones.DeleteMilestone(c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
