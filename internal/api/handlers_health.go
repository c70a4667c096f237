package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/sprout/internal/models"
	"github.com/terraincognita07/sprout/internal/reference"
	"github.com/terraincognita07/sprout/internal/services"
)

func (handler *Handler) GetHealthRecords(c *fiber.Ctx) error {
	childID := c.Query("childId")

	if c.Query("page") != "" {
		page := parseIntQuery(c, "page", 1)
		pageSize := parseIntQuery(c, "pageSize", 20)
		records, pagination, err := handler.health.ListPage(childID, page, pageSize)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"items": records, "pagination": pagination})
	}

	if recordType := c.Query("type"); recordType != "" {
		records, err := handler.health.ListByChildAndType(childID, recordType)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(records)
	}

	records, err := handler.health.ListByChild(childID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(records)
}

func (handler *Handler) GetHealthRecord(c *fiber.Ctx) error {
	record, err := handler.health.GetRecord(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(record)
}

func (handler *Handler) CreateHealthRecord(c *fiber.Ctx) error {
	input := services.HealthRecordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	record, err := handler.health.CreateRecord(input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (handler *Handler) UpdateHealthRecord(c *fiber.Ctx) error {
	input := services.HealthRecordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	record, err := handler.health.UpdateRecord(c.Params("id"), input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(record)
}

func (handler *Handler) DeleteHealthRecord(c *fiber.Ctx) error {
	if err := handler.health.DeleteRecord(c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) GetGrowthCurve(c *fiber.Ctx) error {
	measurement := c.Query("measurement", reference.MeasurementWeight)
	switch measurement {
	case reference.MeasurementWeight, reference.MeasurementHeight, reference.MeasurementHeadCircumference:
	default:
		return apiError(c, fiber.StatusBadRequest, "unknown measurement")
	}

	points, err := handler.health.GrowthCurve(c.Query("childId"), measurement)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(points)
}

type growthPercentilesPayload struct {
	ChildID string `json:"childId"`
	models.GrowthDetails
}

// EvaluateGrowthPercentiles scores a measurement set at the child's current
// age without saving a record.
func (handler *Handler) EvaluateGrowthPercentiles(c *fiber.Ctx) error {
	payload := growthPercentilesPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	result, err := handler.health.EvaluateGrowth(payload.ChildID, payload.GrowthDetails, time.Now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(result)
}

func (handler *Handler) GetLatestGrowth(c *fiber.Ctx) error {
	record, found, err := handler.health.LatestGrowth(c.Query("childId"))
	if err != nil {
		return serviceError(c, err)
	}
	if !found {
		return c.JSON(fiber.Map{"record": nil})
	}
	return c.JSON(fiber.Map{"record": record})
}

func (handler *Handler) GetVaccineSchedule(c *fiber.Ctx) error {
	statuses, err := handler.health.VaccineSchedule(c.Query("childId"), time.Now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(statuses)
}
