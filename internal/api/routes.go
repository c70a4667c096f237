package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Get("/setup-status", handler.SetupStatus)
	auth.Post("/setup", handler.Setup)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	children := api.Group("/children", handler.AuthRequired)
	children.Get("", handler.GetChildren)
	children.Post("", handler.CreateChild)
	children.Get("/recent", handler.GetRecentChildren)
	children.Get("/current", handler.GetCurrentChild)
	children.Put("/current/:id", handler.SelectCurrentChild)
	children.Get("/:id", handler.GetChild)
	children.Get("/:id/age", handler.GetChildAge)
	children.Put("/:id", handler.UpdateChild)
	children.Delete("/:id", handler.DeleteChild)

	activities := api.Group("/activities", handler.AuthRequired)
	activities.Get("", handler.GetActivities)
	activities.Get("/recent", handler.GetRecentActivities)
	activities.Get("/stats", handler.GetActivityStats)
	activities.Post("", handler.CreateActivity)
	activities.Get("/:id", handler.GetActivity)
	activities.Put("/:id", handler.UpdateActivity)
	activities.Put("/:id/end", handler.EndSleepActivity)
	activities.Delete("/:id", handler.DeleteActivity)

	health := api.Group("/health", handler.AuthRequired)
	health.Get("", handler.GetHealthRecords)
	health.Get("/growth-curve", handler.GetGrowthCurve)
	health.Get("/growth-latest", handler.GetLatestGrowth)
	health.Post("/growth-percentiles", handler.EvaluateGrowthPercentiles)
	health.Get("/vaccine-schedule", handler.GetVaccineSchedule)
	health.Post("", handler.CreateHealthRecord)
	health.Get("/:id", handler.GetHealthRecord)
	health.Put("/:id", handler.UpdateHealthRecord)
	health.Delete("/:id", handler.DeleteHealthRecord)

	milestones := api.Group("/milestones", handler.AuthRequired)
	milestones.Get("/timeline", handler.GetMilestoneTimeline)
	milestones.Get("/achieved", handler.GetAchievedMilestones)
	milestones.Get("/upcoming", handler.GetUpcomingMilestones)
	milestones.Get("/delayed", handler.GetDelayedMilestones)
	milestones.Post("/achieve", handler.MarkMilestoneAchieved)
	milestones.Post("/:id/unachieve", handler.MarkMilestoneNotAchieved)
	milestones.Post("", handler.CreateCustomMilestone)
	milestones.Put("/:id", handler.UpdateMilestone)
	milestones.Delete("/:id", handler.DeleteMilestone)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Get("", handler.GetSettings)
	settings.Put("", handler.UpdateSettings)
	settings.Post("/retention-sweep", handler.RunRetentionSweep)

	backup := api.Group("/backup", handler.AuthRequired)
	backup.Get("/export", handler.ExportBackup)
	backup.Post("/import", handler.ImportBackup)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
