package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/sprout/internal/api"
	"github.com/terraincognita07/sprout/internal/db"
	"github.com/terraincognita07/sprout/internal/security"
	"github.com/terraincognita07/sprout/internal/services"
)

const appVersion = "1.0.0"

const secretKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func main() {
	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	secretKey := getEnv("SECRET_KEY", "")
	if secretKey == "" {
		generated, err := security.RandomString(48, secretKeyAlphabet)
		if err != nil {
			log.Fatalf("secret key generation failed: %v", err)
		}
		secretKey = generated
		log.Print("SECRET_KEY not set, generated an ephemeral key; sessions reset on restart")
	}
	dbPath := getEnv("DB_PATH", filepath.Join("data", "sprout.db"))
	port := getEnv("PORT", "8080")
	cookieSecure := getEnv("COOKIE_SECURE", "") == "true"

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	repositories := db.NewRepositories(database)

	authService := services.NewAuthService(repositories.Users)
	childService := services.NewChildService(
		repositories.Children,
		repositories.Activities,
		repositories.HealthRecords,
		repositories.Milestones,
		repositories.Preferences,
	)
	activityService := services.NewActivityService(repositories.Activities, repositories.Children)
	healthService := services.NewHealthService(repositories.HealthRecords, repositories.Children)
	milestoneService := services.NewMilestoneService(repositories.Milestones, repositories.Children)
	settingsService := services.NewSettingsService(repositories.Settings, repositories.Activities, repositories.HealthRecords)
	backupService := services.NewBackupService(repositories.Backup, repositories.Settings, repositories.Children, appVersion)

	if removed, err := settingsService.RunRetentionSweep(time.Now()); err != nil {
		log.Printf("startup retention sweep failed: %v", err)
	} else if removed > 0 {
		log.Printf("startup retention sweep removed %d rows", removed)
	}

	handler := api.NewHandler(api.HandlerConfig{
		Auth:         authService,
		Children:     childService,
		Activities:   activityService,
		Health:       healthService,
		Milestones:   milestoneService,
		Settings:     settingsService,
		Backup:       backupService,
		SecretKey:    []byte(secretKey),
		Location:     location,
		CookieSecure: cookieSecure,
	})

	app := fiber.New(fiber.Config{
		AppName:               "Sprout",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Sprout listening on http://0.0.0.0:%s (db: %s, tz: %s)", port, dbPath, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
