package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/sprout/internal/services"
)

type Handler struct {
	auth         *services.AuthService
	children     *services.ChildService
	activities   *services.ActivityService
	health       *services.HealthService
	milestones   *services.MilestoneService
	settings     *services.SettingsService
	backup       *services.BackupService
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
}

type HandlerConfig struct {
	Auth         *services.AuthService
	Children     *services.ChildService
	Activities   *services.ActivityService
	Health       *services.HealthService
	Milestones   *services.MilestoneService
	Settings     *services.SettingsService
	Backup       *services.BackupService
	SecretKey    []byte
	Location     *time.Location
	CookieSecure bool
}

func NewHandler(config HandlerConfig) *Handler {
	location := config.Location
	if location == nil {
		location = time.Local
	}
	return &Handler{
		auth:         config.Auth,
		children:     config.Children,
		activities:   config.Activities,
		health:       config.Health,
		milestones:   config.Milestones,
		settings:     config.Settings,
		backup:       config.Backup,
		secretKey:    config.SecretKey,
		location:     location,
		cookieSecure: config.CookieSecure,
	}
}

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}
