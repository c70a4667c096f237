package services

import (
	"fmt"
	"log"
	"time"

	"github.com/terraincognita07/sprout/internal/models"
)

var (
	ErrThemeInvalid     = fmt.Errorf("%w: unknown theme", ErrValidation)
	ErrRetentionInvalid = fmt.Errorf("%w: retention days must not be negative", ErrValidation)
)

type SettingsInput struct {
	Theme             *string `json:"theme"`
	Language          *string `json:"language"`
	DataRetentionDays *int    `json:"dataRetentionDays"`
	BackupFrequency   *string `json:"backupFrequency"`
}

type SettingsRepository interface {
	Load() (models.Settings, error)
	Update(updates map[string]any) error
}

type RetentionActivityRepository interface {
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type RetentionHealthRepository interface {
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type SettingsService struct {
	settings   SettingsRepository
	activities RetentionActivityRepository
	health     RetentionHealthRepository
}

func NewSettingsService(settings SettingsRepository, activities RetentionActivityRepository, health RetentionHealthRepository) *SettingsService {
	return &SettingsService{settings: settings, activities: activities, health: health}
}

func (service *SettingsService) Load() (models.Settings, error) {
	settings, err := service.settings.Load()
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: load settings: %v", ErrStorage, err)
	}
	return settings, nil
}

func (service *SettingsService) Update(input SettingsInput) (models.Settings, error) {
	if _, err := service.Load(); err != nil {
		return models.Settings{}, err
	}

	updates := map[string]any{}
	if input.Theme != nil {
		if !models.ValidTheme(*input.Theme) {
			return models.Settings{}, ErrThemeInvalid
		}
		updates["theme"] = *input.Theme
	}
	if input.Language != nil && *input.Language != "" {
		updates["language"] = *input.Language
	}
	if input.DataRetentionDays != nil {
		if *input.DataRetentionDays < 0 {
			return models.Settings{}, ErrRetentionInvalid
		}
		updates["data_retention_days"] = *input.DataRetentionDays
	}
	if input.BackupFrequency != nil {
		updates["backup_frequency"] = *input.BackupFrequency
	}

	if len(updates) > 0 {
		if err := service.settings.Update(updates); err != nil {
			return models.Settings{}, fmt.Errorf("%w: update settings: %v", ErrStorage, err)
		}
	}

	// A tighter retention window takes effect immediately.
	if input.DataRetentionDays != nil && *input.DataRetentionDays > 0 {
		if _, err := service.RunRetentionSweep(time.Now()); err != nil {
			log.Printf("retention sweep after settings change failed: %v", err)
		}
	}
	return service.Load()
}

// RunRetentionSweep deletes activities and health records older than the
// configured retention window. Zero retention means keep everything.
func (service *SettingsService) RunRetentionSweep(now time.Time) (int64, error) {
	settings, err := service.Load()
	if err != nil {
		return 0, err
	}
	if settings.DataRetentionDays <= 0 {
		return 0, nil
	}

	cutoff := now.AddDate(0, 0, -settings.DataRetentionDays)
	removedActivities, err := service.activities.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w: retention sweep activities: %v", ErrStorage, err)
	}
	removedRecords, err := service.health.DeleteOlderThan(cutoff)
	if err != nil {
		return removedActivities, fmt.Errorf("%w: retention sweep health records: %v", ErrStorage, err)
	}

	removed := removedActivities + removedRecords
	if removed > 0 {
		log.Printf("retention sweep removed %d rows older than %s", removed, cutoff.Format("2006-01-02"))
	}
	return removed, nil
}
