package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/sprout/internal/models"
)

type stubSettingsRepository struct {
	settings models.Settings
}

func newStubSettingsRepository() *stubSettingsRepository {
	return &stubSettingsRepository{settings: models.DefaultSettings()}
}

func (stub *stubSettingsRepository) Load() (models.Settings, error) {
	return stub.settings, nil
}

func (stub *stubSettingsRepository) Update(updates map[string]any) error {
	for column, value := range updates {
		switch column {
		case "theme":
			stub.settings.Theme = value.(string)
		case "language":
			stub.settings.Language = value.(string)
		case "data_retention_days":
			stub.settings.DataRetentionDays = value.(int)
		case "backup_frequency":
			stub.settings.BackupFrequency = value.(string)
		}
	}
	return nil
}

type stubRetentionRepository struct {
	cutoffs []time.Time
	removed int64
}

func (stub *stubRetentionRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	stub.cutoffs = append(stub.cutoffs, cutoff)
	return stub.removed, nil
}

func newSettingsFixture() (*SettingsService, *stubSettingsRepository, *stubRetentionRepository, *stubRetentionRepository) {
	settings := newStubSettingsRepository()
	activities := &stubRetentionRepository{removed: 3}
	health := &stubRetentionRepository{removed: 2}
	return NewSettingsService(settings, activities, health), settings, activities, health
}

func intPtr(value int) *int {
	return &value
}

func TestUpdateSettings(t *testing.T) {
	t.Parallel()

	service, _, _, _ := newSettingsFixture()

	updated, err := service.Update(SettingsInput{
		Theme:             strPtr(models.ThemeDark),
		DataRetentionDays: intPtr(365),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Theme != models.ThemeDark || updated.DataRetentionDays != 365 {
		t.Fatalf("settings not applied: %+v", updated)
	}
	// Untouched fields keep their defaults.
	if updated.Language != models.DefaultSettings().Language {
		t.Fatalf("language changed unexpectedly: %q", updated.Language)
	}

	if _, err := service.Update(SettingsInput{Theme: strPtr("neon")}); !errors.Is(err, ErrThemeInvalid) {
		t.Fatalf("bad theme error = %v, want %v", err, ErrThemeInvalid)
	}
	if _, err := service.Update(SettingsInput{DataRetentionDays: intPtr(-1)}); !errors.Is(err, ErrRetentionInvalid) {
		t.Fatalf("negative retention error = %v, want %v", err, ErrRetentionInvalid)
	}
}

func TestRetentionSweepDisabledByDefault(t *testing.T) {
	t.Parallel()

	service, _, activities, health := newSettingsFixture()

	removed, err := service.RunRetentionSweep(time.Now())
	if err != nil {
		t.Fatalf("RunRetentionSweep returned error: %v", err)
	}
	if removed != 0 {
		t.Fatalf("removed = %d, want 0", removed)
	}
	if len(activities.cutoffs) != 0 || len(health.cutoffs) != 0 {
		t.Fatal("sweep ran with retention disabled")
	}
}

func TestRetentionSweepUsesConfiguredWindow(t *testing.T) {
	t.Parallel()

	service, settings, activities, health := newSettingsFixture()
	settings.settings.DataRetentionDays = 30
	now := date(2024, time.March, 31)

	removed, err := service.RunRetentionSweep(now)
	if err != nil {
		t.Fatalf("RunRetentionSweep returned error: %v", err)
	}
	if removed != 5 {
		t.Fatalf("removed = %d, want 5", removed)
	}

	wantCutoff := date(2024, time.March, 1)
	if len(activities.cutoffs) != 1 || !activities.cutoffs[0].Equal(wantCutoff) {
		t.Fatalf("activity cutoff = %v, want %v", activities.cutoffs, wantCutoff)
	}
	if len(health.cutoffs) != 1 || !health.cutoffs[0].Equal(wantCutoff) {
		t.Fatalf("health cutoff = %v, want %v", health.cutoffs, wantCutoff)
	}
}
