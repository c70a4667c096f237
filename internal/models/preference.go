package models

import "time"

// Preference keys. Preferences live in a flat key-value table outside the
// exported document collections.
const (
	PrefCurrentChildID    = "current_child_id"
	PrefTheme             = "theme"
	PrefLanguage          = "language"
	PrefDataRetentionDays = "data_retention_days"
)

type Preference struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}
