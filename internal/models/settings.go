package models

import "time"

// SettingsRowID is the fixed primary key of the single settings row.
const SettingsRowID = "settings"

const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

func ValidTheme(theme string) bool {
	switch theme {
	case ThemeSystem, ThemeLight, ThemeDark:
		return true
	}
	return false
}

type Settings struct {
	ID                string     `gorm:"primaryKey" json:"id"`
	Theme             string     `gorm:"not null;default:system" json:"theme"`
	Language          string     `gorm:"not null;default:zh-TW" json:"language"`
	DataRetentionDays int        `gorm:"not null;default:0" json:"dataRetentionDays"`
	BackupFrequency   string     `gorm:"not null;default:''" json:"backupFrequency"`
	LastBackupDate    *time.Time `json:"lastBackupDate,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// DefaultSettings returns the settings row used until the user saves one.
// DataRetentionDays 0 means records are kept forever.
func DefaultSettings() Settings {
	return Settings{
		ID:       SettingsRowID,
		Theme:    ThemeSystem,
		Language: "zh-TW",
	}
}
