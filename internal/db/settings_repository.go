package db

import (
	"github.com/terraincognita07/sprout/internal/models"
	"gorm.io/gorm"
)

type SettingsRepository struct {
	database *gorm.DB
}

func NewSettingsRepository(database *gorm.DB) *SettingsRepository {
	return &SettingsRepository{database: database}
}

// Load returns the singleton settings row, creating it with defaults on
// first access.
func (repo *SettingsRepository) Load() (models.Settings, error) {
	settings := models.Settings{}
	result := repo.database.Where("id = ?", models.SettingsRowID).Limit(1).Find(&settings)
	if result.Error != nil {
		return models.Settings{}, result.Error
	}
	if result.RowsAffected == 0 {
		settings = models.DefaultSettings()
		if err := repo.database.Create(&settings).Error; err != nil {
			return models.Settings{}, err
		}
	}
	return settings, nil
}

func (repo *SettingsRepository) Update(updates map[string]any) error {
	return repo.database.Model(&models.Settings{}).
		Where("id = ?", models.SettingsRowID).
		Updates(updates).Error
}

func (repo *SettingsRepository) Save(settings *models.Settings) error {
	settings.ID = models.SettingsRowID
	return repo.database.Save(settings).Error
}
