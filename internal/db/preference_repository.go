package db

import (
	"time"

	"github.com/terraincognita07/sprout/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepository struct {
	database *gorm.DB
}

func NewPreferenceRepository(database *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{database: database}
}

func (repo *PreferenceRepository) Get(key string) (string, bool, error) {
	preference := models.Preference{}
	result := repo.database.Where("key = ?", key).Limit(1).Find(&preference)
	if result.Error != nil {
		return "", false, result.Error
	}
	if result.RowsAffected == 0 {
		return "", false, nil
	}
	return preference.Value, true, nil
}

func (repo *PreferenceRepository) Set(key string, value string) error {
	preference := models.Preference{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&preference).Error
}

func (repo *PreferenceRepository) Delete(key string) error {
	return repo.database.Where("key = ?", key).Delete(&models.Preference{}).Error
}
