package db

import (
	"github.com/terraincognita07/sprout/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Snapshot is the portable backup payload. User accounts are deliberately
// excluded; a restored database keeps the local credentials.
type Snapshot struct {
	Children        []models.Child        `json:"children"`
	DailyActivities []models.Activity     `json:"dailyActivities"`
	HealthRecords   []models.HealthRecord `json:"healthRecords"`
	Milestones      []models.Milestone    `json:"milestones"`
	Settings        models.Settings       `json:"settings"`
}

type BackupStore struct {
	database *gorm.DB
}

func NewBackupStore(database *gorm.DB) *BackupStore {
	return &BackupStore{database: database}
}

func (store *BackupStore) ExportAll() (Snapshot, error) {
	snapshot := Snapshot{
		Children:        make([]models.Child, 0),
		DailyActivities: make([]models.Activity, 0),
		HealthRecords:   make([]models.HealthRecord, 0),
		Milestones:      make([]models.Milestone, 0),
	}

	if err := store.database.Order("created_at ASC, id ASC").Find(&snapshot.Children).Error; err != nil {
		return Snapshot{}, err
	}
	if err := store.database.Order("timestamp ASC, id ASC").Find(&snapshot.DailyActivities).Error; err != nil {
		return Snapshot{}, err
	}
	if err := store.database.Order("timestamp ASC, id ASC").Find(&snapshot.HealthRecords).Error; err != nil {
		return Snapshot{}, err
	}
	if err := store.database.Order("age_month_recommended ASC, name ASC").Find(&snapshot.Milestones).Error; err != nil {
		return Snapshot{}, err
	}

	settings := models.Settings{}
	result := store.database.Where("id = ?", models.SettingsRowID).Limit(1).Find(&settings)
	if result.Error != nil {
		return Snapshot{}, result.Error
	}
	if result.RowsAffected == 0 {
		settings = models.DefaultSettings()
	}
	snapshot.Settings = settings

	return snapshot, nil
}

// ImportAll restores a snapshot inside a single transaction. With replace
// set, existing rows are cleared first; otherwise incoming rows overwrite
// any rows sharing their ID and the rest are added.
func (store *BackupStore) ImportAll(snapshot Snapshot, replace bool) error {
	return store.database.Transaction(func(tx *gorm.DB) error {
		if replace {
			if err := tx.Where("1 = 1").Delete(&models.Milestone{}).Error; err != nil {
				return err
			}
			if err := tx.Where("1 = 1").Delete(&models.HealthRecord{}).Error; err != nil {
				return err
			}
			if err := tx.Where("1 = 1").Delete(&models.Activity{}).Error; err != nil {
				return err
			}
			if err := tx.Where("1 = 1").Delete(&models.Child{}).Error; err != nil {
				return err
			}
		}

		for i := range snapshot.Children {
			if err := upsertRow(tx, &snapshot.Children[i]); err != nil {
				return err
			}
		}
		for i := range snapshot.DailyActivities {
			if err := upsertRow(tx, &snapshot.DailyActivities[i]); err != nil {
				return err
			}
		}
		for i := range snapshot.HealthRecords {
			if err := upsertRow(tx, &snapshot.HealthRecords[i]); err != nil {
				return err
			}
		}
		for i := range snapshot.Milestones {
			if err := upsertRow(tx, &snapshot.Milestones[i]); err != nil {
				return err
			}
		}

		settings := snapshot.Settings
		settings.ID = models.SettingsRowID
		return tx.Save(&settings).Error
	})
}

func upsertRow(tx *gorm.DB, row any) error {
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error
}
