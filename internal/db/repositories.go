package db

import "gorm.io/gorm"

type Repositories struct {
	Children      *ChildRepository
	Activities    *ActivityRepository
	HealthRecords *HealthRecordRepository
	Milestones    *MilestoneRepository
	Settings      *SettingsRepository
	Preferences   *PreferenceRepository
	Users         *UserRepository
	Backup        *BackupStore
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Children:      NewChildRepository(database),
		Activities:    NewActivityRepository(database),
		HealthRecords: NewHealthRecordRepository(database),
		Milestones:    NewMilestoneRepository(database),
		Settings:      NewSettingsRepository(database),
		Preferences:   NewPreferenceRepository(database),
		Users:         NewUserRepository(database),
		Backup:        NewBackupStore(database),
	}
}
