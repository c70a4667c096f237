package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/sprout/internal/db"
	"github.com/terraincognita07/sprout/internal/models"
)

var (
	ErrBackupVersionMissing    = fmt.Errorf("%w: backup appVersion is missing", ErrImportIntegrity)
	ErrBackupDataMissing       = fmt.Errorf("%w: backup data section is missing", ErrImportIntegrity)
	ErrBackupCollectionMissing = fmt.Errorf("%w: backup data is missing a collection", ErrImportIntegrity)
	ErrBackupOrphanedRows      = fmt.Errorf("%w: backup references unknown children", ErrImportIntegrity)
	ErrBackupInvalidActivity   = fmt.Errorf("%w: backup contains an invalid activity", ErrImportIntegrity)
	ErrBackupInvalidRecord     = fmt.Errorf("%w: backup contains an invalid health record", ErrImportIntegrity)
)

// BackupEnvelope is the on-disk backup format.
type BackupEnvelope struct {
	AppVersion string       `json:"appVersion"`
	Timestamp  time.Time    `json:"timestamp"`
	Data       *db.Snapshot `json:"data"`
}

type BackupStore interface {
	ExportAll() (db.Snapshot, error)
	ImportAll(snapshot db.Snapshot, replace bool) error
}

type BackupSettingsRepository interface {
	Update(updates map[string]any) error
}

type BackupChildLookup interface {
	ListAll() ([]models.Child, error)
}

type BackupService struct {
	store      BackupStore
	settings   BackupSettingsRepository
	children   BackupChildLookup
	appVersion string
}

func NewBackupService(store BackupStore, settings BackupSettingsRepository, children BackupChildLookup, appVersion string) *BackupService {
	return &BackupService{
		store:      store,
		settings:   settings,
		children:   children,
		appVersion: appVersion,
	}
}

// Export collects everything into an envelope and stamps the settings row
// with the backup time.
func (service *BackupService) Export(now time.Time) (BackupEnvelope, error) {
	snapshot, err := service.store.ExportAll()
	if err != nil {
		return BackupEnvelope{}, fmt.Errorf("%w: export: %v", ErrStorage, err)
	}
	if err := service.settings.Update(map[string]any{"last_backup_date": now}); err != nil {
		return BackupEnvelope{}, fmt.Errorf("%w: stamp backup date: %v", ErrStorage, err)
	}
	return BackupEnvelope{
		AppVersion: service.appVersion,
		Timestamp:  now,
		Data:       &snapshot,
	}, nil
}

// ParseEnvelope decodes a backup file. A known field holding the wrong JSON
// type is a schema error; anything else unreadable is a validation error.
func (service *BackupService) ParseEnvelope(raw []byte) (BackupEnvelope, error) {
	envelope := BackupEnvelope{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		var typeError *json.UnmarshalTypeError
		if errors.As(err, &typeError) {
			return BackupEnvelope{}, fmt.Errorf("%w: backup field %q holds a %s", ErrSchema, typeError.Field, typeError.Value)
		}
		return BackupEnvelope{}, fmt.Errorf("%w: unreadable backup file: %v", ErrValidation, err)
	}
	return envelope, nil
}

// Import validates the envelope fully before touching the database, then
// restores it in one transaction. With replace set the current data is
// dropped first; otherwise rows with known IDs are kept as they are.
func (service *BackupService) Import(envelope BackupEnvelope, replace bool) error {
	snapshot, err := service.validate(envelope, replace)
	if err != nil {
		return err
	}
	if err := service.store.ImportAll(snapshot, replace); err != nil {
		return fmt.Errorf("%w: import: %v", ErrStorage, err)
	}
	return nil
}

func (service *BackupService) validate(envelope BackupEnvelope, replace bool) (db.Snapshot, error) {
	if envelope.AppVersion == "" {
		return db.Snapshot{}, ErrBackupVersionMissing
	}
	if envelope.Data == nil {
		return db.Snapshot{}, ErrBackupDataMissing
	}
	snapshot := *envelope.Data

	// Every collection must be present in the file, if only as an empty
	// array. An absent collection is indistinguishable from a truncated
	// backup, and in replace mode it would silently wipe the store.
	missing := make([]string, 0, 5)
	if snapshot.Children == nil {
		missing = append(missing, "children")
	}
	if snapshot.DailyActivities == nil {
		missing = append(missing, "dailyActivities")
	}
	if snapshot.HealthRecords == nil {
		missing = append(missing, "healthRecords")
	}
	if snapshot.Milestones == nil {
		missing = append(missing, "milestones")
	}
	if snapshot.Settings.ID == "" {
		missing = append(missing, "settings")
	}
	if len(missing) > 0 {
		return db.Snapshot{}, fmt.Errorf("%w: %s", ErrBackupCollectionMissing, strings.Join(missing, ", "))
	}

	knownChildren := map[string]bool{}
	for _, child := range snapshot.Children {
		if child.ID == "" || child.Name == "" {
			return db.Snapshot{}, fmt.Errorf("%w: child row missing id or name", ErrImportIntegrity)
		}
		knownChildren[child.ID] = true
	}
	if !replace {
		existing, err := service.children.ListAll()
		if err != nil {
			return db.Snapshot{}, fmt.Errorf("%w: list children: %v", ErrStorage, err)
		}
		for _, child := range existing {
			knownChildren[child.ID] = true
		}
	}

	for _, activity := range snapshot.DailyActivities {
		if activity.ID == "" || !models.ValidActivityType(activity.Type) {
			return db.Snapshot{}, ErrBackupInvalidActivity
		}
		if !knownChildren[activity.ChildID] {
			return db.Snapshot{}, ErrBackupOrphanedRows
		}
	}
	for _, record := range snapshot.HealthRecords {
		if record.ID == "" || !models.ValidHealthType(record.Type) {
			return db.Snapshot{}, ErrBackupInvalidRecord
		}
		if !knownChildren[record.ChildID] {
			return db.Snapshot{}, ErrBackupOrphanedRows
		}
	}
	for _, milestone := range snapshot.Milestones {
		if milestone.ID == "" || milestone.Name == "" {
			return db.Snapshot{}, fmt.Errorf("%w: milestone row missing id or name", ErrImportIntegrity)
		}
		if !knownChildren[milestone.ChildID] {
			return db.Snapshot{}, ErrBackupOrphanedRows
		}
	}

	return snapshot, nil
}
