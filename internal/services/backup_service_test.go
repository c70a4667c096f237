package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/sprout/internal/db"
	"github.com/terraincognita07/sprout/internal/models"
)

type stubBackupStore struct {
	snapshot db.Snapshot
	imports  int
}

func (stub *stubBackupStore) ExportAll() (db.Snapshot, error) {
	return stub.snapshot, nil
}

func (stub *stubBackupStore) ImportAll(snapshot db.Snapshot, replace bool) error {
	stub.imports++
	stub.snapshot = snapshot
	return nil
}

type stubBackupSettings struct {
	updates []map[string]any
}

func (stub *stubBackupSettings) Update(updates map[string]any) error {
	stub.updates = append(stub.updates, updates)
	return nil
}

type stubBackupChildren struct {
	children []models.Child
}

func (stub *stubBackupChildren) ListAll() ([]models.Child, error) {
	return stub.children, nil
}

func newBackupFixture(existing []models.Child) (*BackupService, *stubBackupStore, *stubBackupSettings) {
	store := &stubBackupStore{}
	settings := &stubBackupSettings{}
	service := NewBackupService(store, settings, &stubBackupChildren{children: existing}, "1.0.0")
	return service, store, settings
}

func validSnapshot() db.Snapshot {
	return db.Snapshot{
		Children: []models.Child{
			{ID: "child-1", Name: "Aiko", BirthDate: date(2023, time.January, 1)},
		},
		DailyActivities: []models.Activity{
			{ID: "act-1", ChildID: "child-1", Type: models.ActivityFeed, Timestamp: date(2023, time.February, 1)},
		},
		HealthRecords: []models.HealthRecord{
			{ID: "rec-1", ChildID: "child-1", Type: models.HealthGrowth, Timestamp: date(2023, time.February, 1)},
		},
		Milestones: []models.Milestone{
			{ID: "mil-1", ChildID: "child-1", Name: "sits", Category: models.CategoryMotor},
		},
		Settings: models.DefaultSettings(),
	}
}

func TestExportStampsBackupDate(t *testing.T) {
	t.Parallel()

	service, store, settings := newBackupFixture(nil)
	store.snapshot = validSnapshot()
	now := date(2024, time.March, 1)

	envelope, err := service.Export(now)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if envelope.AppVersion != "1.0.0" || !envelope.Timestamp.Equal(now) {
		t.Fatalf("envelope header wrong: %+v", envelope)
	}
	if envelope.Data == nil || len(envelope.Data.Children) != 1 {
		t.Fatalf("envelope data wrong: %+v", envelope.Data)
	}
	if len(settings.updates) != 1 {
		t.Fatalf("settings updates = %d, want 1", len(settings.updates))
	}
	if _, ok := settings.updates[0]["last_backup_date"]; !ok {
		t.Fatalf("last_backup_date not stamped: %v", settings.updates[0])
	}
}

func TestImportValidatesBeforeMutation(t *testing.T) {
	t.Parallel()

	snapshotWithOrphan := validSnapshot()
	snapshotWithOrphan.DailyActivities[0].ChildID = "ghost"

	snapshotWithBadType := validSnapshot()
	snapshotWithBadType.HealthRecords[0].Type = "dental"

	// A truncated file: three collections absent entirely, not just empty.
	truncatedSnapshot := db.Snapshot{
		Children: []models.Child{
			{ID: "child-1", Name: "Aiko", BirthDate: date(2023, time.January, 1)},
		},
		Settings: models.DefaultSettings(),
	}

	tests := []struct {
		name     string
		envelope BackupEnvelope
		wantErr  error
	}{
		{
			name:     "missing version",
			envelope: BackupEnvelope{Data: &db.Snapshot{}},
			wantErr:  ErrBackupVersionMissing,
		},
		{
			name:     "missing data",
			envelope: BackupEnvelope{AppVersion: "1.0.0"},
			wantErr:  ErrBackupDataMissing,
		},
		{
			name:     "absent collections",
			envelope: BackupEnvelope{AppVersion: "1.0.0", Data: &truncatedSnapshot},
			wantErr:  ErrBackupCollectionMissing,
		},
		{
			name:     "orphaned activity",
			envelope: BackupEnvelope{AppVersion: "1.0.0", Data: &snapshotWithOrphan},
			wantErr:  ErrBackupOrphanedRows,
		},
		{
			name:     "invalid record type",
			envelope: BackupEnvelope{AppVersion: "1.0.0", Data: &snapshotWithBadType},
			wantErr:  ErrBackupInvalidRecord,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			service, store, _ := newBackupFixture(nil)
			err := service.Import(test.envelope, true)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("Import error = %v, want %v", err, test.wantErr)
			}
			if store.imports != 0 {
				t.Fatal("store touched despite failed validation")
			}
		})
	}
}

func TestImportAcceptsValidEnvelope(t *testing.T) {
	t.Parallel()

	service, store, _ := newBackupFixture(nil)
	snapshot := validSnapshot()

	if err := service.Import(BackupEnvelope{AppVersion: "1.0.0", Data: &snapshot}, true); err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if store.imports != 1 {
		t.Fatalf("imports = %d, want 1", store.imports)
	}
}

func TestImportMergeModeAcceptsExistingChildReferences(t *testing.T) {
	t.Parallel()

	existing := []models.Child{{ID: "resident", Name: "Ren"}}
	service, store, _ := newBackupFixture(existing)

	snapshot := db.Snapshot{
		Children: []models.Child{},
		DailyActivities: []models.Activity{
			{ID: "act-1", ChildID: "resident", Type: models.ActivityFeed, Timestamp: date(2023, time.February, 1)},
		},
		HealthRecords: []models.HealthRecord{},
		Milestones:    []models.Milestone{},
		Settings:      models.DefaultSettings(),
	}
	if err := service.Import(BackupEnvelope{AppVersion: "1.0.0", Data: &snapshot}, false); err != nil {
		t.Fatalf("merge import returned error: %v", err)
	}
	if store.imports != 1 {
		t.Fatalf("imports = %d, want 1", store.imports)
	}

	// The same envelope in replace mode loses the resident child and must fail.
	service2, store2, _ := newBackupFixture(existing)
	if err := service2.Import(BackupEnvelope{AppVersion: "1.0.0", Data: &snapshot}, true); !errors.Is(err, ErrBackupOrphanedRows) {
		t.Fatalf("replace import error = %v, want %v", err, ErrBackupOrphanedRows)
	}
	if store2.imports != 0 {
		t.Fatal("store touched despite failed validation")
	}
}

func TestParseEnvelopeErrorCategories(t *testing.T) {
	t.Parallel()

	service, _, _ := newBackupFixture(nil)

	valid := []byte(`{"appVersion":"1.0.0","timestamp":"2024-03-01T00:00:00Z","data":{"children":[]}}`)
	if _, err := service.ParseEnvelope(valid); err != nil {
		t.Fatalf("valid envelope rejected: %v", err)
	}

	// A known field holding the wrong JSON type is a schema mismatch.
	badType := []byte(`{"appVersion":"1.0.0","data":{"children":"nope"}}`)
	if _, err := service.ParseEnvelope(badType); !errors.Is(err, ErrSchema) {
		t.Fatalf("wrong-typed field error = %v, want %v", err, ErrSchema)
	}

	if _, err := service.ParseEnvelope([]byte("{not json")); !errors.Is(err, ErrValidation) {
		t.Fatalf("malformed json error = %v, want %v", err, ErrValidation)
	}
}
