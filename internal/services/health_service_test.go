package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/sprout/internal/db"
	"github.com/terraincognita07/sprout/internal/models"
	"github.com/terraincognita07/sprout/internal/reference"
)

type stubHealthRepository struct {
	records map[string]models.HealthRecord
}

func newStubHealthRepository() *stubHealthRepository {
	return &stubHealthRepository{records: map[string]models.HealthRecord{}}
}

func (stub *stubHealthRepository) ListByChild(childID string) ([]models.HealthRecord, error) {
	result := make([]models.HealthRecord, 0)
	for _, record := range stub.records {
		if record.ChildID == childID {
			result = append(result, record)
		}
	}
	return result, nil
}

func (stub *stubHealthRepository) ListByChildAndType(childID string, recordType string) ([]models.HealthRecord, error) {
	result := make([]models.HealthRecord, 0)
	for _, record := range stub.records {
		if record.ChildID == childID && record.Type == recordType {
			result = append(result, record)
		}
	}
	return result, nil
}

func (stub *stubHealthRepository) ListPage(childID string, page int, pageSize int, descending bool) ([]models.HealthRecord, db.Pagination, error) {
	records, _ := stub.ListByChild(childID)
	return records, db.Pagination{}, nil
}

func (stub *stubHealthRepository) FindByID(recordID string) (models.HealthRecord, bool, error) {
	record, ok := stub.records[recordID]
	return record, ok, nil
}

func (stub *stubHealthRepository) Create(record *models.HealthRecord) error {
	stub.records[record.ID] = *record
	return nil
}

func (stub *stubHealthRepository) UpdateByID(recordID string, updates map[string]any) error {
	record, ok := stub.records[recordID]
	if !ok {
		return errors.New("missing row")
	}
	for column, value := range updates {
		switch column {
		case "timestamp":
			record.Timestamp = value.(time.Time)
		case "growth":
			record.Growth = value.(*models.GrowthDetails)
		case "checkup":
			record.Checkup = value.(*models.CheckupDetails)
		case "vaccine":
			record.Vaccine = value.(*models.VaccineDetails)
		case "medication":
			record.Medication = value.(*models.MedicationDetails)
		case "note":
			record.Note = value.(string)
		}
	}
	stub.records[recordID] = record
	return nil
}

func (stub *stubHealthRepository) Delete(recordID string) error {
	delete(stub.records, recordID)
	return nil
}

func (stub *stubHealthRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	var removed int64
	for id, record := range stub.records {
		if record.Timestamp.Before(cutoff) {
			delete(stub.records, id)
			removed++
		}
	}
	return removed, nil
}

func newHealthFixture(gender string) (*HealthService, *stubHealthRepository) {
	repository := newStubHealthRepository()
	children := &stubChildLookup{children: map[string]models.Child{
		"child-1": {ID: "child-1", Name: "Aiko", Gender: gender, BirthDate: date(2023, time.January, 1)},
	}}
	return NewHealthService(repository, children), repository
}

func floatPtr(value float64) *float64 {
	return &value
}

func TestCreateHealthRecordValidation(t *testing.T) {
	t.Parallel()

	service, _ := newHealthFixture(models.GenderFemale)
	moment := date(2023, time.July, 1)

	tests := []struct {
		name    string
		input   HealthRecordInput
		wantErr error
	}{
		{
			name:    "missing child",
			input:   HealthRecordInput{Type: models.HealthGrowth, Timestamp: timePtr(moment)},
			wantErr: ErrHealthChildRequired,
		},
		{
			name:    "unknown type",
			input:   HealthRecordInput{ChildID: "child-1", Type: "dental", Timestamp: timePtr(moment)},
			wantErr: ErrHealthTypeInvalid,
		},
		{
			name:    "missing timestamp",
			input:   HealthRecordInput{ChildID: "child-1", Type: models.HealthGrowth},
			wantErr: ErrHealthTimeRequired,
		},
		{
			name: "growth without measurements",
			input: HealthRecordInput{
				ChildID: "child-1", Type: models.HealthGrowth, Timestamp: timePtr(moment),
				Growth: &models.GrowthDetails{},
			},
			wantErr: ErrGrowthEmpty,
		},
		{
			name: "vaccine without name",
			input: HealthRecordInput{
				ChildID: "child-1", Type: models.HealthVaccine, Timestamp: timePtr(moment),
				Vaccine: &models.VaccineDetails{},
			},
			wantErr: ErrVaccineNameRequired,
		},
		{
			name: "growth with vaccine details",
			input: HealthRecordInput{
				ChildID: "child-1", Type: models.HealthGrowth, Timestamp: timePtr(moment),
				Growth:  &models.GrowthDetails{Weight: floatPtr(7.5)},
				Vaccine: &models.VaccineDetails{Name: "x"},
			},
			wantErr: ErrHealthDetailMismatch,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := service.CreateRecord(test.input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("CreateRecord error = %v, want %v", err, test.wantErr)
			}
		})
	}
}

func TestGrowthCurveAnnotatesPercentiles(t *testing.T) {
	t.Parallel()

	service, _ := newHealthFixture(models.GenderMale)

	// Measurement at six months, exactly at the male six-month median.
	band, ok := reference.GrowthBandFor(models.GenderMale, 6, reference.MeasurementWeight)
	if !ok {
		t.Fatalf("no reference band")
	}
	if _, err := service.CreateRecord(HealthRecordInput{
		ChildID:   "child-1",
		Type:      models.HealthGrowth,
		Timestamp: timePtr(date(2023, time.July, 1)),
		Growth:    &models.GrowthDetails{Weight: floatPtr(band.Median)},
	}); err != nil {
		t.Fatalf("CreateRecord returned error: %v", err)
	}
	// A height-only record must not appear in the weight curve.
	if _, err := service.CreateRecord(HealthRecordInput{
		ChildID:   "child-1",
		Type:      models.HealthGrowth,
		Timestamp: timePtr(date(2023, time.August, 1)),
		Growth:    &models.GrowthDetails{Height: floatPtr(68)},
	}); err != nil {
		t.Fatalf("CreateRecord returned error: %v", err)
	}

	points, err := service.GrowthCurve("child-1", reference.MeasurementWeight)
	if err != nil {
		t.Fatalf("GrowthCurve returned error: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("points = %d, want 1", len(points))
	}
	point := points[0]
	if point.AgeMonths != 6 {
		t.Fatalf("age months = %d, want 6", point.AgeMonths)
	}
	if point.Percentile == nil || *point.Percentile != 50 {
		t.Fatalf("percentile = %v, want 50", point.Percentile)
	}
	if point.BandMedian == nil || *point.BandMedian != band.Median {
		t.Fatalf("band median = %v, want %v", point.BandMedian, band.Median)
	}
}

func TestGrowthCurveWithoutGenderSkipsBands(t *testing.T) {
	t.Parallel()

	service, _ := newHealthFixture("")
	if _, err := service.CreateRecord(HealthRecordInput{
		ChildID:   "child-1",
		Type:      models.HealthGrowth,
		Timestamp: timePtr(date(2023, time.July, 1)),
		Growth:    &models.GrowthDetails{Weight: floatPtr(7.9)},
	}); err != nil {
		t.Fatalf("CreateRecord returned error: %v", err)
	}

	points, err := service.GrowthCurve("child-1", reference.MeasurementWeight)
	if err != nil {
		t.Fatalf("GrowthCurve returned error: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("points = %d, want 1", len(points))
	}
	if points[0].Percentile != nil {
		t.Fatalf("percentile without gender = %v, want nil", *points[0].Percentile)
	}
}

func TestEvaluateGrowthScoresSuppliedMeasurements(t *testing.T) {
	t.Parallel()

	service, repository := newHealthFixture(models.GenderMale)
	asOf := date(2023, time.July, 1) // six months old

	weightBand, ok := reference.GrowthBandFor(models.GenderMale, 6, reference.MeasurementWeight)
	if !ok {
		t.Fatal("no reference band")
	}
	heightBand, ok := reference.GrowthBandFor(models.GenderMale, 6, reference.MeasurementHeight)
	if !ok {
		t.Fatal("no reference band")
	}

	result, err := service.EvaluateGrowth("child-1", models.GrowthDetails{
		Weight: floatPtr(weightBand.Median),
		Height: floatPtr(heightBand.Max),
	}, asOf)
	if err != nil {
		t.Fatalf("EvaluateGrowth returned error: %v", err)
	}
	if result.AgeMonths != 6 {
		t.Fatalf("age months = %d, want 6", result.AgeMonths)
	}
	if result.Weight == nil || result.Weight.Percentile == nil || *result.Weight.Percentile != 50 {
		t.Fatalf("weight percentile = %+v, want 50", result.Weight)
	}
	if result.Height == nil || result.Height.Percentile == nil || *result.Height.Percentile != 97 {
		t.Fatalf("height percentile = %+v, want 97", result.Height)
	}
	if result.HeadCircumference != nil {
		t.Fatalf("head circumference scored without a value: %+v", result.HeadCircumference)
	}
	if len(repository.records) != 0 {
		t.Fatalf("evaluation persisted %d records; it must not write", len(repository.records))
	}

	if _, err := service.EvaluateGrowth("child-1", models.GrowthDetails{}, asOf); !errors.Is(err, ErrGrowthEmpty) {
		t.Fatalf("empty measurements error = %v, want %v", err, ErrGrowthEmpty)
	}
	if _, err := service.EvaluateGrowth("ghost", models.GrowthDetails{Weight: floatPtr(7)}, asOf); !errors.Is(err, ErrChildNotFound) {
		t.Fatalf("unknown child error = %v, want %v", err, ErrChildNotFound)
	}
}

func TestVaccineScheduleReconciliation(t *testing.T) {
	t.Parallel()

	service, _ := newHealthFixture(models.GenderFemale)
	schedule := reference.VaccineSchedule()
	if len(schedule) < 2 {
		t.Fatal("schedule too small")
	}
	first := schedule[0]

	if _, err := service.CreateRecord(HealthRecordInput{
		ChildID:   "child-1",
		Type:      models.HealthVaccine,
		Timestamp: timePtr(date(2023, time.January, 5)),
		Vaccine:   &models.VaccineDetails{Name: first.Name, Dose: "1"},
	}); err != nil {
		t.Fatalf("CreateRecord returned error: %v", err)
	}

	// Child is six months old at evaluation time.
	asOf := date(2023, time.July, 1)
	statuses, err := service.VaccineSchedule("child-1", asOf)
	if err != nil {
		t.Fatalf("VaccineSchedule returned error: %v", err)
	}
	if len(statuses) != len(schedule) {
		t.Fatalf("statuses = %d, want %d", len(statuses), len(schedule))
	}

	for _, status := range statuses {
		switch {
		case status.Name == first.Name:
			if status.Status != VaccineCompleted {
				t.Fatalf("%q status = %q, want %q", status.Name, status.Status, VaccineCompleted)
			}
			if status.CompletedDate == nil || *status.CompletedDate != "2023-01-05" {
				t.Fatalf("%q completed date = %v", status.Name, status.CompletedDate)
			}
		case status.AgeMonths <= 6:
			if status.Status != VaccineDue {
				t.Fatalf("%q (age %d) status = %q, want %q", status.Name, status.AgeMonths, status.Status, VaccineDue)
			}
		default:
			if status.Status != VaccineUpcoming {
				t.Fatalf("%q (age %d) status = %q, want %q", status.Name, status.AgeMonths, status.Status, VaccineUpcoming)
			}
		}
	}
}

func TestVaccineNameMatchIsExact(t *testing.T) {
	t.Parallel()

	service, _ := newHealthFixture(models.GenderFemale)
	first := reference.VaccineSchedule()[0]

	if _, err := service.CreateRecord(HealthRecordInput{
		ChildID:   "child-1",
		Type:      models.HealthVaccine,
		Timestamp: timePtr(date(2023, time.January, 5)),
		Vaccine:   &models.VaccineDetails{Name: first.Name + " "},
	}); err != nil {
		t.Fatalf("CreateRecord returned error: %v", err)
	}

	statuses, err := service.VaccineSchedule("child-1", date(2023, time.January, 10))
	if err != nil {
		t.Fatalf("VaccineSchedule returned error: %v", err)
	}
	for _, status := range statuses {
		if status.Name == first.Name && status.Status == VaccineCompleted {
			t.Fatal("near-match name treated as completed")
		}
	}
}

func TestLatestGrowthPicksNewestRecord(t *testing.T) {
	t.Parallel()

	service, _ := newHealthFixture(models.GenderFemale)

	if _, found, err := service.LatestGrowth("child-1"); err != nil || found {
		t.Fatalf("empty history: found=%v err=%v", found, err)
	}

	for _, day := range []int{10, 25, 17} {
		if _, err := service.CreateRecord(HealthRecordInput{
			ChildID:   "child-1",
			Type:      models.HealthGrowth,
			Timestamp: timePtr(date(2023, time.June, day)),
			Growth:    &models.GrowthDetails{Weight: floatPtr(float64(day))},
		}); err != nil {
			t.Fatalf("CreateRecord returned error: %v", err)
		}
	}

	latest, found, err := service.LatestGrowth("child-1")
	if err != nil || !found {
		t.Fatalf("LatestGrowth: found=%v err=%v", found, err)
	}
	if !latest.Timestamp.Equal(date(2023, time.June, 25)) {
		t.Fatalf("latest timestamp = %v, want June 25", latest.Timestamp)
	}
}
