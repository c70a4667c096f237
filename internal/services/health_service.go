package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/sprout/internal/db"
	"github.com/terraincognita07/sprout/internal/models"
	"github.com/terraincognita07/sprout/internal/reference"
)

var (
	ErrHealthChildRequired    = fmt.Errorf("%w: health record childId is required", ErrValidation)
	ErrHealthTypeInvalid      = fmt.Errorf("%w: unknown health record type", ErrValidation)
	ErrHealthTimeRequired     = fmt.Errorf("%w: health record timestamp is required", ErrValidation)
	ErrHealthDetailMismatch   = fmt.Errorf("%w: health details do not match type", ErrValidation)
	ErrGrowthEmpty            = fmt.Errorf("%w: growth record needs at least one measurement", ErrValidation)
	ErrVaccineNameRequired    = fmt.Errorf("%w: vaccine name is required", ErrValidation)
	ErrMedicationNameRequired = fmt.Errorf("%w: medication name is required", ErrValidation)
	ErrHealthRecordNotFound   = fmt.Errorf("%w: health record", ErrNotFound)
)

type HealthRecordInput struct {
	ChildID    string                    `json:"childId"`
	Type       string                    `json:"type"`
	Timestamp  *time.Time                `json:"timestamp"`
	Growth     *models.GrowthDetails     `json:"growth"`
	Checkup    *models.CheckupDetails    `json:"checkup"`
	Vaccine    *models.VaccineDetails    `json:"vaccine"`
	Medication *models.MedicationDetails `json:"medication"`
	Note       *string                   `json:"note"`
}

type HealthRecordRepository interface {
	ListByChild(childID string) ([]models.HealthRecord, error)
	ListByChildAndType(childID string, recordType string) ([]models.HealthRecord, error)
	ListPage(childID string, page int, pageSize int, descending bool) ([]models.HealthRecord, db.Pagination, error)
	FindByID(recordID string) (models.HealthRecord, bool, error)
	Create(record *models.HealthRecord) error
	UpdateByID(recordID string, updates map[string]any) error
	Delete(recordID string) error
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type HealthChildLookup interface {
	FindByID(childID string) (models.Child, bool, error)
}

type HealthService struct {
	records  HealthRecordRepository
	children HealthChildLookup
}

func NewHealthService(records HealthRecordRepository, children HealthChildLookup) *HealthService {
	return &HealthService{records: records, children: children}
}

func (service *HealthService) ListByChild(childID string) ([]models.HealthRecord, error) {
	if _, err := service.requireChild(childID); err != nil {
		return nil, err
	}
	records, err := service.records.ListByChild(childID)
	if err != nil {
		return nil, fmt.Errorf("%w: list health records: %v", ErrStorage, err)
	}
	return records, nil
}

func (service *HealthService) ListByChildAndType(childID string, recordType string) ([]models.HealthRecord, error) {
	if _, err := service.requireChild(childID); err != nil {
		return nil, err
	}
	if !models.ValidHealthType(recordType) {
		return nil, ErrHealthTypeInvalid
	}
	records, err := service.records.ListByChildAndType(childID, recordType)
	if err != nil {
		return nil, fmt.Errorf("%w: list health records: %v", ErrStorage, err)
	}
	return records, nil
}

func (service *HealthService) ListPage(childID string, page int, pageSize int) ([]models.HealthRecord, db.Pagination, error) {
	if _, err := service.requireChild(childID); err != nil {
		return nil, db.Pagination{}, err
	}
	records, pagination, err := service.records.ListPage(childID, page, pageSize, true)
	if err != nil {
		return nil, db.Pagination{}, fmt.Errorf("%w: page health records: %v", ErrStorage, err)
	}
	return records, pagination, nil
}

func (service *HealthService) GetRecord(recordID string) (models.HealthRecord, error) {
	record, found, err := service.records.FindByID(recordID)
	if err != nil {
		return models.HealthRecord{}, fmt.Errorf("%w: load health record: %v", ErrStorage, err)
	}
	if !found {
		return models.HealthRecord{}, ErrHealthRecordNotFound
	}
	return record, nil
}

func (service *HealthService) CreateRecord(input HealthRecordInput) (models.HealthRecord, error) {
	if input.ChildID == "" {
		return models.HealthRecord{}, ErrHealthChildRequired
	}
	if _, err := service.requireChild(input.ChildID); err != nil {
		return models.HealthRecord{}, err
	}
	if !models.ValidHealthType(input.Type) {
		return models.HealthRecord{}, ErrHealthTypeInvalid
	}
	if input.Timestamp == nil {
		return models.HealthRecord{}, ErrHealthTimeRequired
	}

	record := models.HealthRecord{
		ID:        uuid.NewString(),
		ChildID:   input.ChildID,
		Type:      input.Type,
		Timestamp: *input.Timestamp,
	}
	if input.Note != nil {
		record.Note = *input.Note
	}
	if err := applyHealthDetails(&record, input); err != nil {
		return models.HealthRecord{}, err
	}

	if err := service.records.Create(&record); err != nil {
		return models.HealthRecord{}, fmt.Errorf("%w: create health record: %v", ErrStorage, err)
	}
	return record, nil
}

func (service *HealthService) UpdateRecord(recordID string, input HealthRecordInput) (models.HealthRecord, error) {
	existing, err := service.GetRecord(recordID)
	if err != nil {
		return models.HealthRecord{}, err
	}
	if input.Type != "" && input.Type != existing.Type {
		return models.HealthRecord{}, fmt.Errorf("%w: health record type cannot change", ErrValidation)
	}

	updates := map[string]any{}
	if input.Timestamp != nil {
		updates["timestamp"] = *input.Timestamp
	}
	if input.Growth != nil {
		if existing.Type != models.HealthGrowth {
			return models.HealthRecord{}, ErrHealthDetailMismatch
		}
		if input.Growth.Empty() {
			return models.HealthRecord{}, ErrGrowthEmpty
		}
		updates["growth"] = input.Growth
	}
	if input.Checkup != nil {
		if existing.Type != models.HealthCheckup {
			return models.HealthRecord{}, ErrHealthDetailMismatch
		}
		updates["checkup"] = input.Checkup
	}
	if input.Vaccine != nil {
		if existing.Type != models.HealthVaccine {
			return models.HealthRecord{}, ErrHealthDetailMismatch
		}
		if input.Vaccine.Name == "" {
			return models.HealthRecord{}, ErrVaccineNameRequired
		}
		updates["vaccine"] = input.Vaccine
	}
	if input.Medication != nil {
		if existing.Type != models.HealthMedication {
			return models.HealthRecord{}, ErrHealthDetailMismatch
		}
		if input.Medication.Name == "" {
			return models.HealthRecord{}, ErrMedicationNameRequired
		}
		updates["medication"] = input.Medication
	}
	if input.Note != nil {
		updates["note"] = *input.Note
	}

	if len(updates) > 0 {
		if err := service.records.UpdateByID(recordID, updates); err != nil {
			return models.HealthRecord{}, fmt.Errorf("%w: update health record: %v", ErrStorage, err)
		}
	}
	return service.GetRecord(recordID)
}

func (service *HealthService) DeleteRecord(recordID string) error {
	if _, err := service.GetRecord(recordID); err != nil {
		return err
	}
	if err := service.records.Delete(recordID); err != nil {
		return fmt.Errorf("%w: delete health record: %v", ErrStorage, err)
	}
	return nil
}

// LatestGrowth returns the child's most recent growth record.
func (service *HealthService) LatestGrowth(childID string) (models.HealthRecord, bool, error) {
	if _, err := service.requireChild(childID); err != nil {
		return models.HealthRecord{}, false, err
	}
	records, err := service.records.ListByChildAndType(childID, models.HealthGrowth)
	if err != nil {
		return models.HealthRecord{}, false, fmt.Errorf("%w: list growth records: %v", ErrStorage, err)
	}

	var latest models.HealthRecord
	found := false
	for _, record := range records {
		if !found || record.Timestamp.After(latest.Timestamp) {
			latest = record
			found = true
		}
	}
	return latest, found, nil
}

// GrowthPoint is one growth measurement annotated with the reference band
// and percentile for the child's age at measurement time. Percentile is nil
// when no band covers the measurement (unknown gender, or value missing).
type GrowthPoint struct {
	RecordID   string   `json:"recordId"`
	Date       string   `json:"date"`
	AgeMonths  int      `json:"ageMonths"`
	Value      float64  `json:"value"`
	BandMin    *float64 `json:"bandMin,omitempty"`
	BandMedian *float64 `json:"bandMedian,omitempty"`
	BandMax    *float64 `json:"bandMax,omitempty"`
	Percentile *float64 `json:"percentile,omitempty"`
}

// GrowthCurve builds the chartable series for one measurement kind.
func (service *HealthService) GrowthCurve(childID string, measurement string) ([]GrowthPoint, error) {
	child, err := service.requireChild(childID)
	if err != nil {
		return nil, err
	}
	records, err := service.records.ListByChildAndType(childID, models.HealthGrowth)
	if err != nil {
		return nil, fmt.Errorf("%w: list growth records: %v", ErrStorage, err)
	}

	points := make([]GrowthPoint, 0, len(records))
	for _, record := range records {
		if record.Growth == nil {
			continue
		}
		value := growthValue(*record.Growth, measurement)
		if value == nil {
			continue
		}

		point := GrowthPoint{
			RecordID:  record.ID,
			Date:      record.Timestamp.Format("2006-01-02"),
			AgeMonths: AgeInMonths(child.BirthDate, record.Timestamp),
			Value:     *value,
		}
		if band, ok := reference.GrowthBandFor(child.Gender, point.AgeMonths, measurement); ok {
			percentile := reference.GrowthPercentile(point.Value, band)
			point.BandMin = &band.Min
			point.BandMedian = &band.Median
			point.BandMax = &band.Max
			point.Percentile = &percentile
		}
		points = append(points, point)
	}
	return points, nil
}

// MeasurementPercentile scores one supplied value against the reference band
// for the child's age. The band fields are nil when no band covers the child
// (unknown gender).
type MeasurementPercentile struct {
	Value      float64  `json:"value"`
	BandMin    *float64 `json:"bandMin,omitempty"`
	BandMedian *float64 `json:"bandMedian,omitempty"`
	BandMax    *float64 `json:"bandMax,omitempty"`
	Percentile *float64 `json:"percentile,omitempty"`
}

// GrowthPercentiles is the evaluation of an ad hoc measurement set, one entry
// per measurement that was supplied.
type GrowthPercentiles struct {
	ChildID           string                 `json:"childId"`
	AgeMonths         int                    `json:"ageMonths"`
	Weight            *MeasurementPercentile `json:"weight,omitempty"`
	Height            *MeasurementPercentile `json:"height,omitempty"`
	HeadCircumference *MeasurementPercentile `json:"headCircumference,omitempty"`
}

// EvaluateGrowth scores a measurement set against the reference bands at the
// child's age as of the given moment, without saving anything. At least one
// measurement must be present.
func (service *HealthService) EvaluateGrowth(childID string, measurements models.GrowthDetails, asOf time.Time) (GrowthPercentiles, error) {
	child, err := service.requireChild(childID)
	if err != nil {
		return GrowthPercentiles{}, err
	}
	if measurements.Empty() {
		return GrowthPercentiles{}, ErrGrowthEmpty
	}

	result := GrowthPercentiles{
		ChildID:   childID,
		AgeMonths: AgeInMonths(child.BirthDate, asOf),
	}
	result.Weight = evaluateMeasurement(child.Gender, result.AgeMonths, reference.MeasurementWeight, measurements.Weight)
	result.Height = evaluateMeasurement(child.Gender, result.AgeMonths, reference.MeasurementHeight, measurements.Height)
	result.HeadCircumference = evaluateMeasurement(child.Gender, result.AgeMonths, reference.MeasurementHeadCircumference, measurements.HeadCircumference)
	return result, nil
}

func evaluateMeasurement(gender string, ageMonths int, measurement string, value *float64) *MeasurementPercentile {
	if value == nil {
		return nil
	}
	point := &MeasurementPercentile{Value: *value}
	if band, ok := reference.GrowthBandFor(gender, ageMonths, measurement); ok {
		percentile := reference.GrowthPercentile(point.Value, band)
		point.BandMin = &band.Min
		point.BandMedian = &band.Median
		point.BandMax = &band.Max
		point.Percentile = &percentile
	}
	return point
}

func growthValue(details models.GrowthDetails, measurement string) *float64 {
	switch measurement {
	case reference.MeasurementWeight:
		return details.Weight
	case reference.MeasurementHeight:
		return details.Height
	case reference.MeasurementHeadCircumference:
		return details.HeadCircumference
	}
	return nil
}

const (
	VaccineCompleted = "completed"
	VaccineDue       = "due"
	VaccineUpcoming  = "upcoming"
)

// VaccineStatus pairs a schedule entry with the child's progress on it.
type VaccineStatus struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	AgeMonths       int     `json:"ageMonths"`
	RecommendedDate string  `json:"recommendedDate"`
	Status          string  `json:"status"`
	CompletedDate   *string `json:"completedDate,omitempty"`
}

// VaccineSchedule reconciles the standard schedule against the child's
// vaccine records. A schedule entry is completed when a record with exactly
// the same vaccine name exists, due when the child has reached its age, and
// upcoming otherwise.
func (service *HealthService) VaccineSchedule(childID string, asOf time.Time) ([]VaccineStatus, error) {
	child, err := service.requireChild(childID)
	if err != nil {
		return nil, err
	}
	records, err := service.records.ListByChildAndType(childID, models.HealthVaccine)
	if err != nil {
		return nil, fmt.Errorf("%w: list vaccine records: %v", ErrStorage, err)
	}

	recordedDates := map[string]time.Time{}
	for _, record := range records {
		if record.Vaccine == nil || record.Vaccine.Name == "" {
			continue
		}
		if existing, ok := recordedDates[record.Vaccine.Name]; !ok || record.Timestamp.Before(existing) {
			recordedDates[record.Vaccine.Name] = record.Timestamp
		}
	}

	ageMonths := AgeInMonths(child.BirthDate, asOf)
	schedule := reference.VaccineSchedule()
	statuses := make([]VaccineStatus, 0, len(schedule))
	for _, entry := range schedule {
		status := VaccineStatus{
			Name:            entry.Name,
			Description:     entry.Description,
			AgeMonths:       entry.AgeMonths,
			RecommendedDate: child.BirthDate.AddDate(0, entry.AgeMonths, 0).Format("2006-01-02"),
			Status:          VaccineUpcoming,
		}
		if completedAt, ok := recordedDates[entry.Name]; ok {
			status.Status = VaccineCompleted
			date := completedAt.Format("2006-01-02")
			status.CompletedDate = &date
		} else if ageMonths >= entry.AgeMonths {
			status.Status = VaccineDue
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (service *HealthService) requireChild(childID string) (models.Child, error) {
	if childID == "" {
		return models.Child{}, ErrHealthChildRequired
	}
	child, found, err := service.children.FindByID(childID)
	if err != nil {
		return models.Child{}, fmt.Errorf("%w: load child: %v", ErrStorage, err)
	}
	if !found {
		return models.Child{}, ErrChildNotFound
	}
	return child, nil
}

func applyHealthDetails(record *models.HealthRecord, input HealthRecordInput) error {
	switch record.Type {
	case models.HealthGrowth:
		if input.Growth == nil || input.Checkup != nil || input.Vaccine != nil || input.Medication != nil {
			return ErrHealthDetailMismatch
		}
		if input.Growth.Empty() {
			return ErrGrowthEmpty
		}
		record.Growth = input.Growth
	case models.HealthCheckup:
		if input.Growth != nil || input.Vaccine != nil || input.Medication != nil {
			return ErrHealthDetailMismatch
		}
		if input.Checkup != nil {
			record.Checkup = input.Checkup
		} else {
			record.Checkup = &models.CheckupDetails{}
		}
	case models.HealthVaccine:
		if input.Vaccine == nil || input.Growth != nil || input.Checkup != nil || input.Medication != nil {
			return ErrHealthDetailMismatch
		}
		if input.Vaccine.Name == "" {
			return ErrVaccineNameRequired
		}
		record.Vaccine = input.Vaccine
	case models.HealthMedication:
		if input.Medication == nil || input.Growth != nil || input.Checkup != nil || input.Vaccine != nil {
			return ErrHealthDetailMismatch
		}
		if input.Medication.Name == "" {
			return ErrMedicationNameRequired
		}
		record.Medication = input.Medication
	}
	return nil
}
