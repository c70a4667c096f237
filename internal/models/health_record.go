package models

import "time"

const (
	HealthGrowth     = "growth"
	HealthCheckup    = "checkup"
	HealthVaccine    = "vaccine"
	HealthMedication = "medication"
)

// GrowthDetails carries the measurements of a growth record. Every field is
// optional; a growth record only needs at least one of them.
type GrowthDetails struct {
	Weight            *float64 `json:"weight,omitempty"`
	Height            *float64 `json:"height,omitempty"`
	HeadCircumference *float64 `json:"headCircumference,omitempty"`
}

func (details GrowthDetails) Empty() bool {
	return details.Weight == nil && details.Height == nil && details.HeadCircumference == nil
}

type CheckupDetails struct {
	Location string `json:"location,omitempty"`
	Doctor   string `json:"doctor,omitempty"`
	Result   string `json:"result,omitempty"`
}

type VaccineDetails struct {
	Name string `json:"name"`
	Dose string `json:"dose,omitempty"`
}

type MedicationDetails struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
}

// HealthRecord is a timestamped growth, checkup, vaccine or medication event.
// Exactly one of the detail payloads is populated, matching Type.
type HealthRecord struct {
	ID         string             `gorm:"primaryKey" json:"id"`
	ChildID    string             `gorm:"not null;index" json:"childId"`
	Type       string             `gorm:"not null;index" json:"type"`
	Timestamp  time.Time          `gorm:"not null;index" json:"timestamp"`
	Growth     *GrowthDetails     `gorm:"serializer:json" json:"growth,omitempty"`
	Checkup    *CheckupDetails    `gorm:"serializer:json" json:"checkup,omitempty"`
	Vaccine    *VaccineDetails    `gorm:"serializer:json" json:"vaccine,omitempty"`
	Medication *MedicationDetails `gorm:"serializer:json" json:"medication,omitempty"`
	Note       string             `json:"note"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

func ValidHealthType(healthType string) bool {
	switch healthType {
	case HealthGrowth, HealthCheckup, HealthVaccine, HealthMedication:
		return true
	}
	return false
}
