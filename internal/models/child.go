package models

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

type Child struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Gender    string    `gorm:"not null" json:"gender"`
	BirthDate time.Time `gorm:"type:date;not null" json:"birthDate"`
	Photo     string    `json:"photo,omitempty"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ValidGender(gender string) bool {
	return gender == GenderMale || gender == GenderFemale
}
