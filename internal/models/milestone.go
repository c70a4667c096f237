package models

import "time"

const (
	CategoryMotor     = "motor"
	CategoryLanguage  = "language"
	CategorySocial    = "social"
	CategoryCognitive = "cognitive"
)

// Milestone is a saved developmental achievement row. Rows linked to the
// reference catalog carry the catalog entry's code in ReferenceCode; rows with
// an empty code are user-defined custom milestones. Standard milestones have
// no row at all until the user records an achievement or a note.
type Milestone struct {
	ID                  string     `gorm:"primaryKey" json:"id"`
	ChildID             string     `gorm:"not null;index" json:"childId"`
	Name                string     `gorm:"not null" json:"name"`
	Category            string     `gorm:"not null" json:"category"`
	AgeMonthRecommended int        `gorm:"not null" json:"ageMonthRecommended"`
	AchievedDate        *time.Time `gorm:"index" json:"achievedDate"`
	ReferenceCode       string     `gorm:"index" json:"referenceCode,omitempty"`
	Note                string     `json:"note"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

func (milestone Milestone) IsStandard() bool {
	return milestone.ReferenceCode != ""
}

func ValidMilestoneCategory(category string) bool {
	switch category {
	case CategoryMotor, CategoryLanguage, CategorySocial, CategoryCognitive:
		return true
	}
	return false
}
