package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/sprout/internal/models"
)

var (
	ErrChildNameRequired  = fmt.Errorf("%w: child name is required", ErrValidation)
	ErrChildBirthRequired = fmt.Errorf("%w: child birth date is required", ErrValidation)
	ErrChildGenderInvalid = fmt.Errorf("%w: unknown gender", ErrValidation)
	ErrChildNotFound      = fmt.Errorf("%w: child", ErrNotFound)
)

type ChildInput struct {
	Name      string     `json:"name"`
	Gender    string     `json:"gender"`
	BirthDate *time.Time `json:"birthDate"`
	Photo     *string    `json:"photo"`
	Note      *string    `json:"note"`
}

type ChildRepository interface {
	ListAll() ([]models.Child, error)
	ListRecent(limit int) ([]models.Child, error)
	SearchByName(name string) ([]models.Child, error)
	FindByID(childID string) (models.Child, bool, error)
	Create(child *models.Child) error
	UpdateByID(childID string, updates map[string]any) error
	Delete(childID string) error
	Count() (int64, error)
}

type ChildActivityRepository interface {
	DeleteByChild(childID string) (int64, error)
}

type ChildHealthRepository interface {
	DeleteByChild(childID string) (int64, error)
}

type ChildMilestoneRepository interface {
	DeleteByChild(childID string) (int64, error)
}

type ChildPreferenceRepository interface {
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	Delete(key string) error
}

type ChildService struct {
	children    ChildRepository
	activities  ChildActivityRepository
	health      ChildHealthRepository
	milestones  ChildMilestoneRepository
	preferences ChildPreferenceRepository
}

func NewChildService(
	children ChildRepository,
	activities ChildActivityRepository,
	health ChildHealthRepository,
	milestones ChildMilestoneRepository,
	preferences ChildPreferenceRepository,
) *ChildService {
	return &ChildService{
		children:    children,
		activities:  activities,
		health:      health,
		milestones:  milestones,
		preferences: preferences,
	}
}

func (service *ChildService) ListChildren() ([]models.Child, error) {
	children, err := service.children.ListAll()
	if err != nil {
		return nil, fmt.Errorf("%w: list children: %v", ErrStorage, err)
	}
	return children, nil
}

// SearchChildren matches names case-insensitively; a blank query lists all.
func (service *ChildService) SearchChildren(query string) ([]models.Child, error) {
	if strings.TrimSpace(query) == "" {
		return service.ListChildren()
	}
	children, err := service.children.SearchByName(query)
	if err != nil {
		return nil, fmt.Errorf("%w: search children: %v", ErrStorage, err)
	}
	return children, nil
}

func (service *ChildService) RecentChildren(limit int) ([]models.Child, error) {
	if limit < 1 {
		limit = 5
	}
	children, err := service.children.ListRecent(limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list recent children: %v", ErrStorage, err)
	}
	return children, nil
}

func (service *ChildService) GetChild(childID string) (models.Child, error) {
	child, found, err := service.children.FindByID(childID)
	if err != nil {
		return models.Child{}, fmt.Errorf("%w: load child: %v", ErrStorage, err)
	}
	if !found {
		return models.Child{}, ErrChildNotFound
	}
	return child, nil
}

func (service *ChildService) CreateChild(input ChildInput) (models.Child, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Child{}, ErrChildNameRequired
	}
	if input.BirthDate == nil {
		return models.Child{}, ErrChildBirthRequired
	}
	if input.Gender != "" && !models.ValidGender(input.Gender) {
		return models.Child{}, ErrChildGenderInvalid
	}

	child := models.Child{
		ID:        uuid.NewString(),
		Name:      name,
		Gender:    input.Gender,
		BirthDate: *input.BirthDate,
	}
	if input.Photo != nil {
		child.Photo = *input.Photo
	}
	if input.Note != nil {
		child.Note = *input.Note
	}
	if err := service.children.Create(&child); err != nil {
		return models.Child{}, fmt.Errorf("%w: create child: %v", ErrStorage, err)
	}

	// First child becomes the selected child automatically.
	if current, found, err := service.preferences.Get(models.PrefCurrentChildID); err == nil && (!found || current == "") {
		if err := service.preferences.Set(models.PrefCurrentChildID, child.ID); err != nil {
			log.Printf("set current child after create: %v", err)
		}
	}
	return child, nil
}

// UpdateChild merges the provided fields into the stored row; nil fields are
// left untouched.
func (service *ChildService) UpdateChild(childID string, input ChildInput) (models.Child, error) {
	if _, err := service.GetChild(childID); err != nil {
		return models.Child{}, err
	}

	updates := map[string]any{}
	if trimmed := strings.TrimSpace(input.Name); trimmed != "" {
		updates["name"] = trimmed
	}
	if input.Gender != "" {
		if !models.ValidGender(input.Gender) {
			return models.Child{}, ErrChildGenderInvalid
		}
		updates["gender"] = input.Gender
	}
	if input.BirthDate != nil {
		updates["birth_date"] = *input.BirthDate
	}
	if input.Photo != nil {
		updates["photo"] = *input.Photo
	}
	if input.Note != nil {
		updates["note"] = *input.Note
	}

	if len(updates) > 0 {
		if err := service.children.UpdateByID(childID, updates); err != nil {
			return models.Child{}, fmt.Errorf("%w: update child: %v", ErrStorage, err)
		}
	}
	return service.GetChild(childID)
}

// DeleteChild removes the child and everything recorded for it. Each
// dependent collection is attempted even when an earlier one fails; the child
// row itself is only deleted once every cascade succeeded, so a retry against
// the still-existing child can finish the job.
func (service *ChildService) DeleteChild(childID string) error {
	if _, err := service.GetChild(childID); err != nil {
		return err
	}

	cascades := []struct {
		label  string
		remove func(string) (int64, error)
	}{
		{"activities", service.activities.DeleteByChild},
		{"health records", service.health.DeleteByChild},
		{"milestones", service.milestones.DeleteByChild},
	}
	failed := make([]string, 0, len(cascades))
	for _, cascade := range cascades {
		if _, err := cascade.remove(childID); err != nil {
			log.Printf("delete %s for child %s: %v", cascade.label, childID, err)
			failed = append(failed, cascade.label)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%w: delete child data: %s", ErrStorage, strings.Join(failed, ", "))
	}
	if err := service.children.Delete(childID); err != nil {
		return fmt.Errorf("%w: delete child: %v", ErrStorage, err)
	}

	if current, found, err := service.preferences.Get(models.PrefCurrentChildID); err == nil && found && current == childID {
		if err := service.preferences.Delete(models.PrefCurrentChildID); err != nil {
			log.Printf("clear current child after delete: %v", err)
		}
	}
	return nil
}

// CurrentChild resolves the selected child. A selection pointing at a child
// that no longer exists is cleared and reported as no selection; nothing is
// picked in its place.
func (service *ChildService) CurrentChild() (models.Child, bool, error) {
	currentID, found, err := service.preferences.Get(models.PrefCurrentChildID)
	if err != nil {
		return models.Child{}, false, fmt.Errorf("%w: load current child: %v", ErrStorage, err)
	}
	if !found || currentID == "" {
		return models.Child{}, false, nil
	}
	child, exists, err := service.children.FindByID(currentID)
	if err != nil {
		return models.Child{}, false, fmt.Errorf("%w: load current child: %v", ErrStorage, err)
	}
	if exists {
		return child, true, nil
	}
	if err := service.preferences.Delete(models.PrefCurrentChildID); err != nil {
		return models.Child{}, false, fmt.Errorf("%w: clear current child: %v", ErrStorage, err)
	}
	return models.Child{}, false, nil
}

func (service *ChildService) SelectChild(childID string) error {
	if _, err := service.GetChild(childID); err != nil {
		return err
	}
	if err := service.preferences.Set(models.PrefCurrentChildID, childID); err != nil {
		return fmt.Errorf("%w: select child: %v", ErrStorage, err)
	}
	return nil
}

// ChildAge is the calendar age right now.
func (service *ChildService) ChildAge(childID string) (Age, error) {
	child, err := service.GetChild(childID)
	if err != nil {
		return Age{}, err
	}
	return CalculateAge(child.BirthDate, time.Now()), nil
}

// IsMissing reports whether err is any of the not-found failures.
func IsMissing(err error) bool {
	return errors.Is(err, ErrNotFound)
}
