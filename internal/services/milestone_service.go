package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/sprout/internal/models"
	"github.com/terraincognita07/sprout/internal/reference"
)

var (
	ErrMilestoneChildRequired   = fmt.Errorf("%w: milestone childId is required", ErrValidation)
	ErrMilestoneNameRequired    = fmt.Errorf("%w: milestone name is required", ErrValidation)
	ErrMilestoneCategoryInvalid = fmt.Errorf("%w: unknown milestone category", ErrValidation)
	ErrMilestoneCodeUnknown     = fmt.Errorf("%w: unknown milestone code", ErrValidation)
	ErrMilestoneNameUnknown     = fmt.Errorf("%w: unknown milestone name", ErrValidation)
	ErrMilestoneNotFound        = fmt.Errorf("%w: milestone", ErrNotFound)
	ErrStandardMilestoneDelete  = fmt.Errorf("%w: standard milestones cannot be deleted", ErrValidation)
)

// Default month windows: how far past the recommended age an unachieved
// milestone counts as delayed, and how far ahead of the child's age the
// upcoming list looks.
const (
	milestoneDelayWindowMonths    = 3
	milestoneUpcomingWindowMonths = 3
)

const (
	MilestoneAchieved = "achieved"
	MilestoneDelayed  = "delayed"
	MilestoneUpcoming = "upcoming"
)

type MilestoneInput struct {
	Name                string     `json:"name"`
	Category            string     `json:"category"`
	AgeMonthRecommended *int       `json:"ageMonthRecommended"`
	AchievedDate        *time.Time `json:"achievedDate"`
	Note                *string    `json:"note"`
}

// TimelineEntry is one row of a child's milestone timeline. Standard entries
// exist even without a saved row; ID is empty until something is recorded
// for them.
type TimelineEntry struct {
	ID                  string     `json:"id,omitempty"`
	ReferenceCode       string     `json:"referenceCode,omitempty"`
	Name                string     `json:"name"`
	Category            string     `json:"category"`
	AgeMonthRecommended int        `json:"ageMonthRecommended"`
	Description         string     `json:"description,omitempty"`
	Custom              bool       `json:"custom"`
	Status              string     `json:"status"`
	AchievedDate        *time.Time `json:"achievedDate,omitempty"`
	Note                string     `json:"note,omitempty"`
}

type MilestoneRepository interface {
	ListByChild(childID string) ([]models.Milestone, error)
	FindByID(milestoneID string) (models.Milestone, bool, error)
	FindByChildAndCode(childID string, referenceCode string) (models.Milestone, bool, error)
	Create(milestone *models.Milestone) error
	UpdateByID(milestoneID string, updates map[string]any) error
	Delete(milestoneID string) error
}

type MilestoneChildLookup interface {
	FindByID(childID string) (models.Child, bool, error)
}

type MilestoneService struct {
	milestones MilestoneRepository
	children   MilestoneChildLookup
}

func NewMilestoneService(milestones MilestoneRepository, children MilestoneChildLookup) *MilestoneService {
	return &MilestoneService{milestones: milestones, children: children}
}

// Timeline merges the standard catalog with the child's saved rows. Every
// catalog entry appears exactly once whether or not a row backs it; custom
// milestones follow. Rows are sorted by recommended age, then name.
func (service *MilestoneService) Timeline(childID string, asOf time.Time) ([]TimelineEntry, error) {
	child, err := service.requireChild(childID)
	if err != nil {
		return nil, err
	}
	saved, err := service.milestones.ListByChild(childID)
	if err != nil {
		return nil, fmt.Errorf("%w: list milestones: %v", ErrStorage, err)
	}

	byCode := map[string]models.Milestone{}
	custom := make([]models.Milestone, 0)
	for _, milestone := range saved {
		if milestone.IsStandard() {
			byCode[milestone.ReferenceCode] = milestone
		} else {
			custom = append(custom, milestone)
		}
	}

	ageMonths := AgeInMonths(child.BirthDate, asOf)
	entries := make([]TimelineEntry, 0, len(byCode)+len(custom))
	for _, catalog := range reference.StandardMilestones() {
		entry := TimelineEntry{
			ReferenceCode:       catalog.Code,
			Name:                catalog.Name,
			Category:            catalog.Category,
			AgeMonthRecommended: catalog.AgeMonthRecommended,
			Description:         catalog.Description,
		}
		if row, ok := byCode[catalog.Code]; ok {
			entry.ID = row.ID
			entry.AchievedDate = row.AchievedDate
			entry.Note = row.Note
		}
		entry.Status = milestoneStatus(entry.AchievedDate, catalog.AgeMonthRecommended, ageMonths)
		entries = append(entries, entry)
	}

	for _, milestone := range custom {
		entries = append(entries, TimelineEntry{
			ID:                  milestone.ID,
			Name:                milestone.Name,
			Category:            milestone.Category,
			AgeMonthRecommended: milestone.AgeMonthRecommended,
			Custom:              true,
			Status:              milestoneStatus(milestone.AchievedDate, milestone.AgeMonthRecommended, ageMonths),
			AchievedDate:        milestone.AchievedDate,
			Note:                milestone.Note,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].AgeMonthRecommended != entries[j].AgeMonthRecommended {
			return entries[i].AgeMonthRecommended < entries[j].AgeMonthRecommended
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Achieved returns the timeline entries the child has already reached,
// newest achievement first.
func (service *MilestoneService) Achieved(childID string, asOf time.Time) ([]TimelineEntry, error) {
	entries, err := service.Timeline(childID, asOf)
	if err != nil {
		return nil, err
	}
	achieved := filterTimeline(entries, MilestoneAchieved)
	sort.SliceStable(achieved, func(i, j int) bool {
		return achieved[i].AchievedDate.After(*achieved[j].AchievedDate)
	})
	return achieved, nil
}

// Upcoming returns unachieved entries whose recommended age falls within the
// next months after the child's current age. A months value below one uses
// the default window.
func (service *MilestoneService) Upcoming(childID string, asOf time.Time, months int) ([]TimelineEntry, error) {
	if months < 1 {
		months = milestoneUpcomingWindowMonths
	}
	child, err := service.requireChild(childID)
	if err != nil {
		return nil, err
	}
	entries, err := service.Timeline(childID, asOf)
	if err != nil {
		return nil, err
	}

	ageMonths := AgeInMonths(child.BirthDate, asOf)
	upcoming := make([]TimelineEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.AchievedDate != nil {
			continue
		}
		if entry.AgeMonthRecommended > ageMonths && entry.AgeMonthRecommended <= ageMonths+months {
			upcoming = append(upcoming, entry)
		}
	}
	return upcoming, nil
}

// Delayed returns unachieved entries whose recommended age lies more than
// months behind the child's current age. A months value below one uses the
// default window.
func (service *MilestoneService) Delayed(childID string, asOf time.Time, months int) ([]TimelineEntry, error) {
	if months < 1 {
		months = milestoneDelayWindowMonths
	}
	child, err := service.requireChild(childID)
	if err != nil {
		return nil, err
	}
	entries, err := service.Timeline(childID, asOf)
	if err != nil {
		return nil, err
	}

	ageMonths := AgeInMonths(child.BirthDate, asOf)
	delayed := make([]TimelineEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.AchievedDate == nil && ageMonths > entry.AgeMonthRecommended+months {
			delayed = append(delayed, entry)
		}
	}
	return delayed, nil
}

func filterTimeline(entries []TimelineEntry, status string) []TimelineEntry {
	filtered := make([]TimelineEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Status == status {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// MarkAchieved records an achievement for a standard milestone. The backing
// row is created on first touch and reused afterwards, so repeated calls
// never duplicate it.
func (service *MilestoneService) MarkAchieved(childID string, referenceCode string, achievedDate time.Time, note string) (models.Milestone, error) {
	if _, err := service.requireChild(childID); err != nil {
		return models.Milestone{}, err
	}
	catalog, ok := reference.MilestoneByCode(referenceCode)
	if !ok {
		return models.Milestone{}, ErrMilestoneCodeUnknown
	}

	existing, found, err := service.milestones.FindByChildAndCode(childID, referenceCode)
	if err != nil {
		return models.Milestone{}, fmt.Errorf("%w: load milestone: %v", ErrStorage, err)
	}
	if found {
		updates := map[string]any{"achieved_date": achievedDate}
		if note != "" {
			updates["note"] = note
		}
		if err := service.milestones.UpdateByID(existing.ID, updates); err != nil {
			return models.Milestone{}, fmt.Errorf("%w: update milestone: %v", ErrStorage, err)
		}
		return service.getMilestone(existing.ID)
	}

	milestone := models.Milestone{
		ID:                  uuid.NewString(),
		ChildID:             childID,
		Name:                catalog.Name,
		Category:            catalog.Category,
		AgeMonthRecommended: catalog.AgeMonthRecommended,
		AchievedDate:        &achievedDate,
		ReferenceCode:       catalog.Code,
		Note:                note,
	}
	if err := service.milestones.Create(&milestone); err != nil {
		return models.Milestone{}, fmt.Errorf("%w: create milestone: %v", ErrStorage, err)
	}
	return milestone, nil
}

// MarkAchievedByName resolves a standard milestone through its exact catalog
// name. The match is case-sensitive; there is no fuzzy lookup.
func (service *MilestoneService) MarkAchievedByName(childID string, name string, achievedDate time.Time, note string) (models.Milestone, error) {
	catalog, ok := reference.MilestoneByName(name)
	if !ok {
		return models.Milestone{}, ErrMilestoneNameUnknown
	}
	return service.MarkAchieved(childID, catalog.Code, achievedDate, note)
}

// MarkNotAchieved reverses an achievement. Standard rows stay as an explicit
// unachieved override with the date cleared and the note preserved; custom
// rows are deleted outright, since an unachieved custom milestone has no
// meaning of its own.
func (service *MilestoneService) MarkNotAchieved(milestoneID string) (models.Milestone, error) {
	milestone, err := service.getMilestone(milestoneID)
	if err != nil {
		return models.Milestone{}, err
	}
	if !milestone.IsStandard() {
		if err := service.milestones.Delete(milestoneID); err != nil {
			return models.Milestone{}, fmt.Errorf("%w: delete milestone: %v", ErrStorage, err)
		}
		milestone.AchievedDate = nil
		return milestone, nil
	}
	if err := service.milestones.UpdateByID(milestoneID, map[string]any{"achieved_date": nil}); err != nil {
		return models.Milestone{}, fmt.Errorf("%w: update milestone: %v", ErrStorage, err)
	}
	return service.getMilestone(milestoneID)
}

// CreateCustom adds a milestone outside the standard catalog.
func (service *MilestoneService) CreateCustom(childID string, input MilestoneInput) (models.Milestone, error) {
	if _, err := service.requireChild(childID); err != nil {
		return models.Milestone{}, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Milestone{}, ErrMilestoneNameRequired
	}
	if !models.ValidMilestoneCategory(input.Category) {
		return models.Milestone{}, ErrMilestoneCategoryInvalid
	}

	milestone := models.Milestone{
		ID:           uuid.NewString(),
		ChildID:      childID,
		Name:         name,
		Category:     input.Category,
		AchievedDate: input.AchievedDate,
	}
	if input.AgeMonthRecommended != nil {
		milestone.AgeMonthRecommended = *input.AgeMonthRecommended
	}
	if input.Note != nil {
		milestone.Note = *input.Note
	}
	if err := service.milestones.Create(&milestone); err != nil {
		return models.Milestone{}, fmt.Errorf("%w: create milestone: %v", ErrStorage, err)
	}
	return milestone, nil
}

// UpdateMilestone edits a saved row. Name, category and recommended age are
// only editable on custom milestones; standard rows keep their catalog
// identity.
func (service *MilestoneService) UpdateMilestone(milestoneID string, input MilestoneInput) (models.Milestone, error) {
	existing, err := service.getMilestone(milestoneID)
	if err != nil {
		return models.Milestone{}, err
	}

	updates := map[string]any{}
	if !existing.IsStandard() {
		if trimmed := strings.TrimSpace(input.Name); trimmed != "" {
			updates["name"] = trimmed
		}
		if input.Category != "" {
			if !models.ValidMilestoneCategory(input.Category) {
				return models.Milestone{}, ErrMilestoneCategoryInvalid
			}
			updates["category"] = input.Category
		}
		if input.AgeMonthRecommended != nil {
			updates["age_month_recommended"] = *input.AgeMonthRecommended
		}
	}
	if input.AchievedDate != nil {
		updates["achieved_date"] = *input.AchievedDate
	}
	if input.Note != nil {
		updates["note"] = *input.Note
	}

	if len(updates) > 0 {
		if err := service.milestones.UpdateByID(milestoneID, updates); err != nil {
			return models.Milestone{}, fmt.Errorf("%w: update milestone: %v", ErrStorage, err)
		}
	}
	return service.getMilestone(milestoneID)
}

// DeleteMilestone removes a custom milestone. Standard milestones are part
// of the catalog and cannot be deleted, only cleared.
func (service *MilestoneService) DeleteMilestone(milestoneID string) error {
	milestone, err := service.getMilestone(milestoneID)
	if err != nil {
		return err
	}
	if milestone.IsStandard() {
		return ErrStandardMilestoneDelete
	}
	if err := service.milestones.Delete(milestoneID); err != nil {
		return fmt.Errorf("%w: delete milestone: %v", ErrStorage, err)
	}
	return nil
}

func (service *MilestoneService) getMilestone(milestoneID string) (models.Milestone, error) {
	milestone, found, err := service.milestones.FindByID(milestoneID)
	if err != nil {
		return models.Milestone{}, fmt.Errorf("%w: load milestone: %v", ErrStorage, err)
	}
	if !found {
		return models.Milestone{}, ErrMilestoneNotFound
	}
	return milestone, nil
}

func (service *MilestoneService) requireChild(childID string) (models.Child, error) {
	if childID == "" {
		return models.Child{}, ErrMilestoneChildRequired
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

func milestoneStatus(achievedDate *time.Time, recommendedMonths int, ageMonths int) string {
	if achievedDate != nil {
		return MilestoneAchieved
	}
	if ageMonths > recommendedMonths+milestoneDelayWindowMonths {
		return MilestoneDelayed
	}
	return MilestoneUpcoming
}
