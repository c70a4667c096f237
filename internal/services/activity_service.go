package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/sprout/internal/db"
	"github.com/terraincognita07/sprout/internal/models"
)

var (
	ErrActivityChildRequired  = fmt.Errorf("%w: activity childId is required", ErrValidation)
	ErrActivityTypeInvalid    = fmt.Errorf("%w: unknown activity type", ErrValidation)
	ErrActivityTimeRequired   = fmt.Errorf("%w: activity timestamp is required", ErrValidation)
	ErrActivityDetailMismatch = fmt.Errorf("%w: activity details do not match type", ErrValidation)
	ErrFeedTypeInvalid        = fmt.Errorf("%w: unknown feed type", ErrValidation)
	ErrFeedAmountNegative     = fmt.Errorf("%w: feed amount must not be negative", ErrValidation)
	ErrDiaperTypeInvalid      = fmt.Errorf("%w: unknown diaper type", ErrValidation)
	ErrSleepEndBeforeStart    = fmt.Errorf("%w: sleep end time precedes start", ErrValidation)
	ErrActivityNotFound       = fmt.Errorf("%w: activity", ErrNotFound)
)

type ActivityInput struct {
	ChildID   string                `json:"childId"`
	Type      string                `json:"type"`
	Timestamp *time.Time            `json:"timestamp"`
	EndTime   *time.Time            `json:"endTime"`
	ClearEnd  bool                  `json:"clearEndTime,omitempty"`
	Feed      *models.FeedDetails   `json:"feed"`
	Sleep     *models.SleepDetails  `json:"sleep"`
	Diaper    *models.DiaperDetails `json:"diaper"`
	Note      *string               `json:"note"`
}

type ActivityRepository interface {
	ListByChild(childID string) ([]models.Activity, error)
	ListByChildRange(childID string, from time.Time, to time.Time) ([]models.Activity, error)
	ListRecentByChild(childID string, limit int) ([]models.Activity, error)
	ListPage(childID string, page int, pageSize int, descending bool) ([]models.Activity, db.Pagination, error)
	FindByID(activityID string) (models.Activity, bool, error)
	Create(activity *models.Activity) error
	UpdateByID(activityID string, updates map[string]any) error
	Delete(activityID string) error
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type ActivityChildLookup interface {
	FindByID(childID string) (models.Child, bool, error)
}

type ActivityService struct {
	activities ActivityRepository
	children   ActivityChildLookup
}

func NewActivityService(activities ActivityRepository, children ActivityChildLookup) *ActivityService {
	return &ActivityService{activities: activities, children: children}
}

func (service *ActivityService) ListByChild(childID string) ([]models.Activity, error) {
	if err := service.requireChild(childID); err != nil {
		return nil, err
	}
	activities, err := service.activities.ListByChild(childID)
	if err != nil {
		return nil, fmt.Errorf("%w: list activities: %v", ErrStorage, err)
	}
	return activities, nil
}

// ListByChildRange returns activities in [from, to], both ends inclusive.
func (service *ActivityService) ListByChildRange(childID string, from time.Time, to time.Time) ([]models.Activity, error) {
	if err := service.requireChild(childID); err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end precedes start", ErrValidation)
	}
	activities, err := service.activities.ListByChildRange(childID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: list activities: %v", ErrStorage, err)
	}
	return activities, nil
}

// ListByDate returns the activities of one local calendar day.
func (service *ActivityService) ListByDate(childID string, day time.Time, location *time.Location) ([]models.Activity, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, location)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return service.ListByChildRange(childID, start, end)
}

func (service *ActivityService) ListRecent(childID string, limit int) ([]models.Activity, error) {
	if err := service.requireChild(childID); err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = 10
	}
	activities, err := service.activities.ListRecentByChild(childID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list recent activities: %v", ErrStorage, err)
	}
	return activities, nil
}

func (service *ActivityService) ListPage(childID string, page int, pageSize int) ([]models.Activity, db.Pagination, error) {
	if err := service.requireChild(childID); err != nil {
		return nil, db.Pagination{}, err
	}
	activities, pagination, err := service.activities.ListPage(childID, page, pageSize, true)
	if err != nil {
		return nil, db.Pagination{}, fmt.Errorf("%w: page activities: %v", ErrStorage, err)
	}
	return activities, pagination, nil
}

func (service *ActivityService) GetActivity(activityID string) (models.Activity, error) {
	activity, found, err := service.activities.FindByID(activityID)
	if err != nil {
		return models.Activity{}, fmt.Errorf("%w: load activity: %v", ErrStorage, err)
	}
	if !found {
		return models.Activity{}, ErrActivityNotFound
	}
	return activity, nil
}

func (service *ActivityService) CreateActivity(input ActivityInput) (models.Activity, error) {
	if input.ChildID == "" {
		return models.Activity{}, ErrActivityChildRequired
	}
	if err := service.requireChild(input.ChildID); err != nil {
		return models.Activity{}, err
	}
	if !models.ValidActivityType(input.Type) {
		return models.Activity{}, ErrActivityTypeInvalid
	}
	if input.Timestamp == nil {
		return models.Activity{}, ErrActivityTimeRequired
	}

	activity := models.Activity{
		ID:        uuid.NewString(),
		ChildID:   input.ChildID,
		Type:      input.Type,
		Timestamp: *input.Timestamp,
		EndTime:   input.EndTime,
	}
	if input.Note != nil {
		activity.Note = *input.Note
	}
	if err := applyActivityDetails(&activity, input); err != nil {
		return models.Activity{}, err
	}
	if activity.EndTime != nil && activity.EndTime.Before(activity.Timestamp) {
		return models.Activity{}, ErrSleepEndBeforeStart
	}

	if err := service.activities.Create(&activity); err != nil {
		return models.Activity{}, fmt.Errorf("%w: create activity: %v", ErrStorage, err)
	}
	return activity, nil
}

// UpdateActivity merges the provided fields into the stored row. The end-time
// check runs against the merged result, so moving the start past a kept end
// is rejected too.
func (service *ActivityService) UpdateActivity(activityID string, input ActivityInput) (models.Activity, error) {
	existing, err := service.GetActivity(activityID)
	if err != nil {
		return models.Activity{}, err
	}

	if input.Type != "" && input.Type != existing.Type {
		return models.Activity{}, fmt.Errorf("%w: activity type cannot change", ErrValidation)
	}

	updates := map[string]any{}
	effectiveStart := existing.Timestamp
	effectiveEnd := existing.EndTime

	if input.Timestamp != nil {
		effectiveStart = *input.Timestamp
		updates["timestamp"] = *input.Timestamp
	}
	if input.ClearEnd {
		effectiveEnd = nil
		updates["end_time"] = nil
	} else if input.EndTime != nil {
		effectiveEnd = input.EndTime
		updates["end_time"] = *input.EndTime
	}
	if effectiveEnd != nil && effectiveEnd.Before(effectiveStart) {
		return models.Activity{}, ErrSleepEndBeforeStart
	}

	if input.Feed != nil {
		if existing.Type != models.ActivityFeed {
			return models.Activity{}, ErrActivityDetailMismatch
		}
		if err := validateFeedDetails(input.Feed); err != nil {
			return models.Activity{}, err
		}
		updates["feed"] = input.Feed
	}
	if input.Sleep != nil {
		if existing.Type != models.ActivitySleep {
			return models.Activity{}, ErrActivityDetailMismatch
		}
		updates["sleep"] = input.Sleep
	}
	if input.Diaper != nil {
		if existing.Type != models.ActivityDiaper {
			return models.Activity{}, ErrActivityDetailMismatch
		}
		if !models.ValidDiaperType(input.Diaper.DiaperType) {
			return models.Activity{}, ErrDiaperTypeInvalid
		}
		updates["diaper"] = input.Diaper
	}
	if input.Note != nil {
		updates["note"] = *input.Note
	}

	if len(updates) > 0 {
		if err := service.activities.UpdateByID(activityID, updates); err != nil {
			return models.Activity{}, fmt.Errorf("%w: update activity: %v", ErrStorage, err)
		}
	}
	return service.GetActivity(activityID)
}

// EndSleep closes an open sleep session at the given moment.
func (service *ActivityService) EndSleep(activityID string, end time.Time) (models.Activity, error) {
	existing, err := service.GetActivity(activityID)
	if err != nil {
		return models.Activity{}, err
	}
	if existing.Type != models.ActivitySleep {
		return models.Activity{}, ErrActivityDetailMismatch
	}
	return service.UpdateActivity(activityID, ActivityInput{EndTime: &end})
}

func (service *ActivityService) DeleteActivity(activityID string) error {
	if _, err := service.GetActivity(activityID); err != nil {
		return err
	}
	if err := service.activities.Delete(activityID); err != nil {
		return fmt.Errorf("%w: delete activity: %v", ErrStorage, err)
	}
	return nil
}

func (service *ActivityService) requireChild(childID string) error {
	if childID == "" {
		return ErrActivityChildRequired
	}
	_, found, err := service.children.FindByID(childID)
	if err != nil {
		return fmt.Errorf("%w: load child: %v", ErrStorage, err)
	}
	if !found {
		return ErrChildNotFound
	}
	return nil
}

func applyActivityDetails(activity *models.Activity, input ActivityInput) error {
	switch activity.Type {
	case models.ActivityFeed:
		if input.Feed == nil || input.Sleep != nil || input.Diaper != nil {
			return ErrActivityDetailMismatch
		}
		if err := validateFeedDetails(input.Feed); err != nil {
			return err
		}
		activity.Feed = input.Feed
	case models.ActivitySleep:
		if input.Feed != nil || input.Diaper != nil {
			return ErrActivityDetailMismatch
		}
		if input.Sleep != nil {
			activity.Sleep = input.Sleep
		} else {
			activity.Sleep = &models.SleepDetails{}
		}
	case models.ActivityDiaper:
		if input.Diaper == nil || input.Feed != nil || input.Sleep != nil {
			return ErrActivityDetailMismatch
		}
		if !models.ValidDiaperType(input.Diaper.DiaperType) {
			return ErrDiaperTypeInvalid
		}
		activity.Diaper = input.Diaper
	}
	return nil
}

func validateFeedDetails(details *models.FeedDetails) error {
	if !models.ValidFeedType(details.FeedType) {
		return ErrFeedTypeInvalid
	}
	if details.Amount < 0 {
		return ErrFeedAmountNegative
	}
	return nil
}
