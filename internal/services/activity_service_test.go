package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/sprout/internal/db"
	"github.com/terraincognita07/sprout/internal/models"
)

type stubChildLookup struct {
	children map[string]models.Child
}

func (stub *stubChildLookup) FindByID(childID string) (models.Child, bool, error) {
	child, ok := stub.children[childID]
	return child, ok, nil
}

type stubActivityRepository struct {
	activities map[string]models.Activity
}

func newStubActivityRepository() *stubActivityRepository {
	return &stubActivityRepository{activities: map[string]models.Activity{}}
}

func (stub *stubActivityRepository) ListByChild(childID string) ([]models.Activity, error) {
	result := make([]models.Activity, 0)
	for _, activity := range stub.activities {
		if activity.ChildID == childID {
			result = append(result, activity)
		}
	}
	return result, nil
}

func (stub *stubActivityRepository) ListByChildRange(childID string, from time.Time, to time.Time) ([]models.Activity, error) {
	result := make([]models.Activity, 0)
	for _, activity := range stub.activities {
		if activity.ChildID != childID {
			continue
		}
		if activity.Timestamp.Before(from) || activity.Timestamp.After(to) {
			continue
		}
		result = append(result, activity)
	}
	return result, nil
}

func (stub *stubActivityRepository) ListRecentByChild(childID string, limit int) ([]models.Activity, error) {
	all, _ := stub.ListByChild(childID)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (stub *stubActivityRepository) ListPage(childID string, page int, pageSize int, descending bool) ([]models.Activity, db.Pagination, error) {
	all, _ := stub.ListByChild(childID)
	return all, db.Pagination{}, nil
}

func (stub *stubActivityRepository) FindByID(activityID string) (models.Activity, bool, error) {
	activity, ok := stub.activities[activityID]
	return activity, ok, nil
}

func (stub *stubActivityRepository) Create(activity *models.Activity) error {
	stub.activities[activity.ID] = *activity
	return nil
}

func (stub *stubActivityRepository) UpdateByID(activityID string, updates map[string]any) error {
	activity, ok := stub.activities[activityID]
	if !ok {
		return errors.New("missing row")
	}
	for column, value := range updates {
		switch column {
		case "timestamp":
			activity.Timestamp = value.(time.Time)
		case "end_time":
			if value == nil {
				activity.EndTime = nil
			} else {
				moment := value.(time.Time)
				activity.EndTime = &moment
			}
		case "feed":
			activity.Feed = value.(*models.FeedDetails)
		case "sleep":
			activity.Sleep = value.(*models.SleepDetails)
		case "diaper":
			activity.Diaper = value.(*models.DiaperDetails)
		case "note":
			activity.Note = value.(string)
		}
	}
	stub.activities[activityID] = activity
	return nil
}

func (stub *stubActivityRepository) Delete(activityID string) error {
	delete(stub.activities, activityID)
	return nil
}

func (stub *stubActivityRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	var removed int64
	for id, activity := range stub.activities {
		if activity.Timestamp.Before(cutoff) {
			delete(stub.activities, id)
			removed++
		}
	}
	return removed, nil
}

func newActivityFixture() (*ActivityService, *stubActivityRepository) {
	repository := newStubActivityRepository()
	children := &stubChildLookup{children: map[string]models.Child{
		"child-1": {ID: "child-1", Name: "Aiko", BirthDate: date(2023, time.January, 1)},
	}}
	return NewActivityService(repository, children), repository
}

func timePtr(moment time.Time) *time.Time {
	return &moment
}

func TestCreateActivityValidation(t *testing.T) {
	t.Parallel()

	service, _ := newActivityFixture()
	start := date(2024, time.March, 1)

	tests := []struct {
		name    string
		input   ActivityInput
		wantErr error
	}{
		{
			name:    "missing child",
			input:   ActivityInput{Type: models.ActivityFeed, Timestamp: timePtr(start)},
			wantErr: ErrActivityChildRequired,
		},
		{
			name:    "unknown child",
			input:   ActivityInput{ChildID: "ghost", Type: models.ActivityFeed, Timestamp: timePtr(start)},
			wantErr: ErrChildNotFound,
		},
		{
			name:    "unknown type",
			input:   ActivityInput{ChildID: "child-1", Type: "bath", Timestamp: timePtr(start)},
			wantErr: ErrActivityTypeInvalid,
		},
		{
			name:    "missing timestamp",
			input:   ActivityInput{ChildID: "child-1", Type: models.ActivitySleep},
			wantErr: ErrActivityTimeRequired,
		},
		{
			name: "feed without details",
			input: ActivityInput{
				ChildID: "child-1", Type: models.ActivityFeed, Timestamp: timePtr(start),
			},
			wantErr: ErrActivityDetailMismatch,
		},
		{
			name: "feed with diaper details",
			input: ActivityInput{
				ChildID: "child-1", Type: models.ActivityFeed, Timestamp: timePtr(start),
				Feed:   &models.FeedDetails{FeedType: models.FeedFormula},
				Diaper: &models.DiaperDetails{DiaperType: models.DiaperWet},
			},
			wantErr: ErrActivityDetailMismatch,
		},
		{
			name: "unknown feed type",
			input: ActivityInput{
				ChildID: "child-1", Type: models.ActivityFeed, Timestamp: timePtr(start),
				Feed: &models.FeedDetails{FeedType: "juice"},
			},
			wantErr: ErrFeedTypeInvalid,
		},
		{
			name: "negative feed amount",
			input: ActivityInput{
				ChildID: "child-1", Type: models.ActivityFeed, Timestamp: timePtr(start),
				Feed: &models.FeedDetails{FeedType: models.FeedFormula, Amount: -10},
			},
			wantErr: ErrFeedAmountNegative,
		},
		{
			name: "unknown diaper type",
			input: ActivityInput{
				ChildID: "child-1", Type: models.ActivityDiaper, Timestamp: timePtr(start),
				Diaper: &models.DiaperDetails{DiaperType: "soaked"},
			},
			wantErr: ErrDiaperTypeInvalid,
		},
		{
			name: "sleep end before start",
			input: ActivityInput{
				ChildID: "child-1", Type: models.ActivitySleep,
				Timestamp: timePtr(start), EndTime: timePtr(start.Add(-time.Hour)),
			},
			wantErr: ErrSleepEndBeforeStart,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := service.CreateActivity(test.input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("CreateActivity error = %v, want %v", err, test.wantErr)
			}
			if !errors.Is(err, ErrValidation) && !errors.Is(err, ErrNotFound) {
				t.Fatalf("error %v carries no category", err)
			}
		})
	}
}

func TestCreateActivityAllowsZeroLengthSleep(t *testing.T) {
	t.Parallel()

	service, _ := newActivityFixture()
	start := date(2024, time.March, 1)

	activity, err := service.CreateActivity(ActivityInput{
		ChildID:   "child-1",
		Type:      models.ActivitySleep,
		Timestamp: timePtr(start),
		EndTime:   timePtr(start),
	})
	if err != nil {
		t.Fatalf("CreateActivity returned error: %v", err)
	}
	if activity.EndTime == nil || !activity.EndTime.Equal(start) {
		t.Fatalf("end time not kept: %+v", activity.EndTime)
	}
	if activity.Sleep == nil {
		t.Fatal("sleep details not defaulted")
	}
}

func TestUpdateActivityMergesPartialFields(t *testing.T) {
	t.Parallel()

	service, _ := newActivityFixture()
	start := date(2024, time.March, 1)

	created, err := service.CreateActivity(ActivityInput{
		ChildID:   "child-1",
		Type:      models.ActivityFeed,
		Timestamp: timePtr(start),
		Feed:      &models.FeedDetails{FeedType: models.FeedFormula, Amount: 120},
		Note:      strPtr("before nap"),
	})
	if err != nil {
		t.Fatalf("CreateActivity returned error: %v", err)
	}

	updated, err := service.UpdateActivity(created.ID, ActivityInput{
		Note: strPtr("after nap"),
	})
	if err != nil {
		t.Fatalf("UpdateActivity returned error: %v", err)
	}
	if updated.Note != "after nap" {
		t.Fatalf("note = %q, want %q", updated.Note, "after nap")
	}
	if updated.Feed == nil || updated.Feed.Amount != 120 {
		t.Fatalf("feed details lost on partial update: %+v", updated.Feed)
	}
	if !updated.Timestamp.Equal(start) {
		t.Fatalf("timestamp changed on partial update: %v", updated.Timestamp)
	}
}

func TestUpdateActivityChecksMergedEndTime(t *testing.T) {
	t.Parallel()

	service, _ := newActivityFixture()
	start := date(2024, time.March, 1)
	end := start.Add(30 * time.Minute)

	created, err := service.CreateActivity(ActivityInput{
		ChildID:   "child-1",
		Type:      models.ActivitySleep,
		Timestamp: timePtr(start),
		EndTime:   timePtr(end),
	})
	if err != nil {
		t.Fatalf("CreateActivity returned error: %v", err)
	}

	// Moving the start past the stored end must fail even though the update
	// itself carries no end time.
	if _, err := service.UpdateActivity(created.ID, ActivityInput{
		Timestamp: timePtr(end.Add(time.Hour)),
	}); !errors.Is(err, ErrSleepEndBeforeStart) {
		t.Fatalf("UpdateActivity error = %v, want %v", err, ErrSleepEndBeforeStart)
	}

	// Clearing the end time lifts the constraint.
	updated, err := service.UpdateActivity(created.ID, ActivityInput{
		Timestamp: timePtr(end.Add(time.Hour)),
		ClearEnd:  true,
	})
	if err != nil {
		t.Fatalf("UpdateActivity returned error: %v", err)
	}
	if updated.EndTime != nil {
		t.Fatalf("end time not cleared: %v", updated.EndTime)
	}
}

func TestUpdateActivityRejectsTypeChange(t *testing.T) {
	t.Parallel()

	service, _ := newActivityFixture()
	created, err := service.CreateActivity(ActivityInput{
		ChildID:   "child-1",
		Type:      models.ActivityDiaper,
		Timestamp: timePtr(date(2024, time.March, 1)),
		Diaper:    &models.DiaperDetails{DiaperType: models.DiaperWet},
	})
	if err != nil {
		t.Fatalf("CreateActivity returned error: %v", err)
	}

	if _, err := service.UpdateActivity(created.ID, ActivityInput{Type: models.ActivityFeed}); !errors.Is(err, ErrValidation) {
		t.Fatalf("UpdateActivity error = %v, want validation failure", err)
	}
	if _, err := service.UpdateActivity(created.ID, ActivityInput{
		Feed: &models.FeedDetails{FeedType: models.FeedFormula},
	}); !errors.Is(err, ErrActivityDetailMismatch) {
		t.Fatalf("UpdateActivity error = %v, want %v", err, ErrActivityDetailMismatch)
	}
}

func strPtr(value string) *string {
	return &value
}

func TestEndSleepClosesOpenSession(t *testing.T) {
	t.Parallel()

	service, _ := newActivityFixture()
	start := date(2024, time.March, 1).Add(20 * time.Hour)

	sleep := mustCreate(t, service, ActivityInput{
		ChildID:   "child-1",
		Type:      models.ActivitySleep,
		Timestamp: timePtr(start),
	})
	feed := mustCreate(t, service, ActivityInput{
		ChildID:   "child-1",
		Type:      models.ActivityFeed,
		Timestamp: timePtr(start),
		Feed:      &models.FeedDetails{FeedType: models.FeedFormula, Amount: 90},
	})

	closed, err := service.EndSleep(sleep.ID, start.Add(45*time.Minute))
	if err != nil {
		t.Fatalf("EndSleep returned error: %v", err)
	}
	if closed.EndTime == nil || !closed.EndTime.Equal(start.Add(45*time.Minute)) {
		t.Fatalf("end time not set: %v", closed.EndTime)
	}

	if _, err := service.EndSleep(feed.ID, start.Add(time.Hour)); !errors.Is(err, ErrActivityDetailMismatch) {
		t.Fatalf("ending a feed error = %v, want %v", err, ErrActivityDetailMismatch)
	}
	if _, err := service.EndSleep(sleep.ID, start.Add(-time.Minute)); !errors.Is(err, ErrSleepEndBeforeStart) {
		t.Fatalf("end before start error = %v, want %v", err, ErrSleepEndBeforeStart)
	}
}
