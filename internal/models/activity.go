package models

import "time"

const (
	ActivityFeed   = "feed"
	ActivitySleep  = "sleep"
	ActivityDiaper = "diaper"
)

const (
	FeedBreastLeft  = "breast_left"
	FeedBreastRight = "breast_right"
	FeedBreastBoth  = "breast_both"
	FeedFormula     = "formula"
	FeedSolid       = "solid"
	FeedWater       = "water"
	FeedOther       = "other"
)

const (
	DiaperWet   = "wet"
	DiaperDirty = "dirty"
	DiaperMixed = "mixed"
	DiaperDry   = "dry"
)

// FeedDetails is the payload for feed activities. Amount is in millilitres
// and only meaningful for formula and water feeds.
type FeedDetails struct {
	FeedType string  `json:"feedType"`
	Amount   float64 `json:"amount,omitempty"`
}

type SleepDetails struct {
	Location string `json:"location,omitempty"`
}

type DiaperDetails struct {
	DiaperType string `json:"diaperType"`
}

// Activity is a timestamped feed, sleep or diaper event. Exactly one of the
// detail payloads is populated, matching Type.
type Activity struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	ChildID   string         `gorm:"not null;index" json:"childId"`
	Type      string         `gorm:"not null;index" json:"type"`
	Timestamp time.Time      `gorm:"not null;index" json:"timestamp"`
	EndTime   *time.Time     `json:"endTime,omitempty"`
	Feed      *FeedDetails   `gorm:"serializer:json" json:"feed,omitempty"`
	Sleep     *SleepDetails  `gorm:"serializer:json" json:"sleep,omitempty"`
	Diaper    *DiaperDetails `gorm:"serializer:json" json:"diaper,omitempty"`
	Note      string         `json:"note"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func ValidActivityType(activityType string) bool {
	switch activityType {
	case ActivityFeed, ActivitySleep, ActivityDiaper:
		return true
	}
	return false
}

func ValidFeedType(feedType string) bool {
	switch feedType {
	case FeedBreastLeft, FeedBreastRight, FeedBreastBoth, FeedFormula, FeedSolid, FeedWater, FeedOther:
		return true
	}
	return false
}

func ValidDiaperType(diaperType string) bool {
	switch diaperType {
	case DiaperWet, DiaperDirty, DiaperMixed, DiaperDry:
		return true
	}
	return false
}
