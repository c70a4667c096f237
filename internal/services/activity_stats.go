package services

import (
	"fmt"
	"math"
	"time"

	"github.com/terraincognita07/sprout/internal/models"
)

// HourBuckets counts events by local time of day: morning [06,12),
// afternoon [12,18), evening [18,24), night [00,06).
type HourBuckets struct {
	Morning   int `json:"morning"`
	Afternoon int `json:"afternoon"`
	Evening   int `json:"evening"`
	Night     int `json:"night"`
}

func (buckets *HourBuckets) add(moment time.Time, location *time.Location) {
	switch hour := moment.In(location).Hour(); {
	case hour >= 6 && hour < 12:
		buckets.Morning++
	case hour >= 12 && hour < 18:
		buckets.Afternoon++
	case hour >= 18:
		buckets.Evening++
	default:
		buckets.Night++
	}
}

func (buckets HourBuckets) Total() int {
	return buckets.Morning + buckets.Afternoon + buckets.Evening + buckets.Night
}

// DailyPoint is one day of a zero-filled series. Value carries the metric of
// the series: millilitres for feeds, minutes for sleep, count again for
// diapers.
type DailyPoint struct {
	Date  string  `json:"date"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

// FeedStats tracks volume only for measurable liquids: formula and water.
// Breast and solid feeds count sessions but carry no comparable millilitres.
type FeedStats struct {
	TotalCount    int            `json:"totalCount"`
	TotalAmount   float64        `json:"totalAmount"`
	FormulaAmount float64        `json:"formulaAmount"`
	WaterAmount   float64        `json:"waterAmount"`
	DailyAverage  float64        `json:"dailyAverage"`
	ByFeedType    map[string]int `json:"byFeedType"`
	Histogram     HourBuckets    `json:"histogram"`
	Daily         []DailyPoint   `json:"daily"`
}

// SleepStats separates completed sessions (with an end time) from open ones;
// all duration figures cover completed sessions only.
type SleepStats struct {
	SessionCount        int          `json:"sessionCount"`
	CompletedCount      int          `json:"completedCount"`
	TotalMinutes        int          `json:"totalMinutes"`
	AverageMinutes      float64      `json:"averageMinutes"`
	MaxMinutes          int          `json:"maxMinutes"`
	DailyAverageMinutes float64      `json:"dailyAverageMinutes"`
	Histogram           HourBuckets  `json:"histogram"`
	Daily               []DailyPoint `json:"daily"`
}

type DiaperStats struct {
	TotalCount   int            `json:"totalCount"`
	DailyAverage float64        `json:"dailyAverage"`
	ByDiaperType map[string]int `json:"byDiaperType"`
	Histogram    HourBuckets    `json:"histogram"`
	Daily        []DailyPoint   `json:"daily"`
}

type ActivityStats struct {
	ChildID string      `json:"childId"`
	From    string      `json:"from"`
	To      string      `json:"to"`
	Feed    FeedStats   `json:"feed"`
	Sleep   SleepStats  `json:"sleep"`
	Diaper  DiaperStats `json:"diaper"`
}

// Stats aggregates the child's activities over [from, to]. Days are cut at
// local midnight in the given location; the daily series is zero-filled so
// charting needs no gap handling.
func (service *ActivityService) Stats(childID string, from time.Time, to time.Time, location *time.Location) (ActivityStats, error) {
	if location == nil {
		location = time.Local
	}
	fromDay := dayStart(from, location)
	toDay := dayStart(to, location)
	if toDay.Before(fromDay) {
		return ActivityStats{}, fmt.Errorf("%w: range end precedes start", ErrValidation)
	}

	rangeEnd := toDay.AddDate(0, 0, 1).Add(-time.Nanosecond)
	activities, err := service.ListByChildRange(childID, fromDay, rangeEnd)
	if err != nil {
		return ActivityStats{}, err
	}

	stats := ActivityStats{
		ChildID: childID,
		From:    fromDay.Format("2006-01-02"),
		To:      toDay.Format("2006-01-02"),
		Feed:    FeedStats{ByFeedType: map[string]int{}},
		Sleep:   SleepStats{},
		Diaper:  DiaperStats{ByDiaperType: map[string]int{}},
	}

	feedByDay := map[string]*DailyPoint{}
	sleepByDay := map[string]*DailyPoint{}
	diaperByDay := map[string]*DailyPoint{}
	completedSleepDays := map[string]bool{}

	for _, activity := range activities {
		day := activity.Timestamp.In(location).Format("2006-01-02")
		switch activity.Type {
		case models.ActivityFeed:
			stats.Feed.TotalCount++
			stats.Feed.Histogram.add(activity.Timestamp, location)
			point := ensurePoint(feedByDay, day)
			point.Count++
			if activity.Feed != nil {
				stats.Feed.ByFeedType[activity.Feed.FeedType]++
				switch activity.Feed.FeedType {
				case models.FeedFormula:
					stats.Feed.FormulaAmount += activity.Feed.Amount
					point.Value += activity.Feed.Amount
				case models.FeedWater:
					stats.Feed.WaterAmount += activity.Feed.Amount
					point.Value += activity.Feed.Amount
				}
			}
		case models.ActivitySleep:
			stats.Sleep.SessionCount++
			stats.Sleep.Histogram.add(activity.Timestamp, location)
			point := ensurePoint(sleepByDay, day)
			point.Count++
			if activity.EndTime != nil {
				minutes := sleepMinutes(activity)
				stats.Sleep.CompletedCount++
				stats.Sleep.TotalMinutes += minutes
				if minutes > stats.Sleep.MaxMinutes {
					stats.Sleep.MaxMinutes = minutes
				}
				point.Value += float64(minutes)
				completedSleepDays[day] = true
			}
		case models.ActivityDiaper:
			stats.Diaper.TotalCount++
			stats.Diaper.Histogram.add(activity.Timestamp, location)
			if activity.Diaper != nil {
				stats.Diaper.ByDiaperType[activity.Diaper.DiaperType]++
			}
			point := ensurePoint(diaperByDay, day)
			point.Count++
			point.Value++
		}
	}

	stats.Feed.TotalAmount = stats.Feed.FormulaAmount + stats.Feed.WaterAmount

	// Averages divide by days that actually have the activity, so a sparse
	// range does not dilute the figure. Sleep goes one step further: a day
	// with only an open session contributes no duration and must not drag
	// the daily figure down.
	stats.Feed.DailyAverage = round1(averagePerActiveDay(float64(stats.Feed.TotalCount), len(feedByDay)))
	stats.Sleep.AverageMinutes = round1(averagePerActiveDay(float64(stats.Sleep.TotalMinutes), stats.Sleep.CompletedCount))
	stats.Sleep.DailyAverageMinutes = round1(averagePerActiveDay(float64(stats.Sleep.TotalMinutes), len(completedSleepDays)))
	stats.Diaper.DailyAverage = round1(averagePerActiveDay(float64(stats.Diaper.TotalCount), len(diaperByDay)))

	stats.Feed.Daily = fillDaily(fromDay, toDay, feedByDay)
	stats.Sleep.Daily = fillDaily(fromDay, toDay, sleepByDay)
	stats.Diaper.Daily = fillDaily(fromDay, toDay, diaperByDay)

	return stats, nil
}

// sleepMinutes rounds a session to the nearest whole minute. Sessions still
// in progress (no end time) count as zero.
func sleepMinutes(activity models.Activity) int {
	if activity.EndTime == nil {
		return 0
	}
	duration := activity.EndTime.Sub(activity.Timestamp)
	if duration < 0 {
		return 0
	}
	return int(math.Round(duration.Minutes()))
}

func dayStart(moment time.Time, location *time.Location) time.Time {
	local := moment.In(location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location)
}

func ensurePoint(byDay map[string]*DailyPoint, day string) *DailyPoint {
	point, ok := byDay[day]
	if !ok {
		point = &DailyPoint{Date: day}
		byDay[day] = point
	}
	return point
}

func averagePerActiveDay(total float64, activeDays int) float64 {
	if activeDays == 0 {
		return 0
	}
	return total / float64(activeDays)
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

func fillDaily(fromDay time.Time, toDay time.Time, byDay map[string]*DailyPoint) []DailyPoint {
	series := make([]DailyPoint, 0)
	for day := fromDay; !day.After(toDay); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		if point, ok := byDay[key]; ok {
			series = append(series, *point)
		} else {
			series = append(series, DailyPoint{Date: key})
		}
	}
	return series
}
