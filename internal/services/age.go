package services

import (
	"fmt"
	"time"
)

// Age is a calendar age split into whole years, months and days.
type Age struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// TotalMonths collapses the age to whole months, as used by growth charts
// and the milestone timeline.
func (age Age) TotalMonths() int {
	return age.Years*12 + age.Months
}

func (age Age) String() string {
	if age.Years > 0 {
		return fmt.Sprintf("%dy%dm", age.Years, age.Months)
	}
	if age.Months > 0 {
		return fmt.Sprintf("%dm%dd", age.Months, age.Days)
	}
	return fmt.Sprintf("%dd", age.Days)
}

// CalculateAge computes the calendar age at the given moment. The age is
// anchored on the last monthly anniversary of the birth date not after asOf,
// with the anniversary clamped to the end of short months, so a child born on
// the 31st never produces a negative day count. A birth date in the future
// yields a zero age.
func CalculateAge(birthDate time.Time, asOf time.Time) Age {
	if asOf.Before(birthDate) {
		return Age{}
	}
	birth := dateOnly(birthDate)
	now := dateOnly(asOf)

	totalMonths := (now.Year()-birth.Year())*12 + int(now.Month()) - int(birth.Month())
	if monthAnniversary(birth, totalMonths).After(now) {
		totalMonths--
	}
	anniversary := monthAnniversary(birth, totalMonths)
	days := int(now.Sub(anniversary).Hours() / 24)
	return Age{Years: totalMonths / 12, Months: totalMonths % 12, Days: days}
}

// monthAnniversary shifts the birth day-of-month forward by whole months,
// clamped to the target month's last day (a birth on Jan 31 has its February
// anniversary on the 28th or 29th).
func monthAnniversary(birth time.Time, months int) time.Time {
	shifted := time.Date(birth.Year(), birth.Month()+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	day := birth.Day()
	if last := daysInMonth(shifted); day > last {
		day = last
	}
	return time.Date(shifted.Year(), shifted.Month(), day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(moment time.Time) int {
	return time.Date(moment.Year(), moment.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func dateOnly(moment time.Time) time.Time {
	return time.Date(moment.Year(), moment.Month(), moment.Day(), 0, 0, 0, 0, time.UTC)
}

// AgeInMonths is CalculateAge collapsed to whole months.
func AgeInMonths(birthDate time.Time, asOf time.Time) int {
	return CalculateAge(birthDate, asOf).TotalMonths()
}
