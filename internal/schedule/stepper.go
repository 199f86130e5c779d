// Package schedule implements the calendar arithmetic for recurring
// transactions: frequency stepping, installment splitting and credit
// card billing cycles. All functions are pure.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/centavo-app/backend/internal/types"
)

var ErrUnsupportedFrequency = errors.New("the frequency is not supported")

// AtNoon normalizes a time to 12:00 on the same day, keeping the
// location. Working at noon keeps date arithmetic from shifting a day
// across daylight saving transitions.
func AtNoon(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 12, 0, 0, 0, t.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

// Step returns the next occurrence after current for the frequency.
//
// For month-based frequencies the target day of month is
// min(anchorDay, days in the target month). The anchor day is the day
// of month fixed when the recurring transaction was created, so a
// January 31 anchor lands on February 29 and recovers to March 31
// instead of drifting to the 29th. Pass anchorDay 0 to anchor on the
// day of current.
func Step(current time.Time, frequency types.Frequency, anchorDay int) (time.Time, error) {
	t := AtNoon(current)

	switch frequency {
	case types.FrequencyDaily:
		return t.AddDate(0, 0, 1), nil
	case types.FrequencyWeekly:
		return t.AddDate(0, 0, 7), nil
	case types.FrequencyMonthly:
		return stepMonths(t, 1, anchorDay), nil
	case types.FrequencySemestrally:
		return stepMonths(t, 6, anchorDay), nil
	case types.FrequencyYearly:
		year, month, day := t.Date()
		if max := daysIn(year+1, month); day > max {
			day = max
		}
		return time.Date(year+1, month, day, 12, 0, 0, 0, t.Location()), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnsupportedFrequency, frequency)
}

// stepMonths advances t by months whole calendar months, clamping the
// day of month to the anchor day or the end of the target month,
// whichever comes first. t must already be normalized to noon.
func stepMonths(t time.Time, months, anchorDay int) time.Time {
	if anchorDay < 1 {
		anchorDay = t.Day()
	}

	year, month, _ := t.Date()

	// Construct the first of the target month so that AddDate-style
	// day overflow can never skip a month
	target := time.Date(year, month+time.Month(months), 1, 12, 0, 0, 0, t.Location())

	day := anchorDay
	if max := daysIn(target.Year(), target.Month()); day > max {
		day = max
	}

	return time.Date(target.Year(), target.Month(), day, 12, 0, 0, 0, t.Location())
}

// AddMonths advances t by n whole calendar months, clamping to the end
// of the target month. Used for installment due dates, where a purchase
// on January 31 is due on February 28/29 and not in March.
func AddMonths(t time.Time, n int) time.Time {
	return stepMonths(AtNoon(t), n, 0)
}

// InitializeNextDueDate returns the first occurrence of a recurring
// transaction that is not before now. The search starts at startDate
// and repeatedly applies Step with the anchor day taken from startDate.
// A startDate that is not before now is returned unchanged.
func InitializeNextDueDate(startDate, now time.Time, frequency types.Frequency) (time.Time, error) {
	if !startDate.Before(now) {
		return startDate, nil
	}

	anchorDay := startDate.Day()
	candidate := AtNoon(startDate)

	for candidate.Before(now) {
		next, err := Step(candidate, frequency, anchorDay)
		if err != nil {
			return time.Time{}, err
		}
		candidate = next
	}

	return candidate, nil
}
