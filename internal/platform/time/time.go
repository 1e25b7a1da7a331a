// Package time contains calendar date helpers
package time

import (
	"strings"
	"time"

	perr "villagevisits/internal/platform/errors"
)

// Date parses a YYYY-MM-DD calendar day as UTC midnight
// the error is InvalidArgument tagged with field
func Date(field, s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, perr.WithField(perr.InvalidArgf("%s must be a YYYY-MM-DD date", field), field)
	}
	return t, nil
}

// DayStart truncates t to midnight UTC
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Window returns the first day of a range of days calendar days ending on now's day
func Window(now time.Time, days int) time.Time {
	if days < 1 {
		days = 1
	}
	return DayStart(now).AddDate(0, 0, -(days - 1))
}
