// Package dates provides month/date period keys and calendar helpers for the
// dashboard. Keys are plain strings ("2006-01", "2006-01-02") because that is
// how the store indexes them.
package dates

import (
	"regexp"
	"time"
)

const (
	// MonthLayout is the key format for monthly targets and totals.
	MonthLayout = "2006-01"
	// DateLayout is the key format for daily activity rows.
	DateLayout = "2006-01-02"
)

var (
	monthKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
	dateKeyPattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	monthPrefixPattern = regexp.MustCompile(`^\d{4}-\d{2}`)
	datePrefixPattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

// MonthKey formats t as a month key.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// DateKey formats t as a date key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// IsMonthKey reports whether value looks like YYYY-MM.
func IsMonthKey(value string) bool {
	if !monthKeyPattern.MatchString(value) {
		return false
	}
	_, err := time.Parse(MonthLayout, value)
	return err == nil
}

// IsDateKey reports whether value looks like YYYY-MM-DD and names a real day.
func IsDateKey(value string) bool {
	if !dateKeyPattern.MatchString(value) {
		return false
	}
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

// ParseDateKey converts a date key back to a time (midnight UTC).
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(DateLayout, key)
}

// WeekStart returns the Monday of the week containing t, truncated to a date.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// AddDays shifts a date key by a number of days.
func AddDays(key string, days int) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return DateKey(t.AddDate(0, 0, days)), nil
}

// MonthElapsedRatio returns day-of-month over days-in-month for t, in (0, 1].
func MonthElapsedRatio(t time.Time) float64 {
	daysInMonth := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
	return float64(t.Day()) / float64(daysInMonth)
}

// NormalizeMonthParam salvages a month key from a raw query parameter.
// Full date keys are truncated to their month; anything else that does not
// start with YYYY-MM yields "" so the caller can fall back to the current
// period.
func NormalizeMonthParam(raw string) string {
	if raw == "" {
		return ""
	}
	if IsMonthKey(raw) {
		return raw
	}
	if match := monthPrefixPattern.FindString(raw); match != "" && IsMonthKey(match) {
		return match
	}
	return ""
}

// NormalizeDateParam salvages a date key from a raw query parameter, or ""
// when no usable prefix exists.
func NormalizeDateParam(raw string) string {
	if raw == "" {
		return ""
	}
	if IsDateKey(raw) {
		return raw
	}
	if match := datePrefixPattern.FindString(raw); match != "" && IsDateKey(match) {
		return match
	}
	return ""
}

// MonthLabel renders a month key for display, e.g. "January 2006".
func MonthLabel(key string) string {
	t, err := time.Parse(MonthLayout, key)
	if err != nil {
		return key
	}
	return t.Format("January 2006")
}

// DateLabel renders a date key for display, e.g. "January 2, 2006".
func DateLabel(key string) string {
	t, err := ParseDateKey(key)
	if err != nil {
		return key
	}
	return t.Format("January 2, 2006")
}

// WeekLabel renders a week range for display, e.g. "Jan 2 - Jan 8, 2006".
func WeekLabel(startKey string) string {
	start, err := ParseDateKey(startKey)
	if err != nil {
		return startKey
	}
	end := start.AddDate(0, 0, 6)
	return start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006")
}
