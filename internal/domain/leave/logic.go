package leave

import (
	"errors"
	"strings"

	"idms/internal/wiredate"
)

var errRangeOrder = errors.New("start date cannot be after end date")

// CalculateDays returns the inclusive day count between start and end.
func CalculateDays(start, end wiredate.Date) (int, error) {
	if start.IsZero() || end.IsZero() {
		return 0, errors.New("start and end dates are required")
	}
	if start.After(end) {
		return 0, errRangeOrder
	}
	hours := end.Time().Sub(start.Time()).Hours()
	return int(hours/24) + 1, nil
}

// NormalizeStatus maps any casing of a known status to its stored form.
func NormalizeStatus(status string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case StatusPending:
		return StatusPending, true
	case StatusApproved:
		return StatusApproved, true
	case StatusRejected:
		return StatusRejected, true
	}
	return "", false
}

// CanDecide reports whether a request in status from may move to status to.
func CanDecide(from, to string) bool {
	return from == StatusPending && (to == StatusApproved || to == StatusRejected)
}

// WeekdayName is the holiday "day" label derived from its start date.
func WeekdayName(d wiredate.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Weekday().String()
}
