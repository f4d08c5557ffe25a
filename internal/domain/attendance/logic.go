package attendance

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const clockLayout = "15:04:05"

const (
	lateAfter       = "09:30:00"
	halfDayMinHours = 4.0
)

// ParseClock accepts HH:MM:SS or HH:MM and returns the offset from midnight.
func ParseClock(value string) (time.Duration, error) {
	for _, layout := range []string{clockLayout, "15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("%w: clock time %q", ErrInvalidInput, value)
}

// NormalizeClock rewrites a clock time as HH:MM:SS.
func NormalizeClock(value string) (string, error) {
	d, err := ParseClock(value)
	if err != nil {
		return "", err
	}
	t := time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).Add(d)
	return t.Format(clockLayout), nil
}

// CheckInStatus is late after 09:30, otherwise present.
func CheckInStatus(checkIn string) (string, error) {
	in, err := ParseClock(checkIn)
	if err != nil {
		return "", err
	}
	cutoff, _ := ParseClock(lateAfter)
	if in > cutoff {
		return StatusLate, nil
	}
	return StatusPresent, nil
}

// WorkHours is the span between check-in and check-out, rounded to 2 places.
func WorkHours(checkIn, checkOut string) (float64, error) {
	in, err := ParseClock(checkIn)
	if err != nil {
		return 0, err
	}
	out, err := ParseClock(checkOut)
	if err != nil {
		return 0, err
	}
	if out < in {
		return 0, errors.New("check-out is before check-in")
	}
	return math.Round(out.Hours()*100-in.Hours()*100) / 100, nil
}

// CheckOutStatus downgrades a short day to half-day.
func CheckOutStatus(current string, hours float64) string {
	if hours < halfDayMinHours {
		return StatusHalfDay
	}
	if current == "" || current == StatusAbsent {
		return StatusPresent
	}
	return current
}
