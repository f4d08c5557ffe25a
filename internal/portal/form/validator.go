// Package form holds the client-side checks that gate a submit.
package form

import (
	"math"
	"strconv"
	"strings"

	"idms/internal/wiredate"
)

// MaxDescriptionWords is the soft cap applied to description inputs.
const MaxDescriptionWords = 6

const (
	ReasonRequired  = "is required"
	ReasonDateOrder = "Start Date cannot be after End Date."
)

type Issue struct {
	Field  string
	Reason string
}

// ValidationError blocks a submit before any request is sent.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Field == "" {
			parts = append(parts, issue.Reason)
			continue
		}
		parts = append(parts, issue.Field+" "+issue.Reason)
	}
	return strings.Join(parts, "; ")
}

// Field returns the first reason recorded for field.
func (e *ValidationError) Field(field string) (string, bool) {
	for _, issue := range e.Issues {
		if issue.Field == field {
			return issue.Reason, true
		}
	}
	return "", false
}

type Validator struct {
	issues []Issue
}

func (v *Validator) Add(field, reason string) {
	v.issues = append(v.issues, Issue{Field: field, Reason: reason})
}

// Required fails on blank strings.
func (v *Validator) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		v.Add(field, ReasonRequired)
		return false
	}
	return true
}

// Date parses a YYYY-MM-DD input. Blank values are left to Required.
func (v *Validator) Date(field, value string) (wiredate.Date, bool) {
	if strings.TrimSpace(value) == "" {
		return wiredate.Date{}, false
	}
	d, err := wiredate.Parse(value)
	if err != nil {
		v.Add(field, "must be a date in YYYY-MM-DD form")
		return wiredate.Date{}, false
	}
	return d, true
}

// Amount parses a numeric input. Negative values are accepted here.
func (v *Validator) Amount(field, value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		v.Add(field, "must be a number")
		return 0, false
	}
	return f, true
}

// DateOrder fails when start falls after end. The issue carries the
// message the leave form shows.
func (v *Validator) DateOrder(startField string, start, end wiredate.Date) {
	if start.IsZero() || end.IsZero() {
		return
	}
	if start.After(end) {
		v.Add(startField, ReasonDateOrder)
	}
}

// Err returns a *ValidationError when any issue was recorded.
func (v *Validator) Err() error {
	if len(v.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: append([]Issue(nil), v.issues...)}
}

// WordCount counts whitespace-separated tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// TruncateWords keeps the first n tokens of s, joined by single spaces,
// when s has more than n. Otherwise s is returned unchanged.
func TruncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ")
}
