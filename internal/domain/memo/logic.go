package memo

import (
	"slices"
	"strings"
)

// Reaches reports whether a sent memo is addressed to the audience.
func Reaches(m Memo, a Audience) bool {
	if m.Status == StatusDraft {
		return false
	}
	if m.SentToAll {
		return true
	}
	if a.EmployeeID != "" && slices.Contains(m.RecipientEmployeeIDs, a.EmployeeID) {
		return true
	}
	if a.Department == "" {
		return false
	}
	return slices.ContainsFunc(m.RecipientDepartments, func(d string) bool {
		return strings.EqualFold(d, a.Department)
	})
}

func normalizePriority(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	}
	return PriorityMedium
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
