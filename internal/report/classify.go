package report

import (
	"strconv"
	"time"
)

// ClassifyPolicy selects the precedence between the missing-deadline check
// and the lateness check. Historical exports disagreed on the order; the
// deadline-first rule is canonical and the default.
type ClassifyPolicy int

const (
	// DeadlineFirst classifies a missing deadline as Sem prazo before any
	// day-difference is considered.
	DeadlineFirst ClassifyPolicy = iota
	// LateFirst checks for a positive day-difference before the missing
	// deadline. Both rules agree whenever the deadline is missing, because
	// the difference is undefined then; the constant exists to document the
	// historical variant.
	LateFirst
)

// DayDifference returns resolution minus deadline in whole days, or nil when
// either endpoint is missing. Both endpoints are calendar dates.
func DayDifference(resolution, deadline *time.Time) *int {
	if resolution == nil || deadline == nil {
		return nil
	}
	days := int(resolution.Sub(*deadline).Hours() / 24)
	return &days
}

// Classify derives the SLA status from the two optional dates.
func Classify(resolution, deadline *time.Time, policy ClassifyPolicy) SLAStatus {
	diff := DayDifference(resolution, deadline)

	if policy == LateFirst && diff != nil && *diff > 0 {
		return StatusLate
	}
	if deadline == nil {
		return StatusNoDeadline
	}
	if diff != nil && *diff > 0 {
		return StatusLate
	}
	return StatusOnTime
}

func formatDayDiff(d *int) string {
	if d == nil {
		return ""
	}
	return strconv.Itoa(*d)
}
