package ingest

import (
	"strings"
	"time"
)

// Display formats used on the processed sheet. The deadline keeps the
// day-first form the source exports use.
const (
	ResolutionDisplayFormat = "2006-01-02"
	DeadlineDisplayFormat   = "02/01/2006"
)

// Layouts for the resolution timestamp, tried in order. ISO first, then the
// common export forms.
var resolutionLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// Layouts for the deadline column. Day-first throughout: "03/04/2024" is the
// 3rd of April.
var deadlineLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseResolutionDate parses a resolution timestamp and truncates it to
// calendar-date granularity. An unparseable value yields nil, never an error.
func ParseResolutionDate(value string) *time.Time {
	return parseDate(value, resolutionLayouts)
}

// ParseDeadlineDate parses a deadline with day-first disambiguation,
// truncated to calendar-date granularity. Unparseable values yield nil.
func ParseDeadlineDate(value string) *time.Time {
	return parseDate(value, deadlineLayouts)
}

func parseDate(value string, layouts []string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, value); err == nil {
			d := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}
