package filter

import (
	"strings"
	"time"

	"github.com/arnavshah/campfinder-api/pkg/models"
)

const dateLayout = "2006-01-02"

var clockLayouts = []string{"15:04:05", "15:04"}

// ParseDate parses a calendar date. Full timestamps are accepted and
// truncated to their date.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, false
		}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

// ParseClock parses a wall-clock time and returns minutes since midnight
func ParseClock(s *string) (int, bool) {
	if s == nil {
		return 0, false
	}
	v := strings.TrimSpace(*s)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Hour()*60 + t.Minute(), true
		}
	}
	return 0, false
}

// sessionDates returns the parsed inclusive date range of a session
func sessionDates(s models.Session) (start, end time.Time, ok bool) {
	start, okStart := ParseDate(s.StartDate)
	end, okEnd := ParseDate(s.EndDate)
	return start, end, okStart && okEnd
}

// sessionClock returns the parsed start and end minutes of a session
func sessionClock(s models.Session) (start, end int, ok bool) {
	start, okStart := ParseClock(s.StartTime)
	end, okEnd := ParseClock(s.EndTime)
	return start, end, okStart && okEnd
}

// DatesOverlap checks if two inclusive date ranges share at least one day
func DatesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// ClockOverlap checks if two half-open minute ranges overlap
func ClockOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// DaysIntersect reports whether two weekday sets share a day
func DaysIntersect(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if strings.EqualFold(strings.TrimSpace(x), strings.TrimSpace(y)) {
				return true
			}
		}
	}
	return false
}

// Conflict checks whether two sessions clash. Dates must overlap and weekdays
// must intersect; times are only compared when both sessions carry them.
func Conflict(a, b models.Session) bool {
	aStart, aEnd, okA := sessionDates(a)
	bStart, bEnd, okB := sessionDates(b)
	if !okA || !okB || !DatesOverlap(aStart, aEnd, bStart, bEnd) {
		return false
	}

	aFrom, aTo, okA := sessionClock(a)
	bFrom, bTo, okB := sessionClock(b)
	if okA && okB && !ClockOverlap(aFrom, aTo, bFrom, bTo) {
		return false
	}

	return DaysIntersect(a.DaysOfWeek, b.DaysOfWeek)
}

// Conflicts returns the ids of the saved sessions that clash with s
func Conflicts(s models.Session, saved []models.Session) []string {
	var ids []string
	for _, other := range saved {
		if other.ID != "" && other.ID == s.ID {
			continue
		}
		if Conflict(s, other) {
			ids = append(ids, other.ID)
		}
	}
	return ids
}

// ConflictReports builds a report for every session of camp that clashes
// with a saved session
func ConflictReports(camp models.Camp, saved []models.Session) []models.ConflictReport {
	var reports []models.ConflictReport
	for _, s := range camp.Sessions {
		if ids := Conflicts(s, saved); len(ids) > 0 {
			reports = append(reports, models.ConflictReport{SessionID: s.ID, SavedIDs: ids})
		}
	}
	return reports
}
