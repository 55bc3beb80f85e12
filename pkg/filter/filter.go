// Package filter selects camps matching a set of search criteria and detects
// schedule conflicts between sessions.
package filter

import (
	"math"
	"time"

	"github.com/arnavshah/campfinder-api/pkg/models"
)

const (
	defaultMinAge = 0
	defaultMaxAge = 18
)

// predicate decides whether a camp stays in the result
type predicate func(camp models.Camp) bool

// Camps returns the camps matching every active criterion, in input order.
// saved holds the caller's already saved sessions and is only consulted when
// c.HideConflicts is set.
func Camps(camps []models.Camp, c models.Criteria, saved []models.Session) []models.Camp {
	preds := predicates(c, saved)

	out := make([]models.Camp, 0, len(camps))
	for _, camp := range camps {
		if matchesAll(camp, preds) {
			out = append(out, camp)
		}
	}
	return out
}

func matchesAll(camp models.Camp, preds []predicate) bool {
	for _, p := range preds {
		if !p(camp) {
			return false
		}
	}
	return true
}

// predicates builds the list of active predicates for c
func predicates(c models.Criteria, saved []models.Session) []predicate {
	var preds []predicate

	if c.Age != nil && *c.Age > 0 {
		preds = append(preds, byAge(*c.Age))
	}
	if len(c.Interests) > 0 {
		preds = append(preds, byInterests(c.Interests))
	}
	if c.DateRangeStart != nil || c.DateRangeEnd != nil {
		preds = append(preds, byDateRange(c.DateRangeStart, c.DateRangeEnd))
	}
	if len(c.DaysOfWeek) > 0 {
		preds = append(preds, byDays(c.DaysOfWeek))
	}
	if bucket := c.TimeOfDay; bucket == models.Morning || bucket == models.Afternoon || bucket == models.FullDay {
		preds = append(preds, byTimeOfDay(bucket))
	}
	if c.Zipcode != "" || c.MaxDistance != nil {
		preds = append(preds, byLocation(c.Zipcode, c.MaxDistance))
	}
	if c.MinPrice != nil || c.MaxPrice != nil {
		preds = append(preds, byPrice(c.MinPrice, c.MaxPrice))
	}
	if c.HideConflicts && len(saved) > 0 {
		preds = append(preds, withoutConflicts(saved))
	}

	return preds
}

// anySession is true when at least one session of the camp satisfies match
func anySession(camp models.Camp, match func(models.Session) bool) bool {
	for _, s := range camp.Sessions {
		if match(s) {
			return true
		}
	}
	return false
}

func byAge(age int) predicate {
	return func(camp models.Camp) bool {
		return anySession(camp, func(s models.Session) bool {
			return MatchesAge(s, age)
		})
	}
}

// MatchesAge checks the age against the session band, with missing bounds
// defaulting to 0 and 18
func MatchesAge(s models.Session, age int) bool {
	minAge, maxAge := defaultMinAge, defaultMaxAge
	if s.MinAge != nil {
		minAge = *s.MinAge
	}
	if s.MaxAge != nil {
		maxAge = *s.MaxAge
	}
	return minAge <= age && age <= maxAge
}

func byInterests(interests []string) predicate {
	wanted := make(map[string]struct{}, len(interests))
	for _, i := range interests {
		wanted[i] = struct{}{}
	}
	return func(camp models.Camp) bool {
		for _, tag := range camp.Interests {
			if _, ok := wanted[tag.Label]; ok {
				return true
			}
		}
		return false
	}
}

func byDateRange(from, to *time.Time) predicate {
	return func(camp models.Camp) bool {
		return anySession(camp, func(s models.Session) bool {
			return InDateRange(s, from, to)
		})
	}
}

// InDateRange checks a session against a range where either bound may be
// missing. Sessions with unparseable dates never match.
func InDateRange(s models.Session, from, to *time.Time) bool {
	start, end, ok := sessionDates(s)
	if !ok {
		return false
	}
	switch {
	case from != nil && to != nil:
		return DatesOverlap(start, end, *from, *to)
	case from != nil:
		return !end.Before(*from)
	case to != nil:
		return !start.After(*to)
	}
	return true
}

func byDays(days []string) predicate {
	return func(camp models.Camp) bool {
		return anySession(camp, func(s models.Session) bool {
			return DaysIntersect(s.DaysOfWeek, days)
		})
	}
}

func byTimeOfDay(bucket models.TimeOfDay) predicate {
	return func(camp models.Camp) bool {
		return anySession(camp, func(s models.Session) bool {
			return InTimeOfDay(s, bucket)
		})
	}
}

// InTimeOfDay buckets a session by whole hours. Sessions without both times
// never match.
func InTimeOfDay(s models.Session, bucket models.TimeOfDay) bool {
	start, end, ok := sessionClock(s)
	if !ok {
		return false
	}
	startHour, endHour := start/60, end/60

	switch bucket {
	case models.Morning:
		return startHour < 12
	case models.Afternoon:
		return startHour >= 12 && startHour < 17 && endHour < 17
	case models.FullDay:
		return startHour < 12 && endHour >= 17
	}
	return false
}

// byLocation matches every camp until zipcodes can be geocoded
func byLocation(zipcode string, maxDistance *float64) predicate {
	return func(models.Camp) bool {
		return true
	}
}

func byPrice(minPrice, maxPrice *float64) predicate {
	lo, hi := 0.0, math.Inf(1)
	if minPrice != nil {
		lo = *minPrice
	}
	if maxPrice != nil {
		hi = *maxPrice
	}
	return func(camp models.Camp) bool {
		return anySession(camp, func(s models.Session) bool {
			return s.Price != nil && *s.Price >= lo && *s.Price <= hi
		})
	}
}

func withoutConflicts(saved []models.Session) predicate {
	return func(camp models.Camp) bool {
		return !anySession(camp, func(s models.Session) bool {
			for _, other := range saved {
				if Conflict(s, other) {
					return true
				}
			}
			return false
		})
	}
}
