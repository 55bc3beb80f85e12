package handlers

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/arnavshah/campfinder-api/pkg/filter"
	"github.com/arnavshah/campfinder-api/pkg/models"
)

// ParseCriteria decodes the camp search query. Values that fail to parse are
// dropped rather than rejected.
func ParseCriteria(q url.Values) models.Criteria {
	var c models.Criteria

	if age, err := strconv.Atoi(strings.TrimSpace(q.Get("age"))); err == nil && age > 0 {
		c.Age = &age
	}

	c.Interests = multiValue(q["interest"], false)
	c.DaysOfWeek = multiValue(q["daysOfWeek"], true)

	if t, ok := filter.ParseDate(q.Get("dateRangeStart")); ok {
		c.DateRangeStart = &t
	}
	if t, ok := filter.ParseDate(q.Get("dateRangeEnd")); ok {
		c.DateRangeEnd = &t
	}
	if c.DateRangeStart == nil && c.DateRangeEnd == nil {
		if week, ok := filter.ParseDate(q.Get("week")); ok {
			start, end := week, week
			c.DateRangeStart, c.DateRangeEnd = &start, &end
		}
	}

	c.TimeOfDay = models.TimeOfDay(strings.ToLower(strings.TrimSpace(q.Get("timeOfDay"))))
	c.Zipcode = strings.TrimSpace(q.Get("zipcode"))
	c.MaxDistance = parseAmount(q.Get("maxDistance"))
	c.MinPrice = parseAmount(q.Get("minPrice"))
	c.MaxPrice = parseAmount(q.Get("maxPrice"))

	if hide, err := strconv.ParseBool(q.Get("hideConflicts")); err == nil {
		c.HideConflicts = hide
	}
	c.ChildID = strings.TrimSpace(q.Get("childId"))
	c.Query = strings.TrimSpace(q.Get("q"))

	return c
}

// multiValue trims repeated parameters, optionally splitting comma lists
func multiValue(values []string, splitCommas bool) []string {
	var out []string
	for _, v := range values {
		parts := []string{v}
		if splitCommas {
			parts = strings.Split(v, ",")
		}
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func parseAmount(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
