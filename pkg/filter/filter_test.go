package filter

import (
	"testing"
	"time"

	"github.com/arnavshah/campfinder-api/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }
func floatp(v float64) *float64 { return &v }
func strp(v string) *string { return &v }
func datep(s string) *time.Time {
	t, ok := ParseDate(s)
	if !ok {
		panic("bad date " + s)
	}
	return &t
}

func tag(label string) models.InterestTag {
	return models.NewInterestTag("", strp(label), nil)
}

func ids(camps []models.Camp) []string {
	out := make([]string, 0, len(camps))
	for _, c := range camps {
		out = append(out, c.ID)
	}
	return out
}

func sampleCamps() []models.Camp {
	return []models.Camp{
		{
			ID:   "art",
			Name: "Art Barn",
			Sessions: []models.Session{{
				ID: "art-1", StartDate: "2025-06-02", EndDate: "2025-06-06",
				StartTime: strp("13:00"), EndTime: strp("16:00"),
				DaysOfWeek: []string{"Monday", "Tuesday"},
				MinAge:     intp(6), MaxAge: intp(10), Price: floatp(200),
			}},
			Interests: []models.InterestTag{tag("Art")},
		},
		{
			ID:   "robot",
			Name: "Robot Lab",
			Sessions: []models.Session{{
				ID: "robot-1", StartDate: "2025-07-07", EndDate: "2025-07-11",
				StartTime: strp("09:00:00"), EndTime: strp("17:30:00"),
				DaysOfWeek: []string{"Monday", "Wednesday", "Friday"},
				MinAge:     intp(11), MaxAge: intp(15), Price: floatp(450),
			}},
			Interests: []models.InterestTag{tag("STEM"), tag("Coding")},
		},
		{
			ID:   "swim",
			Name: "Swim School",
			Sessions: []models.Session{{
				ID: "swim-1", StartDate: "2025-06-16", EndDate: "2025-06-20",
				StartTime: strp("08:00"), EndTime: strp("11:00"),
				DaysOfWeek: []string{"Thursday"},
			}},
		},
		{ID: "empty", Name: "Zero Sessions"},
	}
}

func TestCamps_EmptyCriteriaKeepsOrder(t *testing.T) {
	camps := sampleCamps()
	got := Camps(camps, models.Criteria{}, nil)
	assert.Equal(t, camps, got)
	assert.Equal(t, []string{"art", "robot", "swim", "empty"}, ids(got))
}

func TestCamps_DoesNotMutateInput(t *testing.T) {
	camps := sampleCamps()
	before := sampleCamps()
	Camps(camps, models.Criteria{Age: intp(12), Interests: []string{"STEM"}}, nil)
	assert.Equal(t, before, camps)
}

func TestCamps_Age(t *testing.T) {
	tests := []struct {
		name string
		age  int
		want []string
	}{
		{"young", 7, []string{"art", "swim"}},
		{"teen", 13, []string{"robot", "swim"}},
		{"upper default bound", 18, []string{"swim"}},
		{"older than every band", 19, []string{}},
		{"zero is ignored", 0, []string{"art", "robot", "swim", "empty"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Camps(sampleCamps(), models.Criteria{Age: intp(tt.age)}, nil)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestMatchesAge_Defaults(t *testing.T) {
	s := models.Session{}
	for age := 0; age <= 18; age++ {
		assert.True(t, MatchesAge(s, age), "age %d", age)
	}
	assert.False(t, MatchesAge(s, 19))
	assert.False(t, MatchesAge(models.Session{MinAge: intp(5)}, 4))
}

func TestCamps_InterestsExactMatch(t *testing.T) {
	got := Camps(sampleCamps(), models.Criteria{Interests: []string{"STEM", "Art"}}, nil)
	assert.Equal(t, []string{"art", "robot"}, ids(got))

	got = Camps(sampleCamps(), models.Criteria{Interests: []string{"stem"}}, nil)
	assert.Empty(t, got)
}

func TestCamps_InterestFallsBackToInterestName(t *testing.T) {
	camp := models.Camp{
		ID:        "drama",
		Interests: []models.InterestTag{models.NewInterestTag("i1", strp("  "), strp(" Theater "))},
	}
	got := Camps([]models.Camp{camp}, models.Criteria{Interests: []string{"Theater"}}, nil)
	assert.Equal(t, []string{"drama"}, ids(got))
}

func TestCamps_DateRange(t *testing.T) {
	tests := []struct {
		name     string
		from, to *time.Time
		want     []string
	}{
		{"both bounds", datep("2025-06-05"), datep("2025-06-17"), []string{"art", "swim"}},
		{"start only", datep("2025-06-18"), nil, []string{"robot", "swim"}},
		{"end only", nil, datep("2025-06-02"), []string{"art"}},
		{"touching end day", datep("2025-07-11"), datep("2025-07-20"), []string{"robot"}},
		{"no overlap", datep("2025-08-01"), datep("2025-08-30"), []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := models.Criteria{DateRangeStart: tt.from, DateRangeEnd: tt.to}
			assert.Equal(t, tt.want, ids(Camps(sampleCamps(), c, nil)))
		})
	}
}

func TestInDateRange_UnparseableSessionNeverMatches(t *testing.T) {
	s := models.Session{StartDate: "June 1st", EndDate: "2025-06-10"}
	assert.False(t, InDateRange(s, datep("2025-06-01"), datep("2025-06-30")))
	assert.False(t, InDateRange(models.Session{}, datep("2025-06-01"), nil))
}

func TestDatesOverlap_Symmetric(t *testing.T) {
	ranges := [][2]string{
		{"2025-06-01", "2025-06-05"},
		{"2025-06-05", "2025-06-09"},
		{"2025-06-10", "2025-06-12"},
		{"2025-05-01", "2025-07-01"},
	}
	for _, a := range ranges {
		for _, b := range ranges {
			aStart, _ := ParseDate(a[0])
			aEnd, _ := ParseDate(a[1])
			bStart, _ := ParseDate(b[0])
			bEnd, _ := ParseDate(b[1])
			assert.Equal(t,
				DatesOverlap(aStart, aEnd, bStart, bEnd),
				DatesOverlap(bStart, bEnd, aStart, aEnd),
				"%v vs %v", a, b)
		}
	}
}

func TestCamps_Weekdays(t *testing.T) {
	got := Camps(sampleCamps(), models.Criteria{DaysOfWeek: []string{"wednesday", "Thursday"}}, nil)
	assert.Equal(t, []string{"robot", "swim"}, ids(got))
}

func TestCamps_TimeOfDay(t *testing.T) {
	tests := []struct {
		bucket models.TimeOfDay
		want   []string
	}{
		{models.Morning, []string{"robot", "swim"}},
		{models.Afternoon, []string{"art"}},
		{models.FullDay, []string{"robot"}},
		{"evening", []string{"art", "robot", "swim", "empty"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.bucket), func(t *testing.T) {
			got := Camps(sampleCamps(), models.Criteria{TimeOfDay: tt.bucket}, nil)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestInTimeOfDay_MissingTimeNeverMatches(t *testing.T) {
	s := models.Session{StartTime: strp("09:00")}
	for _, b := range []models.TimeOfDay{models.Morning, models.Afternoon, models.FullDay} {
		assert.False(t, InTimeOfDay(s, b))
	}
}

func TestCamps_LocationIsIdentity(t *testing.T) {
	c := models.Criteria{Zipcode: "94110", MaxDistance: floatp(5)}
	assert.Equal(t, sampleCamps(), Camps(sampleCamps(), c, nil))
}

func TestCamps_PriceAnySession(t *testing.T) {
	camp := models.Camp{
		ID: "mixed",
		Sessions: []models.Session{
			{ID: "a", Price: floatp(75)},
			{ID: "b", Price: floatp(150)},
		},
	}
	got := Camps([]models.Camp{camp}, models.Criteria{MinPrice: floatp(50), MaxPrice: floatp(100)}, nil)
	assert.Equal(t, []string{"mixed"}, ids(got))

	got = Camps(sampleCamps(), models.Criteria{MaxPrice: floatp(300)}, nil)
	assert.Equal(t, []string{"art"}, ids(got), "sessions without a price never match")

	got = Camps(sampleCamps(), models.Criteria{MinPrice: floatp(300)}, nil)
	assert.Equal(t, []string{"robot"}, ids(got))
}

func TestCamps_PredicatesIntersect(t *testing.T) {
	c := models.Criteria{
		Age:        intp(12),
		Interests:  []string{"STEM", "Art"},
		DaysOfWeek: []string{"Monday"},
		TimeOfDay:  models.FullDay,
	}
	assert.Equal(t, []string{"robot"}, ids(Camps(sampleCamps(), c, nil)))
}

func conflictCamp(days ...string) models.Camp {
	return models.Camp{
		ID: "A",
		Sessions: []models.Session{{
			ID: "a1", StartDate: "2025-06-10", EndDate: "2025-06-14",
			StartTime: strp("09:00"), EndTime: strp("12:00"),
			DaysOfWeek: days,
		}},
	}
}

func savedSession(days ...string) models.Session {
	return models.Session{
		ID: "s1", StartDate: "2025-06-12", EndDate: "2025-06-16",
		StartTime: strp("09:00"), EndTime: strp("12:00"),
		DaysOfWeek: days,
	}
}

func TestCamps_HideConflicts(t *testing.T) {
	saved := []models.Session{savedSession("Monday", "Tuesday")}
	camps := []models.Camp{conflictCamp("Monday", "Wednesday")}

	got := Camps(camps, models.Criteria{HideConflicts: true}, saved)
	assert.Empty(t, got)

	got = Camps(camps, models.Criteria{HideConflicts: false}, saved)
	assert.Len(t, got, 1, "conflicts are only hidden on request")

	got = Camps(camps, models.Criteria{HideConflicts: true}, nil)
	assert.Len(t, got, 1, "no saved sessions disables the check")
}

func TestCamps_NoConflictWithoutSharedWeekday(t *testing.T) {
	saved := []models.Session{savedSession("Tuesday")}
	got := Camps([]models.Camp{conflictCamp("Wednesday")}, models.Criteria{HideConflicts: true}, saved)
	assert.Len(t, got, 1)
}

func TestConflict(t *testing.T) {
	base := conflictCamp("Monday").Sessions[0]

	t.Run("times apart", func(t *testing.T) {
		other := savedSession("Monday")
		other.StartTime, other.EndTime = strp("12:00"), strp("15:00")
		assert.False(t, Conflict(base, other))
	})

	t.Run("missing times fall through to weekdays", func(t *testing.T) {
		other := savedSession("Monday")
		other.StartTime, other.EndTime = nil, nil
		assert.True(t, Conflict(base, other))
	})

	t.Run("dates apart", func(t *testing.T) {
		other := savedSession("Monday")
		other.StartDate, other.EndDate = "2025-06-15", "2025-06-20"
		assert.False(t, Conflict(base, other))
	})

	t.Run("unparseable dates", func(t *testing.T) {
		other := savedSession("Monday")
		other.StartDate = ""
		assert.False(t, Conflict(base, other))
	})
}

func TestConflictReports(t *testing.T) {
	camp := conflictCamp("Monday")
	saved := []models.Session{savedSession("Monday"), {ID: "far", StartDate: "2026-01-01", EndDate: "2026-01-02"}}

	reports := ConflictReports(camp, saved)
	require.Len(t, reports, 1)
	assert.Equal(t, "a1", reports[0].SessionID)
	assert.Equal(t, []string{"s1"}, reports[0].SavedIDs)
}

func TestParseClock(t *testing.T) {
	m, ok := ParseClock(strp("09:30:00"))
	require.True(t, ok)
	assert.Equal(t, 570, m)

	m, ok = ParseClock(strp("17:05"))
	require.True(t, ok)
	assert.Equal(t, 1025, m)

	_, ok = ParseClock(strp("noon"))
	assert.False(t, ok)
	_, ok = ParseClock(nil)
	assert.False(t, ok)
}
