package models

import (
	"strings"
	"time"
)

// Session is a scheduled offering of a camp
type Session struct {
	ID         string   `json:"id,omitempty"`
	CampID     string   `json:"camp_id,omitempty"`
	Name       string   `json:"name,omitempty"`
	Label      string   `json:"label,omitempty"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	StartTime  *string  `json:"start_time,omitempty"`
	EndTime    *string  `json:"end_time,omitempty"`
	DaysOfWeek []string `json:"days_of_week,omitempty"`
	MinAge     *int     `json:"min_age,omitempty"`
	MaxAge     *int     `json:"max_age,omitempty"`
	Price      *float64 `json:"price,omitempty"`
	Capacity   *int     `json:"capacity,omitempty"`

	// Camp is only populated when a session is listed on its own
	Camp *CampSummary `json:"camps,omitempty"`
}

// CampSummary is the slice of a camp shown next to a standalone session
type CampSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// InterestTag is a topical label attached to a camp. Tag and InterestName
// are two spellings of the same concept; Label is the canonical form that
// filters compare against.
type InterestTag struct {
	ID           string  `json:"id,omitempty"`
	Tag          *string `json:"tag,omitempty"`
	InterestName *string `json:"interest_name,omitempty"`
	Label        string  `json:"-"`
}

// NewInterestTag builds a tag from its wire fields and fills in Label
func NewInterestTag(id string, tag, interestName *string) InterestTag {
	t := InterestTag{ID: id, Tag: tag, InterestName: interestName}
	t.Label = CanonicalLabel(tag, interestName)
	return t
}

// CanonicalLabel returns the trimmed tag, falling back to the trimmed interest name
func CanonicalLabel(tag, interestName *string) string {
	if tag != nil {
		if s := strings.TrimSpace(*tag); s != "" {
			return s
		}
	}
	if interestName != nil {
		return strings.TrimSpace(*interestName)
	}
	return ""
}

// Camp is a provider offering one or more sessions
type Camp struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Location    string        `json:"location,omitempty"`
	Description string        `json:"description,omitempty"`
	WebsiteURL  string        `json:"website_url,omitempty"`
	ZipcodeID   *string       `json:"zipcode_id,omitempty"`
	CreatedAt   *time.Time    `json:"created_at,omitempty"`
	UpdatedAt   *time.Time    `json:"updated_at,omitempty"`
	Sessions    []Session     `json:"camp_sessions"`
	Interests   []InterestTag `json:"camp_interests"`
}

// TimeOfDay buckets sessions by their start and end hour
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	FullDay   TimeOfDay = "full-day"
)

// Criteria is the decoded filter request. Nil pointers and empty slices are
// inactive criteria.
type Criteria struct {
	Age            *int
	Interests      []string
	DateRangeStart *time.Time
	DateRangeEnd   *time.Time
	DaysOfWeek     []string
	TimeOfDay      TimeOfDay
	Zipcode        string
	MaxDistance    *float64
	MinPrice       *float64
	MaxPrice       *float64
	HideConflicts  bool
	ChildID        string
	Query          string
}

// SavedSet is the client-held collection of bookmarked ids
type SavedSet struct {
	ChildID    string   `json:"child_id,omitempty"`
	CampIDs    []string `json:"camp_ids"`
	SessionIDs []string `json:"session_ids"`
}

// ConflictReport lists the saved sessions one session clashes with
type ConflictReport struct {
	SessionID string   `json:"session_id"`
	SavedIDs  []string `json:"saved_session_ids"`
}

// CampsResponse is the body of the camp listing endpoint
type CampsResponse struct {
	Camps []Camp `json:"camps"`
}

// SaveResponse is returned by the save and unsave endpoints
type SaveResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	CampID    string `json:"campId,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	Saved     bool   `json:"saved"`
	SavedSet  string `json:"savedSet"`
}
