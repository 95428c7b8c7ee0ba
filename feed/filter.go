package feed

import (
	"strings"
	"time"

	"fjwuems/models"
	"fjwuems/utils"
)

// Mode names a feed view. The student and manager panels request the
// same collection through different modes; everything past the single
// created_at sort happens in memory here.
type Mode string

const (
	ModeAll             Mode = "all"
	ModeStudentAll      Mode = "student_all"
	ModeStudentUpcoming Mode = "student_upcoming"
	ModeStudentPast     Mode = "student_past"
	ModeManagerEvents   Mode = "manager_events"
	ModeManagerUpcoming Mode = "manager_upcoming"
	ModeManagerPast     Mode = "manager_past"
	ModeAttended        Mode = "attended"
	ModeSearch          Mode = "search"
)

// Query carries one feed request: a view mode plus the search screen's
// facet selections. Zero-valued fields are inactive.
type Query struct {
	Mode   Mode
	UserID string // scopes manager_events
	Search string // free text over title/description

	// Search facets. OR within a facet, AND across facets.
	Departments []string
	Types       []string
	Categories  []string
	Location    string // substring over venue or campus
	From        string // YYYY-MM-DD, inclusive
	To          string // YYYY-MM-DD, inclusive
	Status      string // Upcoming | Ongoing | Past | All

	Now time.Time // injectable clock; zero means time.Now()
}

func (q Query) now() time.Time {
	if q.Now.IsZero() {
		return time.Now()
	}
	return q.Now
}

// Filter applies the query to an already-sorted slice and returns the
// matching subset in unchanged relative order.
func Filter(events []models.Event, q Query) []models.Event {
	now := q.now()
	nowMs := now.UnixMilli()

	out := make([]models.Event, 0, len(events))
	for i := range events {
		e := &events[i]
		if !matchesSearch(e, q.Search) {
			continue
		}
		if !matchesMode(e, q, nowMs) {
			continue
		}
		if q.Mode == ModeSearch && !matchesFacets(e, q, now, nowMs) {
			continue
		}
		out = append(out, *e)
	}
	return out
}

func matchesSearch(e *models.Event, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(e.Title), term) ||
		strings.Contains(strings.ToLower(e.Description), term)
}

// visibleToStudents checks the default-Published status and the
// not-rejected approval state. Absent fields count as Published/approved.
func visibleToStudents(e *models.Event) bool {
	status := e.Status
	if status == "" {
		status = "Published"
	}
	if !strings.EqualFold(status, "Published") {
		return false
	}
	approval := e.ApprovalStatus
	if approval == "" {
		approval = "approved"
	}
	return approval != "rejected"
}

func matchesMode(e *models.Event, q Query, nowMs int64) bool {
	ms, state := StartMillis(e)

	// An event with no date at all is treated as always upcoming; a
	// malformed date fails both the upcoming and the past side.
	upcoming := state == models.DateAbsent || (state == models.DateKnown && ms >= nowMs)
	past := state == models.DateKnown && ms < nowMs

	switch q.Mode {
	case ModeStudentAll:
		return upcoming && visibleToStudents(e)
	case ModeStudentUpcoming, ModeManagerUpcoming:
		return upcoming && visibleToStudents(e) && CanStillRegister(e, nowMs)
	case ModeStudentPast, ModeManagerPast:
		// Past events show regardless of status or approval.
		return past
	case ModeManagerEvents:
		return q.UserID != "" && e.CreatedBy == q.UserID
	case ModeAttended:
		return e.AttendeesCount > 0
	case ModeSearch:
		return visibleToStudents(e)
	default:
		return true
	}
}

func matchesFacets(e *models.Event, q Query, now time.Time, nowMs int64) bool {
	if len(q.Departments) > 0 && !utils.Contains(q.Departments, e.OrganizerDepartment) {
		return false
	}
	if len(q.Types) > 0 && !utils.Contains(q.Types, e.EventType) {
		return false
	}
	if len(q.Categories) > 0 && !utils.Contains(q.Categories, e.EventCategory) {
		return false
	}
	if q.Location != "" {
		term := strings.ToLower(q.Location)
		if !strings.Contains(strings.ToLower(e.Venue), term) &&
			!strings.Contains(strings.ToLower(e.Campus), term) {
			return false
		}
	}

	ms, state := StartMillis(e)

	// Date range only constrains events whose date is actually known.
	if state == models.DateKnown {
		if from, ok := parseDay(q.From); ok && ms < from {
			return false
		}
		if to, ok := parseDay(q.To); ok && ms > to {
			return false
		}
	}

	switch q.Status {
	case "", "All":
		return true
	case "Upcoming":
		return state == models.DateAbsent || (state == models.DateKnown && ms >= nowMs)
	case "Past":
		return state == models.DateKnown && ms < nowMs
	case "Ongoing":
		if state != models.DateKnown {
			return false
		}
		t := time.UnixMilli(ms).In(now.Location())
		return t.Year() == now.Year() && t.YearDay() == now.YearDay()
	default:
		return true
	}
}

func parseDay(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, false
	}
	return t.UnixMilli(), true
}
