package feed

import (
	"testing"
	"time"

	"fjwuems/models"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func published(e models.Event) models.Event {
	if e.Status == "" {
		e.Status = "Published"
	}
	if e.ApprovalStatus == "" {
		e.ApprovalStatus = "approved"
	}
	return e
}

func eventAt(id string, at time.Time) models.Event {
	return published(models.Event{
		EventID:   id,
		Title:     id,
		EventDate: models.FlexDateFromSeconds(at.Unix()),
	})
}

func ids(events []models.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.EventID
	}
	return out
}

func assertIDs(t *testing.T, got []models.Event, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
	for i, e := range got {
		if e.EventID != want[i] {
			t.Fatalf("got %v, want %v", ids(got), want)
		}
	}
}

func TestStartMillisSecondsShape(t *testing.T) {
	e := models.Event{EventDate: models.FlexDateFromSeconds(1700000000)}
	ms, state := StartMillis(&e)
	if state != models.DateKnown {
		t.Fatalf("state = %v, want DateKnown", state)
	}
	if ms != 1700000000*1000 {
		t.Fatalf("ms = %d, want %d", ms, int64(1700000000*1000))
	}
}

func TestStartMillisResolutionOrder(t *testing.T) {
	e := models.Event{
		EventDate: models.FlexDateFromSeconds(100),
		DateTime:  "2024-01-01T00:00:00Z",
		StartDate: models.NewFlexDate("2023-01-01"),
	}
	if ms, _ := StartMillis(&e); ms != 100*1000 {
		t.Fatalf("eventDate should win, got %d", ms)
	}

	e.EventDate = models.FlexDate{}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	if ms, _ := StartMillis(&e); ms != want {
		t.Fatalf("dateTime should win next, got %d want %d", ms, want)
	}

	e.DateTime = ""
	want = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	if ms, _ := StartMillis(&e); ms != want {
		t.Fatalf("startDate should win last, got %d want %d", ms, want)
	}

	e.StartDate = models.FlexDate{}
	if _, state := StartMillis(&e); state != models.DateAbsent {
		t.Fatalf("state = %v, want DateAbsent", state)
	}
}

func TestStartMillisMalformedDoesNotFallThrough(t *testing.T) {
	e := models.Event{
		EventDate: models.NewFlexDate("not a date"),
		DateTime:  "2024-01-01T00:00:00Z",
	}
	if _, state := StartMillis(&e); state != models.DateMalformed {
		t.Fatalf("state = %v, want DateMalformed", state)
	}
}

func TestDatelessEventsAlwaysUpcoming(t *testing.T) {
	dateless := published(models.Event{EventID: "nodate", Title: "TBA mixer"})
	for _, mode := range []Mode{ModeStudentAll, ModeStudentUpcoming} {
		got := Filter([]models.Event{dateless}, Query{Mode: mode, Now: testNow})
		assertIDs(t, got, "nodate")
	}
	// and never past
	got := Filter([]models.Event{dateless}, Query{Mode: ModeStudentPast, Now: testNow})
	assertIDs(t, got)
}

func TestMalformedDateExcludedEverywhere(t *testing.T) {
	bad := published(models.Event{EventID: "bad", EventDate: models.NewFlexDate("garbage")})
	for _, mode := range []Mode{ModeStudentAll, ModeStudentUpcoming, ModeStudentPast} {
		got := Filter([]models.Event{bad}, Query{Mode: mode, Now: testNow})
		if len(got) != 0 {
			t.Errorf("mode %s: malformed-date event should be excluded, got %v", mode, ids(got))
		}
	}
}

func TestUpcomingBecomesPast(t *testing.T) {
	at := time.Unix(1700000000, 0)
	e1 := published(models.Event{
		EventID:        "e1",
		Title:          "AI Workshop",
		EventDate:      models.FlexDateFromSeconds(1700000000),
		Status:         "Published",
		ApprovalStatus: "approved",
	})

	before := Query{Mode: ModeStudentUpcoming, Now: at.Add(-time.Hour)}
	assertIDs(t, Filter([]models.Event{e1}, before), "e1")

	after := Query{Mode: ModeStudentUpcoming, Now: at.Add(time.Hour)}
	assertIDs(t, Filter([]models.Event{e1}, after))

	pastQ := Query{Mode: ModeStudentPast, Now: at.Add(time.Hour)}
	assertIDs(t, Filter([]models.Event{e1}, pastQ), "e1")
}

func TestStatusAndApprovalDefaults(t *testing.T) {
	future := testNow.Add(24 * time.Hour)
	noStatus := models.Event{EventID: "defaults", EventDate: models.FlexDateFromSeconds(future.Unix())}
	draft := models.Event{EventID: "draft", Status: "Draft", EventDate: models.FlexDateFromSeconds(future.Unix())}
	rejected := models.Event{EventID: "rej", Status: "Published", ApprovalStatus: "rejected", EventDate: models.FlexDateFromSeconds(future.Unix())}

	got := Filter([]models.Event{noStatus, draft, rejected}, Query{Mode: ModeStudentAll, Now: testNow})
	assertIDs(t, got, "defaults")
}

func TestPastIgnoresStatus(t *testing.T) {
	past := testNow.Add(-24 * time.Hour)
	cancelled := models.Event{EventID: "cxl", Status: "Cancelled", EventDate: models.FlexDateFromSeconds(past.Unix())}
	got := Filter([]models.Event{cancelled}, Query{Mode: ModeStudentPast, Now: testNow})
	assertIDs(t, got, "cxl")
}

func TestOpenEventAlwaysRegisterable(t *testing.T) {
	expired := testNow.Add(-48 * time.Hour)
	e := models.Event{
		IsOpenEvent:            true,
		IsRegistrationRequired: true,
		RegistrationDeadline:   models.FlexDateFromSeconds(expired.Unix()),
	}
	if !CanStillRegister(&e, testNow.UnixMilli()) {
		t.Fatal("open event must always be registerable")
	}
}

func TestRegistrationDeadlineCutoff(t *testing.T) {
	future := testNow.Add(72 * time.Hour)
	base := published(models.Event{
		EventID:                "ev",
		EventDate:              models.FlexDateFromSeconds(future.Unix()),
		IsRegistrationRequired: true,
	})

	open := base
	open.RegistrationDeadline = models.FlexDateFromSeconds(testNow.Add(time.Hour).Unix())
	closed := base
	closed.EventID = "closed"
	closed.RegistrationDeadline = models.FlexDateFromSeconds(testNow.Add(-time.Hour).Unix())
	noDeadline := base
	noDeadline.EventID = "nodeadline"

	got := Filter([]models.Event{open, closed, noDeadline}, Query{Mode: ModeStudentUpcoming, Now: testNow})
	assertIDs(t, got, "ev", "nodeadline")
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	workshop := published(models.Event{EventID: "w", Title: "Workshop", EventDate: models.FlexDateFromSeconds(testNow.Add(time.Hour).Unix())})
	other := published(models.Event{EventID: "o", Title: "Seminar", Description: "Networking evening", EventDate: models.FlexDateFromSeconds(testNow.Add(time.Hour).Unix())})

	got := Filter([]models.Event{workshop, other}, Query{Mode: ModeStudentAll, Search: "work", Now: testNow})
	assertIDs(t, got, "w", "o") // "Workshop" title and "Networking" description both contain "work"

	got = Filter([]models.Event{workshop, other}, Query{Mode: ModeStudentAll, Search: "WORKSHOP", Now: testNow})
	assertIDs(t, got, "w")
}

func TestManagerEventsScopedToCreator(t *testing.T) {
	past := testNow.Add(-time.Hour)
	mine := eventAt("mine", past)
	mine.CreatedBy = "u1"
	theirs := eventAt("theirs", past)
	theirs.CreatedBy = "u2"

	// no date filtering in manager_events
	got := Filter([]models.Event{mine, theirs}, Query{Mode: ModeManagerEvents, UserID: "u1", Now: testNow})
	assertIDs(t, got, "mine")

	// without a user nothing matches
	got = Filter([]models.Event{mine, theirs}, Query{Mode: ModeManagerEvents, Now: testNow})
	assertIDs(t, got)
}

func TestAttendedUsesCounterProxy(t *testing.T) {
	a := published(models.Event{EventID: "a", AttendeesCount: 3})
	b := published(models.Event{EventID: "b"})
	got := Filter([]models.Event{a, b}, Query{Mode: ModeAttended, Now: testNow})
	assertIDs(t, got, "a")
}

func TestFilteringPreservesOrder(t *testing.T) {
	future := testNow.Add(time.Hour)
	events := []models.Event{eventAt("third", future), eventAt("second", future), eventAt("first", future)}
	got := Filter(events, Query{Mode: ModeStudentAll, Now: testNow})
	assertIDs(t, got, "third", "second", "first")
}

func TestSearchModeFacets(t *testing.T) {
	future := testNow.Add(time.Hour)
	cs := eventAt("cs", future)
	cs.OrganizerDepartment = "Computer Science"
	cs.EventType = "Online"
	cs.EventCategory = "Workshop"
	cs.Venue = "Main Auditorium"
	econ := eventAt("econ", future)
	econ.OrganizerDepartment = "Economics"
	econ.EventType = "Offline"
	econ.EventCategory = "Seminar"
	econ.Campus = "North Campus"

	events := []models.Event{cs, econ}

	got := Filter(events, Query{Mode: ModeSearch, Departments: []string{"Computer Science"}, Now: testNow})
	assertIDs(t, got, "cs")

	got = Filter(events, Query{Mode: ModeSearch, Types: []string{"Online", "Hybrid"}, Now: testNow})
	assertIDs(t, got, "cs")

	got = Filter(events, Query{Mode: ModeSearch, Location: "north", Now: testNow})
	assertIDs(t, got, "econ")

	got = Filter(events, Query{Mode: ModeSearch, Categories: []string{"Seminar"}, Types: []string{"Online"}, Now: testNow})
	assertIDs(t, got)
}

func TestSearchModeStatusRadio(t *testing.T) {
	today := time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 18, 0, 0, 0, time.UTC)
	upcoming := eventAt("up", testNow.Add(48*time.Hour))
	ongoing := eventAt("today", today)
	past := eventAt("past", testNow.Add(-48*time.Hour))
	events := []models.Event{upcoming, ongoing, past}

	got := Filter(events, Query{Mode: ModeSearch, Status: "Upcoming", Now: testNow})
	assertIDs(t, got, "up", "today")

	got = Filter(events, Query{Mode: ModeSearch, Status: "Ongoing", Now: testNow})
	assertIDs(t, got, "today")

	got = Filter(events, Query{Mode: ModeSearch, Status: "Past", Now: testNow})
	assertIDs(t, got, "past")

	got = Filter(events, Query{Mode: ModeSearch, Status: "All", Now: testNow})
	assertIDs(t, got, "up", "today", "past")
}

func TestSearchModeDateRange(t *testing.T) {
	march10 := eventAt("m10", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	march20 := eventAt("m20", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))
	dateless := published(models.Event{EventID: "tba"})
	events := []models.Event{march10, march20, dateless}

	got := Filter(events, Query{Mode: ModeSearch, From: "2024-03-15", Status: "All", Now: testNow})
	assertIDs(t, got, "m20", "tba")

	got = Filter(events, Query{Mode: ModeSearch, To: "2024-03-15", Status: "All", Now: testNow})
	assertIDs(t, got, "m10", "tba")

	got = Filter(events, Query{Mode: ModeSearch, From: "2024-03-10", To: "2024-03-20", Status: "All", Now: testNow})
	assertIDs(t, got, "m10", "m20", "tba")
}
