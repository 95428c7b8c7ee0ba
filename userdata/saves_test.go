package userdata

import (
	"testing"

	"fjwuems/models"
)

func TestSnapshotKeepsValuesAfterEventEdit(t *testing.T) {
	event := models.Event{
		EventID:       "e1",
		Title:         "AI Workshop",
		PosterURL:     "/static/uploads/event/poster/a.jpg",
		Venue:         "Auditorium",
		Campus:        "Main",
		DateTime:      "2024-04-01T10:00:00Z",
		OrganizerName: "Tech Society",
	}

	snap := snapshotOf(&event, "u1")

	// The source event changes after the save; the snapshot must not.
	event.Title = "Advanced AI Workshop"
	event.Venue = "Lab 3"
	event.DateTime = "2024-04-02T10:00:00Z"

	if snap.EventTitle != "AI Workshop" {
		t.Fatalf("snapshot title = %q, want %q", snap.EventTitle, "AI Workshop")
	}
	if snap.Venue != "Auditorium" {
		t.Fatalf("snapshot venue = %q, want %q", snap.Venue, "Auditorium")
	}
	if snap.DateTime != "2024-04-01T10:00:00Z" {
		t.Fatalf("snapshot dateTime = %q, want %q", snap.DateTime, "2024-04-01T10:00:00Z")
	}
}

func TestSnapshotCarriesUserAndEventIDs(t *testing.T) {
	event := models.Event{EventID: "e1", Title: "Hackathon"}
	snap := snapshotOf(&event, "u42")

	if snap.EventID != "e1" || snap.UserID != "u42" {
		t.Fatalf("snapshot keyed (%q, %q), want (e1, u42)", snap.EventID, snap.UserID)
	}
	if snap.CreatedAt.IsZero() {
		t.Fatal("snapshot missing capture time")
	}
}
