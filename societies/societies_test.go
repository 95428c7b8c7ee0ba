package societies

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"fjwuems/feed"
	"fjwuems/models"
)

func TestPublicProfileStripsCredentials(t *testing.T) {
	u := models.User{
		UserID:        "u1",
		Email:         "tech@site.fjwu.edu.pk",
		Password:      "bcrypt-hash",
		Role:          models.RoleManager,
		OrganizerName: "Tech Society",
		Department:    "Computer Science",
		RefreshToken:  "hashed-refresh",
	}

	data, err := json.Marshal(u.Profile())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)

	if strings.Contains(body, "bcrypt-hash") || strings.Contains(body, "hashed-refresh") {
		t.Fatalf("credential material leaked into public profile: %s", body)
	}
	if !strings.Contains(body, "Tech Society") {
		t.Fatalf("expected society name in public profile: %s", body)
	}
	// The department feeds the search facet, so the society page must
	// expose it.
	if !strings.Contains(body, "Computer Science") {
		t.Fatalf("expected department in public profile: %s", body)
	}
}

func TestSocietyEventsScopedToCreator(t *testing.T) {
	events := []models.Event{
		{EventID: "e1", Title: "Hackathon", CreatedBy: "society1"},
		{EventID: "e2", Title: "Qawwali Night", CreatedBy: "society2"},
		{EventID: "e3", Title: "AI Workshop", CreatedBy: "society1", Status: "Draft"},
	}

	got := feed.Filter(events, feed.Query{
		Mode:   feed.ModeManagerEvents,
		UserID: "society1",
		Now:    time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
	})

	if len(got) != 2 || got[0].EventID != "e1" || got[1].EventID != "e3" {
		ids := make([]string, len(got))
		for i, e := range got {
			ids[i] = e.EventID
		}
		t.Fatalf("got %v, want [e1 e3]", ids)
	}
}
