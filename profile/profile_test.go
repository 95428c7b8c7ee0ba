package profile

import (
	"testing"

	"fjwuems/models"
)

func TestManagerProfileComplete(t *testing.T) {
	cases := []struct {
		name string
		user models.User
		want bool
	}{
		{"all fields", models.User{OrganizerName: "Tech Society", SocietyCategory: "Technical", ContactEmail: "tech@site.edu"}, true},
		{"missing contact", models.User{OrganizerName: "Tech Society", SocietyCategory: "Technical"}, false},
		{"whitespace name", models.User{OrganizerName: "   ", SocietyCategory: "Technical", ContactEmail: "tech@site.edu"}, false},
		{"empty", models.User{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := managerProfileComplete(&c.user); got != c.want {
				t.Fatalf("got %v, want %v", got, c.want)
			}
		})
	}
}
