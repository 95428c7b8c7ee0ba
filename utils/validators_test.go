package utils

import "testing"

func TestIsUniversityEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"ayesha@student.fjwu.edu.pk", true},
		{"AYESHA@STUDENT.FJWU.EDU.PK", true},
		{"  ayesha@cs.fjwu.edu.pk  ", true},
		{"ayesha@gmail.com", false},
		{"ayesha@fjwu.edu.pk.evil.com", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsUniversityEmail(c.email); got != c.want {
			t.Errorf("IsUniversityEmail(%q) = %v, want %v", c.email, got, c.want)
		}
	}
}
