package utils

import "strings"

const universityEmailSuffix = ".fjwu.edu.pk"

// IsUniversityEmail reports whether the address belongs to the university
// domain. Signup rejects anything else before touching the database.
func IsUniversityEmail(email string) bool {
	if email == "" {
		return false
	}
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(email)), universityEmailSuffix)
}
