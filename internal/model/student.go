package model

import "strings"

// Student is one roster entry. ExternalStudentID is the identifier printed
// inside identity codes; ID is the roster's own key.
type Student struct {
	ID                string
	FirstName         string
	LastName          string
	ExternalStudentID string
}

// FullName returns the student's display name.
func (s *Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// MatchesReference reports whether the given identity-code reference
// belongs to this student, by either roster ID or external ID.
func (s *Student) MatchesReference(ref string) bool {
	if ref == "" {
		return false
	}
	return ref == s.ID || ref == s.ExternalStudentID
}
