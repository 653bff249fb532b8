package policy

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/noah-isme/placement-portal-api/internal/models"
)

var (
	unassignedKey  = CollegeKey(models.CollegeUnassigned)
	allCollegesKey = CollegeKey(models.CollegeAllColleges)
)

// CollegeKey returns the comparison key for a college name: surrounding
// whitespace trimmed and Unicode case folded.
func CollegeKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// AllCollegesKey is the key jobs use to target every college.
func AllCollegesKey() string {
	return allCollegesKey
}

// IsUnassigned reports whether name is blank or the "Unassigned" sentinel.
func IsUnassigned(name string) bool {
	key := CollegeKey(name)
	return key == "" || key == unassignedKey
}

// IsAllColleges reports whether name is the "All Colleges" sentinel.
func IsAllColleges(name string) bool {
	return CollegeKey(name) == allCollegesKey
}

// StudentCollegeAllowed reports whether a student may name this as their
// own college. "All Colleges" only scopes jobs; no one can claim it, so a
// student placed there could never be approved.
func StudentCollegeAllowed(name string) bool {
	return !IsAllColleges(name)
}

// SameCollege compares two college names by key.
func SameCollege(a, b string) bool {
	return CollegeKey(a) == CollegeKey(b)
}

// DisplayCollegeName trims the name and maps blanks to the sentinel.
func DisplayCollegeName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return models.CollegeUnassigned
	}
	return trimmed
}
