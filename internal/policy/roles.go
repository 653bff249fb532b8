package policy

import (
	"github.com/noah-isme/placement-portal-api/internal/models"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
)

// Capability names an operation a role may perform.
type Capability string

const (
	CapStudentProfile       Capability = "student:profile"
	CapBrowseJobs           Capability = "jobs:browse"
	CapApply                Capability = "applications:submit"
	CapViewAnnouncements    Capability = "announcements:view"
	CapChat                 Capability = "chat:use"
	CapReviewCompany        Capability = "feedback:company"
	CapCompanyProfile       Capability = "company:profile"
	CapPostJobs             Capability = "jobs:post"
	CapReviewApplications   Capability = "applications:review"
	CapAnnounce             Capability = "announcements:create"
	CapReadCompanyFeedback  Capability = "feedback:company:read"
	CapReviewCollege        Capability = "feedback:college"
	CapCollegeProfile       Capability = "college:profile"
	CapViewRoster           Capability = "college:roster"
	CapApproveStudents      Capability = "college:approve"
	CapViewCollegeCompanies Capability = "college:companies"
	CapReadCollegeFeedback  Capability = "feedback:college:read"
)

var roleCapabilities = map[models.UserRole]map[Capability]struct{}{
	models.RoleStudent: capabilitySet(
		CapStudentProfile,
		CapBrowseJobs,
		CapApply,
		CapViewAnnouncements,
		CapChat,
		CapReviewCompany,
	),
	models.RoleCompany: capabilitySet(
		CapCompanyProfile,
		CapPostJobs,
		CapReviewApplications,
		CapAnnounce,
		CapReadCompanyFeedback,
		CapReviewCollege,
	),
	models.RoleCollege: capabilitySet(
		CapCollegeProfile,
		CapViewRoster,
		CapApproveStudents,
		CapViewCollegeCompanies,
		CapReadCollegeFeedback,
	),
}

func capabilitySet(caps ...Capability) map[Capability]struct{} {
	set := make(map[Capability]struct{}, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

// CanAccessRole is true iff the principal holds exactly the required role.
func CanAccessRole(principal *models.JWTClaims, required models.UserRole) bool {
	return principal != nil && principal.Role == required
}

// Allows reports whether role grants the capability.
func Allows(role models.UserRole, capability Capability) bool {
	caps, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	_, ok = caps[capability]
	return ok
}

// Authorize returns Unauthorized for a missing principal and Forbidden when the
// principal's role does not grant the capability.
func Authorize(principal *models.JWTClaims, capability Capability) error {
	if principal == nil || principal.UserID == "" {
		return appErrors.ErrUnauthorized
	}
	if !Allows(principal.Role, capability) {
		return appErrors.Clone(appErrors.ErrForbidden, "your role cannot perform this action")
	}
	return nil
}
