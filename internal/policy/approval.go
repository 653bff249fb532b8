package policy

import (
	"fmt"

	"github.com/noah-isme/placement-portal-api/internal/models"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
)

// ApprovalState is a student's position in the college approval workflow.
type ApprovalState string

const (
	ApprovalUnset    ApprovalState = "UNSET"
	ApprovalPending  ApprovalState = "PENDING"
	ApprovalApproved ApprovalState = "APPROVED"
)

// StudentApproval derives the approval state from the profile.
func StudentApproval(student *models.Student) ApprovalState {
	switch {
	case student == nil || IsUnassigned(student.CollegeName):
		return ApprovalUnset
	case student.IsApproved:
		return ApprovalApproved
	default:
		return ApprovalPending
	}
}

// ApprovalMessage explains a non-approved state to the student. It is empty
// for approved students.
func ApprovalMessage(student *models.Student) string {
	switch StudentApproval(student) {
	case ApprovalUnset:
		return "Please choose a valid college in your profile to continue."
	case ApprovalPending:
		return fmt.Sprintf("Pending college confirmation for %s.", student.CollegeName)
	default:
		return ""
	}
}

// RequireApproved fails with an approval error carrying the explanatory
// message when the student may not use jobs or chat yet.
func RequireApproved(student *models.Student) error {
	if StudentApproval(student) == ApprovalApproved {
		return nil
	}
	return appErrors.Clone(appErrors.ErrApprovalRequired, ApprovalMessage(student))
}

// ChangeCollege applies a college-name edit. Any difference from the stored
// value clears approval and reports true so the caller can drop the student's
// chat membership.
func ChangeCollege(student *models.Student, newName string) bool {
	name := DisplayCollegeName(newName)
	if name == student.CollegeName {
		return false
	}
	student.CollegeName = name
	student.CollegeKey = CollegeKey(name)
	student.IsApproved = false
	return true
}

// CanApprove checks that the acting college user owns the college the
// student has chosen.
func CanApprove(actorUserID string, college *models.College, student *models.Student) error {
	if college == nil || !college.Claimed() || *college.OwnerUserID != actorUserID {
		return appErrors.Clone(appErrors.ErrForbidden, "set up your college profile before approving students")
	}
	if student == nil || IsUnassigned(student.CollegeName) || CollegeKey(student.CollegeName) != college.NameKey {
		return appErrors.Clone(appErrors.ErrForbidden, "student does not belong to your college")
	}
	return nil
}
