package policy

import (
	"github.com/noah-isme/placement-portal-api/internal/models"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
)

var feedbackTargets = map[models.UserRole]models.FeedbackTarget{
	models.RoleStudent: models.FeedbackTargetCompany,
	models.RoleCompany: models.FeedbackTargetCollege,
}

// FeedbackTargetFor returns the only target type the role may address.
func FeedbackTargetFor(role models.UserRole) (models.FeedbackTarget, bool) {
	target, ok := feedbackTargets[role]
	return target, ok
}

// CanReviewApplication lets a student review the company behind one of their
// own applications once the company has decided on it.
func CanReviewApplication(studentUserID string, app *models.Application) error {
	if app == nil || app.StudentUserID != studentUserID {
		return appErrors.Clone(appErrors.ErrForbidden, "you can only review companies you applied to")
	}
	if app.Status == models.ApplicationPending {
		return appErrors.Clone(appErrors.ErrValidation, "feedback opens once the company has decided on your application")
	}
	return nil
}
