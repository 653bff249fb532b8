package policy

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/placement-portal-api/internal/models"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
)

var transitions = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.ApplicationPending: {models.ApplicationHired, models.ApplicationRejected},
}

// IsTerminal reports whether no company decision can follow status.
func IsTerminal(status models.ApplicationStatus) bool {
	return len(transitions[status]) == 0
}

// ValidateTransition checks a company decision against the transition table.
func ValidateTransition(from, to models.ApplicationStatus) error {
	if to != models.ApplicationHired && to != models.ApplicationRejected {
		return appErrors.Clone(appErrors.ErrValidation, "status must be HIRED or REJECTED")
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("application is already %s", strings.ToLower(string(from))))
}

// HiredElsewhere reports whether the student holds a hired application for a
// job other than jobID.
func HiredElsewhere(apps []models.Application, jobID string) bool {
	for _, app := range apps {
		if app.Status == models.ApplicationHired && app.JobPostingID != jobID {
			return true
		}
	}
	return false
}

// HireLocked reports whether any of the student's applications is hired.
func HireLocked(apps []models.Application) bool {
	return HiredElsewhere(apps, "")
}

// Actionable reports whether the student may still apply to (or edit their
// application for) job: the deadline is open and no hire elsewhere locks it.
func Actionable(job *models.JobPosting, apps []models.Application, now time.Time) bool {
	if DeadlinePassed(job, now) {
		return false
	}
	return !HiredElsewhere(apps, job.ID)
}

// IsAnnouncementRecipient is true for every status except rejected.
func IsAnnouncementRecipient(status models.ApplicationStatus) bool {
	return status != models.ApplicationRejected
}
