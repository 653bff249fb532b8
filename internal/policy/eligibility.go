package policy

import (
	"time"

	"github.com/noah-isme/placement-portal-api/internal/models"
)

// InCollegeScope reports whether a job targets the college key or every
// college. The unassigned key never matches.
func InCollegeScope(job *models.JobPosting, collegeKey string) bool {
	if job == nil || collegeKey == "" || collegeKey == unassignedKey {
		return false
	}
	jobKey := job.CollegeKey
	if jobKey == "" {
		jobKey = CollegeKey(job.CollegeName)
	}
	return jobKey == collegeKey || jobKey == allCollegesKey
}

// MeetsMinimumCPI is true when the job has no CPI gate or the gate is at most cgpa.
func MeetsMinimumCPI(job *models.JobPosting, cgpa float64) bool {
	return job.MinimumCPI == nil || *job.MinimumCPI <= cgpa
}

// JobVisibleToStudent combines approval, college scope and CPI gating.
func JobVisibleToStudent(job *models.JobPosting, student *models.Student) bool {
	if StudentApproval(student) != ApprovalApproved {
		return false
	}
	return InCollegeScope(job, CollegeKey(student.CollegeName)) && MeetsMinimumCPI(job, student.CGPA)
}

// FilterEligible keeps the jobs visible to the student, preserving order.
func FilterEligible(jobs []models.JobWithCompany, student *models.Student) []models.JobWithCompany {
	eligible := make([]models.JobWithCompany, 0, len(jobs))
	for i := range jobs {
		if JobVisibleToStudent(&jobs[i].JobPosting, student) {
			eligible = append(eligible, jobs[i])
		}
	}
	return eligible
}

// DeadlinePassed reports whether applications for the job are closed at now.
func DeadlinePassed(job *models.JobPosting, now time.Time) bool {
	return !job.ApplyBy.IsZero() && now.After(job.ApplyBy)
}
