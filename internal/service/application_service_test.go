package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	"github.com/noah-isme/placement-portal-api/internal/models"
	"github.com/noah-isme/placement-portal-api/internal/repository"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
)

type applicationFixture struct {
	svc      *ApplicationService
	apps     *fakeApplicationRepo
	jobs     *fakeJobRepo
	students *fakeStudentRepo
	audit    *recordingAudit
	now      time.Time
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	f := &applicationFixture{
		apps:     newFakeApplicationRepo(),
		jobs:     newFakeJobRepo(testJob("j1", "co-1", "IIT Delhi", now.Add(24*time.Hour)), testJob("j2", "co-1", "All Colleges", now.Add(24*time.Hour))),
		students: newFakeStudentRepo(approvedStudent("stu-1", "IIT Delhi")),
		audit:    &recordingAudit{},
		now:      now,
	}
	f.svc = NewApplicationService(ApplicationServiceDeps{
		Applications: f.apps,
		Jobs:         f.jobs,
		Students:     f.students,
		Resumes:      newTestResumes(t),
		Metrics:      NewMetricsService(),
		Audit:        f.audit,
	}, nil, zap.NewNop())
	f.svc.now = func() time.Time { return now }
	return f
}

func validApplyRequest() dto.ApplyRequest {
	return dto.ApplyRequest{
		ApplicantName:  "Asha Rao",
		ApplicantEmail: "asha@example.com",
		CollegeID:      "2026100001",
		LinkedInURL:    "https://linkedin.com/in/asha",
		GithubURL:      "https://github.com/asha",
		Gender:        "F",
		CoverLetter:   "I would like to join.",
		TermsAccepted: true,
	}
}

func TestApplicationServiceApplyCreatesThenUpdates(t *testing.T) {
	f := newApplicationFixture(t)
	student := claimsFor(models.RoleStudent, "stu-1")

	res, err := f.svc.Apply(context.Background(), student, "j1", validApplyRequest(), pdfUpload("cv.pdf"))
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, models.ApplicationPending, res.Application.Status)
	assert.Contains(t, res.Application.ResumePath, "resumes/app_stu-1_")

	req := validApplyRequest()
	req.CoverLetter = "Updated letter"
	res, err = f.svc.Apply(context.Background(), student, "j1", req, nil)
	require.NoError(t, err)
	assert.False(t, res.Created)
	require.Len(t, f.apps.apps, 1)
	assert.Equal(t, "Updated letter", f.apps.apps[0].CoverLetter)
	assert.Contains(t, f.apps.apps[0].ResumePath, "resumes/app_stu-1_")
}

func TestApplicationServiceApplyPreservesDecidedStatus(t *testing.T) {
	f := newApplicationFixture(t)
	f.apps.apps = []*models.Application{{ID: "a1", JobPostingID: "j1", StudentUserID: "stu-1", Status: models.ApplicationRejected}}

	res, err := f.svc.Apply(context.Background(), claimsFor(models.RoleStudent, "stu-1"), "j1", validApplyRequest(), nil)
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, models.ApplicationRejected, res.Application.Status)
}

func TestApplicationServiceApplyGuards(t *testing.T) {
	f := newApplicationFixture(t)
	student := claimsFor(models.RoleStudent, "stu-1")

	noTerms := validApplyRequest()
	noTerms.TermsAccepted = false
	_, err := f.svc.Apply(context.Background(), student, "j1", noTerms, nil)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))

	badURL := validApplyRequest()
	badURL.GithubURL = "not a url"
	_, err = f.svc.Apply(context.Background(), student, "j1", badURL, nil)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))

	f.jobs.jobs["closed"] = testJob("closed", "co-1", "IIT Delhi", f.now.Add(-time.Hour))
	_, err = f.svc.Apply(context.Background(), student, "closed", validApplyRequest(), nil)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))

	f.jobs.jobs["elsewhere"] = testJob("elsewhere", "co-1", "NIT Trichy", f.now.Add(time.Hour))
	_, err = f.svc.Apply(context.Background(), student, "elsewhere", validApplyRequest(), nil)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))

	_, err = f.svc.Apply(context.Background(), student, "missing", validApplyRequest(), nil)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))

	_, err = f.svc.Apply(context.Background(), claimsFor(models.RoleCompany, "co-1"), "j1", validApplyRequest(), nil)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))

	assert.Empty(t, f.apps.apps)
}

func TestApplicationServiceApplyRequiresApproval(t *testing.T) {
	f := newApplicationFixture(t)
	f.students.byUser["stu-1"].IsApproved = false

	_, err := f.svc.Apply(context.Background(), claimsFor(models.RoleStudent, "stu-1"), "j1", validApplyRequest(), nil)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrApprovalRequired))
}

func TestApplicationServiceApplyHireLock(t *testing.T) {
	f := newApplicationFixture(t)
	f.apps.apps = []*models.Application{{ID: "a1", JobPostingID: "j2", StudentUserID: "stu-1", Status: models.ApplicationHired}}

	_, err := f.svc.Apply(context.Background(), claimsFor(models.RoleStudent, "stu-1"), "j1", validApplyRequest(), nil)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConflict))
	require.Len(t, f.apps.apps, 1)

	f.apps.apps = nil
	f.apps.upsertErr = repository.ErrHiredElsewhere
	_, err = f.svc.Apply(context.Background(), claimsFor(models.RoleStudent, "stu-1"), "j1", validApplyRequest(), nil)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConflict))
}

func TestApplicationServiceApplyFormPrefill(t *testing.T) {
	f := newApplicationFixture(t)
	student := claimsFor(models.RoleStudent, "stu-1")

	form, err := f.svc.ApplyForm(context.Background(), student, "j1")
	require.NoError(t, err)
	assert.Equal(t, student.Name, form.Form.ApplicantName)
	assert.Equal(t, "2026100001", form.Form.CollegeID)
	assert.Empty(t, form.ApplicationStatus)

	f.apps.apps = []*models.Application{{ID: "a1", JobPostingID: "j1", StudentUserID: "stu-1", ApplicantName: "A. Rao", ResumePath: "resumes/app_x.pdf", Status: models.ApplicationPending}}
	form, err = f.svc.ApplyForm(context.Background(), student, "j1")
	require.NoError(t, err)
	assert.Equal(t, "A. Rao", form.Form.ApplicantName)
	assert.True(t, form.HasResume)
	assert.Equal(t, models.ApplicationPending, form.ApplicationStatus)
}

func seedDecision(f *applicationFixture) {
	app := &models.Application{ID: "a1", JobPostingID: "j1", StudentUserID: "stu-1", Status: models.ApplicationPending, ResumePath: "resumes/app_stu-1_x.pdf"}
	f.apps.apps = []*models.Application{app}
	f.apps.details["a1"] = &models.ApplicationDetail{Application: *app, CompanyUserID: "co-1", JobTitle: "Job j1"}
}

func TestApplicationServiceSetStatus(t *testing.T) {
	f := newApplicationFixture(t)
	seedDecision(f)

	app, err := f.svc.SetStatus(context.Background(), claimsFor(models.RoleCompany, "co-1"), "a1", models.ApplicationHired)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationHired, app.Status)
	assert.Equal(t, []string{models.AuditActionHire}, f.audit.actions())
}

func TestApplicationServiceSetStatusGuards(t *testing.T) {
	f := newApplicationFixture(t)
	seedDecision(f)

	_, err := f.svc.SetStatus(context.Background(), claimsFor(models.RoleCompany, "co-2"), "a1", models.ApplicationHired)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))

	_, err = f.svc.SetStatus(context.Background(), claimsFor(models.RoleStudent, "stu-1"), "a1", models.ApplicationHired)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))

	_, err = f.svc.SetStatus(context.Background(), claimsFor(models.RoleCompany, "co-1"), "missing", models.ApplicationHired)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))

	f.apps.updateErr = repository.ErrHiredElsewhere
	_, err = f.svc.SetStatus(context.Background(), claimsFor(models.RoleCompany, "co-1"), "a1", models.ApplicationHired)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConflict))

	f.apps.updateErr = repository.ErrStatusFinal
	_, err = f.svc.SetStatus(context.Background(), claimsFor(models.RoleCompany, "co-1"), "a1", models.ApplicationRejected)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConflict))
	assert.Empty(t, f.audit.logs)
}

func TestApplicationServiceSetStatusTerminal(t *testing.T) {
	f := newApplicationFixture(t)
	seedDecision(f)
	f.apps.details["a1"].Status = models.ApplicationRejected

	_, err := f.svc.SetStatus(context.Background(), claimsFor(models.RoleCompany, "co-1"), "a1", models.ApplicationHired)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConflict))
}

func TestApplicationServiceListForJobSignsResumes(t *testing.T) {
	f := newApplicationFixture(t)
	seedDecision(f)

	res, err := f.svc.ListForJob(context.Background(), claimsFor(models.RoleCompany, "co-1"), "j1")
	require.NoError(t, err)
	require.Len(t, res.Applications, 1)
	assert.Contains(t, res.Applications[0].ResumeURL, "/files/resumes?token=")

	_, err = f.svc.ListForJob(context.Background(), claimsFor(models.RoleCompany, "co-2"), "j1")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))

	detail, err := f.svc.Detail(context.Background(), claimsFor(models.RoleCompany, "co-1"), "a1")
	require.NoError(t, err)
	assert.Equal(t, "Job j1", detail.JobTitle)
}
