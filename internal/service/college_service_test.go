package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	"github.com/noah-isme/placement-portal-api/internal/models"
	"github.com/noah-isme/placement-portal-api/internal/repository"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
	"github.com/noah-isme/placement-portal-api/pkg/export"
)

type fakeCollegeRepo struct {
	byOwner   map[string]*models.College
	all       []models.College
	listCalls int
	saveErr   error
}

func (f *fakeCollegeRepo) FindByOwner(ctx context.Context, userID string) (*models.College, error) {
	c, ok := f.byOwner[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCollegeRepo) List(ctx context.Context) ([]models.College, error) {
	f.listCalls++
	return f.all, nil
}

func (f *fakeCollegeRepo) SaveOwned(ctx context.Context, college *models.College) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if college.ID == "" {
		college.ID = "col-new"
	}
	f.byOwner[*college.OwnerUserID] = college
	return nil
}

type fakeSummaryRepo struct {
	summaries []models.CompanySummary
	calls     int
}

func (f *fakeSummaryRepo) SummariesForCollege(ctx context.Context, collegeKey, allCollegesKey string) ([]models.CompanySummary, error) {
	f.calls++
	return f.summaries, nil
}

func ownedCollege(ownerID, name string) *models.College {
	return &models.College{ID: "col-1", Name: name, NameKey: strings.ToLower(name), OwnerUserID: &ownerID}
}

type collegeFixture struct {
	svc       *CollegeService
	colleges  *fakeCollegeRepo
	students  *fakeStudentRepo
	summaries *fakeSummaryRepo
	jobs      *fakeJobRepo
	audit     *recordingAudit
	cacheRepo *memoryCacheRepo
}

func newCollegeFixture(t *testing.T) *collegeFixture {
	f := &collegeFixture{
		colleges:  &fakeCollegeRepo{byOwner: map[string]*models.College{"col-admin": ownedCollege("col-admin", "IIT Delhi")}},
		students:  newFakeStudentRepo(),
		summaries: &fakeSummaryRepo{summaries: []models.CompanySummary{{CompanyUserID: "co-1", CompanyName: "Acme", JobCount: 2}}},
		jobs:      newFakeJobRepo(),
		audit:     &recordingAudit{},
		cacheRepo: newMemoryCacheRepo(),
	}
	f.svc = NewCollegeService(CollegeServiceDeps{
		Colleges:  f.colleges,
		Students:  f.students,
		Companies: f.summaries,
		Jobs:      f.jobs,
		Resumes:   newTestResumes(t),
		Cache:     newTestCache(f.cacheRepo),
		Audit:     f.audit,
	}, nil, zap.NewNop())
	return f
}

func TestCollegeServiceApprove(t *testing.T) {
	f := newCollegeFixture(t)
	pending := approvedStudent("stu-1", "iit delhi ")
	pending.IsApproved = false
	f.students.byUser["stu-1"] = pending

	student, err := f.svc.Approve(context.Background(), claimsFor(models.RoleCollege, "col-admin"), pending.ID)
	require.NoError(t, err)
	assert.True(t, student.IsApproved)
	assert.Equal(t, []string{pending.ID}, f.students.approved)
	assert.Equal(t, []string{models.AuditActionApprove}, f.audit.actions())
}

func TestCollegeServiceApproveGuards(t *testing.T) {
	f := newCollegeFixture(t)
	other := approvedStudent("stu-2", "NIT Trichy")
	other.IsApproved = false
	f.students.byUser["stu-2"] = other

	_, err := f.svc.Approve(context.Background(), claimsFor(models.RoleCollege, "col-admin"), other.ID)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))

	_, err = f.svc.Approve(context.Background(), claimsFor(models.RoleCollege, "nobody"), other.ID)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))

	_, err = f.svc.Approve(context.Background(), claimsFor(models.RoleCollege, "col-admin"), "missing")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))

	_, err = f.svc.Approve(context.Background(), claimsFor(models.RoleCompany, "co-1"), other.ID)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))

	mine := approvedStudent("stu-3", "IIT Delhi")
	mine.IsApproved = false
	f.students.byUser["stu-3"] = mine
	f.students.approveErr = sql.ErrNoRows
	_, err = f.svc.Approve(context.Background(), claimsFor(models.RoleCollege, "col-admin"), mine.ID)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConflict))
	assert.Empty(t, f.audit.logs)
}

func TestCollegeServiceSaveProfile(t *testing.T) {
	f := newCollegeFixture(t)
	f.cacheRepo.data[cacheKeyCollegeDirectory] = []byte(`[]`)

	college, err := f.svc.SaveProfile(context.Background(), claimsFor(models.RoleCollege, "new-admin"), dto.CollegeProfileRequest{Name: " NIT Trichy ", City: "Trichy"})
	require.NoError(t, err)
	assert.Equal(t, "NIT Trichy", college.Name)
	assert.Equal(t, "nit trichy", college.NameKey)
	assert.Equal(t, "new-admin", *college.OwnerUserID)
	assert.NotContains(t, f.cacheRepo.data, cacheKeyCollegeDirectory)

	_, err = f.svc.SaveProfile(context.Background(), claimsFor(models.RoleCollege, "new-admin"), dto.CollegeProfileRequest{Name: "Unassigned"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))

	f.colleges.saveErr = repository.ErrCollegeClaimed
	_, err = f.svc.SaveProfile(context.Background(), claimsFor(models.RoleCollege, "late-admin"), dto.CollegeProfileRequest{Name: "IIT Delhi"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConflict))
}

func TestCollegeServiceRosterRestrictedToOwnCollege(t *testing.T) {
	f := newCollegeFixture(t)
	f.students.roster = []models.StudentRosterEntry{{Student: models.Student{StudentID: "2026100001", ResumePath: "resumes/resume_stu-1_a.pdf"}, FirstName: "Asha"}}
	admin := claimsFor(models.RoleCollege, "col-admin")

	rows, err := f.svc.Roster(context.Background(), admin, dto.RosterQuery{College: "iit delhi", Department: " CSE "})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "iit delhi", f.students.rosterFilter.CollegeKey)
	assert.Equal(t, "CSE", f.students.rosterFilter.Department)
	assert.NotEmpty(t, rows[0].ResumeURL)

	_, err = f.svc.Roster(context.Background(), admin, dto.RosterQuery{College: "NIT Trichy"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))

	_, err = f.svc.Roster(context.Background(), claimsFor(models.RoleCollege, "nobody"), dto.RosterQuery{})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
}

func TestCollegeServiceExportRoster(t *testing.T) {
	f := newCollegeFixture(t)
	f.svc.now = func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) }
	f.students.roster = []models.StudentRosterEntry{{Student: models.Student{StudentID: "2026100001", Department: "CSE", Year: 3, CGPA: 8.25}, FirstName: "Asha", LastName: "Rao", Email: "asha@example.com"}}

	out, err := f.svc.ExportRoster(context.Background(), claimsFor(models.RoleCollege, "col-admin"), dto.RosterQuery{}, export.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "roster_20260501.csv", out.Filename)
	assert.Equal(t, "text/csv", out.ContentType)
	assert.Contains(t, string(out.Content), "2026100001,Asha Rao,asha@example.com,CSE,3,8.25,No")

	_, err = f.svc.ExportRoster(context.Background(), claimsFor(models.RoleCollege, "col-admin"), dto.RosterQuery{}, export.Format("xlsx"))
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}

func TestCollegeServiceCompaniesCached(t *testing.T) {
	f := newCollegeFixture(t)
	admin := claimsFor(models.RoleCollege, "col-admin")

	first, err := f.svc.Companies(context.Background(), admin)
	require.NoError(t, err)
	second, err := f.svc.Companies(context.Background(), admin)
	require.NoError(t, err)

	assert.Equal(t, 1, f.summaries.calls)
	assert.Equal(t, first[0].CompanyName, second[0].CompanyName)
	assert.Contains(t, f.cacheRepo.data, collegeCompaniesKey("iit delhi"))
}

func TestCollegeServiceJobScope(t *testing.T) {
	f := newCollegeFixture(t)
	applyBy := time.Now().Add(time.Hour)
	f.jobs.jobs["mine"] = testJob("mine", "co-1", "IIT Delhi", applyBy)
	f.jobs.jobs["all"] = testJob("all", "co-1", models.CollegeAllColleges, applyBy)
	f.jobs.jobs["other"] = testJob("other", "co-1", "NIT Trichy", applyBy)
	admin := claimsFor(models.RoleCollege, "col-admin")

	job, err := f.svc.Job(context.Background(), admin, "all")
	require.NoError(t, err)
	assert.Equal(t, "all", job.ID)

	_, err = f.svc.Job(context.Background(), admin, "other")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))

	jobs, err := f.svc.CompanyJobs(context.Background(), admin, "co-1")
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestCollegeServiceDirectoryCached(t *testing.T) {
	f := newCollegeFixture(t)
	owner := "col-admin"
	f.colleges.all = []models.College{{ID: "c1", Name: "IIT Delhi", OwnerUserID: &owner}, {ID: "c2", Name: "NIT Trichy"}}

	first, err := f.svc.Directory(context.Background())
	require.NoError(t, err)
	_, err = f.svc.Directory(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, f.colleges.listCalls)
	require.Len(t, first, 2)
	assert.True(t, first[0].Claimed)
	assert.False(t, first[1].Claimed)
}
