package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	"github.com/noah-isme/placement-portal-api/internal/models"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
)

type fakeCompanyRepo struct {
	byUser map[string]*models.Company
}

func (f *fakeCompanyRepo) FindByUserID(ctx context.Context, userID string) (*models.Company, error) {
	c, ok := f.byUser[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

func (f *fakeCompanyRepo) Upsert(ctx context.Context, company *models.Company) error {
	f.byUser[company.UserID] = company
	return nil
}

type companyFixture struct {
	svc       *CompanyService
	jobs      *fakeJobRepo
	colleges  *fakeCollegeRepo
	audit     *recordingAudit
	cacheRepo *memoryCacheRepo
	now       time.Time
}

func newCompanyFixture(t *testing.T) *companyFixture {
	f := &companyFixture{
		jobs:      newFakeJobRepo(),
		colleges:  &fakeCollegeRepo{byOwner: map[string]*models.College{}},
		audit:     &recordingAudit{},
		cacheRepo: newMemoryCacheRepo(),
		now:       time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	f.svc = NewCompanyService(CompanyServiceDeps{
		Companies: &fakeCompanyRepo{byUser: map[string]*models.Company{}},
		Jobs:      f.jobs,
		Colleges:  f.colleges,
		Resumes:   newTestResumes(t),
		Cache:     newTestCache(f.cacheRepo),
		Audit:     f.audit,
	}, nil, zap.NewNop())
	f.svc.now = func() time.Time { return f.now }
	return f
}

func jobRequest(college string, applyBy time.Time) dto.CreateJobRequest {
	return dto.CreateJobRequest{Title: "Backend Engineer", Type: models.JobTypeFullTime, CollegeName: college, ApplyBy: &applyBy}
}

func TestCompanyServiceCreateJob(t *testing.T) {
	f := newCompanyFixture(t)
	f.cacheRepo.data[collegeCompaniesKey("iit delhi")] = []byte(`[]`)
	f.cacheRepo.data[collegeCompaniesKey("nit trichy")] = []byte(`[]`)

	job, err := f.svc.CreateJob(context.Background(), claimsFor(models.RoleCompany, "co-1"), jobRequest("  IIT Delhi ", f.now.Add(72*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "IIT Delhi", job.CollegeName)
	assert.Equal(t, "iit delhi", job.CollegeKey)
	assert.Equal(t, "co-1", job.CompanyUserID)
	assert.NotContains(t, f.cacheRepo.data, collegeCompaniesKey("iit delhi"))
	assert.Contains(t, f.cacheRepo.data, collegeCompaniesKey("nit trichy"))

	job, err = f.svc.CreateJob(context.Background(), claimsFor(models.RoleCompany, "co-1"), jobRequest("all colleges", f.now.Add(72*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, models.CollegeAllColleges, job.CollegeName)
	assert.Empty(t, f.cacheRepo.data)
}

func TestCompanyServiceCreateJobValidation(t *testing.T) {
	f := newCompanyFixture(t)
	company := claimsFor(models.RoleCompany, "co-1")

	_, err := f.svc.CreateJob(context.Background(), company, jobRequest("Unassigned", f.now.Add(time.Hour)))
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))

	_, err = f.svc.CreateJob(context.Background(), company, jobRequest("IIT Delhi", f.now.Add(-time.Hour)))
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))

	negative := -1
	req := jobRequest("IIT Delhi", f.now.Add(time.Hour))
	req.Compensation = &negative
	_, err = f.svc.CreateJob(context.Background(), company, req)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))

	_, err = f.svc.CreateJob(context.Background(), claimsFor(models.RoleStudent, "stu-1"), jobRequest("IIT Delhi", f.now.Add(time.Hour)))
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))
	assert.Empty(t, f.jobs.created)
}

func TestCompanyServiceDeleteJob(t *testing.T) {
	f := newCompanyFixture(t)
	f.jobs.jobs["j1"] = testJob("j1", "co-1", "IIT Delhi", f.now)

	err := f.svc.DeleteJob(context.Background(), claimsFor(models.RoleCompany, "co-2"), "j1")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))

	require.NoError(t, f.svc.DeleteJob(context.Background(), claimsFor(models.RoleCompany, "co-1"), "j1"))
	assert.Equal(t, []string{"j1"}, f.jobs.deleted)
	assert.Equal(t, []string{models.AuditActionJobDelete}, f.audit.actions())

	err = f.svc.DeleteJob(context.Background(), claimsFor(models.RoleCompany, "co-1"), "j1")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
}

func TestCompanyServiceJobForm(t *testing.T) {
	f := newCompanyFixture(t)
	f.colleges.all = []models.College{{ID: "c1", Name: "IIT Delhi"}}

	form, err := f.svc.JobForm(context.Background(), claimsFor(models.RoleCompany, "co-1"))
	require.NoError(t, err)
	assert.Equal(t, []string{models.CollegeAllColleges, "IIT Delhi"}, form.Colleges)
	assert.Equal(t, models.JobTypes, form.Types)
}

func TestCompanyServiceProfile(t *testing.T) {
	f := newCompanyFixture(t)
	company := claimsFor(models.RoleCompany, "co-1")

	_, err := f.svc.Profile(context.Background(), company)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))

	_, err = f.svc.SaveProfile(context.Background(), company, dto.CompanyProfileRequest{Name: "Acme", Website: "https://acme.test"})
	require.NoError(t, err)
	profile, err := f.svc.Profile(context.Background(), company)
	require.NoError(t, err)
	assert.Equal(t, "Acme", profile.Name)

	_, err = f.svc.SaveProfile(context.Background(), company, dto.CompanyProfileRequest{Name: "Acme", Website: "acme"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}
