package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	"github.com/noah-isme/placement-portal-api/internal/models"
	"github.com/noah-isme/placement-portal-api/internal/policy"
	"github.com/noah-isme/placement-portal-api/internal/repository"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
	"github.com/noah-isme/placement-portal-api/pkg/storage"
)

func claimsFor(role models.UserRole, userID string) *models.JWTClaims {
	return &models.JWTClaims{UserID: userID, Role: role, Email: userID + "@example.com", Name: "User " + userID}
}

func approvedStudent(userID, college string) *models.Student {
	return &models.Student{
		ID:          "s-" + userID,
		UserID:      userID,
		StudentID:   "2026100001",
		CollegeName: college,
		CollegeKey:  policy.CollegeKey(college),
		Department:  "CSE",
		Year:        3,
		CGPA:        8.2,
		IsApproved:  true,
	}
}

func pdfUpload(name string) *dto.FileUpload {
	content := "%PDF-1.4\n% test resume\n"
	return &dto.FileUpload{Filename: name, ContentType: "application/pdf", Size: int64(len(content)), Reader: strings.NewReader(content)}
}

func newTestResumes(t *testing.T) *ResumeService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewResumeService(store, storage.NewSignedURLSigner("test-secret", time.Minute), 1<<20, "/files/resumes", zap.NewNop())
}

type recordingAudit struct {
	logs []*models.AuditLog
}

func (a *recordingAudit) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	a.logs = append(a.logs, log)
	return nil
}

func (a *recordingAudit) actions() []string {
	out := make([]string, 0, len(a.logs))
	for _, l := range a.logs {
		out = append(out, l.Action)
	}
	return out
}

type memoryCacheRepo struct {
	data      map[string][]byte
	deleted   []string
	patterns  []string
	deleteErr error
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{data: make(map[string][]byte)}
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memoryCacheRepo) Delete(ctx context.Context, keys ...string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for _, key := range keys {
		delete(m.data, key)
		m.deleted = append(m.deleted, key)
	}
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.patterns = append(m.patterns, pattern)
	for key := range m.data {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.data, key)
		}
	}
	return nil
}

func newTestCache(repo CacheRepository) *CacheService {
	return NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)
}

type fakeStudentRepo struct {
	byUser       map[string]*models.Student
	saveErr      error
	purged       int64
	savedPurge   bool
	applied      int
	approveErr   error
	approved     []string
	roster       []models.StudentRosterEntry
	rosterFilter models.StudentRosterFilter
	// beforeSave runs between the service's read and the write.
	beforeSave func()
}

func newFakeStudentRepo(students ...*models.Student) *fakeStudentRepo {
	repo := &fakeStudentRepo{byUser: make(map[string]*models.Student)}
	for _, s := range students {
		repo.byUser[s.UserID] = s
	}
	return repo
}

func (f *fakeStudentRepo) FindByUserID(ctx context.Context, userID string) (*models.Student, error) {
	s, ok := f.byUser[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *s
	return &clone, nil
}

func (f *fakeStudentRepo) FindByID(ctx context.Context, id string) (*models.Student, error) {
	for _, s := range f.byUser {
		if s.ID == id {
			clone := *s
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStudentRepo) Save(ctx context.Context, student *models.Student, purgeChat bool) (int64, error) {
	if f.saveErr != nil {
		return 0, f.saveErr
	}
	if f.beforeSave != nil {
		f.beforeSave()
	}
	f.savedPurge = purgeChat
	if stored, ok := f.byUser[student.UserID]; ok && stored.CollegeName == student.CollegeName {
		student.IsApproved = stored.IsApproved
	}
	clone := *student
	f.byUser[student.UserID] = &clone
	if purgeChat {
		return f.purged, nil
	}
	return 0, nil
}

func (f *fakeStudentRepo) CountApplications(ctx context.Context, userID string) (int, error) {
	return f.applied, nil
}

func (f *fakeStudentRepo) Approve(ctx context.Context, id, collegeKey string) error {
	if f.approveErr != nil {
		return f.approveErr
	}
	f.approved = append(f.approved, id)
	return nil
}

func (f *fakeStudentRepo) Roster(ctx context.Context, filter models.StudentRosterFilter) ([]models.StudentRosterEntry, error) {
	f.rosterFilter = filter
	return f.roster, nil
}

type fakeJobRepo struct {
	jobs          map[string]*models.JobWithCompany
	created       []*models.JobPosting
	deleted       []string
	deleteResumes []string
}

func newFakeJobRepo(jobs ...*models.JobWithCompany) *fakeJobRepo {
	repo := &fakeJobRepo{jobs: make(map[string]*models.JobWithCompany)}
	for _, j := range jobs {
		repo.jobs[j.ID] = j
	}
	return repo
}

func testJob(id, companyUserID, college string, applyBy time.Time) *models.JobWithCompany {
	return &models.JobWithCompany{
		JobPosting: models.JobPosting{
			ID:            id,
			CompanyUserID: companyUserID,
			Title:         "Job " + id,
			Type:          models.JobTypeFullTime,
			CollegeName:   college,
			CollegeKey:    policy.CollegeKey(college),
			ApplyBy:       applyBy,
		},
		CompanyName: "Acme",
	}
}

func (f *fakeJobRepo) FindByID(ctx context.Context, id string) (*models.JobWithCompany, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *j
	return &clone, nil
}

func (f *fakeJobRepo) ListByCollegeScope(ctx context.Context, collegeKey, allCollegesKey string) ([]models.JobWithCompany, error) {
	var out []models.JobWithCompany
	for _, j := range f.jobs {
		if j.CollegeKey == collegeKey || j.CollegeKey == allCollegesKey {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) ListByCompany(ctx context.Context, companyUserID string) ([]models.JobWithCompany, error) {
	var out []models.JobWithCompany
	for _, j := range f.jobs {
		if j.CompanyUserID == companyUserID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) ListByCompanyForCollege(ctx context.Context, companyUserID, collegeKey, allCollegesKey string) ([]models.JobWithCompany, error) {
	var out []models.JobWithCompany
	for _, j := range f.jobs {
		if j.CompanyUserID == companyUserID && (j.CollegeKey == collegeKey || j.CollegeKey == allCollegesKey) {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) Create(ctx context.Context, job *models.JobPosting) error {
	if job.ID == "" {
		job.ID = fmt.Sprintf("job-%d", len(f.created)+1)
	}
	f.created = append(f.created, job)
	f.jobs[job.ID] = &models.JobWithCompany{JobPosting: *job}
	return nil
}

func (f *fakeJobRepo) Delete(ctx context.Context, id, companyUserID string) ([]string, error) {
	j, ok := f.jobs[id]
	if !ok || j.CompanyUserID != companyUserID {
		return nil, sql.ErrNoRows
	}
	delete(f.jobs, id)
	f.deleted = append(f.deleted, id)
	return f.deleteResumes, nil
}

type fakeApplicationRepo struct {
	apps      []*models.Application
	details   map[string]*models.ApplicationDetail
	upsertErr error
	updateErr error
}

func newFakeApplicationRepo(apps ...*models.Application) *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: apps, details: make(map[string]*models.ApplicationDetail)}
}

func (f *fakeApplicationRepo) FindDetail(ctx context.Context, id string) (*models.ApplicationDetail, error) {
	d, ok := f.details[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *d
	return &clone, nil
}

func (f *fakeApplicationRepo) ListByStudent(ctx context.Context, studentUserID string) ([]models.Application, error) {
	var out []models.Application
	for _, a := range f.apps {
		if a.StudentUserID == studentUserID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]models.ApplicationDetail, error) {
	var out []models.ApplicationDetail
	for _, d := range f.details {
		if d.JobPostingID == jobID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) Upsert(ctx context.Context, app *models.Application) (bool, error) {
	if f.upsertErr != nil {
		return false, f.upsertErr
	}
	for _, existing := range f.apps {
		if existing.JobPostingID == app.JobPostingID && existing.StudentUserID == app.StudentUserID {
			status := existing.Status
			*existing = *app
			existing.Status = status
			app.Status = status
			return false, nil
		}
	}
	app.ID = fmt.Sprintf("app-%d", len(f.apps)+1)
	app.Status = models.ApplicationPending
	clone := *app
	f.apps = append(f.apps, &clone)
	return true, nil
}

func (f *fakeApplicationRepo) UpdateStatus(ctx context.Context, id, studentUserID string, to models.ApplicationStatus) (*models.Application, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for _, a := range f.apps {
		if a.ID == id {
			if a.Status != models.ApplicationPending {
				return nil, repository.ErrStatusFinal
			}
			a.Status = to
			clone := *a
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}
