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
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
)

type fakeAnnouncementRepo struct {
	recipients int
	created    []*models.Announcement
	views      []models.AnnouncementView
}

func (f *fakeAnnouncementRepo) CreateForActiveApplicants(ctx context.Context, ann *models.Announcement) (int, error) {
	if f.recipients > 0 {
		ann.ID = "ann-1"
		ann.RecipientCount = f.recipients
		f.created = append(f.created, ann)
	}
	return f.recipients, nil
}

func (f *fakeAnnouncementRepo) ListForStudent(ctx context.Context, studentUserID string, limit int) ([]models.AnnouncementView, error) {
	return f.views, nil
}

func (f *fakeAnnouncementRepo) ListByCompany(ctx context.Context, companyUserID string) ([]models.AnnouncementView, error) {
	var out []models.AnnouncementView
	for _, v := range f.views {
		if v.CompanyUserID == companyUserID {
			out = append(out, v)
		}
	}
	return out, nil
}

func TestAnnouncementServiceCreate(t *testing.T) {
	repo := &fakeAnnouncementRepo{recipients: 3}
	audit := &recordingAudit{}
	jobs := newFakeJobRepo(testJob("j1", "co-1", "IIT Delhi", time.Now()))
	svc := NewAnnouncementService(repo, jobs, audit, nil, zap.NewNop())

	res, err := svc.Create(context.Background(), claimsFor(models.RoleCompany, "co-1"), "j1", dto.AnnouncementRequest{Title: "Interview", Message: "Round two on Monday"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.RecipientCount)
	assert.Equal(t, "ann-1", res.Announcement.ID)
	assert.Equal(t, []string{models.AuditActionAnnouncement}, audit.actions())
}

func TestAnnouncementServiceCreateWithoutApplicants(t *testing.T) {
	repo := &fakeAnnouncementRepo{}
	jobs := newFakeJobRepo(testJob("j1", "co-1", "IIT Delhi", time.Now()))
	svc := NewAnnouncementService(repo, jobs, nil, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), claimsFor(models.RoleCompany, "co-1"), "j1", dto.AnnouncementRequest{Title: "Interview", Message: "Round two"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
	assert.Empty(t, repo.created)
}

func TestAnnouncementServiceCreateGuards(t *testing.T) {
	repo := &fakeAnnouncementRepo{recipients: 1}
	jobs := newFakeJobRepo(testJob("j1", "co-1", "IIT Delhi", time.Now()))
	svc := NewAnnouncementService(repo, jobs, nil, nil, zap.NewNop())
	req := dto.AnnouncementRequest{Title: "Interview", Message: "Round two"}

	_, err := svc.Create(context.Background(), claimsFor(models.RoleCompany, "co-2"), "j1", req)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))

	_, err = svc.Create(context.Background(), claimsFor(models.RoleStudent, "stu-1"), "j1", req)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))

	_, err = svc.Create(context.Background(), claimsFor(models.RoleCompany, "co-1"), "missing", req)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))

	_, err = svc.Create(context.Background(), claimsFor(models.RoleCompany, "co-1"), "j1", dto.AnnouncementRequest{Title: "Interview"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
	assert.Empty(t, repo.created)
}

func TestAnnouncementServiceListings(t *testing.T) {
	repo := &fakeAnnouncementRepo{views: []models.AnnouncementView{
		{Announcement: models.Announcement{ID: "a1", CompanyUserID: "co-1"}},
		{Announcement: models.Announcement{ID: "a2", CompanyUserID: "co-2"}},
	}}
	svc := NewAnnouncementService(repo, newFakeJobRepo(), nil, nil, zap.NewNop())

	mine, err := svc.ListForCompany(context.Background(), claimsFor(models.RoleCompany, "co-1"))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "a1", mine[0].ID)

	visible, err := svc.ListForStudent(context.Background(), claimsFor(models.RoleStudent, "stu-1"))
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	_, err = svc.ListForStudent(context.Background(), claimsFor(models.RoleCollege, "col-admin"))
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))
}
