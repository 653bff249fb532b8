package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/placement-portal-api/internal/models"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
)

func strPtr(s string) *string { return &s }

func TestStudentApprovalStates(t *testing.T) {
	assert.Equal(t, ApprovalUnset, StudentApproval(nil))
	assert.Equal(t, ApprovalUnset, StudentApproval(&models.Student{CollegeName: models.CollegeUnassigned, IsApproved: true}))
	assert.Equal(t, ApprovalPending, StudentApproval(&models.Student{CollegeName: "X U"}))
	assert.Equal(t, ApprovalApproved, StudentApproval(&models.Student{CollegeName: "X U", IsApproved: true}))
}

func TestApprovalMessages(t *testing.T) {
	assert.Contains(t, ApprovalMessage(&models.Student{CollegeName: models.CollegeUnassigned}), "choose a valid college")
	assert.Equal(t, "Pending college confirmation for X U.", ApprovalMessage(&models.Student{CollegeName: "X U"}))
	assert.Empty(t, ApprovalMessage(&models.Student{CollegeName: "X U", IsApproved: true}))

	err := RequireApproved(&models.Student{CollegeName: "X U"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrApprovalRequired))
	assert.Contains(t, err.Error(), "Pending college confirmation")
}

func TestChangeCollegeAlwaysResetsApproval(t *testing.T) {
	for _, approved := range []bool{true, false} {
		s := &models.Student{CollegeName: "X U", CollegeKey: "x u", IsApproved: approved}

		changed := ChangeCollege(s, " Y U ")

		assert.True(t, changed)
		assert.False(t, s.IsApproved)
		assert.Equal(t, "Y U", s.CollegeName)
		assert.Equal(t, "y u", s.CollegeKey)
	}
}

func TestChangeCollegeSameValueKeepsApproval(t *testing.T) {
	s := &models.Student{CollegeName: "X U", CollegeKey: "x u", IsApproved: true}

	assert.False(t, ChangeCollege(s, "X U  "))
	assert.True(t, s.IsApproved)
}

func TestChangeCollegeCaseOnlyEditStillResets(t *testing.T) {
	s := &models.Student{CollegeName: "X U", CollegeKey: "x u", IsApproved: true}

	assert.True(t, ChangeCollege(s, "x u"))
	assert.False(t, s.IsApproved)
	assert.Equal(t, "x u", s.CollegeKey)
}

func TestCanApprove(t *testing.T) {
	college := &models.College{Name: "X U", NameKey: "x u", OwnerUserID: strPtr("college-1")}
	student := &models.Student{CollegeName: " x u"}

	require.NoError(t, CanApprove("college-1", college, student))

	err := CanApprove("college-2", college, student)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))

	err = CanApprove("college-1", college, &models.Student{CollegeName: "Y U"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))

	err = CanApprove("college-1", &models.College{Name: "X U", NameKey: "x u"}, student)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))

	err = CanApprove("college-1", &models.College{Name: "Unassigned", NameKey: "unassigned", OwnerUserID: strPtr("college-1")}, &models.Student{CollegeName: "Unassigned"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))
}
