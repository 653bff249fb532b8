package service

import (
	"context"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
	"github.com/noah-isme/placement-portal-api/pkg/jobs"
	"github.com/noah-isme/placement-portal-api/pkg/storage"
)

func TestResumeServiceStoreAndDownload(t *testing.T) {
	svc := newTestResumes(t)

	stored, err := svc.Store(ResumeKindApplication, "stu-1", pdfUpload("CV.PDF"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored, "resumes/app_stu-1_"))
	assert.True(t, strings.HasSuffix(stored, ".pdf"))

	link := svc.DownloadURL("co-1", stored)
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/files/resumes", parsed.Path)

	file, grant, err := svc.Open(parsed.Query().Get("token"))
	require.NoError(t, err)
	defer file.Close()
	assert.Equal(t, "co-1", grant.ViewerID)
	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "%PDF-"))

	svc.Remove(stored)
	_, _, err = svc.Open(parsed.Query().Get("token"))
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
}

func TestResumeServiceStoreRejectsInvalidFiles(t *testing.T) {
	svc := newTestResumes(t)

	_, err := svc.Store(ResumeKindProfile, "stu-1", pdfUpload("cv.docx"))
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))

	fake := &dto.FileUpload{Filename: "cv.pdf", Size: 10, Reader: strings.NewReader("PK\x03\x04 zip")}
	_, err = svc.Store(ResumeKindProfile, "stu-1", fake)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))

	big := "%PDF-" + strings.Repeat("x", 2<<20)
	_, err = svc.Store(ResumeKindProfile, "stu-1", &dto.FileUpload{Filename: "cv.pdf", Reader: strings.NewReader(big)})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))

	_, err = svc.Store(ResumeKindProfile, "stu-1", nil)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}

func TestResumeServiceOpenRejectsBadTokens(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", -time.Minute)
	svc := NewResumeService(store, signer, 0, "/files/resumes", zap.NewNop())

	_, _, err = svc.Open("garbage")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))

	assert.Empty(t, svc.DownloadURL("co-1", ""))
}

func TestResumeServiceRemoveThroughCleanupQueue(t *testing.T) {
	svc := newTestResumes(t)
	queue := jobs.NewQueue("resume-cleanup", svc.HandleCleanup, jobs.QueueConfig{Workers: 1, Backoff: 10 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queue.Start(ctx)
	defer queue.Stop()
	svc.UseCleanupQueue(queue)

	stored, err := svc.Store(ResumeKindProfile, "stu-1", pdfUpload("cv.pdf"))
	require.NoError(t, err)
	token := tokenFrom(t, svc.DownloadURL("stu-1", stored))

	svc.Remove(stored)
	require.Eventually(t, func() bool {
		file, _, err := svc.Open(token)
		if file != nil {
			_ = file.Close()
		}
		return appErrors.HasCode(err, appErrors.ErrNotFound)
	}, 2*time.Second, 10*time.Millisecond)
}

func tokenFrom(t *testing.T, link string) string {
	t.Helper()
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	return parsed.Query().Get("token")
}
