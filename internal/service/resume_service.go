package service

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
	"github.com/noah-isme/placement-portal-api/pkg/jobs"
	"github.com/noah-isme/placement-portal-api/pkg/storage"
)

// JobTypeResumeDelete is the background job removing a stored resume.
const JobTypeResumeDelete = "resume.delete"

// Enqueuer schedules background jobs.
type Enqueuer interface {
	Enqueue(job jobs.Job) error
}

// Resume file name prefixes.
const (
	ResumeKindProfile     = "resume"
	ResumeKindApplication = "app"
)

var pdfMagic = []byte("%PDF-")

type fileStore interface {
	SaveStream(name string, r io.Reader, maxBytes int64) (string, error)
	Open(name string) (*os.File, error)
	Delete(name string) error
}

type urlSigner interface {
	Generate(viewerID, relPath string) (string, time.Time, error)
	Verify(token string) (*storage.Grant, error)
}

// ResumeService stores uploaded resumes and issues signed download links.
// Only the resulting relative path is kept on profiles and applications.
type ResumeService struct {
	store        fileStore
	signer       urlSigner
	maxBytes     int64
	downloadPath string
	cleanup      Enqueuer
	logger       *zap.Logger
}

// NewResumeService constructs a ResumeService. downloadPath is the route
// serving signed downloads.
func NewResumeService(store fileStore, signer urlSigner, maxBytes int64, downloadPath string, logger *zap.Logger) *ResumeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &ResumeService{store: store, signer: signer, maxBytes: maxBytes, downloadPath: downloadPath, logger: logger}
}

// Store saves a PDF upload as {kind}_{ownerID}_{token}.pdf and returns the
// stored path.
func (s *ResumeService) Store(kind, ownerID string, upload *dto.FileUpload) (string, error) {
	if upload == nil || upload.Reader == nil {
		return "", invalid("resume file is required")
	}
	if !strings.EqualFold(path.Ext(upload.Filename), ".pdf") {
		return "", invalid("resume must be a PDF file")
	}
	if upload.Size > s.maxBytes {
		return "", invalid(fmt.Sprintf("resume must be at most %d KB", s.maxBytes>>10))
	}

	reader := bufio.NewReader(upload.Reader)
	head, err := reader.Peek(len(pdfMagic))
	if err != nil || !bytes.Equal(head, pdfMagic) {
		return "", invalid("resume must be a PDF file")
	}

	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	name := fmt.Sprintf("resumes/%s_%s_%s.pdf", kind, ownerID, token)
	stored, err := s.store.SaveStream(name, reader, s.maxBytes)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return "", invalid(fmt.Sprintf("resume must be at most %d KB", s.maxBytes>>10))
		}
		return "", appErrors.Dependency(err, "store resume")
	}
	return stored, nil
}

// UseCleanupQueue moves deletions onto a background queue running
// HandleCleanup.
func (s *ResumeService) UseCleanupQueue(q Enqueuer) {
	s.cleanup = q
}

// HandleCleanup is the jobs handler for JobTypeResumeDelete.
func (s *ResumeService) HandleCleanup(ctx context.Context, job jobs.Job) error {
	if job.Kind != JobTypeResumeDelete || job.Key == "" {
		return nil
	}
	return s.store.Delete(job.Key)
}

// Remove deletes stored resumes, through the cleanup queue when one is
// attached. Failures are logged only.
func (s *ResumeService) Remove(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if s.cleanup != nil {
			err := s.cleanup.Enqueue(jobs.Job{ID: uuid.NewString(), Kind: JobTypeResumeDelete, Key: p})
			if err == nil {
				continue
			}
			s.logger.Warn("failed to queue resume cleanup", zap.String("path", p), zap.Error(err))
		}
		if err := s.store.Delete(p); err != nil {
			s.logger.Warn("failed to delete resume", zap.String("path", p), zap.Error(err))
		}
	}
}

// DownloadURL returns a signed link to the resume for viewerID, or an empty
// string when there is no resume.
func (s *ResumeService) DownloadURL(viewerID, resumePath string) string {
	if resumePath == "" || s.signer == nil {
		return ""
	}
	token, _, err := s.signer.Generate(viewerID, resumePath)
	if err != nil {
		s.logger.Warn("failed to sign resume link", zap.Error(err))
		return ""
	}
	return s.downloadPath + "?token=" + url.QueryEscape(token)
}

// Open verifies a download token and opens the referenced file.
func (s *ResumeService) Open(token string) (*os.File, *storage.Grant, error) {
	grant, err := s.signer.Verify(token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, nil, appErrors.Clone(appErrors.ErrForbidden, "download link has expired")
		}
		return nil, nil, appErrors.Clone(appErrors.ErrForbidden, "download link is invalid")
	}
	file, err := s.store.Open(grant.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "resume not found")
		}
		return nil, nil, appErrors.Dependency(err, "open resume")
	}
	return file, grant, nil
}
