package handler

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
	"github.com/noah-isme/placement-portal-api/pkg/response"
	"github.com/noah-isme/placement-portal-api/pkg/storage"
)

type resumeOpener interface {
	Open(token string) (*os.File, *storage.Grant, error)
}

// ResumeHandler serves resumes behind signed links.
type ResumeHandler struct {
	resumes resumeOpener
}

// NewResumeHandler constructs ResumeHandler.
func NewResumeHandler(resumes resumeOpener) *ResumeHandler {
	return &ResumeHandler{resumes: resumes}
}

// Download godoc
// @Summary Download a resume
// @Description The token is issued to one viewer and expires
// @Tags Files
// @Produce application/octet-stream
// @Param token query string true "Signed token"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Router /files/resumes [get]
func (h *ResumeHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token required"))
		return
	}
	file, grant, err := h.resumes.Open(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Dependency(err, "stat resume"))
		return
	}
	contentType := mime.TypeByExtension(filepath.Ext(grant.Path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Cache-Control", "private, no-store")
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, map[string]string{
		"Content-Disposition": fmt.Sprintf("inline; filename=%q", filepath.Base(grant.Path)),
	})
}
