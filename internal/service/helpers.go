package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/placement-portal-api/internal/models"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
)

type auditRepository interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type auditEntry struct {
	actor      *models.JWTClaims
	action     string
	resource   string
	resourceID string
	oldValues  interface{}
	newValues  interface{}
	ip         string
	userAgent  string
}

// recordAudit writes an audit entry. Failures are logged and never fail the
// surrounding operation.
func recordAudit(ctx context.Context, repo auditRepository, logger *zap.Logger, entry auditEntry) {
	if repo == nil {
		return
	}
	log := &models.AuditLog{
		Action:    entry.action,
		Resource:  entry.resource,
		IPAddress: entry.ip,
		UserAgent: entry.userAgent,
	}
	if entry.actor != nil {
		userID := entry.actor.UserID
		log.UserID = &userID
	}
	if entry.resourceID != "" {
		resourceID := entry.resourceID
		log.ResourceID = &resourceID
	}
	if entry.oldValues != nil {
		log.OldValues, _ = json.Marshal(entry.oldValues)
	}
	if entry.newValues != nil {
		log.NewValues, _ = json.Marshal(entry.newValues)
	}
	if err := repo.CreateAuditLog(ctx, log); err != nil {
		logger.Warn("failed to record audit log", zap.String("action", entry.action), zap.Error(err))
	}
}

// validationFailed turns validator output into a VALIDATION_ERROR naming the
// offending fields.
func validationFailed(err error, message string) *appErrors.Error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		parts := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
		message = fmt.Sprintf("%s: %s", message, strings.Join(parts, ", "))
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

func invalid(message string) *appErrors.Error {
	return appErrors.Clone(appErrors.ErrValidation, message)
}

// notFoundOr maps sql.ErrNoRows to NOT_FOUND and anything else to a
// dependency failure.
func notFoundOr(err error, notFound, failure string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return appErrors.Dependency(err, failure)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
