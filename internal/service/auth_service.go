package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/placement-portal-api/internal/dto"
	"github.com/noah-isme/placement-portal-api/internal/models"
	"github.com/noah-isme/placement-portal-api/internal/policy"
	"github.com/noah-isme/placement-portal-api/internal/repository"
	"github.com/noah-isme/placement-portal-api/pkg/database"
	appErrors "github.com/noah-isme/placement-portal-api/pkg/errors"
)

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id string, ts time.Time) error
	CreateStudent(ctx context.Context, user *models.User, student *models.Student, nextStudentID func() string) error
	CreateCompany(ctx context.Context, user *models.User, company *models.Company) error
	CreateCollegeAdmin(ctx context.Context, user *models.User, college *models.College) error
	RevokeUserRefreshTokens(ctx context.Context, userID string) error
	CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error
	FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	AccessTokenSecret  string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	Issuer             string
	Audience           []string
	SingleSession      bool
}

// AuthService provides registration and session use cases.
type AuthService struct {
	repo      authUserRepository
	audit     auditRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	studentID func() string
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, audit auditRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{
		repo:      repo,
		audit:     audit,
		cache:     cache,
		validator: validate,
		logger:    logger,
		config:    config,
		studentID: func() string { return NewStudentID(time.Now()) },
	}
}

// NewStudentID returns a candidate student identifier: the UTC year and month
// followed by four random digits.
func NewStudentID(now time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		n = big.NewInt(now.UnixNano() % 10000)
	}
	return fmt.Sprintf("%s%04d", now.UTC().Format("200601"), n.Int64())
}

// Register creates the account and its role profile in one transaction.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.CollegeName = strings.TrimSpace(req.CollegeName)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err, "invalid registration payload")
	}
	if err := validateRoleFields(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email is already registered")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Dependency(err, "check email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Dependency(err, "hash password")
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.UserType,
	}
	resp := &dto.RegisterResponse{}

	switch req.UserType {
	case models.RoleStudent:
		collegeName := policy.DisplayCollegeName(req.CollegeName)
		student := &models.Student{
			CollegeName: collegeName,
			CollegeKey:  policy.CollegeKey(collegeName),
			Department:  strings.TrimSpace(req.Department),
			Year:        req.Year,
			CGPA:        req.CGPA,
			Skills:      strings.TrimSpace(req.Skills),
		}
		err = s.repo.CreateStudent(ctx, user, student, s.studentID)
		resp.StudentID = student.StudentID
	case models.RoleCompany:
		err = s.repo.CreateCompany(ctx, user, &models.Company{Name: strings.TrimSpace(req.CompanyName)})
	case models.RoleCollege:
		err = s.repo.CreateCollegeAdmin(ctx, user, &models.College{
			Name:    req.CollegeName,
			NameKey: policy.CollegeKey(req.CollegeName),
		})
	}
	if err != nil {
		return nil, s.registrationError(err, req)
	}

	_ = s.cache.Invalidate(ctx, cacheKeyCollegeDirectory)
	recordAudit(ctx, s.audit, s.logger, auditEntry{
		actor:      &models.JWTClaims{UserID: user.ID},
		action:     models.AuditActionRegister,
		resource:   "user",
		resourceID: user.ID,
		newValues:  map[string]string{"role": string(user.Role)},
		ip:         req.IP,
		userAgent:  req.UserAgent,
	})
	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))

	resp.User = userInfo(user)
	return resp, nil
}

func (s *AuthService) registrationError(err error, req dto.RegisterRequest) error {
	switch {
	case errors.Is(err, repository.ErrCollegeClaimed):
		return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("%s is already managed by another account", req.CollegeName))
	case database.IsUniqueViolation(err, "users_email_key"):
		return appErrors.Clone(appErrors.ErrConflict, "email is already registered")
	case database.IsUniqueViolation(err):
		return appErrors.Clone(appErrors.ErrConflict, "account already exists")
	default:
		s.logger.Error("registration failed", zap.String("role", string(req.UserType)), zap.Error(err))
		return appErrors.Dependency(err, "create account")
	}
}

const errAllCollegesNotACollege = "\"All Colleges\" is a job scope, choose your own college"

func validateRoleFields(req dto.RegisterRequest) error {
	switch req.UserType {
	case models.RoleStudent:
		if req.CollegeName == "" {
			return invalid("college name is required")
		}
		if !policy.StudentCollegeAllowed(req.CollegeName) {
			return invalid(errAllCollegesNotACollege)
		}
		if strings.TrimSpace(req.Department) == "" {
			return invalid("department is required")
		}
		if req.Year == 0 {
			return invalid("year is required")
		}
	case models.RoleCompany:
		if strings.TrimSpace(req.CompanyName) == "" {
			return invalid("company name is required")
		}
	case models.RoleCollege:
		if req.CollegeName == "" || policy.IsUnassigned(req.CollegeName) || policy.IsAllColleges(req.CollegeName) {
			return invalid("a real college name is required")
		}
	}
	return nil
}

// Login authenticates a user and returns issued tokens.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err, "invalid login payload")
	}

	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
		}
		return nil, appErrors.Dependency(err, "fetch user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}

	if s.config.SingleSession {
		if err := s.repo.RevokeUserRefreshTokens(ctx, user.ID); err != nil {
			s.logger.Warn("failed to revoke previous refresh tokens", zap.Error(err))
		}
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, appErrors.Dependency(err, "create access token")
	}

	refreshToken, err := s.issueRefreshToken(ctx, user.ID, req.IP, req.UserAgent)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to update last login", zap.Error(err))
	}

	recordAudit(ctx, s.audit, s.logger, auditEntry{
		actor:      &models.JWTClaims{UserID: user.ID},
		action:     models.AuditActionLogin,
		resource:   "auth",
		resourceID: user.ID,
		newValues:  map[string]string{"status": "success"},
		ip:         req.IP,
		userAgent:  req.UserAgent,
	})

	return &models.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		ExpiresIn:    int64(s.config.AccessTokenExpiry.Seconds()),
		IssuedAt:     time.Now().UTC(),
		User:         userInfo(user),
	}, nil
}

// RefreshToken exchanges a refresh token for a new token pair.
func (s *AuthService) RefreshToken(ctx context.Context, req models.RefreshTokenRequest) (*models.RefreshTokenResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err, "invalid refresh payload")
	}

	storedToken, err := s.repo.FindRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "refresh token not found")
		}
		return nil, appErrors.Dependency(err, "fetch refresh token")
	}

	if storedToken.Revoked || time.Now().UTC().After(storedToken.ExpiresAt) {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "refresh token is expired or revoked")
	}

	user, err := s.repo.FindByID(ctx, storedToken.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "associated user no longer exists")
		}
		return nil, appErrors.Dependency(err, "load user")
	}

	if err := s.repo.RevokeRefreshToken(ctx, storedToken.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to revoke used refresh token", zap.Error(err))
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, appErrors.Dependency(err, "create access token")
	}

	newRefresh, err := s.issueRefreshToken(ctx, user.ID, req.IP, req.UserAgent)
	if err != nil {
		return nil, err
	}

	return &models.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh.Token,
		ExpiresIn:    int64(s.config.AccessTokenExpiry.Seconds()),
		IssuedAt:     time.Now().UTC(),
	}, nil
}

// Logout revokes the presented refresh token.
func (s *AuthService) Logout(ctx context.Context, principal *models.JWTClaims, refreshToken string, meta models.LoginRequest) error {
	if principal == nil {
		return appErrors.ErrUnauthorized
	}
	storedToken, err := s.repo.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrUnauthorized, "refresh token not found")
		}
		return appErrors.Dependency(err, "load refresh token")
	}

	if storedToken.UserID != principal.UserID {
		return appErrors.Clone(appErrors.ErrForbidden, "token does not belong to user")
	}

	if err := s.repo.RevokeRefreshToken(ctx, storedToken.ID, time.Now().UTC()); err != nil {
		return appErrors.Dependency(err, "revoke refresh token")
	}

	recordAudit(ctx, s.audit, s.logger, auditEntry{
		actor:      principal,
		action:     models.AuditActionLogout,
		resource:   "auth",
		resourceID: principal.UserID,
		newValues:  map[string]string{"status": "logout"},
		ip:         meta.IP,
		userAgent:  meta.UserAgent,
	})
	return nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || !claims.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) issueRefreshToken(ctx context.Context, userID, ip, userAgent string) (*models.RefreshToken, error) {
	value, err := generateRefreshTokenString()
	if err != nil {
		return nil, appErrors.Dependency(err, "create refresh token")
	}
	now := time.Now().UTC()
	token := &models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     value,
		ExpiresAt: now.Add(s.config.RefreshTokenExpiry),
		CreatedAt: now,
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := s.repo.CreateRefreshToken(ctx, token); err != nil {
		return nil, appErrors.Dependency(err, "persist refresh token")
	}
	return token, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	issuedAt := time.Now().UTC()
	claims := &models.JWTClaims{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
		Name:   user.DisplayName(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			Audience:  s.config.Audience,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.AccessTokenSecret))
}

func generateRefreshTokenString() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func userInfo(user *models.User) models.UserInfo {
	return models.UserInfo{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	}
}
