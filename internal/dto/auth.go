package dto

import "github.com/noah-isme/placement-portal-api/internal/models"

// RegisterRequest is the account registration payload. Role specific fields
// are checked by the auth service once the role is known.
type RegisterRequest struct {
	FirstName       string          `json:"firstName" validate:"required,max=100"`
	LastName        string          `json:"lastName" validate:"required,max=100"`
	Email           string          `json:"email" validate:"required,email,max=200"`
	Password        string          `json:"password" validate:"required,min=6"`
	ConfirmPassword string          `json:"confirmPassword" validate:"required,eqfield=Password"`
	UserType        models.UserRole `json:"userType" validate:"required,oneof=STUDENT COMPANY COLLEGE"`
	CollegeName     string          `json:"collegeName" validate:"max=200"`
	Department      string          `json:"department" validate:"max=100"`
	Year            int             `json:"year" validate:"omitempty,min=1,max=6"`
	CGPA            float64         `json:"cgpa" validate:"min=0,max=10"`
	Skills          string          `json:"skills" validate:"max=1000"`
	CompanyName     string          `json:"companyName" validate:"max=200"`
	IP              string          `json:"-"`
	UserAgent       string          `json:"-"`
}

// RegisterResponse describes the created account.
type RegisterResponse struct {
	User      models.UserInfo `json:"user"`
	StudentID string          `json:"studentId,omitempty"`
}

// LogoutRequest carries the refresh token to revoke.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
