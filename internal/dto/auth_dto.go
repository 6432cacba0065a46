package dto

import (
	"github.com/golang-jwt/jwt/v5"
)

// RegisterRequest is the body for POST /api/auth/register.
// Password is optional; an empty one creates a passwordless account.
type RegisterRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Password  string `json:"password"`
	Language  string `json:"language"`
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Password  string `json:"password"`
}

// TokenResponse is returned by both register and login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	StudentID   string `json:"student_id"`
	IsAdmin     bool   `json:"is_admin"`
}

// MeResponse describes the authenticated caller.
type MeResponse struct {
	StudentID string `json:"student_id"`
	IsAdmin   bool   `json:"is_admin"`
	Language  string `json:"language"`
}

// AuthClaims defines the custom claims for JWT. The subject carries the
// student id; validity is purely signature plus expiry.
type AuthClaims struct {
	jwt.RegisteredClaims
}

// UserSummary is one row of the admin user listing. Password hashes are
// never serialized.
type UserSummary struct {
	StudentID string `json:"student_id"`
	IsAdmin   bool   `json:"is_admin"`
	Language  string `json:"language"`
	CreatedAt string `json:"created_at"`
}

// UsersListResponse wraps the admin user listing.
type UsersListResponse struct {
	Users []UserSummary `json:"users"`
}

// UpdateUserRequest is the body for PUT /api/admin/users/{student_id}.
// IsAdmin is a pointer so "not provided" and "false" stay distinguishable.
type UpdateUserRequest struct {
	IsAdmin *bool `json:"is_admin"`
}

// MessageResponse is a generic message plus the affected student id.
type MessageResponse struct {
	Message   string `json:"message"`
	StudentID string `json:"student_id,omitempty"`
}
