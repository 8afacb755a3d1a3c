// Package models defines the wire types exchanged with the forensics backend.
package models

import "github.com/google/uuid"

// UserRole is the RBAC role assigned to an account.
type UserRole string

const (
	RoleAdmin        UserRole = "admin"
	RoleInvestigator UserRole = "investigator"
	RoleClient       UserRole = "client"
)

// UserProfile is the identity snapshot returned by GET /api/users/me.
// It is fetched once at login and cached; it is never refreshed except
// by logging in again.
type UserProfile struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
	Role     UserRole  `json:"role"`
	IsActive bool      `json:"is_active"`
}

// AuthTokens is the login response body.
type AuthTokens struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterRequest is the account-creation payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}
