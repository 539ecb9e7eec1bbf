package auth

import (
	"github.com/sportshub-india/sportshub-backend/internal/users"
)

// RegisterInput is the canonical registration payload after alias normalization.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// LoginInput carries the login identifier and secret. Email takes precedence
// over Name when both are present.
type LoginInput struct {
	Email    string
	Name     string
	Password string
}

// AuthResult is produced by a successful register or login.
type AuthResult struct {
	Token string
	User  *users.UserDTO
}
