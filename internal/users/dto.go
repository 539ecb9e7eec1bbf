package users

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sportshub-india/sportshub-backend/pkg/db/models"
	"github.com/sportshub-india/sportshub-backend/pkg/enums"
	"github.com/sportshub-india/sportshub-backend/pkg/types"
)

// UserDTO is the transport shape that omits sensitive credentials. Field names
// match what the web client already reads.
type UserDTO struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"user_name"`
	Email          string          `json:"user_email"`
	Role           enums.Role      `json:"role"`
	AvatarURL      *string         `json:"avatarUrl"`
	Phone          *string         `json:"phone,omitempty"`
	Location       *types.Location `json:"location,omitempty"`
	Position       *string         `json:"position,omitempty"`
	Specialization *string         `json:"specialization,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Name           string
	Email          string
	PasswordHash   string
	Role           enums.Role
	Phone          *string
	Location       types.Location
	Position       *string
	Specialization *string
}

// UpdateUserDTO is a partial profile update; nil fields are left untouched.
type UpdateUserDTO struct {
	Name           *string
	Phone          *string
	Location       *types.Location
	Position       *string
	Specialization *string
}

// IsEmpty reports whether the update carries no changes.
func (u UpdateUserDTO) IsEmpty() bool {
	return u.Name == nil && u.Phone == nil && u.Location == nil && u.Position == nil && u.Specialization == nil
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	dto := &UserDTO{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		Phone:          u.Phone,
		Position:       u.Position,
		Specialization: u.Specialization,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
	if !u.Location.IsZero() {
		loc := u.Location
		dto.Location = &loc
	}
	return dto
}

// NormalizeEmail applies the canonical stored form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (c CreateUserDTO) ToModel() *models.User {
	role := c.Role
	if role == "" {
		role = enums.DefaultRole
	}

	return &models.User{
		Name:           strings.TrimSpace(c.Name),
		Email:          NormalizeEmail(c.Email),
		PasswordHash:   c.PasswordHash,
		Role:           role,
		Phone:          c.Phone,
		Location:       types.Location{}.Merge(c.Location),
		Position:       c.Position,
		Specialization: c.Specialization,
	}
}
