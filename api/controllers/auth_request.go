package controllers

import (
	"strings"

	"github.com/sportshub-india/sportshub-backend/internal/auth"
	"github.com/sportshub-india/sportshub-backend/internal/users"
	"github.com/sportshub-india/sportshub-backend/pkg/types"
)

// The web client sends either the canonical or the user_* field names.

type registerRequest struct {
	Name      string `json:"name" validate:"max=100"`
	UserName  string `json:"user_name" validate:"max=100"`
	Email     string `json:"email" validate:"max=254"`
	UserEmail string `json:"user_email" validate:"max=254"`
	Password  string `json:"password" validate:"max=256"`
	Role      string `json:"role"`
}

func (r registerRequest) toInput() auth.RegisterInput {
	return auth.RegisterInput{
		Name:     firstNonBlank(r.Name, r.UserName),
		Email:    firstNonBlank(r.Email, r.UserEmail),
		Password: r.Password,
		Role:     r.Role,
	}
}

type loginRequest struct {
	Name      string `json:"name" validate:"max=100"`
	UserName  string `json:"user_name" validate:"max=100"`
	Email     string `json:"email" validate:"max=254"`
	UserEmail string `json:"user_email" validate:"max=254"`
	Password  string `json:"password" validate:"max=256"`
}

func (r loginRequest) toInput() auth.LoginInput {
	return auth.LoginInput{
		Email:    firstNonBlank(r.Email, r.UserEmail),
		Name:     firstNonBlank(r.Name, r.UserName),
		Password: r.Password,
	}
}

type updateRequest struct {
	Name           *string         `json:"name" validate:"omitempty,max=100"`
	UserName       *string         `json:"user_name" validate:"omitempty,max=100"`
	Phone          *string         `json:"phone" validate:"omitempty,max=20"`
	Location       *types.Location `json:"location"`
	Position       *string         `json:"position" validate:"omitempty,max=64"`
	Specialization *string         `json:"specialization" validate:"omitempty,max=128"`
}

func (r updateRequest) toDTO() users.UpdateUserDTO {
	name := r.Name
	if name == nil {
		name = r.UserName
	}
	return users.UpdateUserDTO{
		Name:           name,
		Phone:          r.Phone,
		Location:       r.Location,
		Position:       r.Position,
		Specialization: r.Specialization,
	}
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
