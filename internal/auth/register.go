package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sportshub-india/sportshub-backend/internal/users"
	"github.com/sportshub-india/sportshub-backend/pkg/db"
	"github.com/sportshub-india/sportshub-backend/pkg/enums"
	pkgerrors "github.com/sportshub-india/sportshub-backend/pkg/errors"
	"github.com/sportshub-india/sportshub-backend/pkg/metrics"
	"github.com/sportshub-india/sportshub-backend/pkg/security"
)

const duplicateEmailMessage = "user already exists"

func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	result, err := s.register(ctx, input)
	s.metrics.IncRegister(registerOutcome(err))
	return result, err
}

func (s *service) register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := users.NormalizeEmail(input.Email)

	missing := []string{}
	if name == "" {
		missing = append(missing, "name")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name, email and password are required").
			WithDetails(map[string]any{"missing": missing})
	}

	role, err := enums.ParseRole(input.Role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role").
			WithDetails(map[string]any{"allowed": enums.Roles()})
	}

	_, err = s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDuplicateEmail, duplicateEmailMessage)
	case !db.IsNotFound(err):
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	started := time.Now()
	passwordHash, err := security.HashPassword(input.Password, s.passwordCfg)
	s.metrics.ObserveHash(time.Since(started))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, users.ErrDuplicateEmail) {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicateEmail, duplicateEmailMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	return s.issue(user)
}

func registerOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case pkgerrors.Is(err, pkgerrors.CodeDuplicateEmail):
		return metrics.OutcomeDuplicate
	case pkgerrors.Is(err, pkgerrors.CodeValidation):
		return metrics.OutcomeValidation
	default:
		return metrics.OutcomeError
	}
}
