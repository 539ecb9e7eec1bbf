package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sportshub-india/sportshub-backend/internal/users"
	pkgAuth "github.com/sportshub-india/sportshub-backend/pkg/auth"
	"github.com/sportshub-india/sportshub-backend/pkg/config"
	"github.com/sportshub-india/sportshub-backend/pkg/db"
	"github.com/sportshub-india/sportshub-backend/pkg/db/models"
	pkgerrors "github.com/sportshub-india/sportshub-backend/pkg/errors"
	"github.com/sportshub-india/sportshub-backend/pkg/logger"
	"github.com/sportshub-india/sportshub-backend/pkg/metrics"
	"github.com/sportshub-india/sportshub-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByName(ctx context.Context, name string) (*models.User, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

type tokenIssuer interface {
	Issue(payload pkgAuth.AccessTokenPayload) (string, error)
}

type service struct {
	users       userRepository
	issuer      tokenIssuer
	passwordCfg config.PasswordConfig
	metrics     *metrics.AuthMetrics
	logg        *logger.Logger
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	Issuer         tokenIssuer
	PasswordConfig config.PasswordConfig
	Metrics        *metrics.AuthMetrics
	Logger         *logger.Logger
}

// NewService constructs the register/login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Issuer == nil {
		return nil, fmt.Errorf("token issuer is required")
	}
	return &service{
		users:       params.UserRepo,
		issuer:      params.Issuer,
		passwordCfg: params.PasswordConfig,
		metrics:     params.Metrics,
		logg:        params.Logger,
	}, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.lookup(ctx, input)
	if err != nil {
		s.metrics.IncLogin(loginOutcome(err))
		return nil, err
	}

	if !s.verify(ctx, user, input.Password) {
		s.metrics.IncLogin(metrics.OutcomeInvalidCredentials)
		return nil, pkgerrors.New(pkgerrors.CodeInvalidCredentials, invalidCredentialsMessage)
	}

	result, err := s.issue(user)
	if err != nil {
		s.metrics.IncLogin(metrics.OutcomeError)
		return nil, err
	}
	s.metrics.IncLogin(metrics.OutcomeSuccess)
	return result, nil
}

func (s *service) lookup(ctx context.Context, input LoginInput) (*models.User, error) {
	email := users.NormalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)

	var (
		user *models.User
		err  error
	)
	switch {
	case email != "":
		user, err = s.users.FindByEmail(ctx, email)
	case name != "":
		user, err = s.users.FindByName(ctx, name)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeInvalidCredentials, invalidCredentialsMessage)
	}
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidCredentials, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return user, nil
}

// verify checks the secret against the stored credential. A stored value that is
// not a recognised hash is treated as legacy plaintext: on an exact match it is
// replaced by an argon2id hash, and the login only succeeds if that write lands.
func (s *service) verify(ctx context.Context, user *models.User, password string) bool {
	stored := user.PasswordHash

	started := time.Now()
	outcome := security.VerifyPassword(password, stored)
	s.metrics.ObserveHash(time.Since(started))

	if outcome.OK() {
		if security.NeedsRehash(stored) {
			s.rehash(ctx, user, password, metrics.OutcomeRehashed)
		}
		return true
	}

	if security.LooksHashed(stored) || stored == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(stored)) != 1 {
		return false
	}

	return s.rehash(ctx, user, password, metrics.OutcomeMigrated)
}

func (s *service) rehash(ctx context.Context, user *models.User, password, outcome string) bool {
	started := time.Now()
	hash, err := security.HashPassword(password, s.passwordCfg)
	s.metrics.ObserveHash(time.Since(started))
	if err == nil {
		err = s.users.UpdatePasswordHash(ctx, user.ID, hash)
	}

	if err != nil {
		s.metrics.IncMigration(metrics.OutcomeFailed)
		if s.logg != nil {
			logCtx := s.logg.WithFields(ctx, map[string]any{"user_id": user.ID.String(), "kind": outcome})
			s.logg.Error(logCtx, "auth.password_upgrade.failed", err)
		}
		// bcrypt hashes still verified; only plaintext must fail closed
		return outcome != metrics.OutcomeMigrated
	}

	s.metrics.IncMigration(outcome)
	user.PasswordHash = hash
	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{"user_id": user.ID.String(), "kind": outcome}), "auth.password_upgraded")
	}
	return true
}

func (s *service) issue(user *models.User) (*AuthResult, error) {
	token, err := s.issuer.Issue(pkgAuth.AccessTokenPayload{UserID: user.ID, Role: user.Role})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return &AuthResult{Token: token, User: users.FromModel(user)}, nil
}

func loginOutcome(err error) string {
	if pkgerrors.Is(err, pkgerrors.CodeInvalidCredentials) {
		return metrics.OutcomeInvalidCredentials
	}
	return metrics.OutcomeError
}
