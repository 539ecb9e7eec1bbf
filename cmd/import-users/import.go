package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"

	"github.com/sportshub-india/sportshub-backend/internal/users"
	"github.com/sportshub-india/sportshub-backend/pkg/db/models"
	"github.com/sportshub-india/sportshub-backend/pkg/enums"
	"github.com/sportshub-india/sportshub-backend/pkg/logger"
	"github.com/sportshub-india/sportshub-backend/pkg/types"
)

// legacyUser is one document from the old users collection export.
type legacyUser struct {
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Password       string          `json:"password"`
	Role           string          `json:"role"`
	Phone          *string         `json:"phone"`
	Location       *types.Location `json:"location"`
	Position       *string         `json:"position"`
	Specialization *string         `json:"specialization"`
}

type userCreator interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

type importer struct {
	repo userCreator
	logg *logger.Logger
}

type importResult struct {
	Imported   int
	Duplicates int
	Failed     int
}

// Run inserts every record in the JSON array read from r. The stored password
// is copied as-is so that login can migrate it on first use. Failed rows are
// returned together and do not stop the import.
func (im *importer) Run(ctx context.Context, r io.Reader) (importResult, error) {
	var records []legacyUser
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return importResult{}, fmt.Errorf("decode export: %w", err)
	}

	var (
		result importResult
		errs   error
	)
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return result, multierr.Append(errs, err)
		}

		dto, err := rec.toDTO()
		if err == nil {
			_, err = im.repo.Create(ctx, dto)
		}
		if err != nil {
			if errors.Is(err, users.ErrDuplicateEmail) {
				result.Duplicates++
			} else {
				result.Failed++
			}
			errs = multierr.Append(errs, fmt.Errorf("record %d (%s): %w", i, strings.TrimSpace(rec.Email), err))
			continue
		}
		result.Imported++
	}

	if im.logg != nil {
		im.logg.Info(im.logg.WithFields(ctx, map[string]any{
			"imported":   result.Imported,
			"duplicates": result.Duplicates,
			"failed":     result.Failed,
		}), "legacy users imported")
	}
	return result, errs
}

func (u legacyUser) toDTO() (users.CreateUserDTO, error) {
	var missing []string
	if strings.TrimSpace(u.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(u.Email) == "" {
		missing = append(missing, "email")
	}
	if u.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return users.CreateUserDTO{}, fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}

	role, err := enums.ParseRole(u.Role)
	if err != nil {
		return users.CreateUserDTO{}, err
	}

	dto := users.CreateUserDTO{
		Name:           u.Name,
		Email:          u.Email,
		PasswordHash:   u.Password,
		Role:           role,
		Phone:          u.Phone,
		Position:       u.Position,
		Specialization: u.Specialization,
	}
	if u.Location != nil {
		dto.Location = *u.Location
	}
	return dto, nil
}
