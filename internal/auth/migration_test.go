package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportshub-india/sportshub-backend/internal/users"
	pkgAuth "github.com/sportshub-india/sportshub-backend/pkg/auth"
	"github.com/sportshub-india/sportshub-backend/pkg/config"
	"github.com/sportshub-india/sportshub-backend/pkg/db"
	"github.com/sportshub-india/sportshub-backend/pkg/db/models"
	"github.com/sportshub-india/sportshub-backend/pkg/enums"
	"github.com/sportshub-india/sportshub-backend/pkg/metrics"
	"github.com/sportshub-india/sportshub-backend/pkg/security"
)

func newSQLiteService(t *testing.T) (Service, *users.Repository, *pkgAuth.Issuer) {
	t.Helper()
	client, err := db.New(context.Background(), config.DBConfig{
		Driver:       config.DBDriverSQLite,
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", t.Name()),
		MaxOpenConns: 1,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.DB().AutoMigrate(&models.User{}))

	issuer, err := pkgAuth.NewIssuer(config.JWTConfig{Secret: "secret", Issuer: "sportshub"})
	require.NoError(t, err)

	repo := users.NewRepository(client.DB())
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		Issuer:         issuer,
		PasswordConfig: testPasswordCfg,
		Metrics:        metrics.NewAuthMetrics(prometheus.NewRegistry()),
	})
	require.NoError(t, err)
	return svc, repo, issuer
}

func TestLoginConcurrentLegacyMigration(t *testing.T) {
	svc, repo, issuer := newSQLiteService(t)
	ctx := context.Background()

	legacy, err := repo.Create(ctx, users.CreateUserDTO{
		Name:         "Old",
		Email:        "old@x.com",
		PasswordHash: "plainpass",
		Role:         enums.RoleFan,
	})
	require.NoError(t, err)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := svc.Login(ctx, LoginInput{Email: "old@x.com", Password: "plainpass"})
			if err == nil && result.User.ID != legacy.ID {
				err = fmt.Errorf("logged in as %s", result.User.ID)
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	stored, err := repo.FindByEmail(ctx, "old@x.com")
	require.NoError(t, err)
	assert.True(t, security.LooksHashed(stored.PasswordHash), "stored value %q is not a hash", stored.PasswordHash)
	assert.True(t, security.VerifyPassword("plainpass", stored.PasswordHash).OK())

	result, err := svc.Login(ctx, LoginInput{Email: "old@x.com", Password: "plainpass"})
	require.NoError(t, err)
	assertTokenFor(t, issuer, result.Token, legacy.ID, enums.RoleFan)

	_, err = svc.Login(ctx, LoginInput{Email: "old@x.com", Password: "wrongpass"})
	require.Error(t, err)
}
