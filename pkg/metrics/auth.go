package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels shared by the auth counters.
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeDuplicate          = "duplicate"
	OutcomeValidation         = "validation"
	OutcomeError              = "error"
	OutcomeMigrated           = "migrated"
	OutcomeFailed             = "failed"
	OutcomeRehashed           = "rehashed"
)

// AuthMetrics tracks register/login traffic and password hashing cost.
type AuthMetrics struct {
	login     *prometheus.CounterVec
	register  *prometheus.CounterVec
	migration *prometheus.CounterVec
	hashing   prometheus.Histogram
}

// NewAuthMetrics registers the auth metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewAuthMetrics(reg prometheus.Registerer) *AuthMetrics {
	if reg == nil {
		return &AuthMetrics{}
	}
	login := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_login_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})
	register := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_register_total",
		Help: "Registration attempts by outcome.",
	}, []string{"outcome"})
	migration := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_legacy_migration_total",
		Help: "Stored secrets upgraded to argon2id on login, by outcome.",
	}, []string{"outcome"})
	hashing := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "auth_hash_duration_seconds",
		Help:    "Time spent hashing or verifying passwords.",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	})
	reg.MustRegister(login, register, migration, hashing)
	return &AuthMetrics{
		login:     login,
		register:  register,
		migration: migration,
		hashing:   hashing,
	}
}

// IncLogin records a login attempt.
func (m *AuthMetrics) IncLogin(outcome string) {
	if m == nil || m.login == nil {
		return
	}
	m.login.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncRegister records a registration attempt.
func (m *AuthMetrics) IncRegister(outcome string) {
	if m == nil || m.register == nil {
		return
	}
	m.register.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncMigration records an attempt to rewrite a stored secret.
func (m *AuthMetrics) IncMigration(outcome string) {
	if m == nil || m.migration == nil {
		return
	}
	m.migration.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveHash records the duration of a hash or verify call.
func (m *AuthMetrics) ObserveHash(duration time.Duration) {
	if m == nil || m.hashing == nil {
		return
	}
	m.hashing.Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
