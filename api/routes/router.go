package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sportshub-india/sportshub-backend/api/controllers"
	"github.com/sportshub-india/sportshub-backend/api/middleware"
	"github.com/sportshub-india/sportshub-backend/internal/auth"
	"github.com/sportshub-india/sportshub-backend/internal/chat"
	"github.com/sportshub-india/sportshub-backend/internal/users"
	pkgAuth "github.com/sportshub-india/sportshub-backend/pkg/auth"
	"github.com/sportshub-india/sportshub-backend/pkg/config"
	"github.com/sportshub-india/sportshub-backend/pkg/logger"
	"github.com/sportshub-india/sportshub-backend/pkg/redis"
)

// NewRouter mounts every HTTP route. redisClient and gatherer may be nil, which
// disables rate limiting and the /metrics endpoint respectively.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	issuer *pkgAuth.Issuer,
	authService auth.Service,
	userService users.Service,
	chatService chat.Service,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	var (
		rateStore   middleware.RateLimiterStore
		redisPinger controllers.Pinger
	)
	if redisClient != nil {
		rateStore = redisClient
		redisPinger = redisClient
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginIdentifierLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterIdentifierLimit,
	)

	chatPolicy := middleware.NewAuthRateLimitPolicy(
		"chat",
		cfg.ChatRateLimit.Window,
		cfg.ChatRateLimit.IPLimit,
		0,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", controllers.Health())
		r.Get("/live", controllers.HealthLive(cfg.App.Env))
		r.Get("/ready", controllers.HealthReady(cfg.App.Env, logg,
			controllers.ReadinessCheck{Name: "database", Pinger: dbP},
			controllers.ReadinessCheck{Name: "redis", Pinger: redisPinger},
		))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/", controllers.APIRoot())
		r.Get("/health", controllers.APIHealth())
		r.With(middleware.AuthRateLimit(chatPolicy, rateStore, logg)).Post("/chat", controllers.ChatReply(chatService, logg))

		r.Route("/auth", func(r chi.Router) {
			register := controllers.AuthRegister(authService, logg)
			r.With(middleware.AuthRateLimit(registerPolicy, rateStore, logg)).Post("/register", register)
			r.With(middleware.AuthRateLimit(registerPolicy, rateStore, logg)).Post("/signup", register)
			r.With(middleware.AuthRateLimit(loginPolicy, rateStore, logg)).Post("/login", controllers.AuthLogin(authService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(issuer, logg))
				r.Get("/me", controllers.AuthMe(userService, logg))
				r.Put("/update", controllers.AuthUpdate(userService, logg))
			})
		})
	})

	return r
}
