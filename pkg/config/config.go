package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	ChatRateLimit ChatRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	CORS          CORSConfig
	Gemini        GeminiConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DBDriverSQLite
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SPORTSHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"SPORTSHUB_APP_PORT" default:"5001"`
	LogLevel     string `envconfig:"SPORTSHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SPORTSHUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SPORTSHUB_DB_DSN"`
	Driver string `envconfig:"SPORTSHUB_DB_DRIVER" default:"postgres"`

	// SQLitePath is only consulted when the sqlite driver is selected.
	SQLitePath string `envconfig:"SPORTSHUB_SQLITE_PATH" default:"sportshub.db"`

	LegacyHost     string `envconfig:"SPORTSHUB_DB_HOST"`
	LegacyPort     int    `envconfig:"SPORTSHUB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SPORTSHUB_DB_USER"`
	LegacyPassword string `envconfig:"SPORTSHUB_DB_PASSWORD"`
	LegacyName     string `envconfig:"SPORTSHUB_DB_NAME"`
	LegacySSLMode  string `envconfig:"SPORTSHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SPORTSHUB_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SPORTSHUB_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SPORTSHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SPORTSHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"SPORTSHUB_REDIS_URL"`
	Address      string        `envconfig:"SPORTSHUB_REDIS_ADDR"`
	Password     string        `envconfig:"SPORTSHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"SPORTSHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SPORTSHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SPORTSHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SPORTSHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SPORTSHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SPORTSHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint has been configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret string `envconfig:"SPORTSHUB_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"SPORTSHUB_JWT_ISSUER" default:"sportshub"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SPORTSHUB_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SPORTSHUB_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SPORTSHUB_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SPORTSHUB_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SPORTSHUB_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow             time.Duration `envconfig:"SPORTSHUB_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIdentifierLimit    int           `envconfig:"SPORTSHUB_AUTH_RATE_LIMIT_LOGIN_IDENTIFIER_LIMIT" default:"5"`
	LoginIPLimit            int           `envconfig:"SPORTSHUB_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow          time.Duration `envconfig:"SPORTSHUB_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterIdentifierLimit int           `envconfig:"SPORTSHUB_AUTH_RATE_LIMIT_REGISTER_IDENTIFIER_LIMIT" default:"3"`
	RegisterIPLimit         int           `envconfig:"SPORTSHUB_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// ChatRateLimitConfig throttles the assistant proxy per client IP.
type ChatRateLimitConfig struct {
	Window  time.Duration `envconfig:"SPORTSHUB_CHAT_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit int           `envconfig:"SPORTSHUB_CHAT_RATE_LIMIT_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SPORTSHUB_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SPORTSHUB_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SPORTSHUB_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:8080"`
}

type GeminiConfig struct {
	APIKey  string        `envconfig:"SPORTSHUB_GEMINI_API_KEY"`
	Model   string        `envconfig:"SPORTSHUB_GEMINI_MODEL" default:"gemini-pro"`
	BaseURL string        `envconfig:"SPORTSHUB_GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta"`
	Timeout time.Duration `envconfig:"SPORTSHUB_GEMINI_TIMEOUT" default:"15s"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		db.DSN = db.SQLitePath
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
