package config

// EnvPrefix is passed to envconfig; every field carries an explicit key so it is informational only.
const EnvPrefix = "SPORTSHUB"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv      = "SPORTSHUB_APP_ENV"
	EnvPort        = "SPORTSHUB_APP_PORT"
	EnvDBDSN       = "SPORTSHUB_DB_DSN"
	EnvDBHost      = "SPORTSHUB_DB_HOST"
	EnvDBUser      = "SPORTSHUB_DB_USER"
	EnvDBName      = "SPORTSHUB_DB_NAME"
	EnvUseSQLite   = "SPORTSHUB_USE_SQLITE"
	EnvRedisURL    = "SPORTSHUB_REDIS_URL"
	EnvJWTSecret   = "SPORTSHUB_JWT_SECRET"
	EnvJWTIssuer   = "SPORTSHUB_JWT_ISSUER"
	EnvCORSOrigins = "SPORTSHUB_CORS_ALLOWED_ORIGINS"
	EnvGeminiKey   = "SPORTSHUB_GEMINI_API_KEY"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
