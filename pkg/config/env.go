package config

// EnvPrefix is passed to envconfig; every field carries an explicit name.
const EnvPrefix = "INVENTORY"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv   = "INVENTORY_APP_ENV"
	EnvPort     = "INVENTORY_APP_PORT"
	EnvLogLevel = "INVENTORY_LOG_LEVEL"

	EnvDBDSN    = "INVENTORY_DB_DSN"
	EnvDBDriver = "INVENTORY_DB_DRIVER"
	EnvDBHost   = "INVENTORY_DB_HOST"
	EnvDBPort   = "INVENTORY_DB_PORT"
	EnvDBUser   = "INVENTORY_DB_USER"
	EnvDBName   = "INVENTORY_DB_NAME"

	EnvRedisURL       = "INVENTORY_REDIS_URL"
	EnvAutoMigrate    = "INVENTORY_AUTO_MIGRATE"
	EnvCORSOrigins    = "INVENTORY_CORS_ALLOWED_ORIGINS"
	EnvIdempotencyTTL = "INVENTORY_IDEMPOTENCY_TTL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
