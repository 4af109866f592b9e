package config

// EnvPrefix is consulted before the bare variable names declared on each field.
const EnvPrefix = "CATALOGUE"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
	AppEnvTest = "test"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

const (
	EnvAppEnv    = "APP_ENV"
	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvDBDSN             = "DB_DSN"
	EnvDBDriver          = "DB_DRIVER"
	EnvDBHost            = "DB_HOST"
	EnvDBPort            = "DB_PORT"
	EnvDBUser            = "DB_USER"
	EnvDBPassword        = "DB_PASSWORD"
	EnvDBName            = "DB_NAME"
	EnvDBConnectionLimit = "DB_CONNECTION_LIMIT"

	EnvRedisURL = "REDIS_URL"

	EnvJWTSecret  = "JWT_SECRET"
	EnvJWTIssuer  = "JWT_ISSUER"
	EnvJWTExpMins = "JWT_EXPIRATION_MINUTES"

	EnvSMTPHost = "SMTP_HOST"
	EnvSMTPPort = "SMTP_PORT"
	EnvSMTPUser = "SMTP_USER"
	EnvSMTPPass = "SMTP_PASS"

	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"
	EnvAWSS3Bucket        = "AWS_S3_BUCKET"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
