package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	OTP           OTPConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	SMTP          SMTPConfig
	Mail          MailConfig
	CORS          CORSConfig
	Admin         AdminConfig
	Storage       StorageConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"APP_ENV" default:"development"`
	Port         string `envconfig:"PORT" default:"3001"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"LOG_WARN_STACK" default:"false"`
	PublicURL    string `envconfig:"PUBLIC_URL" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev) || strings.EqualFold(a.Env, "dev")
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "prod")
}

type DBConfig struct {
	DSN    string `envconfig:"DB_DSN"`
	Driver string `envconfig:"DB_DRIVER" default:"mysql"`

	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"3306"`
	User     string `envconfig:"DB_USER" default:"root"`
	Password string `envconfig:"DB_PASSWORD"`
	Name     string `envconfig:"DB_NAME" default:"industrial_catalogue"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	ConnectionLimit int           `envconfig:"DB_CONNECTION_LIMIT" default:"10"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnectTimeout  time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"60s"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"REDIS_URL"`
	Address      string        `envconfig:"REDIS_ADDR"`
	Password     string        `envconfig:"REDIS_PASSWORD"`
	DB           int           `envconfig:"REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"JWT_ISSUER" default:"catalogo-industrial"`
	ExpirationMinutes int    `envconfig:"JWT_EXPIRATION_MINUTES" default:"480"`
}

// TTL returns the access token lifetime.
func (j JWTConfig) TTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type OTPConfig struct {
	TTL     time.Duration `envconfig:"OTP_TTL" default:"10m"`
	LogCode bool          `envconfig:"OTP_LOG_CODE" default:"false"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ARGON_MEMORY_KB" default:"19456"`
	ArgonTime        int `envconfig:"ARGON_TIME" default:"2"`
	ArgonParallelism int `envconfig:"ARGON_PARALLELISM" default:"1"`
	ArgonSaltLen     int `envconfig:"ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	Window     time.Duration `envconfig:"AUTH_RATE_LIMIT_WINDOW" default:"10m"`
	EmailLimit int           `envconfig:"AUTH_RATE_LIMIT_EMAIL_LIMIT" default:"5"`
	IPLimit    int           `envconfig:"AUTH_RATE_LIMIT_IP_LIMIT" default:"30"`
}

type SMTPConfig struct {
	Host     string        `envconfig:"SMTP_HOST"`
	Port     int           `envconfig:"SMTP_PORT" default:"587"`
	User     string        `envconfig:"SMTP_USER"`
	Password string        `envconfig:"SMTP_PASS"`
	Secure   bool          `envconfig:"SMTP_SECURE" default:"false"`
	Timeout  time.Duration `envconfig:"SMTP_TIMEOUT" default:"15s"`
}

// Enabled reports whether outbound SMTP delivery is configured.
func (s SMTPConfig) Enabled() bool {
	return strings.TrimSpace(s.Host) != ""
}

type MailConfig struct {
	From        string `envconfig:"MAIL_FROM" default:"no-reply@catalogo-industrial.local"`
	FromName    string `envconfig:"MAIL_FROM_NAME" default:"Catálogo Industrial"`
	SalesInbox  string `envconfig:"MAIL_SALES_INBOX"`
	SupportName string `envconfig:"MAIL_SUPPORT_NAME" default:"Soporte Catálogo Industrial"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

type AdminConfig struct {
	RequestTimeout time.Duration `envconfig:"ADMIN_REQUEST_TIMEOUT" default:"15s"`
}

type StorageConfig struct {
	Region          string `envconfig:"AWS_REGION" default:"us-east-1"`
	Bucket          string `envconfig:"AWS_S3_BUCKET"`
	AccessKeyID     string `envconfig:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"AWS_SECRET_ACCESS_KEY"`
	PublicBaseURL   string `envconfig:"AWS_S3_PUBLIC_BASE_URL"`
	KeyPrefix       string `envconfig:"AWS_S3_KEY_PREFIX" default:"products"`
	MaxUploadMB     int    `envconfig:"MAX_UPLOAD_MB" default:"10"`
}

// Enabled reports whether an upload bucket was configured.
func (s StorageConfig) Enabled() bool {
	return strings.TrimSpace(s.Bucket) != ""
}

// MaxUploadBytes returns the upload cap in bytes.
func (s StorageConfig) MaxUploadBytes() int64 {
	if s.MaxUploadMB <= 0 {
		return 10 << 20
	}
	return int64(s.MaxUploadMB) << 20
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FEATURE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	db.Driver = strings.ToLower(strings.TrimSpace(db.Driver))
	if db.Driver == "" {
		db.Driver = DriverMySQL
	}
	if db.Driver != DriverMySQL && db.Driver != DriverPostgres {
		return fmt.Errorf("unsupported %s %q (expected %s or %s)", EnvDBDriver, db.Driver, DriverMySQL, DriverPostgres)
	}
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	switch db.Driver {
	case DriverPostgres:
		db.DSN = db.postgresDSN()
	default:
		db.DSN = db.mysqlDSN()
	}
	return nil
}

func (db *DBConfig) mysqlDSN() string {
	cfg := mysql.NewConfig()
	cfg.User = db.User
	cfg.Passwd = db.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", db.Host, db.Port)
	cfg.DBName = db.Name
	cfg.ParseTime = true
	cfg.Timeout = db.ConnectTimeout
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

func (db *DBConfig) postgresDSN() string {
	parts := []string{
		"host=" + db.Host,
		fmt.Sprintf("port=%d", db.Port),
		"user=" + db.User,
		"dbname=" + db.Name,
		"sslmode=" + db.SSLMode,
	}
	if db.Password != "" {
		parts = append(parts, "password="+db.Password)
	}
	if db.ConnectTimeout > 0 {
		parts = append(parts, fmt.Sprintf("connect_timeout=%d", int(db.ConnectTimeout.Seconds())))
	}
	return strings.Join(parts, " ")
}
