package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix scopes every environment variable this service reads.
	EnvPrefix = "quizhub"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App              AppConfig
	DB               DBConfig
	Redis            RedisConfig
	JWT              JWTConfig
	ExternalIdentity ExternalIdentityConfig
	Password         PasswordConfig
	FeatureFlags     FeatureFlagsConfig
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
	Env          string `envconfig:"QUIZHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"QUIZHUB_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"QUIZHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"QUIZHUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"QUIZHUB_DB_DSN"`
	Driver string `envconfig:"QUIZHUB_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"QUIZHUB_DB_HOST"`
	Port     int    `envconfig:"QUIZHUB_DB_PORT" default:"5432"`
	User     string `envconfig:"QUIZHUB_DB_USER"`
	Password string `envconfig:"QUIZHUB_DB_PASSWORD"`
	Name     string `envconfig:"QUIZHUB_DB_NAME"`
	SSLMode  string `envconfig:"QUIZHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"QUIZHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"QUIZHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"QUIZHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"QUIZHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either QUIZHUB_DB_DSN or QUIZHUB_DB_HOST/USER/NAME must be set")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"QUIZHUB_REDIS_URL"`
	Address      string        `envconfig:"QUIZHUB_REDIS_ADDR"`
	Password     string        `envconfig:"QUIZHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"QUIZHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"QUIZHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"QUIZHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"QUIZHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"QUIZHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"QUIZHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"QUIZHUB_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"QUIZHUB_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"QUIZHUB_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"QUIZHUB_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

// ExternalIdentityConfig points at the federated identity provider whose
// signed tokens are accepted alongside locally minted ones.
type ExternalIdentityConfig struct {
	Domain   string `envconfig:"QUIZHUB_EXTERNAL_IDENTITY_DOMAIN"`
	Audience string `envconfig:"QUIZHUB_EXTERNAL_IDENTITY_AUDIENCE"`
	Issuer   string `envconfig:"QUIZHUB_EXTERNAL_IDENTITY_ISSUER"`
}

// Enabled reports whether the external strategy is configured at all.
func (e ExternalIdentityConfig) Enabled() bool {
	return e.Domain != ""
}

// JWKSURL returns the provider's published key-set endpoint.
func (e ExternalIdentityConfig) JWKSURL() string {
	return fmt.Sprintf("https://%s/.well-known/jwks.json", e.Domain)
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"QUIZHUB_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"QUIZHUB_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"QUIZHUB_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"QUIZHUB_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"QUIZHUB_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"QUIZHUB_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"QUIZHUB_SQLITE_PATH" default:"quizhub.db"`
	AutoMigrate bool   `envconfig:"QUIZHUB_AUTO_MIGRATE" default:"false"`
}
