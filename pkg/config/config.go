package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "CARIBEWAY"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "CARIBEWAY_DB_DSN"
	EnvDBHost = "CARIBEWAY_DB_HOST"
	EnvDBUser = "CARIBEWAY_DB_USER"
	EnvDBName = "CARIBEWAY_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	LoginLimit   LoginRateLimitConfig
	FeatureFlags FeatureFlagsConfig
	Square       SquareConfig
	GoogleMaps   GoogleMapsConfig
	Bookings     BookingsConfig
	Tracking     TrackingConfig
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
	Env          string `envconfig:"CARIBEWAY_APP_ENV" required:"true"`
	Port         string `envconfig:"CARIBEWAY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CARIBEWAY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CARIBEWAY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CARIBEWAY_DB_DSN"`
	Driver string `envconfig:"CARIBEWAY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CARIBEWAY_DB_HOST"`
	LegacyPort     int    `envconfig:"CARIBEWAY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CARIBEWAY_DB_USER"`
	LegacyPassword string `envconfig:"CARIBEWAY_DB_PASSWORD"`
	LegacyName     string `envconfig:"CARIBEWAY_DB_NAME"`
	LegacySSLMode  string `envconfig:"CARIBEWAY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CARIBEWAY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CARIBEWAY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CARIBEWAY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CARIBEWAY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CARIBEWAY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CARIBEWAY_REDIS_ADDR"`
	Password     string        `envconfig:"CARIBEWAY_REDIS_PASSWORD"`
	DB           int           `envconfig:"CARIBEWAY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CARIBEWAY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CARIBEWAY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CARIBEWAY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CARIBEWAY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CARIBEWAY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"CARIBEWAY_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"CARIBEWAY_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"CARIBEWAY_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"CARIBEWAY_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CARIBEWAY_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CARIBEWAY_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CARIBEWAY_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CARIBEWAY_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CARIBEWAY_ARGON_KEY_LEN" default:"32"`
}

type LoginRateLimitConfig struct {
	Window     time.Duration `envconfig:"CARIBEWAY_LOGIN_RATE_LIMIT_WINDOW" default:"1m"`
	EmailLimit int           `envconfig:"CARIBEWAY_LOGIN_RATE_LIMIT_EMAIL_LIMIT" default:"5"`
	IPLimit    int           `envconfig:"CARIBEWAY_LOGIN_RATE_LIMIT_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CARIBEWAY_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CARIBEWAY_AUTO_MIGRATE" default:"false"`
}

type SquareConfig struct {
	AccessToken   string `envconfig:"CARIBEWAY_SQUARE_ACCESS_TOKEN"`
	Env           string `envconfig:"CARIBEWAY_SQUARE_ENV" default:"sandbox"`
	LocationID    string `envconfig:"CARIBEWAY_SQUARE_LOCATION_ID"`
	WebhookSecret string `envconfig:"CARIBEWAY_SQUARE_WEBHOOK_SECRET"`
	WebhookURL    string `envconfig:"CARIBEWAY_SQUARE_WEBHOOK_URL"`
	RedirectURL   string `envconfig:"CARIBEWAY_SQUARE_REDIRECT_URL"`
}

// Environment returns the normalized Square environment (sandbox/production).
func (s SquareConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "sandbox"
	}
	return env
}

type GoogleMapsConfig struct {
	APIKey string `envconfig:"CARIBEWAY_GOOGLE_MAPS_API_KEY"`
}

type BookingsConfig struct {
	// HoldTTL is how long a pending booking keeps its slot before the
	// expiry job reclaims it.
	HoldTTL time.Duration `envconfig:"CARIBEWAY_BOOKING_HOLD_TTL" default:"48h"`
}

type TrackingConfig struct {
	Retention time.Duration `envconfig:"CARIBEWAY_TRACKING_RETENTION" default:"2160h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
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
