package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is applied by envconfig to every variable lookup.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Checkout     CheckoutConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"HAPPYFOOD_APP_ENV" required:"true"`
	Port         string `envconfig:"HAPPYFOOD_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"HAPPYFOOD_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HAPPYFOOD_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"HAPPYFOOD_DB_DSN"`

	Host     string `envconfig:"HAPPYFOOD_DB_HOST"`
	Port     int    `envconfig:"HAPPYFOOD_DB_PORT" default:"5432"`
	User     string `envconfig:"HAPPYFOOD_DB_USER"`
	Password string `envconfig:"HAPPYFOOD_DB_PASSWORD"`
	Name     string `envconfig:"HAPPYFOOD_DB_NAME"`
	SSLMode  string `envconfig:"HAPPYFOOD_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HAPPYFOOD_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HAPPYFOOD_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HAPPYFOOD_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HAPPYFOOD_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"HAPPYFOOD_REDIS_URL"`
	PoolSize     int           `envconfig:"HAPPYFOOD_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HAPPYFOOD_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HAPPYFOOD_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HAPPYFOOD_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HAPPYFOOD_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"HAPPYFOOD_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"HAPPYFOOD_JWT_ISSUER" default:"happyfood"`
	ExpirationMinutes int    `envconfig:"HAPPYFOOD_JWT_EXPIRATION_MINUTES" default:"60"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"HAPPYFOOD_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"HAPPYFOOD_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"HAPPYFOOD_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"HAPPYFOOD_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"HAPPYFOOD_ARGON_KEY_LEN" default:"32"`
}

type CheckoutConfig struct {
	// MaxOrderNumber is the inclusive upper bound of the per-restaurant
	// daily order sequence; the next number wraps back to 1 past it.
	MaxOrderNumber int `envconfig:"HAPPYFOOD_CHECKOUT_MAX_ORDER_NUMBER" default:"99999"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"HAPPYFOOD_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	required := map[string]string{
		"HAPPYFOOD_DB_HOST": db.Host,
		"HAPPYFOOD_DB_USER": db.User,
		"HAPPYFOOD_DB_NAME": db.Name,
	}
	for _, env := range []string{"HAPPYFOOD_DB_HOST", "HAPPYFOOD_DB_USER", "HAPPYFOOD_DB_NAME"} {
		if required[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either HAPPYFOOD_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
