package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Session  SessionConfig
	Password PasswordConfig
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
	Env          string `envconfig:"FLOCKHERD_APP_ENV" default:"dev"`
	Port         string `envconfig:"FLOCKHERD_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"FLOCKHERD_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FLOCKHERD_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FLOCKHERD_DB_DSN"`
	Driver string `envconfig:"FLOCKHERD_DB_DRIVER" default:"sqlite"`

	// Path is the single-file store location used when the driver is sqlite
	// and no explicit DSN is provided.
	Path string `envconfig:"FLOCKHERD_DB_PATH" default:"flockherd.db"`

	MaxOpenConns    int           `envconfig:"FLOCKHERD_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"FLOCKHERD_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"FLOCKHERD_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FLOCKHERD_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	switch strings.ToLower(d.Driver) {
	case "sqlite":
		if d.Path == "" {
			return fmt.Errorf("sqlite driver requires FLOCKHERD_DB_PATH or FLOCKHERD_DB_DSN")
		}
		d.DSN = d.Path
		return nil
	case "postgres":
		return fmt.Errorf("postgres driver requires FLOCKHERD_DB_DSN")
	default:
		return fmt.Errorf("unsupported db driver %q", d.Driver)
	}
}

func (d DBConfig) IsSQLite() bool {
	return strings.EqualFold(d.Driver, "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"FLOCKHERD_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FLOCKHERD_REDIS_ADDR"`
	Password     string        `envconfig:"FLOCKHERD_REDIS_PASSWORD"`
	DB           int           `envconfig:"FLOCKHERD_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FLOCKHERD_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FLOCKHERD_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FLOCKHERD_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FLOCKHERD_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FLOCKHERD_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type SessionConfig struct {
	Secret     string `envconfig:"FLOCKHERD_SESSION_SECRET" required:"true"`
	Issuer     string `envconfig:"FLOCKHERD_SESSION_ISSUER" default:"flockherd"`
	TTLMinutes int    `envconfig:"FLOCKHERD_SESSION_TTL_MINUTES" default:"720"`
	CookieName string `envconfig:"FLOCKHERD_SESSION_COOKIE" default:"flockherd_session"`
	Secure     bool   `envconfig:"FLOCKHERD_SESSION_SECURE" default:"false"`
}

// TTL returns the session lifetime configured in minutes.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 0
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FLOCKHERD_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FLOCKHERD_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FLOCKHERD_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FLOCKHERD_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FLOCKHERD_ARGON_KEY_LEN" default:"32"`
}
