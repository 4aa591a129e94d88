package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable consumed by the service.
const EnvPrefix = "PULGASHOP"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Chilexpress  ChilexpressConfig
	Postal       PostalConfig
	CoreAPI      CoreAPIConfig
	Shipping     ShippingConfig
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
	Env          string `envconfig:"PULGASHOP_APP_ENV" default:"dev"`
	Port         string `envconfig:"PULGASHOP_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PULGASHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PULGASHOP_LOG_WARN_STACK" default:"false"`
	// DefaultUserID is the single tenant this build serves.
	DefaultUserID string `envconfig:"PULGASHOP_DEFAULT_USER_ID" default:"1"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PULGASHOP_DB_DSN"`
	Driver string `envconfig:"PULGASHOP_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"PULGASHOP_DB_HOST"`
	Port     int    `envconfig:"PULGASHOP_DB_PORT" default:"5432"`
	User     string `envconfig:"PULGASHOP_DB_USER"`
	Password string `envconfig:"PULGASHOP_DB_PASSWORD"`
	Name     string `envconfig:"PULGASHOP_DB_NAME"`
	SSLMode  string `envconfig:"PULGASHOP_DB_SSLMODE" default:"disable"`

	// SQLitePath is used when the sqlite feature flag is on.
	SQLitePath string `envconfig:"PULGASHOP_DB_SQLITE_PATH" default:"envios.db"`

	MaxOpenConns    int           `envconfig:"PULGASHOP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PULGASHOP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PULGASHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PULGASHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PULGASHOP_REDIS_URL"`
	Address      string        `envconfig:"PULGASHOP_REDIS_ADDR"`
	Password     string        `envconfig:"PULGASHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"PULGASHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PULGASHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PULGASHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PULGASHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PULGASHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PULGASHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured at all. The carrier
// cache falls back to in-process memory when it is not.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type ChilexpressConfig struct {
	BaseURL  string        `envconfig:"PULGASHOP_CHILEXPRESS_BASE_URL" default:"https://services.wschilexpress.com"`
	APIKey   string        `envconfig:"PULGASHOP_CHILEXPRESS_API_KEY"`
	Timeout  time.Duration `envconfig:"PULGASHOP_CHILEXPRESS_TIMEOUT" default:"10s"`
	CacheTTL time.Duration `envconfig:"PULGASHOP_CHILEXPRESS_CACHE_TTL" default:"12h"`
}

type PostalConfig struct {
	BaseURL  string        `envconfig:"PULGASHOP_POSTAL_BASE_URL" default:"https://postal-code-api.cl"`
	Timeout  time.Duration `envconfig:"PULGASHOP_POSTAL_TIMEOUT" default:"10s"`
	CacheTTL time.Duration `envconfig:"PULGASHOP_POSTAL_CACHE_TTL" default:"12h"`
}

type CoreAPIConfig struct {
	BaseURL string        `envconfig:"PULGASHOP_CORE_API_BASE_URL"`
	Timeout time.Duration `envconfig:"PULGASHOP_CORE_API_TIMEOUT" default:"10s"`
}

// ShippingConfig carries the shop-side quoting defaults.
type ShippingConfig struct {
	// OriginCountyCode is the carrier coverage code every shipment departs from.
	OriginCountyCode string `envconfig:"PULGASHOP_SHIPPING_ORIGIN_COUNTY" default:"STGO"`
	DefaultWeightKg  string `envconfig:"PULGASHOP_SHIPPING_DEFAULT_WEIGHT_KG" default:"0.5"`
	DefaultLengthCm  string `envconfig:"PULGASHOP_SHIPPING_DEFAULT_LENGTH_CM" default:"30"`
	DefaultWidthCm   string `envconfig:"PULGASHOP_SHIPPING_DEFAULT_WIDTH_CM" default:"20"`
	DefaultHeightCm  string `envconfig:"PULGASHOP_SHIPPING_DEFAULT_HEIGHT_CM" default:"15"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PULGASHOP_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PULGASHOP_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" || strings.EqualFold(db.Driver, "sqlite") {
		return nil
	}

	missing := []string{}
	required := map[string]string{
		"PULGASHOP_DB_HOST": db.Host,
		"PULGASHOP_DB_USER": db.User,
		"PULGASHOP_DB_NAME": db.Name,
	}
	for _, key := range []string{"PULGASHOP_DB_HOST", "PULGASHOP_DB_USER", "PULGASHOP_DB_NAME"} {
		if required[key] == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either PULGASHOP_DB_DSN or %s are required", strings.Join(missing, ", "))
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
