package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const DefaultConfigPath = "./config/local.yaml"

const (
	StoreBackendPostgres  = "postgres"
	StoreBackendFirestore = "firestore"
	StoreBackendMemory    = "memory"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"25"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"1m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-required:"true"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-required:"true"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15s"`
}

type Sendgrid struct {
	APIKey    string `yaml:"API_KEY" env:"SENDGRID_API_KEY"`
	FromEmail string `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"orders@frameart.example"`
	FromName  string `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Frame Art"`
}

type Security struct {
	JWTKey         string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
	JWTExpiryHours int    `yaml:"JWT_EXPIRY_HOURS" env:"JWT_EXPIRY_HOURS" env-default:"24"`
}

type Otel struct {
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"storefront"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
	// GuestTTL is how long an untouched guest cart survives in redis.
	GuestTTL     time.Duration `yaml:"guest_ttl" env:"CACHE_GUEST_TTL" env-default:"720h"`
	LocalBackend string        `yaml:"local_backend" env:"CACHE_LOCAL_BACKEND" env-default:"redis"`
	// Namespace prefixes catalog cache keys. Change it when the cached
	// catalog shape changes.
	Namespace string `yaml:"namespace" env:"CACHE_NAMESPACE" env-default:"v1"`
}

type Store struct {
	Backend          string `yaml:"backend" env:"STORE_BACKEND" env-default:"postgres"`
	FirestoreProject string `yaml:"firestore_project" env:"FIRESTORE_PROJECT"`
	CredentialsFile  string `yaml:"credentials_file" env:"GOOGLE_APPLICATION_CREDENTIALS"`
}

type Identity struct {
	Provider       string `yaml:"provider" env:"IDENTITY_PROVIDER" env-default:"local"`
	FirebaseAPIKey string `yaml:"firebase_api_key" env:"FIREBASE_API_KEY"`
	SignInEndpoint string `yaml:"sign_in_endpoint" env:"FIREBASE_SIGN_IN_ENDPOINT" env-default:"https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"`
}

type Catalog struct {
	UnsplashAccessKey  string        `yaml:"unsplash_access_key" env:"UNSPLASH_ACCESS_KEY"`
	BaseURL            string        `yaml:"base_url" env:"CATALOG_BASE_URL" env-default:"https://api.unsplash.com"`
	PerPage            int           `yaml:"per_page" env:"CATALOG_PER_PAGE" env-default:"30"`
	Timeout            time.Duration `yaml:"timeout" env:"CATALOG_TIMEOUT" env-default:"10s"`
	BreakerMaxFailures uint32        `yaml:"breaker_max_failures" env:"CATALOG_BREAKER_MAX_FAILURES" env-default:"5"`
	BreakerOpenTimeout time.Duration `yaml:"breaker_open_timeout" env:"CATALOG_BREAKER_OPEN_TIMEOUT" env-default:"30s"`
}

type Kafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"storefront.events"`
}

type Cart struct {
	MergePolicy string `yaml:"merge_policy" env:"CART_MERGE_POLICY" env-default:"authoritative"`
}

// Session.SecureCookie must be enabled when served over TLS. It defaults to
// false because cleanenv cannot tell an explicit false from an unset field.
type Session struct {
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"SESSION_IDLE_TIMEOUT" env-default:"30m"`
	CookieName   string        `yaml:"cookie_name" env:"SESSION_COOKIE_NAME" env-default:"storefront_session"`
	SecureCookie bool          `yaml:"secure_cookie" env:"SESSION_SECURE_COOKIE" env-default:"false"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Sendgrid     Sendgrid     `yaml:"sendgrid"`
	Security     Security     `yaml:"security"`
	Otel         Otel         `yaml:"otel"`
	Cache        CacheConfig  `yaml:"cache"`
	Store        Store        `yaml:"store"`
	Identity     Identity     `yaml:"identity"`
	Catalog      Catalog      `yaml:"catalog"`
	Kafka        Kafka        `yaml:"kafka"`
	Cart         Cart         `yaml:"cart"`
	Session      Session      `yaml:"session"`
}

// ResolvePath picks CONFIG_PATH, then the --config flag value, then the default.
func ResolvePath(flagValue string) string {
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		return configPath
	}

	if flagValue != "" {
		return flagValue
	}

	return DefaultConfigPath
}

func LoadConfigFromPath(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	return &cfg, nil
}

func MustLoad(flagValue string) *Config {
	cfg, err := LoadConfigFromPath(ResolvePath(flagValue))
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}
