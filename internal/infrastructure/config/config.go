package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/onboardiq/onboardiq/pkg/postgres"
)

// Config holds all configuration for the onboarding service.
type Config struct {
	ServiceName string
	Environment string
	GRPCPort    int
	HTTPPort    int

	// GRPCReflection registers the reflection service for grpcurl and friends.
	GRPCReflection bool

	Log       LogConfig
	Database  DatabaseConfig
	Kafka     KafkaConfig
	Auth      AuthConfig
	Telemetry TelemetryConfig
	TLS       TLSConfig

	// Requests per second allowed on the REST API.
	RateLimitRPS int
}

// LogConfig selects slog level and handler format.
type LogConfig struct {
	Level  string
	Format string
}

// DatabaseConfig holds PostgreSQL settings. Without DATABASE_URL or DB_HOST
// the service keeps submissions in memory.
type DatabaseConfig struct {
	Postgres      postgres.Config
	RunMigrations bool
	MigrationsDir string
}

// DSN returns the connection string, or "" when no database is configured.
func (c DatabaseConfig) DSN() string {
	if c.Postgres.IsZero() {
		return ""
	}
	return c.Postgres.DSN()
}

// InMemory reports whether no database is configured.
func (c DatabaseConfig) InMemory() bool {
	return c.Postgres.IsZero()
}

// KafkaConfig holds broker and topic settings. An empty broker list disables
// Kafka: events are logged and the importer does not start.
type KafkaConfig struct {
	Brokers       []string
	EventsTopic   string
	ImportTopic   string
	ConsumerGroup string
	TLS           bool
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
}

// Enabled reports whether brokers are configured.
func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// AuthConfig holds JWT validation settings.
type AuthConfig struct {
	JWTSecret        string
	JWTPublicKeyFile string
	Issuer           string
	TokenTTL         time.Duration
}

// TLSConfig points at the gRPC server certificate. Both files must be set to
// enable TLS.
type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// Enabled reports whether both files are configured.
func (c TLSConfig) Enabled() bool {
	return c.CertFile != "" && c.KeyFile != ""
}

// TelemetryConfig holds tracing settings. Tracing is off without an endpoint.
type TelemetryConfig struct {
	OTLPEndpoint string
	OTLPInsecure bool
	SampleRatio  float64
}

// Load reads configuration from environment variables with defaults. A .env
// file in the working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "onboarding-service"),
		Environment: getEnv("ENVIRONMENT", "development"),
		GRPCPort:    getEnvInt("GRPC_PORT", 9090),
		HTTPPort:    getEnvInt("HTTP_PORT", 8090),

		GRPCReflection: getEnvBool("GRPC_REFLECTION", false),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Database: DatabaseConfig{
			Postgres: postgres.Config{
				URL:      os.Getenv("DATABASE_URL"),
				Host:     os.Getenv("DB_HOST"),
				Port:     getEnvInt("DB_PORT", 5432),
				User:     getEnv("DB_USER", "onboard"),
				Password: os.Getenv("DB_PASSWORD"),
				Database: getEnv("DB_NAME", "onboarding"),
				SSLMode:  getEnv("DB_SSLMODE", "require"),
				MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
			},
			RunMigrations: getEnvBool("RUN_MIGRATIONS", true),
			MigrationsDir: getEnv("MIGRATIONS_DIR", "file://internal/infrastructure/postgres/migrations"),
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(os.Getenv("KAFKA_BROKERS")),
			EventsTopic:   getEnv("EVENTS_TOPIC", "onboarding.events"),
			ImportTopic:   os.Getenv("IMPORT_TOPIC"),
			ConsumerGroup: getEnv("CONSUMER_GROUP", "onboarding-importer"),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLMechanism: os.Getenv("KAFKA_SASL_MECHANISM"),
			SASLUsername:  os.Getenv("KAFKA_SASL_USERNAME"),
			SASLPassword:  os.Getenv("KAFKA_SASL_PASSWORD"),
		},
		Auth: AuthConfig{
			JWTSecret:        os.Getenv("JWT_SECRET"),
			JWTPublicKeyFile: os.Getenv("JWT_PUBLIC_KEY_FILE"),
			Issuer:           getEnv("JWT_ISSUER", "onboardiq"),
			TokenTTL:         getEnvDuration("JWT_TTL", time.Hour),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			OTLPInsecure: getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			SampleRatio:  getEnvFloat("OTEL_TRACES_SAMPLE_RATIO", 1.0),
		},
		TLS: TLSConfig{
			CertFile: os.Getenv("TLS_CERT_FILE"),
			KeyFile:  os.Getenv("TLS_KEY_FILE"),
		},
		RateLimitRPS: getEnvInt("RATE_LIMIT_RPS", 50),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required configuration values.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" && c.Auth.JWTPublicKeyFile == "" {
		if c.Environment == "production" {
			return fmt.Errorf("JWT_SECRET or JWT_PUBLIC_KEY_FILE is required in production")
		}
		c.Auth.JWTSecret = "onboardiq-dev-secret"
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive, got %d", c.RateLimitRPS)
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		return fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	if c.Kafka.ImportTopic != "" && !c.Kafka.Enabled() {
		return fmt.Errorf("IMPORT_TOPIC requires KAFKA_BROKERS")
	}
	return nil
}

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
