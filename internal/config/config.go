package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string
	LogLevel    string
	LogFormat   string

	OtelEnabled  bool
	OTLPEndpoint string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	RedisAddr string

	// Payment gateway credentials. GatewayKeyID is public (returned to the
	// checkout UI); GatewaySecret signs orders and webhooks and never leaves
	// the process.
	GatewayBaseURL       string
	GatewayKeyID         string
	GatewaySecret        string
	GatewayWebhookSecret string
	GatewayCurrency      string

	SeedDemoData bool
}

// Load reads configuration from the environment and an optional .env file.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_SERVICE", "opencampus")
	v.SetDefault("APP_VERSION", "0.1.0")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTLP_ENDPOINT", "localhost:4317")
	v.SetDefault("DATABASE_TYPE", "postgres")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_NAME", "opencampus")
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_IDLE_CONN", 5)
	v.SetDefault("DATABASE_MAX_OPEN_CONN", 25)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DATABASE_CONN_MAX_IDLE_TIME", 60)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("GATEWAY_BASE_URL", "https://api.razorpay.com")
	v.SetDefault("GATEWAY_CURRENCY", "INR")
	v.SetDefault("SEED_DEMO_DATA", false)

	return Config{
		AppName:              v.GetString("APP_SERVICE"),
		AppVersion:           v.GetString("APP_VERSION"),
		Environment:          v.GetString("ENVIRONMENT"),
		HTTPAddr:             v.GetString("HTTP_ADDR"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		LogFormat:            v.GetString("LOG_FORMAT"),
		OtelEnabled:          v.GetBool("OTEL_ENABLED"),
		OTLPEndpoint:         v.GetString("OTLP_ENDPOINT"),
		DBType:               v.GetString("DATABASE_TYPE"),
		DBHost:               v.GetString("DATABASE_HOST"),
		DBPort:               v.GetString("DATABASE_PORT"),
		DBName:               v.GetString("DATABASE_NAME"),
		DBUser:               v.GetString("DATABASE_USER"),
		DBPassword:           v.GetString("DATABASE_PASSWORD"),
		DBSSLMode:            v.GetString("DATABASE_SSLMODE"),
		DBMaxIdleConn:        v.GetInt("DATABASE_MAX_IDLE_CONN"),
		DBMaxOpenConn:        v.GetInt("DATABASE_MAX_OPEN_CONN"),
		DBConnMaxLifetime:    v.GetInt("DATABASE_CONN_MAX_LIFETIME"),
		DBConnMaxIdleTime:    v.GetInt("DATABASE_CONN_MAX_IDLE_TIME"),
		RedisAddr:            strings.TrimSpace(v.GetString("REDIS_ADDR")),
		GatewayBaseURL:       strings.TrimRight(v.GetString("GATEWAY_BASE_URL"), "/"),
		GatewayKeyID:         strings.TrimSpace(v.GetString("GATEWAY_KEY_ID")),
		GatewaySecret:        strings.TrimSpace(v.GetString("GATEWAY_SECRET")),
		GatewayWebhookSecret: strings.TrimSpace(v.GetString("GATEWAY_WEBHOOK_SECRET")),
		GatewayCurrency:      strings.ToUpper(v.GetString("GATEWAY_CURRENCY")),
		SeedDemoData:         v.GetBool("SEED_DEMO_DATA"),
	}
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}
