// Package config provides configuration management for the shipping gateway.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the complete application configuration.
type Config struct {
	Server         ServerConfig
	Carrier        CarrierConfig
	Auth           AuthConfig
	Database       DatabaseConfig
	Mongo          MongoConfig
	Storage        StorageConfig
	CircuitBreaker CircuitBreakerConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        string
	RateLimit   int
	RateWindow  time.Duration
	CORSOrigins []string
	SwaggerUser string
	SwaggerPass string
	LogLevel    string
	LogPretty   bool
}

// CarrierConfig holds the carrier API endpoints and credentials.
type CarrierConfig struct {
	Username             string
	Password             string
	TokenURL             string
	RatesURL             string
	ShipmentsURL         string
	TrackingURL          string
	ReferenceDataURL     string
	AddressValidationURL string
	AddressValidationKey string
	QuoteAccount         string
	DefaultCurrency      string
	Timeout              time.Duration
}

// AuthConfig holds admin authentication configuration.
type AuthConfig struct {
	APIKeys        map[string]bool
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	AdminUsername  string
	AdminPassword  string
	AdminFullName  string
}

// DatabaseConfig holds PostgreSQL configuration for the audit log and admin users.
type DatabaseConfig struct {
	Enabled         bool
	URL             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN returns the connection string, preferring an explicit URL.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// MongoConfig holds MongoDB configuration for operational request logs.
type MongoConfig struct {
	Enabled      bool
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
}

// StorageConfig holds the S3 document archive configuration.
type StorageConfig struct {
	Enabled         bool
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
	PublicBaseURL   string
}

// CircuitBreakerConfig holds thresholds shared by the carrier client and the audit store.
type CircuitBreakerConfig struct {
	FailureThreshold int
	SuccessThreshold int
	Timeout          time.Duration
}

// Load creates a Config from environment variables and an optional .env file.
func Load() Config {
	// a missing .env is fine; real environment variables win
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return Config{
		Server: ServerConfig{
			Port:        v.GetString("PORT"),
			RateLimit:   getInt(v, "RATE_LIMIT", 100),
			RateWindow:  getDuration(v, "RATE_WINDOW", time.Minute),
			CORSOrigins: parseCORSOrigins(v.GetString("CORS_ORIGINS")),
			SwaggerUser: v.GetString("SWAGGER_USER"),
			SwaggerPass: v.GetString("SWAGGER_PASS"),
			LogLevel:    v.GetString("LOG_LEVEL"),
			LogPretty:   getBool(v, "LOG_PRETTY", false),
		},
		Carrier: CarrierConfig{
			Username:             v.GetString("DHL_USERNAME"),
			Password:             v.GetString("DHL_PASSWORD"),
			TokenURL:             v.GetString("DHL_API_ENDPOINT_TOKEN"),
			RatesURL:             v.GetString("DHL_API_ENDPOINT_RATES"),
			ShipmentsURL:         v.GetString("DHL_API_ENDPOINT_SHIP"),
			TrackingURL:          v.GetString("DHL_API_ENDPOINT_TRACK"),
			ReferenceDataURL:     v.GetString("DHL_API_ENDPOINT_ADDRESS_REFER"),
			AddressValidationURL: v.GetString("DHL_API_ENDPOINT_VALIDATE_ADDRESS"),
			AddressValidationKey: v.GetString("DHL_VALIDATE_ADDRESS_API_KEY"),
			QuoteAccount:         v.GetString("DHL_QUOTE_ACCOUNT"),
			DefaultCurrency:      v.GetString("DEFAULT_CURRENCY"),
			Timeout:              getDuration(v, "CARRIER_TIMEOUT", 30*time.Second),
		},
		Auth: AuthConfig{
			APIKeys:        parseAPIKeys(v.GetString("API_KEYS")),
			JWTSecretKey:   v.GetString("JWT_SECRET_KEY"),
			AccessTokenTTL: getDuration(v, "JWT_ACCESS_TOKEN_TTL", 8*time.Hour),
			AdminUsername:  v.GetString("ADMIN_USERNAME"),
			AdminPassword:  v.GetString("ADMIN_PASSWORD"),
			AdminFullName:  v.GetString("ADMIN_FULL_NAME"),
		},
		Database: DatabaseConfig{
			Enabled:         getBool(v, "POSTGRES_ENABLED", false),
			URL:             v.GetString("POSTGRES_URL"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    getInt(v, "DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt(v, "DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration(v, "DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Mongo: MongoConfig{
			Enabled:      getBool(v, "MONGODB_ENABLED", false),
			URI:          v.GetString("MONGODB_URI"),
			DatabaseName: v.GetString("MONGODB_DATABASE"),
			LogsTTL:      getDuration(v, "MONGODB_LOGS_TTL", 30*24*time.Hour),
		},
		Storage: StorageConfig{
			Enabled:         getBool(v, "S3_ENABLED", false),
			Bucket:          v.GetString("S3_BUCKET"),
			Region:          v.GetString("AWS_REGION"),
			Endpoint:        v.GetString("S3_ENDPOINT"),
			AccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
			Prefix:          v.GetString("S3_PREFIX"),
			PublicBaseURL:   v.GetString("S3_PUBLIC_BASE_URL"),
		},
		CircuitBreaker: CircuitBreakerConfig{
			FailureThreshold: getInt(v, "CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			SuccessThreshold: getInt(v, "CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			Timeout:          getDuration(v, "CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DHL_API_ENDPOINT_TOKEN", "https://express.api.dhl.com/mydhlapi/auth/v1/token")
	v.SetDefault("DHL_API_ENDPOINT_RATES", "https://express.api.dhl.com/mydhlapi/rates")
	v.SetDefault("DHL_API_ENDPOINT_SHIP", "https://express.api.dhl.com/mydhlapi/shipments")
	v.SetDefault("DHL_API_ENDPOINT_TRACK", "https://express.api.dhl.com/mydhlapi/tracking")
	v.SetDefault("DHL_API_ENDPOINT_ADDRESS_REFER", "https://express.api.dhl.com/mydhlapi/reference-data")
	v.SetDefault("DHL_API_ENDPOINT_VALIDATE_ADDRESS", "https://wsbexpress.dhl.com/postalLocation/v1")
	v.SetDefault("DHL_QUOTE_ACCOUNT", "CASHTHBKK")
	v.SetDefault("DEFAULT_CURRENCY", "THB")

	v.SetDefault("ADMIN_FULL_NAME", "Admin User")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "shipping_gateway")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DATABASE", "shipping_gateway")

	v.SetDefault("AWS_REGION", "ap-southeast-1")
	v.SetDefault("S3_PREFIX", "documents")
}

func getInt(v *viper.Viper, key string, defaultValue int) int {
	if s := strings.TrimSpace(v.GetString(key)); s != "" {
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBool(v *viper.Viper, key string, defaultValue bool) bool {
	if s := strings.TrimSpace(v.GetString(key)); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDuration(v *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	if s := strings.TrimSpace(v.GetString(key)); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseAPIKeys(s string) map[string]bool {
	if s == "" {
		return nil
	}
	keys := strings.Split(s, ",")
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			result[k] = true
		}
	}
	return result
}

// parseCORSOrigins returns the shared allowed-origins table used by every route.
func parseCORSOrigins(s string) []string {
	defaults := []string{
		"https://viruzjoke.github.io",
		"https://thcfit.vercel.app",
		"https://thcfit-admin.vercel.app",
		"https://thcfit.duckdns.org",
		"https://thcfit-admin.duckdns.org",
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
