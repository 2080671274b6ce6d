package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Session  SessionConfig
	API      APIConfig
	Checkout CheckoutConfig
	Upload   UploadConfig
	R2       R2Config
	CORS     CORSConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string

	// TrustProxy honours X-Forwarded-For/X-Real-IP from a fronting proxy
	TrustProxy bool
}

type SessionConfig struct {
	Secret string
	Store  string // "filesystem" or "cookie"
	Dir    string
	MaxAge int // seconds
	Secure bool
}

// APIConfig points at the remote travel REST API
type APIConfig struct {
	BaseURL string
	Key     string
	Timeout time.Duration
}

type CheckoutConfig struct {
	CartAttempts    int
	CartRetryDelay  time.Duration
	RetryMultiplier float64
}

type UploadConfig struct {
	Storage      string // "api", "r2" or "local"
	MaxBytes     int64
	MaxDimension int
	Dir          string
	BaseURL      string
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Region          string
	Endpoint        string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	host := getEnv("HOST", "localhost")
	port := getEnv("PORT", "8080")
	env := getEnv("ENV", "development")

	config := &Config{
		Server: ServerConfig{
			Port: port,
			Host: host,
			Env:  env,

			TrustProxy: getEnvAsBool("TRUST_PROXY", false),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "your-secret-key-change-in-production"),
			Store:  getEnv("SESSION_STORE", "filesystem"),
			Dir:    getEnv("SESSION_DIR", ""),
			MaxAge: getEnvAsInt("SESSION_MAX_AGE", 86400*7),
			Secure: getEnvAsBool("SESSION_SECURE", env == "production"),
		},
		API: APIConfig{
			BaseURL: strings.TrimSuffix(getEnv("API_BASE_URL", "https://travel-journal-api-bootcamp.do.dibimbing.id/api/v1"), "/"),
			Key:     getEnv("API_KEY", ""),
			Timeout: getEnvAsDuration("API_TIMEOUT", 15*time.Second),
		},
		Checkout: CheckoutConfig{
			CartAttempts:    getEnvAsInt("CHECKOUT_CART_ATTEMPTS", 3),
			CartRetryDelay:  getEnvAsDuration("CHECKOUT_CART_RETRY_DELAY", time.Second),
			RetryMultiplier: getEnvAsFloat("CHECKOUT_RETRY_MULTIPLIER", 1),
		},
		Upload: UploadConfig{
			Storage:      getEnv("PROOF_STORAGE", "api"),
			MaxBytes:     int64(getEnvAsInt("PROOF_MAX_BYTES", 5*1024*1024)),
			MaxDimension: getEnvAsInt("PROOF_MAX_DIMENSION", 1600),
			Dir:          getEnv("UPLOAD_DIR", "./uploads"),
			BaseURL:      getEnv("UPLOAD_BASE_URL", "http://"+host+":"+port+"/uploads"),
		},
		R2: R2Config{
			AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("R2_BUCKET_NAME", "payment-proofs"),
			PublicURL:       getEnv("R2_PUBLIC_URL", ""),
			Region:          getEnv("R2_REGION", "auto"),
			Endpoint:        getEnv("R2_ENDPOINT", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getEnv("CORS_ALLOW_ORIGINS", "*")),
		},
	}

	if config.Checkout.CartAttempts < 1 {
		config.Checkout.CartAttempts = 1
	}
	if config.Checkout.RetryMultiplier < 1 {
		config.Checkout.RetryMultiplier = 1
	}

	return config, nil
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); strings.TrimSpace(value) != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
