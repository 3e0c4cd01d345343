package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mizukif/photo-diary/apperr"
)

// InsecureJWTDefault is the development fallback secret. Running with
// it in production is a startup failure.
const InsecureJWTDefault = "change-me-in-production"

type Config struct {
	Port           string
	AppEnv         string
	DatabaseURL    string
	BucketName     string
	GeminiAPIKey   string
	JWTSecret      string
	AllowedOrigins string

	// Deprecated demo login account. When unset the login endpoint
	// still responds but can never succeed.
	DemoUserEmail    string
	DemoUserPassword string
}

// Load reads the environment, overlaid with a local .env file when one
// exists, and fails with a ConfigError naming every missing required
// variable.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		AppEnv:           getEnv("APP_ENV", "development"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		BucketName:       os.Getenv("GCS_BUCKET_NAME"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		JWTSecret:        getEnv("JWT_SECRET", InsecureJWTDefault),
		AllowedOrigins:   getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		DemoUserEmail:    os.Getenv("DEMO_USER_EMAIL"),
		DemoUserPassword: os.Getenv("DEMO_USER_PASSWORD"),
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.BucketName == "" {
		missing = append(missing, "GCS_BUCKET_NAME")
	}
	if cfg.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if len(missing) > 0 {
		return nil, apperr.New(apperr.ConfigError,
			fmt.Sprintf("missing required environment variables: %s", strings.Join(missing, ", ")))
	}

	if cfg.IsProduction() && cfg.JWTSecret == InsecureJWTDefault {
		return nil, apperr.New(apperr.ConfigError,
			"JWT_SECRET is left at the insecure default in production")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
