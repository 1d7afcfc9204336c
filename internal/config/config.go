package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string
	Environment    string
	DatabaseURL    string
	RedisURL       string
	SessionSecret  string
	AdminSecret    string
	Video          VideoConfig
}

// VideoConfig holds the promoted video metadata served by the public API
type VideoConfig struct {
	Title       string
	Description string
	URL         string
	Poster      string
	AppURL      string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "*")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Environment:    getEnv("ENVIRONMENT", "production"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		SessionSecret:  getEnv("SESSION_SECRET", ""),
		AdminSecret:    getEnv("ADMIN_SECRET", ""),
		Video: VideoConfig{
			Title:       getEnv("VIDEO_TITLE", "Mungapeze bwanji sugar momma kapena blesser!!!!"),
			Description: getEnv("VIDEO_DESCRIPTION", "Muonere video ili mwambayi mpaka kumapeto ndipo ngati ndi khumbo lanu kuti mupeze sugar momma oti azikupasani chikondi komanso ndalama zikhala zatheka!"),
			URL:         getEnv("VIDEO_URL", "/frontend/VID-20251107-WA0000.mp4"),
			Poster:      getEnv("VIDEO_POSTER", "/frontend/sweetlife.png"),
			AppURL:      getEnv("APP_URL", "https://sweetlifemw.netlify.app"),
		},
	}, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// parseOrigins parses comma-separated origins into a slice
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
