package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	AppBaseURL      string
	ClientOrigin    string
	DatabaseType    string // sqlite, postgres or mysql
	DatabasePath    string // sqlite only
	DatabaseURL     string // postgres/mysql DSN
	SessionDuration time.Duration
	RealtimeSecret  string
	RateLimitBurst  int

	// Email (Amazon SES); empty FromEmail disables sending
	AWSRegion    string
	SESFromEmail string
	SESFromName  string

	// Keys handed through to the client; each gates an optional feature page
	MapsAPIKey    string
	WeatherAPIKey string
	VideoCallURL  string
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is honoured when present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		AppBaseURL:      getEnv("APP_BASE_URL", "http://localhost:8080"),
		ClientOrigin:    getEnv("CLIENT_ORIGIN", "http://localhost:3000"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./kyn.db"),
		DatabaseURL:     getEnv("DB_URL", ""),
		SessionDuration: getDuration("SESSION_DURATION", 7*24*time.Hour),
		RealtimeSecret:  getEnv("REALTIME_SECRET", ""),
		RateLimitBurst:  getInt("RATE_LIMIT_BURST", 10),
		AWSRegion:       getEnv("AWS_REGION", "eu-west-1"),
		SESFromEmail:    getEnv("SES_FROM_EMAIL", ""),
		SESFromName:     getEnv("SES_FROM_NAME", "Kyn"),
		MapsAPIKey:      getEnv("MAPS_API_KEY", ""),
		WeatherAPIKey:   getEnv("WEATHER_API_KEY", ""),
		VideoCallURL:    getEnv("VIDEO_CALL_URL", ""),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getInt reads an integer environment variable or returns a default value
func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Invalid value for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

// getDuration reads a duration environment variable or returns a default value
func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid value for %s, using default %s", key, defaultValue)
	}
	return defaultValue
}
