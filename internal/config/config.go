package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// PlaceholderAPIKey is the value shipped in example env files. It is treated
// the same as a missing key.
const PlaceholderAPIKey = "your_tmdb_api_key_here"

// Favorites storage backends
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds all application configuration
type Config struct {
	// TMDB
	TMDBAPIKey       string
	TMDBBaseURL      string
	TMDBImageBaseURL string
	TMDBTimeout      time.Duration
	TMDBRateLimit    float64 // Requests per second to the live API

	// Favorites
	FavoritesBackend          string // "bolt", "sqlite" or "memory"
	FavoritesFetchConcurrency int    // 0 means one goroutine per favorite

	// Auth
	JWTSecret          string
	JWTSecretGenerated bool // true when no JWT_SECRET was configured
	SessionTTL         time.Duration

	// Scheduler
	HealthSchedule string

	// Server
	ServerPort string

	// Tracing
	TracingEnabled bool

	// Paths
	DatabaseFile string // $CONFIG_DIR/moviedeck.db
	SQLiteFile   string // $CONFIG_DIR/favorites.sqlite

	// Logging
	LogLevel string
	LogFile  string
}

// HasValidAPIKey reports whether live TMDB calls should be attempted
func (c *Config) HasValidAPIKey() bool {
	key := strings.TrimSpace(c.TMDBAPIKey)
	return key != "" && key != PlaceholderAPIKey
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = v.ReadInConfig()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	v.SetDefault("TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p")
	v.SetDefault("TMDB_TIMEOUT_SECONDS", 10)
	v.SetDefault("TMDB_RATE_LIMIT", 20)
	v.SetDefault("FAVORITES_BACKEND", BackendBolt)
	v.SetDefault("FAVORITES_FETCH_CONCURRENCY", 0)
	v.SetDefault("SESSION_TTL_HOURS", 24)
	v.SetDefault("HEALTH_SCHEDULE", "*/15 * * * *")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("TRACING_ENABLED", true)
	v.SetDefault("LOG_LEVEL", "info")

	configDir := v.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "moviedeck")
	} else {
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		// TMDB
		TMDBAPIKey:       v.GetString("TMDB_API_KEY"),
		TMDBBaseURL:      strings.TrimRight(v.GetString("TMDB_BASE_URL"), "/"),
		TMDBImageBaseURL: strings.TrimRight(v.GetString("TMDB_IMAGE_BASE_URL"), "/"),
		TMDBTimeout:      time.Duration(v.GetInt("TMDB_TIMEOUT_SECONDS")) * time.Second,
		TMDBRateLimit:    v.GetFloat64("TMDB_RATE_LIMIT"),

		// Favorites
		FavoritesBackend:          strings.ToLower(v.GetString("FAVORITES_BACKEND")),
		FavoritesFetchConcurrency: v.GetInt("FAVORITES_FETCH_CONCURRENCY"),

		// Auth
		JWTSecret:  v.GetString("JWT_SECRET"),
		SessionTTL: time.Duration(v.GetInt("SESSION_TTL_HOURS")) * time.Hour,

		// Scheduler
		HealthSchedule: v.GetString("HEALTH_SCHEDULE"),

		// Server
		ServerPort: v.GetString("SERVER_PORT"),

		// Tracing
		TracingEnabled: v.GetBool("TRACING_ENABLED"),

		// Paths
		DatabaseFile: filepath.Join(configDir, "moviedeck.db"),
		SQLiteFile:   filepath.Join(configDir, "favorites.sqlite"),

		// Logging
		LogLevel: v.GetString("LOG_LEVEL"),
		LogFile:  v.GetString("LOG_FILE"),
	}

	switch config.FavoritesBackend {
	case BackendBolt, BackendSQLite, BackendMemory:
	default:
		return nil, fmt.Errorf("FAVORITES_BACKEND must be one of bolt, sqlite, memory (got %q)", config.FavoritesBackend)
	}
	if config.FavoritesFetchConcurrency < 0 {
		return nil, fmt.Errorf("FAVORITES_FETCH_CONCURRENCY must not be negative")
	}
	if config.TMDBTimeout <= 0 {
		return nil, fmt.Errorf("TMDB_TIMEOUT_SECONDS must be positive")
	}
	if config.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}

	if config.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		config.JWTSecret = secret
		config.JWTSecretGenerated = true
	}

	return config, nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
