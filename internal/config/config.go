// internal/config/config.go

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	LogLevel    string
	Server      ServerConfig
	NATS        NATSConfig
	Gemini      GeminiConfig
	Keywords    KeywordsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// NATSConfig holds NATS configuration. An empty URL disables the event feed.
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
	EventsTopic    string
}

// GeminiConfig holds remote model configuration
type GeminiConfig struct {
	APIKey      string
	Model       string
	BatchModel  string
	Timeout     time.Duration
	UseKeywords bool
}

// KeywordsConfig holds keyword aggregation defaults
type KeywordsConfig struct {
	Top          int
	MinFrequency int
}

// Enabled reports whether NATS publishing is configured
func (c NATSConfig) Enabled() bool {
	return strings.TrimSpace(c.URL) != ""
}

// Enabled reports whether a Gemini API key is configured
func (c GeminiConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8000),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     trimOrigins(getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:5174", "http://localhost:8000"})),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", ""),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
			EventsTopic:    getEnv("EVENTS_TOPIC", "talkclass"),
		},
		Gemini: GeminiConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			Model:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			BatchModel:  getEnv("GEMINI_BATCH_MODEL", "gemini-2.5-flash-lite"),
			Timeout:     getEnvAsDuration("GEMINI_TIMEOUT", 20*time.Second),
			UseKeywords: getEnvAsBool("USE_GEMINI_KEYWORDS", false),
		},
		Keywords: KeywordsConfig{
			Top:          getEnvAsInt("KEYWORDS_TOP", 40),
			MinFrequency: getEnvAsInt("KEYWORDS_MIN_FREQ", 1),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	timeouts := map[string]time.Duration{
		"SERVER_READ_TIMEOUT":     config.Server.ReadTimeout,
		"SERVER_WRITE_TIMEOUT":    config.Server.WriteTimeout,
		"SERVER_SHUTDOWN_TIMEOUT": config.Server.ShutdownTimeout,
		"GEMINI_TIMEOUT":          config.Gemini.Timeout,
	}
	for key, value := range timeouts {
		if value <= 0 {
			return fmt.Errorf("%s must be positive, got %s", key, value)
		}
	}

	if config.Keywords.Top < 0 {
		return fmt.Errorf("KEYWORDS_TOP must not be negative, got %d", config.Keywords.Top)
	}

	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// trimOrigins drops blanks and trailing slashes from CORS origins
func trimOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
