package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// Server settings
	ServerPort   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Debug        bool

	// Request and shutdown timeouts
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	// Outbound HTTP timeout for the caption source and provider calls
	HTTPTimeout time.Duration

	// Application paths
	LogDir        string
	TranscriptDir string
	SummaryDir    string
	PromptDir     string

	// Rate Limiting
	RateLimit RateLimitConfig

	// Provider credentials, loaded once at startup and read-only afterwards
	Credentials Credentials
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	BurstSize         int
}

// Credentials holds the API keys for the supported providers.
type Credentials struct {
	OpenAI     string
	Grok       string
	OpenRouter string
}

// Load reads configuration from environment variables. Credentials fall back
// to a local key file for any key absent from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:   getEnv("SERVER_PORT", "5000"),
		ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 5*time.Minute),
		IdleTimeout:  getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		Debug:        getEnvAsBool("DEBUG", false),

		RequestTimeout:  getEnvAsDuration("REQUEST_TIMEOUT", 5*time.Minute),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 2*time.Minute),

		LogDir:        getEnv("LOG_DIR", "./logs"),
		TranscriptDir: getEnv("TRANSCRIPT_DIR", "./transcript"),
		SummaryDir:    getEnv("SUMMARY_DIR", "./summary"),
		PromptDir:     getEnv("PROMPT_DIR", "./formatted_prompts"),

		RateLimit: RateLimitConfig{
			Enabled:           getEnvAsBool("RATE_LIMIT_ENABLED", true),
			RequestsPerMinute: getEnvAsInt("RATE_LIMIT_RPM", 60),
			BurstSize:         getEnvAsInt("RATE_LIMIT_BURST", 10),
		},

		Credentials: LoadCredentials(getEnv("API_KEY_FILE", "./config/config.env")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadCredentials reads provider API keys. Environment variables take
// precedence; the key file only fills keys the environment does not set.
func LoadCredentials(keyFile string) Credentials {
	creds := Credentials{
		OpenAI:     os.Getenv("OPENAI_API_KEY"),
		Grok:       os.Getenv("GROK_API_KEY"),
		OpenRouter: os.Getenv("OPENROUTER_API_KEY"),
	}

	if creds.OpenAI != "" && creds.Grok != "" && creds.OpenRouter != "" {
		return creds
	}

	fileKeys, err := godotenv.Read(keyFile)
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.WithError(err).WithField("path", keyFile).Warn("Failed to read API key file")
		}
		return creds
	}

	if creds.OpenAI == "" {
		creds.OpenAI = fileKeys["OPENAI_API_KEY"]
	}
	if creds.Grok == "" {
		creds.Grok = fileKeys["GROK_API_KEY"]
	}
	if creds.OpenRouter == "" {
		creds.OpenRouter = fileKeys["OPENROUTER_API_KEY"]
	}

	return creds
}

func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("server port is required")
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive")
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive")
	}
	if c.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate limit requests per minute must be positive")
	}
	return nil
}

// Helper functions for reading environment variables
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid integer, using default")
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid duration, using default")
	}
	return defaultValue
}
