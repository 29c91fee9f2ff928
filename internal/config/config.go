package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"realty-client/utils"
)

// Config holds client and sandbox configuration loaded from environment variables.
type Config struct {
	// API origin. Relative values ("/api") are resolved against APIOrigin.
	APIBaseURL string
	APIOrigin  string

	TokenFile   string
	HTTPTimeout time.Duration
	LogLevel    string

	PriceLocale    string
	CurrencySuffix string

	// Sandbox backend
	Port             string
	SandboxJWTSecret string
	SandboxAccessTTL time.Duration
}

// Load reads an optional .env file and returns a populated Config.
func Load(envPath ...string) *Config {
	if err := godotenv.Load(envPath...); err != nil {
		utils.Debug("config: no .env file found, falling back to system env vars", map[string]any{"error": err.Error()})
	}

	return &Config{
		APIBaseURL:       getEnv("API_BASE_URL", "/api"),
		APIOrigin:        getEnv("API_ORIGIN", "http://localhost:8000"),
		TokenFile:        getEnv("TOKEN_FILE", defaultTokenFile()),
		HTTPTimeout:      time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		PriceLocale:      getEnv("PRICE_LOCALE", "ru"),
		CurrencySuffix:   getEnv("CURRENCY_SUFFIX", "сум"),
		Port:             getEnv("PORT", "8080"),
		SandboxJWTSecret: getEnv("SANDBOX_JWT_SECRET", "sandbox-secret"),
		SandboxAccessTTL: time.Duration(getEnvInt("SANDBOX_ACCESS_TTL_SECONDS", 300)) * time.Second,
	}
}

// BaseURL returns the absolute API base URL. The web build proxies a relative
// path; a standalone client needs the origin prepended.
func (c *Config) BaseURL() string {
	if strings.HasPrefix(c.APIBaseURL, "http://") || strings.HasPrefix(c.APIBaseURL, "https://") {
		return strings.TrimRight(c.APIBaseURL, "/")
	}
	return strings.TrimRight(c.APIOrigin, "/") + "/" + strings.Trim(c.APIBaseURL, "/")
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "tokens.json"
	}
	return filepath.Join(dir, "realty", "tokens.json")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	valueStr, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		utils.Warn("config: env var is not an integer, using default", map[string]any{
			"key":     key,
			"value":   valueStr,
			"default": fallback,
		})
		return fallback
	}
	return value
}
