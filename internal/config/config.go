package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port      string
	SecretKey string
	Debug     bool

	// OpenAI fallback
	OpenAIAPIKey string
	OpenAIModel  string

	// CarGlass status API
	CarGlassAPIURL string
	UseRealAPI     bool
	APITimeout     time.Duration

	// Sessions and cache
	SessionTimeout time.Duration
	CacheTTL       time.Duration

	// Twilio / WhatsApp
	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioWhatsAppFrom string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "8080"),
		SecretKey: getEnv("SECRET_KEY", "carglass-secreto-dev-key"),
		Debug:     getEnvBool("DEBUG", false),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4-turbo"),

		CarGlassAPIURL: getEnv("CARGLASS_API_URL", "http://10.10.100.240:3000/api/status"),
		UseRealAPI:     getEnvBool("USE_REAL_API", true),
		APITimeout:     10 * time.Second,

		SessionTimeout: getEnvSeconds("SESSION_TIMEOUT", 1800),
		CacheTTL:       getEnvSeconds("CACHE_TTL", 300),

		TwilioAccountSID:   getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:    getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioWhatsAppFrom: getEnv("TWILIO_WHATSAPP_NUMBER", ""),
	}
}

// TwilioConfigured reports whether outbound WhatsApp sends are possible.
func (c *Config) TwilioConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioWhatsAppFrom != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// getEnvSeconds reads an integer number of seconds, matching the
// original deployment's SESSION_TIMEOUT / CACHE_TTL contract.
func getEnvSeconds(key string, fallback int) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(fallback) * time.Second
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return time.Duration(fallback) * time.Second
	}
	return time.Duration(n) * time.Second
}
