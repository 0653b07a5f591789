package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"meseros-cotizador/internal/quote"
)

const (
	DispatchLink   = "link"
	DispatchClient = "client"
)

// Config holds the application configuration
type Config struct {
	WhatsAppDataDir string
	WhatsAppNumber  string
	WhatsAppBaseURL string
	DispatchMode    string
	HTTPAddr        string
	LogLevel        string
	Timezone        string

	TablesPerWaiter int
	PhoneLength     int
	NameMinLength   int
}

// LoadConfig loads configuration from a .env file (if present), environment
// variables or defaults
func LoadConfig() (*Config, error) {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := &Config{
		WhatsAppDataDir: getEnv("WHATSAPP_DATA_DIR", "data"),
		WhatsAppNumber:  getEnv("WHATSAPP_NUMBER", "5219981447597"),
		WhatsAppBaseURL: getEnv("WHATSAPP_BASE_URL", "https://wa.me/"),
		DispatchMode:    getEnv("DISPATCH_MODE", DispatchLink),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Timezone:        getEnv("TIMEZONE", "America/Merida"),
	}

	var err error
	if cfg.TablesPerWaiter, err = getEnvInt("MESAS_POR_MESERO", quote.DefaultTablesPerWaiter); err != nil {
		return nil, err
	}
	if cfg.PhoneLength, err = getEnvInt("TELEFONO_LENGTH", quote.DefaultPhoneLength); err != nil {
		return nil, err
	}
	if cfg.NameMinLength, err = getEnvInt("NOMBRE_MIN_LENGTH", quote.DefaultNameMinLength); err != nil {
		return nil, err
	}

	if cfg.DispatchMode != DispatchLink && cfg.DispatchMode != DispatchClient {
		return nil, fmt.Errorf("invalid DISPATCH_MODE %q (use %q or %q)", cfg.DispatchMode, DispatchLink, DispatchClient)
	}

	return cfg, nil
}

// Rules converts the configuration into the quotation business rules
func (c *Config) Rules() (quote.Rules, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return quote.Rules{}, fmt.Errorf("failed to load timezone %q: %w", c.Timezone, err)
	}

	rules := quote.DefaultRules()
	rules.TablesPerWaiter = c.TablesPerWaiter
	rules.PhoneLength = c.PhoneLength
	rules.NameMinLength = c.NameMinLength
	rules.Location = loc
	return rules, nil
}

// Level parses LogLevel, falling back to info
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", key, value)
	}
	return n, nil
}
