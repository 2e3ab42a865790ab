package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// HTTP server
	Port string

	// MongoDB
	MongoURI string
	MongoDB  string

	// Auth
	JWTSecret string

	// SMTP notifications (optional; notifier disabled when host is empty)
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	SMTPFrom        string
	NotifyRecipient string
}

func Load() *Config {
	cfg := &Config{
		Port:      getEnv("PORT", "8081"),
		MongoURI:  getEnv("MONGO_URI", ""),
		MongoDB:   getEnv("MONGO_DB", "ekinerja"),
		JWTSecret: getEnv("JWT_SECRET", ""),

		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getEnvInt("SMTP_PORT", 587),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:        getEnv("SMTP_FROM", ""),
		NotifyRecipient: getEnv("NOTIFY_RECIPIENT", ""),
	}

	// Atlas-style credentials compose a URI when MONGO_URI is not set directly.
	if cfg.MongoURI == "" {
		username := os.Getenv("MONGO_USERNAME")
		password := os.Getenv("MONGO_PASSWORD")
		cluster := os.Getenv("MONGO_CLUSTER")
		appName := os.Getenv("MONGO_APP_NAME")
		if username != "" && password != "" && cluster != "" {
			cfg.MongoURI = fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority&appName=%s",
				username, password, cluster, appName)
		}
	}

	return cfg
}

// Validate checks that everything the server cannot run without is present.
func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("missing MONGO_URI (or MONGO_USERNAME/MONGO_PASSWORD/MONGO_CLUSTER)")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("missing JWT_SECRET")
	}
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if c.SMTPHost != "" && c.SMTPFrom == "" {
		return fmt.Errorf("SMTP_FROM is required when SMTP_HOST is set")
	}
	return nil
}

// NotificationsEnabled reports whether outbound mail is configured.
func (c *Config) NotificationsEnabled() bool {
	return c.SMTPHost != "" && c.NotifyRecipient != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
