package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Notification NotificationConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
}

// NotificationConfig holds the initial notification settings. They can
// be changed at runtime through the alerts API; these are the values
// the scheduler starts with.
type NotificationConfig struct {
	LowStockEnabled     bool
	LowStockThreshold   int
	StockCheckHours     int // interval between stock checks
	DailyReportEnabled  bool
	DailyReportHour     int
	DailyReportMinute   int
	WeeklyReportEnabled bool
	WeeklyReportDay     int // 0 = Sunday, 1 = Monday, ...
	ReminderEnabled     bool
}

// Load loads configuration from environment variables. A .env file in
// the working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "supermanager"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			TokenTTLHours: getEnvAsInt("JWT_TTL_HOURS", 24),
		},
		Notification: NotificationConfig{
			LowStockEnabled:     getEnvAsBool("NOTIFY_LOW_STOCK_ENABLED", true),
			LowStockThreshold:   getEnvAsInt("NOTIFY_LOW_STOCK_THRESHOLD", 10),
			StockCheckHours:     getEnvAsInt("NOTIFY_STOCK_CHECK_HOURS", 6),
			DailyReportEnabled:  getEnvAsBool("NOTIFY_DAILY_REPORT_ENABLED", true),
			DailyReportHour:     getEnvAsInt("NOTIFY_DAILY_REPORT_HOUR", 9),
			DailyReportMinute:   getEnvAsInt("NOTIFY_DAILY_REPORT_MINUTE", 0),
			WeeklyReportEnabled: getEnvAsBool("NOTIFY_WEEKLY_REPORT_ENABLED", true),
			WeeklyReportDay:     getEnvAsInt("NOTIFY_WEEKLY_REPORT_DAY", 1),
			ReminderEnabled:     getEnvAsBool("NOTIFY_REMINDER_ENABLED", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if c.Auth.TokenTTLHours < 1 {
		return fmt.Errorf("JWT token TTL must be at least 1 hour")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Notification.LowStockThreshold < 0 {
		return fmt.Errorf("low stock threshold must not be negative")
	}

	if c.Notification.StockCheckHours < 1 {
		return fmt.Errorf("stock check interval must be at least 1 hour")
	}

	if c.Notification.DailyReportHour < 0 || c.Notification.DailyReportHour > 23 {
		return fmt.Errorf("invalid daily report hour: %d", c.Notification.DailyReportHour)
	}

	if c.Notification.DailyReportMinute < 0 || c.Notification.DailyReportMinute > 59 {
		return fmt.Errorf("invalid daily report minute: %d", c.Notification.DailyReportMinute)
	}

	if c.Notification.WeeklyReportDay < 0 || c.Notification.WeeklyReportDay > 6 {
		return fmt.Errorf("invalid weekly report day: %d", c.Notification.WeeklyReportDay)
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
