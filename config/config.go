package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Database configuration. Driver is "sqlite" or "postgres".
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabaseDSN    string `mapstructure:"DATABASE_DSN"`

	// Gemini configuration.
	GeminiAPIKey   string `mapstructure:"GEMINI_API_KEY"`
	AssistantModel string `mapstructure:"ASSISTANT_MODEL"`
	GuardrailModel string `mapstructure:"GUARDRAIL_MODEL"`

	// Per-call upper bounds on the external oracles, in seconds.
	AssistantTimeoutSec int `mapstructure:"ASSISTANT_TIMEOUT_SEC"`
	GuardrailTimeoutSec int `mapstructure:"GUARDRAIL_TIMEOUT_SEC"`

	// GuardrailMaxTokens caps the classifier response size.
	GuardrailMaxTokens int `mapstructure:"GUARDRAIL_MAX_TOKENS"`

	// MaxToolRetries bounds re-prompting after a retryable tool failure.
	MaxToolRetries int `mapstructure:"MAX_TOOL_RETRIES"`

	// SlotPageSize caps the rows returned by a free-slot lookup.
	SlotPageSize int `mapstructure:"SLOT_PAGE_SIZE"`

	// SlotMinutes is the fixed viewing-slot duration.
	SlotMinutes int `mapstructure:"SLOT_MINUTES"`

	// StrictSlotStatus rejects Book/Cancel when the slot already holds the
	// target status. The permissive default treats such a call as a no-op.
	StrictSlotStatus bool `mapstructure:"STRICT_SLOT_STATUS"`

	// Slot horizon generation.
	SlotDaysAhead   int     `mapstructure:"SLOT_DAYS_AHEAD"`
	SlotOpenHour    int     `mapstructure:"SLOT_OPEN_HOUR"`
	SlotCloseHour   int     `mapstructure:"SLOT_CLOSE_HOUR"`
	SeedBookedRatio float64 `mapstructure:"SEED_BOOKED_RATIO"`

	// Session configuration.
	SessionTTLMin int `mapstructure:"SESSION_TTL_MIN"`

	// Redis configuration. When RedisAddr is empty, sessions are held in
	// process memory and the reminder queue is disabled.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB   int    `mapstructure:"REDIS_SESSION_DB"`
	RedisReminderDB  int    `mapstructure:"REDIS_REMINDER_DB"`
	RemindersEnabled bool   `mapstructure:"REMINDERS_ENABLED"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "imovelmatch.db")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("ASSISTANT_MODEL", "models/gemini-1.5-pro")
	viper.SetDefault("GUARDRAIL_MODEL", "models/gemini-1.5-flash")
	viper.SetDefault("ASSISTANT_TIMEOUT_SEC", 60)
	viper.SetDefault("GUARDRAIL_TIMEOUT_SEC", 10)
	viper.SetDefault("GUARDRAIL_MAX_TOKENS", 64)
	viper.SetDefault("MAX_TOOL_RETRIES", 3)
	viper.SetDefault("SLOT_PAGE_SIZE", 10)
	viper.SetDefault("SLOT_MINUTES", 30)
	viper.SetDefault("STRICT_SLOT_STATUS", false)
	viper.SetDefault("SLOT_DAYS_AHEAD", 28)
	viper.SetDefault("SLOT_OPEN_HOUR", 8)
	viper.SetDefault("SLOT_CLOSE_HOUR", 20)
	viper.SetDefault("SEED_BOOKED_RATIO", 0.30)
	viper.SetDefault("SESSION_TTL_MIN", 60)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_REMINDER_DB", 1)
	viper.SetDefault("REMINDERS_ENABLED", false)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// SlotDuration returns the configured viewing-slot length.
func SlotDuration() time.Duration {
	return time.Duration(AppConfig.SlotMinutes) * time.Minute
}

// SessionTTL returns how long an idle session is kept before eviction.
func SessionTTL() time.Duration {
	return time.Duration(AppConfig.SessionTTLMin) * time.Minute
}
