package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the bot process.
type Config struct {
	App      AppConfig
	Telegram TelegramConfig
	Roster   RosterConfig
	Snapshot SnapshotConfig
	Logger   LoggerConfig
}

// AppConfig controls the operations HTTP listener.
type AppConfig struct {
	Name    string
	Env     string
	Host    string
	Port    string
	Version string
}

// TelegramConfig holds the bot credential and polling behavior.
type TelegramConfig struct {
	BotToken           string
	PollTimeoutSeconds int
}

// RosterConfig seeds the operator roster when the snapshot carries none.
type RosterConfig struct {
	AdminID     int64
	OperatorIDs []int64
}

// SnapshotConfig controls durable state persistence.
type SnapshotConfig struct {
	DataFile        string
	IntervalMinutes int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults
// where possible. A missing BOT_TOKEN is the caller's problem: it is the one
// fatal startup condition.
func Load() (*Config, error) {
	_ = godotenv.Load()

	adminID, err := parseID(getEnv("ADMIN_ID", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_ID: %w", err)
	}

	operatorIDs, err := parseIDList(os.Getenv("OPERATOR_IDS"))
	if err != nil {
		return nil, fmt.Errorf("invalid OPERATOR_IDS: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "support-bot"),
			Env:     getEnv("APP_ENV", "development"),
			Host:    getEnv("APP_HOST", "0.0.0.0"),
			Port:    getEnv("APP_PORT", "8080"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		Telegram: TelegramConfig{
			BotToken:           os.Getenv("BOT_TOKEN"),
			PollTimeoutSeconds: getEnvAsInt("TELEGRAM_POLL_TIMEOUT_SECONDS", 30),
		},
		Roster: RosterConfig{
			AdminID:     adminID,
			OperatorIDs: operatorIDs,
		},
		Snapshot: SnapshotConfig{
			DataFile:        getEnv("DATA_FILE", "bot_data.json"),
			IntervalMinutes: getEnvAsInt("SNAPSHOT_INTERVAL_MINUTES", 5),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// Interval returns the snapshot period.
func (s SnapshotConfig) Interval() time.Duration {
	if s.IntervalMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(s.IntervalMinutes) * time.Minute
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}

func parseIDList(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
