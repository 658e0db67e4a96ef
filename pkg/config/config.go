// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Database   DatabaseConfig
	Locale     LocaleConfig
	Transcribe TranscribeConfig
	LogLevel   string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// LocaleConfig carries the language-specific parsing data. Keyword lists and
// menu labels are configuration so the parsing algorithm can be reused for
// other locales without touching the NLU code.
type LocaleConfig struct {
	CurrencyCode      string
	ExpenseKeywords   []string
	IncomeKeywords    []string
	GoalTriggerPhrase string
	DefaultCategory   string
	DefaultCategories []string
}

type TranscribeConfig struct {
	Enabled  bool
	Region   string
	Bucket   string
	Language string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// A .env file is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			Database: getEnv("POSTGRES_DB", "poupazap"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Locale: LocaleConfig{
			CurrencyCode:      getEnv("LOCALE_CURRENCY", "BRL"),
			ExpenseKeywords:   getEnvAsList("LOCALE_EXPENSE_KEYWORDS", []string{"gastei", "paguei", "comprei", "despesa de", "uma compra de"}),
			IncomeKeywords:    getEnvAsList("LOCALE_INCOME_KEYWORDS", []string{"recebi", "ganhei", "pix de", "pagamento de", "entrou"}),
			GoalTriggerPhrase: getEnv("LOCALE_GOAL_TRIGGER", "criar meta"),
			DefaultCategory:   getEnv("LOCALE_DEFAULT_CATEGORY", "Outros"),
			DefaultCategories: getEnvAsList("LOCALE_CATEGORIES", []string{"Mercado", "Transporte", "Lazer", "Saude", "Contas", "Outros"}),
		},
		Transcribe: TranscribeConfig{
			Enabled:  getEnvAsBool("TRANSCRIBE_ENABLED", false),
			Region:   getEnv("TRANSCRIBE_REGION", ""),
			Bucket:   getEnv("TRANSCRIBE_BUCKET", ""),
			Language: getEnv("TRANSCRIBE_LANGUAGE", "pt-BR"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Transcription is optional; missing AWS settings downgrade it instead of
	// refusing to start.
	if cfg.Transcribe.Enabled && (cfg.Transcribe.Region == "" || cfg.Transcribe.Bucket == "") {
		cfg.Transcribe.Enabled = false
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
