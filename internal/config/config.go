package config

import (
	"os"
	"strconv"
)

// NotionConfig holds connection settings for the Notion workspace that
// backs the tracker.
type NotionConfig struct {
	APIKey     string
	DatabaseID string
	// APIRevision selects the store schema shape: "2022-06-28" reads status
	// options directly off the database, "2025-09-03" goes through the
	// database's referenced data source.
	APIRevision string
	BaseURL     string
	TimeoutSec  int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port    string
	SiteURL string
	// IssueConcurrency caps concurrent public-id writes during a backfill run.
	IssueConcurrency int
	Notion           NotionConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:             getEnv("PORT", "8080"), // default only for non-sensitive value
		SiteURL:          getEnv("SITE_URL", "http://localhost:8080"),
		IssueConcurrency: getEnvInt("ISSUE_CONCURRENCY", 4),
		Notion: NotionConfig{
			APIKey:      getEnv("NOTION_API_KEY", ""),
			DatabaseID:  getEnv("NOTION_DATABASE_ID", ""),
			APIRevision: getEnv("NOTION_API_REVISION", "2022-06-28"),
			BaseURL:     getEnv("NOTION_BASE_URL", "https://api.notion.com"),
			TimeoutSec:  getEnvInt("NOTION_TIMEOUT_SEC", 15),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
