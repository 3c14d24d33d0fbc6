package config

import (
	"log"
	"os"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

type Config struct {
	Mode Mode

	Port string

	GCPProjectID string
	GCPLocation  string
	ModelName    string

	StorageBackend string // "memory", "sqlite" or "firestore"
	SQLitePath     string
	UseMockEngine  bool // true = use the scripted engine even on GCP
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "TRUE"
}

// Load reads all env vars and builds the config
func Load() *Config {
	modeStr := getEnv("CONCILIO_MODE", "local")
	var mode Mode
	switch modeStr {
	case "gcp":
		mode = ModeGCP
	default:
		mode = ModeLocal
	}

	cfg := &Config{
		Mode: mode,

		Port: getEnv("CONCILIO_PORT", "8080"),

		GCPProjectID: getEnv("CONCILIO_GCP_PROJECT", ""),
		GCPLocation:  getEnv("CONCILIO_GCP_LOCATION", "us-central1"),
		ModelName:    getEnv("CONCILIO_MODEL_NAME", "gemini-2.5-flash"),

		StorageBackend: getEnv("CONCILIO_STORAGE_BACKEND", "memory"),
		SQLitePath:     getEnv("CONCILIO_SQLITE_PATH", "concilio.db"),
		UseMockEngine:  getBoolEnv("CONCILIO_USE_MOCK_ENGINE", mode == ModeLocal),
	}

	// Minimal validation in GCP mode
	if cfg.Mode == ModeGCP && cfg.GCPProjectID == "" {
		log.Fatal("CONCILIO_GCP_PROJECT must be set in gcp mode")
	}

	return cfg
}
