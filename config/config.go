package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
// Most values have defaults suitable for a single-user local install.
type Config struct {
	DataDir       string // Base directory for recordings database and exports
	DBFile        string // SQLite database file: DataDir/recbox.db
	ExportDir     string // Default directory for exported WAV files
	WatchDir      string // Drop directory scanned by the importer
	SampleRate    int    // Capture sample rate in Hz
	Channels      int    // Capture channel count (1 = mono)
	ChunkMillis   int    // Capture pipeline chunk emission interval
	LogPath       string // Log file path; empty disables file output
	LogLevel      string // debug, info, warn, error
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// Attempt to load .env file. godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on existing environment variables and defaults.")
	}

	dataDir := getEnv("RECBOX_DATA_DIR", defaultDataDir())

	return &Config{
		DataDir:       dataDir,
		DBFile:        getEnv("RECBOX_DB_FILE", filepath.Join(dataDir, "recbox.db")),
		ExportDir:     getEnv("RECBOX_EXPORT_DIR", "."),
		WatchDir:      getEnv("RECBOX_WATCH_DIR", filepath.Join(dataDir, "inbox")),
		SampleRate:    getEnvInt("RECBOX_SAMPLE_RATE", 44100),
		Channels:      getEnvInt("RECBOX_CHANNELS", 1),
		ChunkMillis:   getEnvInt("RECBOX_CHUNK_MILLIS", 250),
		LogPath:       getEnv("RECBOX_LOG_PATH", filepath.Join(dataDir, "logs", "recbox.log")),
		LogLevel:      getEnv("RECBOX_LOG_LEVEL", "info"),
		LogMaxSizeMB:  getEnvInt("RECBOX_LOG_MAX_SIZE", 10),
		LogMaxBackups: getEnvInt("RECBOX_LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getEnvInt("RECBOX_LOG_MAX_AGE", 28),
	}
}

// defaultDataDir resolves the per-user data directory, falling back to the
// working directory when the home directory cannot be determined.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".recbox"
	}
	return filepath.Join(home, ".recbox")
}
