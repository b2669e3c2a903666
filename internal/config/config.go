// Package config loads service configuration from the environment.
package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds the service configuration.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string
	// DBPath is the SQLite database file location.
	DBPath string
	// StaticDir overrides the static file directory lookup.
	StaticDir string
	// TuningPath points to an optional assessment tuning file.
	TuningPath string
}

// Load reads configuration from a .env file if present, then from the
// process environment. Unset values fall back to defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// Missing .env is fine, the system environment still applies
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		Addr:       getEnv("MUDRA_ADDR", ":8080"),
		DBPath:     getEnv("MUDRA_DB_PATH", defaultDBPath()),
		StaticDir:  getEnv("MUDRA_STATIC_DIR", ""),
		TuningPath: getEnv("MUDRA_TUNING", ""),
	}
}

// defaultDBPath returns ~/.mudra/mudra.db, or a working-directory file
// when the home directory cannot be resolved.
func defaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "mudra.db"
	}
	return filepath.Join(homeDir, ".mudra", "mudra.db")
}

func getEnv(key string, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
