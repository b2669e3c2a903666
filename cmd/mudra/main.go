package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/sahanad/mudra/internal/app"
	"github.com/sahanad/mudra/internal/assessment"
	"github.com/sahanad/mudra/internal/config"
	"github.com/sahanad/mudra/internal/server"
	"github.com/sahanad/mudra/internal/store"
)

func main() {
	fmt.Println("Mudra - Hand and Wrist Motion Assessment")

	cfg := config.Load()

	// Initialize the store
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
	}

	st, err := store.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Load assessment tuning, defaults unless a tuning file is configured
	tuning := assessment.DefaultConfig()
	if cfg.TuningPath != "" {
		tuning, err = assessment.LoadConfig(cfg.TuningPath)
		if err != nil {
			log.Fatalf("Failed to load assessment tuning: %v", err)
		}
		fmt.Printf("Loaded assessment tuning from: %s\n", cfg.TuningPath)
	}

	application := app.New(app.Config{
		Store:      st,
		Assessment: tuning,
	})

	// Find web directory
	webDir := cfg.StaticDir
	if webDir == "" {
		webDir = findWebDir()
	}
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	// Configure and start server
	srv := server.New(server.Config{
		StaticDir: webDir,
		App:       application,
	})

	fmt.Printf("Starting server on %s\n", cfg.Addr)
	if err := srv.ListenAndServe(cfg.Addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.mudra/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".mudra", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
