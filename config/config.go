package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Settings is the on-disk settings.toml shape.
type Settings struct {
	ServerURL          string `toml:"server_url"`
	RequestTimeoutSecs int    `toml:"request_timeout_secs,omitempty"`
	StateDirectory     string `toml:"state_directory,omitempty"`
}

// Config holds the resolved client configuration.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	StateDirectory string
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) StateDir() string {
	return ExpandPath(c.StateDirectory)
}

func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("SCANTUI_SERVER_URL"); url != "" {
		c.ServerURL = url
	}
	if dir := os.Getenv("SCANTUI_STATE_DIR"); dir != "" {
		c.StateDirectory = dir
	}
}

func CheckDebug() bool {
	debug := os.Getenv("SCANTUI_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(stateDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(stateDir, "debug.log")

	// 0600 - the log may contain session ids and request details
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (SCANTUI_DEBUG=%s) ===", os.Getenv("SCANTUI_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

func Load() (*Config, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerURL:      settings.ServerURL,
		RequestTimeout: time.Duration(settings.RequestTimeoutSecs) * time.Second,
		StateDirectory: settings.StateDirectory,
	}
	if settings.RequestTimeoutSecs <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.StateDirectory == "" {
		cfg.StateDirectory = GetDefaultStateDir()
	}

	cfg.applyEnvOverrides()

	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("server_url is empty; set it in %s or via SCANTUI_SERVER_URL", GetSettingsFilePath())
	}

	stateDir := cfg.StateDir()
	if err := os.MkdirAll(stateDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	return cfg, nil
}
