package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"scantui/client"
	"scantui/config"
	"scantui/ui"
)

const (
	Version = "v0.01.00"
	License = "Apache-2.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.StateDir())

	c, err := client.New(cfg.ServerURL, cfg.RequestTimeout)
	if err != nil {
		fmt.Printf("Failed to initialize client: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		ui.NewAppView(cfg, c, Version),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running scantui: %v\n", err)
		os.Exit(1)
	}
}
