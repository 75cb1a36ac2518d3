// nutrisense TUI - A terminal interface for food ingredient risk analysis.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/nutrisense-tui/internal/api"
	"github.com/jeranaias/nutrisense-tui/internal/capture"
	"github.com/jeranaias/nutrisense-tui/internal/config"
	"github.com/jeranaias/nutrisense-tui/internal/narrate"
	"github.com/jeranaias/nutrisense-tui/internal/ui/analyze"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--version", "-v":
			fmt.Printf("nutrisense %s (%s, built %s)\n", Version, GitCommit, BuildDate)
			return
		case "--help", "-h":
			printUsage()
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	timeout := cfg.Timeout()

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL: cfg.Backend.Endpoint,
		Timeout: timeout,
	})
	camera := capture.NewDeviceCamera(cfg.Capture.Command)
	speaker := narrate.NewCommandSpeaker(cfg.Narration.Command)

	m := analyze.New(client, camera, speaker, timeout)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running nutrisense: %v\n", err)
		os.Exit(1)
	}

	// The terminal is restored; make sure no narration keeps playing.
	speaker.Stop()
}

func printUsage() {
	fmt.Print(`nutrisense - analyze food ingredients from your terminal

Usage:
  nutrisense            start the interactive interface
  nutrisense --version  print version information

Keys:
  tab / shift+tab   switch input mode (Type / Scan / Upload)
  ctrl+p            cycle dietary profile
  enter             analyze / capture / ask
  ctrl+s            speak the verdict
  ctrl+x            stop speech
  ctrl+r            start over
  ctrl+c            quit

Configuration lives at ~/.nutrisense/config.toml. The backend endpoint can
also be set with NUTRISENSE_ENDPOINT.
`)
}
