package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"folio/config"
	"folio/model"
	"folio/service"
	"folio/ui"
)

const (
	Version = "v0.01.00"
	License = "Apache-2.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		errorModal := ui.NewErrorModal("Configuration Error",
			fmt.Sprintf("Failed to load configuration:\n%v\n\nFix or remove the settings file and relaunch.", err))
		p := tea.NewProgram(errorModal, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	config.InitDebugLog(cfg.DataDir())

	keys, err := config.LoadKeybindings(cfg.DataDir())
	if err != nil {
		errorModal := ui.NewErrorModal("Keybinding Error",
			fmt.Sprintf("Failed to load keybindings:\n%v", err))
		p := tea.NewProgram(errorModal, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	services := service.New(service.DefaultOptions())
	dataModel := model.NewModel(cfg, keys, services, Version)

	p := tea.NewProgram(
		ui.NewAppView(dataModel),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
