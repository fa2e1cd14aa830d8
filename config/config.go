package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type LayoutConfig struct {
	ContentsWidth          int `toml:"contents_width"`
	ContentsCollapsedWidth int `toml:"contents_collapsed_width"`
	ToolPanelWidth         int `toml:"tool_panel_width"`
	ToolPanelMinWidth      int `toml:"tool_panel_min_width"`
	NarrowBreakpoint       int `toml:"narrow_breakpoint"`
}

type ChatConfig struct {
	RequestTimeoutSeconds int `toml:"request_timeout_seconds"`
}

type UserConfig struct {
	Layout LayoutConfig `toml:"layout"`
	Chat   ChatConfig   `toml:"chat"`
}

type Config struct {
	DataDirectory          string
	ContentsWidth          int
	ContentsCollapsedWidth int
	ToolPanelWidth         int
	ToolPanelMinWidth      int
	NarrowBreakpoint       int
	RequestTimeoutSeconds  int
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyEnvOverrides() {
	if dataDir := os.Getenv("FOLIO_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
}

func CheckDebug() bool {
	debug := os.Getenv("FOLIO_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (FOLIO_DEBUG=%s) ===", os.Getenv("FOLIO_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

func Load() (*Config, error) {
	defaults := DefaultUserConfig()
	cfg := &Config{
		DataDirectory:          "~/.local/share/folio",
		ContentsWidth:          defaults.Layout.ContentsWidth,
		ContentsCollapsedWidth: defaults.Layout.ContentsCollapsedWidth,
		ToolPanelWidth:         defaults.Layout.ToolPanelWidth,
		ToolPanelMinWidth:      defaults.Layout.ToolPanelMinWidth,
		NarrowBreakpoint:       defaults.Layout.NarrowBreakpoint,
		RequestTimeoutSeconds:  defaults.Chat.RequestTimeoutSeconds,
	}

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	cfg.DataDirectory = systemCfg.DataDirectory
	cfg.applyEnvOverrides()

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.applyUserConfig(userCfg)

	return cfg, nil
}

// applyUserConfig copies user config values onto the runtime config,
// keeping defaults for fields the user left zero.
func (c *Config) applyUserConfig(userCfg *UserConfig) {
	if userCfg == nil {
		return
	}
	if userCfg.Layout.ContentsWidth > 0 {
		c.ContentsWidth = userCfg.Layout.ContentsWidth
	}
	if userCfg.Layout.ContentsCollapsedWidth > 0 {
		c.ContentsCollapsedWidth = userCfg.Layout.ContentsCollapsedWidth
	}
	if userCfg.Layout.ToolPanelWidth > 0 {
		c.ToolPanelWidth = userCfg.Layout.ToolPanelWidth
	}
	if userCfg.Layout.ToolPanelMinWidth > 0 {
		c.ToolPanelMinWidth = userCfg.Layout.ToolPanelMinWidth
	}
	if userCfg.Layout.NarrowBreakpoint > 0 {
		c.NarrowBreakpoint = userCfg.Layout.NarrowBreakpoint
	}
	if userCfg.Chat.RequestTimeoutSeconds > 0 {
		c.RequestTimeoutSeconds = userCfg.Chat.RequestTimeoutSeconds
	}
}
