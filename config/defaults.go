package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/folio",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Layout: LayoutConfig{
			ContentsWidth:          30,
			ContentsCollapsedWidth: 6,
			ToolPanelWidth:         48,
			ToolPanelMinWidth:      36,
			NarrowBreakpoint:       100,
		},
		Chat: ChatConfig{
			RequestTimeoutSeconds: 30,
		},
	}
}

func GenerateSystemConfigTemplate() string {
	return `# Folio System Configuration
# Location: ~/.config/folio/settings.toml
# This file uses TOML format: https://toml.io

# Directory where user config and debug logs are stored
data_directory = "~/.local/share/folio"
`
}

func GenerateUserConfigTemplate() string {
	return `# Folio User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

[layout]
# Width (in terminal columns) of the contents sidebar when expanded
contents_width = 30

# Width of the contents sidebar when collapsed
contents_collapsed_width = 6

# Starting width of the tool panel
tool_panel_width = 48

# Minimum width the tool panel may be resized down to
tool_panel_min_width = 36

# Terminal width below which panes stack vertically
narrow_breakpoint = 100

[chat]
# Timeout for chat / tool generation / transcription requests
request_timeout_seconds = 30
`
}
