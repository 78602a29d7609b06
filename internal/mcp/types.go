package mcp

// SwitchDesktopInput is the input for the switch_desktop tool.
type SwitchDesktopInput struct {
	Index int `json:"index" jsonschema:"required,Desktop index 0-9. Desktops are created on demand when the index is beyond the current count."`
}

// SwitchDesktopOutput is the output for the switch_desktop tool.
type SwitchDesktopOutput struct {
	Queued bool `json:"queued"`
	Index  int  `json:"index"`
}

// MoveWindowInput is the input for the move_window tool.
type MoveWindowInput struct {
	Index int `json:"index" jsonschema:"required,Desktop index 0-9 to move the foreground window to."`
}

// MoveWindowOutput is the output for the move_window tool.
type MoveWindowOutput struct {
	Queued bool `json:"queued"`
	Index  int  `json:"index"`
}

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	DaemonRunning     bool  `json:"daemon_running"`
	CurrentDesktop    int   `json:"current_desktop"`
	DesktopCount      int   `json:"desktop_count"`
	RememberedWindows int   `json:"remembered_windows"`
	UptimeSeconds     int64 `json:"uptime_seconds"`
}
