package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus     CommandType = "GET_STATUS"
	CommandSwitchDesktop CommandType = "SWITCH_DESKTOP"
	CommandMoveWindow    CommandType = "MOVE_WINDOW"
	CommandAbout         CommandType = "ABOUT"
	CommandShutdown      CommandType = "SHUTDOWN"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	DaemonRunning     bool  `json:"daemon_running"`
	CurrentDesktop    int   `json:"current_desktop"`
	DesktopCount      int   `json:"desktop_count"`
	RememberedWindows int   `json:"remembered_windows"`
	UptimeSeconds     int64 `json:"uptime_seconds"`
}

// TargetPayload carries the desktop index for SWITCH_DESKTOP and MOVE_WINDOW.
type TargetPayload struct {
	Index int `json:"index"`
}

// AboutData represents the data returned by ABOUT
type AboutData struct {
	Text string `json:"text"`
}

// ValidateIndex checks a desktop index against the hotkey-addressable range.
func ValidateIndex(index int) error {
	if index < 0 || index > 9 {
		return fmt.Errorf("desktop index %d out of range [0,9]", index)
	}
	return nil
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
