package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/deskhop/deskhop/internal/hotkeys"
	"github.com/deskhop/deskhop/internal/registry"
	"github.com/deskhop/deskhop/internal/runtimepath"
)

// StatusSource is the live desktop state GET_STATUS reports.
// Implemented by *x11.Connection.
type StatusSource interface {
	CurrentDesktop() (int, error)
	DesktopCount() (int, error)
}

// Server handles IPC requests from clients. Switch and move requests are not
// executed here: they are queued onto the control loop's action channel so
// IPC- and hotkey-triggered operations serialize identically.
type Server struct {
	socketPath string
	listener   net.Listener
	logger     *slog.Logger

	status   StatusSource
	reg      *registry.Registry
	actions  chan<- hotkeys.Action
	about    string
	shutdown func()

	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server. shutdown is invoked after a SHUTDOWN
// request has been answered.
func NewServer(status StatusSource, reg *registry.Registry, actions chan<- hotkeys.Action,
	about string, shutdown func(), logger *slog.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// A live daemon answering on the socket means a second instance was
	// started; only a stale socket left by a crashed daemon is removed.
	if conn, err := net.DialTimeout("unix", socketPath, time.Second); err == nil {
		conn.Close()
		return nil, fmt.Errorf("another daemon is already listening on %s", socketPath)
	}
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		logger:     logger,
		status:     status,
		reg:        reg,
		actions:    actions,
		about:      about,
		shutdown:   shutdown,
		startTime:  time.Now(),
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	go s.acceptLoop()

	return nil
}

// Stop closes the listener and removes the socket.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection: one JSON request per
// line, one JSON response per line.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))

	reader := bufio.NewReader(conn)
	data, err := reader.ReadBytes('\n')
	if err != nil {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	var resp *Response
	if err != nil {
		resp = NewErrorResponse(err.Error())
	} else {
		resp = s.handleRequest(req)
	}

	out, err := resp.Marshal()
	if err != nil {
		s.logger.Warn("IPC marshal error", "error", err)
		return
	}
	if _, err := conn.Write(append(out, '\n')); err != nil {
		s.logger.Warn("IPC write error", "error", err)
		return
	}

	// Shutdown only after the reply has been flushed to the client.
	if req != nil && req.Command == CommandShutdown && s.shutdown != nil {
		s.shutdown()
	}
}

func (s *Server) handleRequest(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandSwitchDesktop:
		return s.handleAction(req.Payload, hotkeys.KindSwitch)
	case CommandMoveWindow:
		return s.handleAction(req.Payload, hotkeys.KindMoveWindow)
	case CommandAbout:
		resp, err := NewOKResponse(AboutData{Text: s.about})
		if err != nil {
			return NewErrorResponse(err.Error())
		}
		return resp
	case CommandShutdown:
		s.logger.Info("shutdown requested over IPC")
		resp, _ := NewOKResponse(nil)
		return resp
	default:
		return NewErrorResponse(fmt.Sprintf("unknown command: %s", req.Command))
	}
}

func (s *Server) handleGetStatus() *Response {
	data := StatusData{
		DaemonRunning:     true,
		CurrentDesktop:    -1,
		DesktopCount:      -1,
		RememberedWindows: s.reg.Len(),
		UptimeSeconds:     int64(time.Since(s.startTime).Seconds()),
	}
	if desktop, err := s.status.CurrentDesktop(); err == nil {
		data.CurrentDesktop = desktop
	}
	if count, err := s.status.DesktopCount(); err == nil {
		data.DesktopCount = count
	}

	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// handleAction validates the payload and queues the action for the control
// loop. The reply means "queued": operation failures surface through the
// daemon's notifications and log, exactly as for hotkey presses.
func (s *Server) handleAction(payload json.RawMessage, kind hotkeys.Kind) *Response {
	var target TargetPayload
	if err := json.Unmarshal(payload, &target); err != nil {
		return NewErrorResponse(fmt.Sprintf("invalid payload: %v", err))
	}
	if err := ValidateIndex(target.Index); err != nil {
		return NewErrorResponse(err.Error())
	}

	select {
	case s.actions <- hotkeys.Action{Kind: kind, Target: target.Index}:
	case <-time.After(2 * time.Second):
		return NewErrorResponse("daemon is busy, action not queued")
	}

	resp, err := NewOKResponse(nil)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}
