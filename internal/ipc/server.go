package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/deskd/internal/config"
	"github.com/1broseidon/deskd/internal/desktop"
	"github.com/1broseidon/deskd/internal/diag"
	"github.com/1broseidon/deskd/internal/runtimepath"
	"github.com/1broseidon/deskd/internal/sessionlog"
	"github.com/1broseidon/deskd/internal/telemetry"
)

// Server owns the daemon side of the IPC socket. It is the single entry
// point through which the rendering layer, CLI verbs, TUI, and MCP server
// reach the desktop session.
type Server struct {
	socketPath   string
	listener     net.Listener
	cfg          *config.Config
	cfgMu        sync.RWMutex
	session      *desktop.Session
	collector    *telemetry.Collector
	reporter     telemetry.Reporter
	logger       *sessionlog.Logger
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server for the given session. collector may
// be nil when telemetry is disabled; reporter is the channel diagnostics
// events are fired into.
func NewServer(cfg *config.Config, session *desktop.Session, collector *telemetry.Collector, reporter telemetry.Reporter, logger *sessionlog.Logger) (*Server, error) {
	socketPath := cfg.SocketPath
	if socketPath == "" {
		var err error
		socketPath, err = runtimepath.SocketPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
		}
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	if reporter == nil {
		reporter = telemetry.Nop{}
	}

	return &Server{
		socketPath: socketPath,
		cfg:        cfg,
		session:    session,
		collector:  collector,
		reporter:   reporter,
		logger:     logger,
		startTime:  time.Now(),
	}, nil
}

// SocketPath returns the socket the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
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

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()

	return nil
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
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Expect one JSON request per line.
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandOpenWindow:
		return s.handleOpenWindow(req.Payload)
	case CommandCloseWindow:
		return s.handleCloseWindow(req.Payload)
	case CommandMinimizeWindow:
		return s.handleMinimizeWindow(req.Payload)
	case CommandMaximizeWindow:
		return s.handleMaximizeWindow(req.Payload)
	case CommandRestoreWindow:
		return s.handleRestoreWindow(req.Payload)
	case CommandFocusWindow:
		return s.handleFocusWindow(req.Payload)
	case CommandMoveWindow:
		return s.handleMoveWindow(req.Payload)
	case CommandResizeWindow:
		return s.handleResizeWindow(req.Payload)
	case CommandGetWindows:
		return s.handleGetWindows()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetMetrics:
		return s.handleGetMetrics()
	case CommandEmitDiag:
		return s.handleEmitDiag()
	case CommandReload:
		return s.handleReload()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleOpenWindow(payload json.RawMessage) *Response {
	var p OpenWindowPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid open payload: %v", err))
	}
	if p.ID == "" {
		return NewErrorResponse("id is required")
	}

	spec := desktop.OpenSpec{
		ID:     p.ID,
		Title:  p.Title,
		Icon:   p.Icon,
		X:      p.X,
		Y:      p.Y,
		Width:  p.Width,
		Height: p.Height,
	}
	// Fill defaults from the app config when the caller sent a bare id.
	if p.Title == "" && p.Width == 0 && p.Height == 0 {
		s.cfgMu.RLock()
		spec = s.cfg.OpenSpec(p.ID)
		s.cfgMu.RUnlock()
	}

	created := s.session.Open(spec)
	w, _ := s.session.Window(p.ID)
	action := sessionlog.ActionOpen
	if !created {
		action = sessionlog.ActionFocusExist
	}
	s.logger.Log(action, p.ID, map[string]interface{}{
		"title":   w.Title,
		"z_index": w.ZIndex,
	})

	resp, _ := NewOKResponse(WindowOpData{ID: p.ID, Found: true, Created: created, ZIndex: w.ZIndex})
	return resp
}

func (s *Server) handleCloseWindow(payload json.RawMessage) *Response {
	p, resp := parseTarget(payload)
	if resp != nil {
		return resp
	}
	found := s.session.Close(p.ID)
	if found {
		s.logger.Log(sessionlog.ActionClose, p.ID, nil)
	}
	return opResponse(p.ID, found)
}

func (s *Server) handleMinimizeWindow(payload json.RawMessage) *Response {
	p, resp := parseTarget(payload)
	if resp != nil {
		return resp
	}
	found := s.session.Minimize(p.ID)
	if found {
		s.logger.Log(sessionlog.ActionMinimize, p.ID, nil)
	}
	return opResponse(p.ID, found)
}

func (s *Server) handleMaximizeWindow(payload json.RawMessage) *Response {
	p, resp := parseTarget(payload)
	if resp != nil {
		return resp
	}
	found := s.session.Maximize(p.ID)
	if found {
		w, _ := s.session.Window(p.ID)
		s.logger.Log(sessionlog.ActionMaximize, p.ID, map[string]interface{}{
			"maximized": w.Maximized,
		})
	}
	return opResponse(p.ID, found)
}

func (s *Server) handleRestoreWindow(payload json.RawMessage) *Response {
	p, resp := parseTarget(payload)
	if resp != nil {
		return resp
	}
	found := s.session.Restore(p.ID)
	if found {
		s.logger.Log(sessionlog.ActionRestore, p.ID, nil)
	}
	return opResponse(p.ID, found)
}

func (s *Server) handleFocusWindow(payload json.RawMessage) *Response {
	p, resp := parseTarget(payload)
	if resp != nil {
		return resp
	}
	found := s.session.Focus(p.ID)
	if found {
		s.logger.Log(sessionlog.ActionFocus, p.ID, nil)
	}
	return opResponse(p.ID, found)
}

func (s *Server) handleMoveWindow(payload json.RawMessage) *Response {
	var p MoveWindowPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid move payload: %v", err))
	}
	if p.ID == "" {
		return NewErrorResponse("id is required")
	}
	found := s.session.Move(p.ID, p.X, p.Y)
	if found {
		s.logger.Log(sessionlog.ActionMove, p.ID, map[string]interface{}{"x": p.X, "y": p.Y})
	}
	return opResponse(p.ID, found)
}

func (s *Server) handleResizeWindow(payload json.RawMessage) *Response {
	var p ResizeWindowPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid resize payload: %v", err))
	}
	if p.ID == "" {
		return NewErrorResponse("id is required")
	}
	found := s.session.Resize(p.ID, p.Width, p.Height)
	if found {
		s.logger.Log(sessionlog.ActionResize, p.ID, map[string]interface{}{
			"width":  p.Width,
			"height": p.Height,
		})
	}
	return opResponse(p.ID, found)
}

func (s *Server) handleGetWindows() *Response {
	data := WindowsData{
		Windows:       s.session.Windows(),
		TopStackOrder: s.session.TopStackOrder(),
		FocusedID:     s.session.FocusedID(),
	}
	resp, _ := NewOKResponse(data)
	return resp
}

func (s *Server) handleGetStatus() *Response {
	status := StatusData{
		OpenWindows:   s.session.Len(),
		TopStackOrder: s.session.TopStackOrder(),
		FocusedID:     s.session.FocusedID(),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		DaemonRunning: true,
	}
	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) handleGetMetrics() *Response {
	resp, _ := NewOKResponse(s.collector.Snapshot())
	return resp
}

func (s *Server) handleEmitDiag() *Response {
	diag.EmitSamples(s.reporter)
	s.logger.Log(sessionlog.ActionDiagnostics, "", nil)
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")

	newCfg, err := config.Load()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}

	s.cfgMu.Lock()
	s.cfg = newCfg
	s.cfgMu.Unlock()

	log.Println("IPC: Config reloaded successfully")

	resp, _ := NewOKResponse(nil)
	return resp
}

func parseTarget(payload json.RawMessage) (WindowTargetPayload, *Response) {
	var p WindowTargetPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return p, NewErrorResponse(fmt.Sprintf("Invalid payload: %v", err))
	}
	if p.ID == "" {
		return p, NewErrorResponse("id is required")
	}
	return p, nil
}

func opResponse(id string, found bool) *Response {
	resp, _ := NewOKResponse(WindowOpData{ID: id, Found: found})
	return resp
}

func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
