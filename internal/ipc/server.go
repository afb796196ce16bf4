package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tesswm/internal/runtimepath"
	"tesswm/internal/x11"
)

// Server answers IPC requests on a unix socket. It holds its own
// display connection so queries and command injection never touch the
// manager's event loop.
type Server struct {
	socketPath   string
	listener     net.Listener
	x            *x11.Client
	version      string
	startTime    time.Time
	log          zerolog.Logger
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer resolves the socket path and dials the display.
func NewServer(version string, log zerolog.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	x, err := x11.Dial()
	if err != nil {
		return nil, err
	}

	// Remove stale socket from a previous run.
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		x:          x,
		version:    version,
		startTime:  time.Now(),
		log:        log,
	}, nil
}

// Start begins listening for IPC connections.
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.log.Info().Str("socket", s.socketPath).Msg("IPC server listening")

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
			s.log.Error().Err(err).Msg("IPC accept error")
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection. One JSON request
// per line, one JSON response per line.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.log.Error().Err(err).Msg("IPC read error")
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
		s.log.Error().Err(err).Msg("failed to marshal IPC response")
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.log.Error().Err(err).Msg("failed to send IPC response")
	}
}

func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetClients:
		return s.handleGetClients()
	case CommandGetMonitors:
		return s.handleGetMonitors()
	case CommandView:
		return s.handleView(req.Payload)
	case CommandToggleLayout:
		return s.forward(x11.CmdToggleLayout, 0)
	case CommandQuit:
		return s.forward(x11.CmdQuit, 0)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleGetStatus() *Response {
	active, err := s.x.ActiveWindow()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to read active window: %v", err))
	}
	clients, err := s.x.Clients()
	if err != nil {
		clients = nil
	}

	status := StatusData{
		Version:       s.version,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		ActiveWindow:  active,
		ClientCount:   len(clients),
	}

	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) handleGetClients() *Response {
	clients, err := s.x.Clients()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to read client list: %v", err))
	}

	resp, _ := NewOKResponse(ClientsData{Clients: clients})
	return resp
}

func (s *Server) handleGetMonitors() *Response {
	screens, err := s.x.Screens()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get monitors: %v", err))
	}

	infos := make([]MonitorInfo, len(screens))
	for i, r := range screens {
		infos[i] = MonitorInfo{
			ID:     i,
			X:      r.X,
			Y:      r.Y,
			Width:  r.Width,
			Height: r.Height,
		}
	}

	resp, _ := NewOKResponse(MonitorsData{Monitors: infos})
	return resp
}

func (s *Server) handleView(payload json.RawMessage) *Response {
	var view ViewPayload
	if err := json.Unmarshal(payload, &view); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid view payload: %v", err))
	}
	if view.Tags == 0 {
		return NewErrorResponse("tags bitmask must be nonzero")
	}
	return s.forward(x11.CmdView, view.Tags)
}

// forward injects a control message for the manager's event loop.
func (s *Server) forward(code, arg uint32) *Response {
	if err := s.x.SendCommand(code, arg); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to deliver command: %v", err))
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	if s.x != nil {
		s.x.Close()
	}
	os.Remove(s.socketPath)
}
