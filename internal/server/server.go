package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/player-locator/internal/detection"
	"github.com/ironsheep/player-locator/internal/imaging"
	"github.com/ironsheep/player-locator/internal/render"
)

// Server handles MCP protocol communication
type Server struct {
	cache    *imaging.ImageCache
	log      logrus.FieldLogger
	backend  detection.Backend
	expected int
	palette  render.Palette
	version  string
	debug    bool
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for protocol and pipeline diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithBackend sets the detection backend used by every tool.
func WithBackend(b detection.Backend) Option {
	return func(s *Server) {
		if b != nil {
			s.backend = b
		}
	}
}

// WithExpected sets the player count used when a call does not give one.
func WithExpected(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.expected = n
		}
	}
}

// WithPalette sets the team colors for rendered images.
func WithPalette(p render.Palette) Option {
	return func(s *Server) {
		s.palette = p
	}
}

// WithDebug turns on per-stage detection diagnostics for every call. A call
// can still ask for them on its own with "debug": true.
func WithDebug(debug bool) Option {
	return func(s *Server) {
		s.debug = debug
	}
}

// WithVersion sets the version reported by initialize.
func WithVersion(v string) Option {
	return func(s *Server) {
		if v != "" {
			s.version = v
		}
	}
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

// New creates a new MCP server instance
func New(opts ...Option) *Server {
	s := &Server{
		cache:    imaging.NewImageCache(),
		log:      logrus.StandardLogger(),
		backend:  detection.DefaultBackend(),
		expected: detection.DefaultExpected,
		palette:  render.DefaultPalette(),
		version:  "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run serves requests from stdin and writes responses to stdout until stdin
// closes or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r and writes one response
// per line to w. Notifications get no response.
//
// Serve returns nil when r reaches EOF and ctx.Err() once ctx is cancelled,
// even while a read is blocked. A reader blocked on idle input is left to the
// process exit.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-done:
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	encoder := json.NewEncoder(w)
	s.log.WithField("backend", s.backend.Name()).Info("mcp server listening on stdio")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var line []byte
		select {
		case <-ctx.Done():
			s.log.Info("mcp server stopping")
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("scanner error: %w", err)
				}
				return nil
			}
			line = l
		}
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.WithError(err).Warn("failed to parse request")
			if err := encoder.Encode(s.errorResponse(nil, codeParseError, "Parse error", err.Error())); err != nil {
				s.log.WithError(err).Error("failed to encode response")
			}
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.log.WithError(err).Error("failed to encode response")
			}
		}
	}
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	s.log.WithField("method", req.Method).Debug("request received")

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return s.errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), "")
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "player-locator",
				"version": s.version,
			},
		},
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{JSONRPC: "2.0", ID: id, Error: e}
}
