package mcp

import (
	"bufio"
	"io"
	"log/slog"
	"os"

	"caselaw/internal/research"
)

// Server speaks MCP over line-delimited JSON-RPC on stdio and dispatches
// tool calls into the research engine.
type Server struct {
	stdin   io.Reader
	stdout  io.Writer
	scanner *bufio.Scanner
	logger  *slog.Logger
	version string
	engine  *research.Engine
	tools   map[string]registeredTool
}

// registeredTool pairs a tool's declared schema with its handler. The
// schema is the sole contract for valid arguments; the dispatcher
// validates against it before the handler runs.
type registeredTool struct {
	def     Tool
	handler ToolHandler
}

// NewServer creates an MCP server over the given research engine.
func NewServer(version string, engine *research.Engine, logger *slog.Logger) *Server {
	server := &Server{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		logger:  logger,
		version: version,
		engine:  engine,
		tools:   make(map[string]registeredTool),
	}
	server.registerTools()
	return server
}

// NewServerForCLI creates a minimal server for tool introspection. It
// cannot handle calls but can list tool definitions.
func NewServerForCLI() *Server {
	server := &Server{
		logger: slog.New(slog.DiscardHandler),
		tools:  make(map[string]registeredTool),
	}
	server.registerTools()
	return server
}

// Start begins processing messages until stdin closes.
func (s *Server) Start() error {
	s.logger.Info("MCP server starting", "version", s.version)

	for {
		msg, err := s.readMessage()
		if err != nil {
			if err == io.EOF {
				s.logger.Info("MCP server shutting down (EOF)")
				return nil
			}
			s.logger.Error("error reading message", "error", err.Error())

			// Try to send error response if we can extract an ID
			if msg != nil && msg.Id != nil {
				_ = s.writeError(msg.Id, ParseError, "failed to parse message: "+err.Error())
			}
			continue
		}

		// Notifications don't generate responses
		response := s.handleMessage(msg)
		if response != nil {
			if err := s.writeMessage(response); err != nil {
				s.logger.Error("error writing response", "error", err.Error())
			}
		}
	}
}

// SetStdin sets the input stream (for testing)
func (s *Server) SetStdin(r io.Reader) {
	s.stdin = r
	s.scanner = nil // Reset scanner so it will be recreated with new reader
}

// SetStdout sets the output stream (for testing)
func (s *Server) SetStdout(w io.Writer) {
	s.stdout = w
}
