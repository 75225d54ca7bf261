// Package mcphost exposes the create forum wizard as MCP tools.
package mcphost

import (
	"context"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/mark3labs/chanforum/internal/logger"
	"github.com/mark3labs/chanforum/internal/wizard"
	"github.com/mark3labs/mcp-go/server"
)

const serverName = "chanforum"

// Server hosts one wizard controller and serves it over MCP. Tool calls are
// serialized so the notifications collected during a call belong to it.
type Server struct {
	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
	ctrl       *wizard.Controller
	addr       string
	mu         sync.Mutex

	callMu sync.Mutex

	notesMu sync.Mutex
	notes   []wizard.Notification
}

// New builds the controller from deps and registers the wizard tools. Any
// Notifier in deps still receives every notification.
func New(deps wizard.Deps, version string, opts ...wizard.Option) *Server {
	s := &Server{}

	next := deps.Notifier
	deps.Notifier = wizard.NotifierFunc(func(n wizard.Notification) {
		s.notesMu.Lock()
		s.notes = append(s.notes, n)
		s.notesMu.Unlock()
		if next != nil {
			next.Notify(n)
		}
	})
	s.ctrl = wizard.New(deps, opts...)

	s.mcpServer = server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// Controller returns the hosted wizard.
func (s *Server) Controller() *wizard.Controller {
	return s.ctrl
}

// drainNotes returns and clears the collected notifications.
func (s *Server) drainNotes() []wizard.Notification {
	s.notesMu.Lock()
	defer s.notesMu.Unlock()
	out := s.notes
	s.notes = nil
	return out
}

// ServeStdio serves MCP over in and out until ctx ends or in closes.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	logger.Debug("mcp: serving on stdio")
	return server.NewStdioServer(s.mcpServer).Listen(ctx, in, out)
}

// Start serves MCP over streamable HTTP on addr. An empty addr picks a free
// port on 127.0.0.1. It returns the endpoint URL.
func (s *Server) Start(addr string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer != nil {
		return "", fmt.Errorf("server already started")
	}

	if addr == "" {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return "", fmt.Errorf("failed to find available port: %w", err)
		}
		addr = listener.Addr().String()
		// NOTE: the port may be taken between this close and Start binding it.
		_ = listener.Close()
	}

	s.httpServer = server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	)
	s.addr = addr

	httpServer := s.httpServer
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.httpServer = nil
			return "", fmt.Errorf("failed to start HTTP server: %w", err)
		}
	case <-time.After(100 * time.Millisecond):
	}

	logger.Info("mcp: serving on http://%s/mcp", addr)
	return "http://" + addr + "/mcp", nil
}

// Stop shuts the HTTP server down.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	s.httpServer = nil
	logger.Debug("mcp: http server stopped")
	return nil
}
