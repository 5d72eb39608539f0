// Package server implements the MCP server exposing docsplit as a tool.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/docsplit/internal/logging"
	"github.com/d-kuro/docsplit/internal/security"
	"github.com/d-kuro/docsplit/internal/tools"
	"github.com/d-kuro/docsplit/internal/tools/split"
	"github.com/d-kuro/docsplit/pkg/version"
)

// Server represents the docsplit MCP server.
type Server struct {
	mcpServer *mcp.Server
	registry  *tools.Registry
	logger    *logging.Logger
}

// Options configures the server instance.
type Options struct {
	Logger    *logging.Logger
	Validator security.Validator
}

// New creates a new docsplit MCP server with the given options.
func New(opts *Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger("info")
	}
	if opts.Validator == nil {
		opts.Validator = security.NewDefaultValidator()
	}

	toolCtx := &tools.Context{
		Logger:    opts.Logger,
		Validator: opts.Validator,
	}

	registry := tools.NewRegistry()
	if err := registry.Register(split.CreateSplitTool(toolCtx)); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "docsplit",
		Version: version.GetVersion().Version,
	}, nil)
	registry.Install(mcpServer)

	opts.Logger.Debug("Registered tools", slog.Any("tools", registry.List()))

	return &Server{
		mcpServer: mcpServer,
		registry:  registry,
		logger:    opts.Logger,
	}, nil
}

// GetRegistry returns the tool registry.
func (s *Server) GetRegistry() *tools.Registry {
	return s.registry
}

// Serve runs the MCP server with the specified transport.
// It connects the MCP server to the transport and waits for either
// the session to complete or the context to be cancelled.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("Starting MCP server transport",
		slog.String("version", version.GetVersion().Version),
		slog.String("transport", fmt.Sprintf("%T", transport)),
		slog.Int("tools", s.registry.Count()),
	)

	session, err := s.mcpServer.Connect(ctx, transport)
	if err != nil {
		return fmt.Errorf("failed to connect MCP server: %w", err)
	}

	sessionDone := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("MCP session goroutine panicked",
					slog.Any("panic", r))
				sessionDone <- fmt.Errorf("session panicked: %v", r)
			}
		}()
		sessionDone <- session.Wait()
	}()

	select {
	case err := <-sessionDone:
		s.logger.Info("MCP session finished")
		return err
	case <-ctx.Done():
		s.logger.Info("MCP server shutting down due to context cancellation")
		_ = session.Close()
		return ctx.Err()
	}
}
