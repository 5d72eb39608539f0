package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/d-kuro/docsplit/internal/logging"
	"github.com/d-kuro/docsplit/internal/security"
	"github.com/d-kuro/docsplit/internal/server"
)

// serveFlags holds the flags for the serve command.
type serveFlags struct {
	logLevel     string
	allowedPaths []string
	blockedPaths []string
}

func newServeCmd() *cobra.Command {
	flags := &serveFlags{}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the splitter as an MCP tool over stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout exposing the
SplitMarkdown tool, so editors and agents can split reference documents.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c, flags)
		},
	}

	serveCmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level (defaults to LOG_LEVEL or info)")
	serveCmd.Flags().StringSliceVar(&flags.allowedPaths, "allow", nil, "Restrict input and output paths to these directories")
	serveCmd.Flags().StringSliceVar(&flags.blockedPaths, "block", nil, "Reject input and output paths under these directories, in addition to the system defaults")

	return serveCmd
}

// runServe starts the MCP server and blocks until the session ends or a
// termination signal arrives.
func runServe(c *cobra.Command, flags *serveFlags) error {
	logLevel := flags.logLevel
	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	// stdout carries the protocol, so logs always go to stderr.
	logger := logging.NewLogger(logLevel)

	srv, err := server.New(&server.Options{
		Logger:    logger,
		Validator: newValidator(flags),
	})
	if err != nil {
		logger.Error("Failed to create server", slog.Any("error", err))
		return err
	}

	ctx, cancel := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := srv.Serve(ctx, mcp.NewStdioTransport()); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Server error", slog.Any("error", err))
		return err
	}

	logger.Info("docsplit MCP server stopped")
	return nil
}

// newValidator builds the path validator from the --allow and --block flags.
func newValidator(flags *serveFlags) *security.DefaultValidator {
	validator := security.NewDefaultValidator()
	if len(flags.allowedPaths) > 0 {
		validator = validator.WithAllowedPaths(flags.allowedPaths)
	}
	if len(flags.blockedPaths) > 0 {
		validator = validator.WithBlockedPaths(flags.blockedPaths)
	}
	return validator
}
