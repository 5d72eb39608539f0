package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/docsplit/internal/logging"
)

func TestNew(t *testing.T) {
	srv, err := New(&Options{Logger: logging.Discard()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	names := srv.GetRegistry().List()
	if len(names) != 1 || names[0] != "SplitMarkdown" {
		t.Errorf("unexpected tools: %v", names)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	srv, err := New(&Options{Logger: logging.Discard()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, serverTransport := mcp.NewInMemoryTransports()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, serverTransport)
	}()

	cancel()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Logf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}
