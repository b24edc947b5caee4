package gateway

import (
	"io"
	"log/slog"
	"testing"

	"github.com/bersihin/bersihin/internal/config"
)

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{GatewayBaseURL: "http://example.com", GatewayServerKey: "server-key"}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	client, err := newClient(clientParams{Config: cfg, Logger: logger})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil {
		t.Fatal("expected client instance")
	}

	if _, err := newClient(clientParams{Config: &config.Config{GatewayBaseURL: "relative/path"}, Logger: logger}); err == nil {
		t.Fatal("expected error for non-absolute url")
	}
}

func TestNewClientWithoutBaseURL(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	client, err := newClient(clientParams{Config: &config.Config{GatewayServerKey: "server-key"}, Logger: logger})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client != nil {
		t.Fatal("expected nil client when no base URL is configured")
	}
}
