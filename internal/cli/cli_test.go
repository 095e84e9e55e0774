package cli

import (
	"context"
	"testing"
	"time"

	"github.com/swellwatch/buoy/pkg/config"
)

func TestConfigFromContextDefault(t *testing.T) {
	cfg := configFromContext(context.Background())
	if cfg.Cache.Backend != "file" {
		t.Errorf("Cache.Backend = %q, want the default", cfg.Cache.Backend)
	}
}

func TestWithConfig(t *testing.T) {
	want := config.Default()
	want.BaseURL = "http://localhost:9999"
	want.Cache.TTL = config.Duration{Duration: 5 * time.Minute}

	ctx := withConfig(context.Background(), want)
	got := configFromContext(ctx)

	if got.BaseURL != want.BaseURL {
		t.Errorf("BaseURL = %q, want %q", got.BaseURL, want.BaseURL)
	}
	if got.Cache.TTL.Duration != 5*time.Minute {
		t.Errorf("Cache.TTL = %v, want 5m", got.Cache.TTL.Duration)
	}
}

func TestNewClientFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Backend = "none"
	cfg.BaseURL = "http://localhost:9999"

	client := newClient(context.Background(), cfg)
	if client == nil {
		t.Fatal("newClient returned nil")
	}
}
