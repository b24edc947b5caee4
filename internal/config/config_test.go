package config

import (
	"testing"
	"time"
)

func baseEnviron() []string {
	return []string{
		"DATABASE_URI=postgres://localhost/bersihin",
		"GATEWAY_BASE_URL=https://api.gateway.test",
		"GATEWAY_SERVER_KEY=server-key",
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, baseEnviron())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RunAddress != ":8080" {
		t.Errorf("unexpected run address %s", cfg.RunAddress)
	}
	if cfg.SweepInterval != 5*time.Minute {
		t.Errorf("unexpected sweep interval %s", cfg.SweepInterval)
	}
	if cfg.UnpaidTTL != time.Hour {
		t.Errorf("unexpected unpaid ttl %s", cfg.UnpaidTTL)
	}
	if cfg.CompletionGrace != 5*time.Minute {
		t.Errorf("unexpected completion grace %s", cfg.CompletionGrace)
	}
	if cfg.DispatchLimit != 10 {
		t.Errorf("unexpected dispatch limit %d", cfg.DispatchLimit)
	}
}

func TestLoadFlagOverridesEnv(t *testing.T) {
	environ := append(baseEnviron(), "RUN_ADDRESS=:9000")
	cfg, err := load([]string{"-a", ":7000", "-sweep-interval", "90s"}, environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":7000" {
		t.Errorf("expected flag to win, got %s", cfg.RunAddress)
	}
	if cfg.SweepInterval != 90*time.Second {
		t.Errorf("expected 90s sweep interval, got %s", cfg.SweepInterval)
	}
}

func TestLoadRequiresDatabaseURI(t *testing.T) {
	environ := []string{
		"GATEWAY_BASE_URL=https://api.gateway.test",
		"GATEWAY_SERVER_KEY=server-key",
	}
	if _, err := load(nil, environ); err == nil {
		t.Fatal("expected error when database URI missing")
	}
}

func TestLoadRequiresGatewayServerKey(t *testing.T) {
	if _, err := load(nil, []string{"DATABASE_URI=postgres://x"}); err == nil {
		t.Fatal("expected error when gateway server key missing")
	}
}

func TestLoadGatewayBaseURLOptional(t *testing.T) {
	cfg, err := load(nil, []string{"DATABASE_URI=postgres://x", "GATEWAY_SERVER_KEY=server-key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GatewayBaseURL != "" {
		t.Fatalf("expected empty base URL, got %s", cfg.GatewayBaseURL)
	}
}

func TestLoadSanitizesNonPositiveValues(t *testing.T) {
	environ := append(baseEnviron(),
		"WORKER_POOL_SIZE=0",
		"SWEEP_BATCH_SIZE=-1",
		"DISPATCH_LIMIT=0",
	)
	cfg, err := load(nil, environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WorkerPoolSize != 4 || cfg.SweepBatchSize != 32 || cfg.DispatchLimit != 10 {
		t.Fatalf("expected defaults to replace non-positive values: %+v", cfg)
	}
}
