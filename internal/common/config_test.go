package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Ledger.MinInstallmentCents != 100 {
		t.Errorf("MinInstallmentCents default = %d, want 100", cfg.Ledger.MinInstallmentCents)
	}
	if cfg.Ledger.MaxRecurrences != 60 || cfg.Ledger.MaxInstallments != 24 {
		t.Errorf("ledger caps = %d/%d, want 60/24", cfg.Ledger.MaxRecurrences, cfg.Ledger.MaxInstallments)
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("CENTAVO_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_KafkaBrokersEnvOverride(t *testing.T) {
	t.Setenv("CENTAVO_KAFKA_BROKERS", "broker1:9092,broker2:9092")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if len(cfg.Events.Brokers) != 2 || cfg.Events.Brokers[1] != "broker2:9092" {
		t.Errorf("Events.Brokers = %v, want two brokers", cfg.Events.Brokers)
	}
}

func TestConfig_LoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "centavo.toml")
	content := `
environment = "production"

[server]
port = 9999

[ledger]
min_installment_cents = 250
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Ledger.MinInstallmentCents != 250 {
		t.Errorf("MinInstallmentCents = %d, want 250", cfg.Ledger.MinInstallmentCents)
	}
	if !cfg.IsProduction() {
		t.Error("expected IsProduction() true")
	}
}

func TestConfig_MissingFileSkipped(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/centavo.toml")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
}
