package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"mealbridge/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Organization != "MealBridge" {
		t.Fatalf("organization: got %q", cfg.Organization)
	}
	if cfg.Expiry.WarningDays != 2 {
		t.Fatalf("warning days: got %d", cfg.Expiry.WarningDays)
	}
	if cfg.Dashboard.Recent != 3 {
		t.Fatalf("recent: got %d", cfg.Dashboard.Recent)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	data := []byte("organization: Annapurna Trust\n")
	if err := os.WriteFile(filepath.Join(dir, "mealbridge.yml"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Organization != "Annapurna Trust" {
		t.Fatalf("organization: got %q", cfg.Organization)
	}
	if cfg.Expiry.WarningDays != 2 || cfg.Dashboard.Recent != 3 {
		t.Fatal("unset fields must keep defaults")
	}
}

func TestFromYAMLValidation(t *testing.T) {
	if _, err := config.FromYAML([]byte("organization: \"\"\n")); err == nil {
		t.Fatal("expected error for empty organization")
	}
	if _, err := config.FromYAML([]byte("expiry:\n  warning_days: -1\n")); err == nil {
		t.Fatal("expected error for negative warning days")
	}
	if _, err := config.FromYAML([]byte("dashboard:\n  recent: 0\n")); err == nil {
		t.Fatal("expected error for zero recent rows")
	}
	if _, err := config.FromYAML([]byte("organization: [broken\n")); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}

func TestGenerateDefaultRoundTrips(t *testing.T) {
	cfg, err := config.FromYAML([]byte(config.GenerateDefault("Annapurna Trust")))
	if err != nil {
		t.Fatalf("generated config must parse: %v", err)
	}
	if cfg.Organization != "Annapurna Trust" {
		t.Fatalf("organization: got %q", cfg.Organization)
	}
}
