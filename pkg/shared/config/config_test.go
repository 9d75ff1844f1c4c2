package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"statushud/pkg/hud"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hud.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.TCPAddr != ServerPortTCP || cfg.Server.TickMs != DefaultTickMs {
		t.Fatalf("unexpected server defaults %+v", cfg.Server)
	}
	if got := cfg.HUD.LayoutSpec(); got != hud.DefaultLayout() {
		t.Fatalf("expected default layout, got %+v", got)
	}
	if got := cfg.HUD.ThresholdSpec(); got != hud.DefaultThresholds() {
		t.Fatalf("expected default thresholds, got %+v", got)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  tick_ms: 50
hud:
  change_detection: " Content "
  layout:
    max_slots: 8
  thresholds:
    cold: 0
  icons:
    " drop ": "img-1"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.TickMs != 50 {
		t.Fatalf("expected tick 50, got %d", cfg.Server.TickMs)
	}
	if cfg.Server.WSAddr != ServerPortWS {
		t.Fatalf("expected untouched ws addr default, got %q", cfg.Server.WSAddr)
	}
	if cfg.HUD.ChangeDetection != "content" {
		t.Fatalf("expected normalized mode, got %q", cfg.HUD.ChangeDetection)
	}
	if cfg.HUD.Layout.MaxSlots != 8 || cfg.HUD.Layout.EntryHeight != 26 {
		t.Fatalf("unexpected layout %+v", cfg.HUD.Layout)
	}
	if cfg.HUD.Thresholds.Cold != 0 || cfg.HUD.Thresholds.Hot != 40 {
		t.Fatalf("unexpected thresholds %+v", cfg.HUD.Thresholds)
	}
	if cfg.HUD.Icons["drop"] != "img-1" {
		t.Fatalf("expected trimmed icon name, got %v", cfg.HUD.Icons)
	}
	if opts := cfg.HUD.Options(nil); opts.Mode != hud.ChangeByContent {
		t.Fatalf("expected content mode option, got %q", opts.Mode)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HUD_TCP_ADDR", ":9999")
	t.Setenv("HUD_CHANGE_DETECTION", "content")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.TCPAddr != ":9999" {
		t.Fatalf("expected env tcp addr, got %q", cfg.Server.TCPAddr)
	}
	if cfg.HUD.ChangeDetection != "content" {
		t.Fatalf("expected env change mode, got %q", cfg.HUD.ChangeDetection)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"tick":     func(c *Config) { c.Server.TickMs = 0 },
		"mode":     func(c *Config) { c.HUD.ChangeDetection = "hash" },
		"height":   func(c *Config) { c.HUD.Layout.EntryHeight = 0 },
		"font":     func(c *Config) { c.HUD.Layout.FontSize = -1 },
		"color":    func(c *Config) { c.HUD.Layout.TextColor = "red" },
		"cupboard": func(c *Config) { c.Server.Cupboards[0].Radius = 0 },
		"addrs":    func(c *Config) { c.Server.TCPAddr, c.Server.WSAddr = "", "" },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(cfg)
		if err := Validate(cfg); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestLoadReportsYAMLErrors(t *testing.T) {
	path := writeConfig(t, "hud: [unclosed")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, "server:\n  tick_ms: 40\n")
	got := make(chan *Config, 4)
	stop, err := Watch(path, func(c *Config) { got <- c })
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer stop()

	if err := os.WriteFile(path, []byte("server:\n  tick_ms: 60\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case cfg := <-got:
		if cfg.Server.TickMs != 60 {
			t.Fatalf("expected reloaded tick 60, got %d", cfg.Server.TickMs)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for reload")
	}
}
