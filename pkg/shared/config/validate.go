package config

import (
	"fmt"
	"strings"

	"statushud/pkg/hud"
)

// Validate checks configuration correctness. It does not mutate cfg.
func Validate(cfg *Config) error {
	if cfg.Server.TickMs <= 0 {
		return fmt.Errorf("server: tick_ms must be positive, got %d", cfg.Server.TickMs)
	}
	if cfg.Server.TCPAddr == "" && cfg.Server.WSAddr == "" {
		return fmt.Errorf("server: at least one of tcp_addr or ws_addr is required")
	}
	for i, cb := range cfg.Server.Cupboards {
		if cb.Radius <= 0 {
			return fmt.Errorf("server: cupboard %d: radius must be positive", i)
		}
	}

	if _, err := hud.ParseChangeMode(strings.ToLower(strings.TrimSpace(cfg.HUD.ChangeDetection))); err != nil {
		return fmt.Errorf("hud: %w", err)
	}

	l := cfg.HUD.Layout
	if l.EntryHeight <= 0 || l.Width <= 0 {
		return fmt.Errorf("hud: layout entry_height and width must be positive")
	}
	if l.EntryGap < 0 || l.MaxSlots < 0 {
		return fmt.Errorf("hud: layout entry_gap and max_slots must not be negative")
	}
	if l.FontSize <= 0 {
		return fmt.Errorf("hud: layout font_size must be positive, got %d", l.FontSize)
	}
	if l.TextColor != "" {
		if _, err := hud.ParseColor(l.TextColor); err != nil {
			return fmt.Errorf("hud: layout text_color: %w", err)
		}
	}

	for name, handle := range cfg.HUD.Icons {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("hud: icon with empty name (handle %q)", handle)
		}
	}
	return nil
}

// Normalize applies post-validation normalization.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.HUD.ChangeDetection = strings.ToLower(strings.TrimSpace(cfg.HUD.ChangeDetection))
	if cfg.HUD.ChangeDetection == "" {
		cfg.HUD.ChangeDetection = string(hud.ChangeByCount)
	}

	icons := make(map[string]string, len(cfg.HUD.Icons))
	for name, handle := range cfg.HUD.Icons {
		icons[strings.TrimSpace(name)] = handle
	}
	cfg.HUD.Icons = icons

	for i := range cfg.Server.Cupboards {
		if cfg.Server.Cupboards[i].Authorized == nil {
			cfg.Server.Cupboards[i].Authorized = []string{}
		}
	}
}
