package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"statushud/pkg/hud"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	HUD    HUDConfig    `yaml:"hud"`
}

// ---- SERVER ----

type ServerConfig struct {
	TCPAddr            string           `yaml:"tcp_addr" env:"HUD_TCP_ADDR"`
	WSAddr             string           `yaml:"ws_addr" env:"HUD_WS_ADDR"`
	TickMs             int              `yaml:"tick_ms" env:"HUD_TICK_MS"`
	AmbientTemperature float64          `yaml:"ambient_temperature" env:"HUD_AMBIENT_TEMPERATURE"`
	SpawnX             float64          `yaml:"spawn_x"`
	SpawnY             float64          `yaml:"spawn_y"`
	Cupboards          []CupboardConfig `yaml:"cupboards"`
}

type CupboardConfig struct {
	X          float64  `yaml:"x"`
	Y          float64  `yaml:"y"`
	Radius     float64  `yaml:"radius"`
	Authorized []string `yaml:"authorized"`
}

// ---- HUD ----

type HUDConfig struct {
	ChangeDetection string            `yaml:"change_detection" env:"HUD_CHANGE_DETECTION"`
	DemoStatuses    bool              `yaml:"demo_statuses" env:"HUD_DEMO_STATUSES"`
	Layout          LayoutConfig      `yaml:"layout"`
	Thresholds      ThresholdConfig   `yaml:"thresholds"`
	Icons           map[string]string `yaml:"icons"` // logical name -> image handle
}

type LayoutConfig struct {
	X            float64 `yaml:"x"`
	Y            float64 `yaml:"y"`
	Width        float64 `yaml:"width"`
	EntryHeight  float64 `yaml:"entry_height"`
	EntryGap     float64 `yaml:"entry_gap"`
	MaxSlots     int     `yaml:"max_slots"`
	FontSize     int     `yaml:"font_size"`
	LabelInset   float64 `yaml:"label_inset"`
	ValuePadding float64 `yaml:"value_padding"`
	IconInset    float64 `yaml:"icon_inset"`
	IconSize     float64 `yaml:"icon_size"`
	TextColor    string  `yaml:"text_color"`
}

type ThresholdConfig struct {
	Cold       float64 `yaml:"cold"`
	Hot        float64 `yaml:"hot"`
	Starving   float64 `yaml:"starving"`
	Dehydrated float64 `yaml:"dehydrated"`
	Wet        float64 `yaml:"wet"`
	Oxygen     float64 `yaml:"oxygen"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	l := hud.DefaultLayout()
	th := hud.DefaultThresholds()
	return &Config{
		Server: ServerConfig{
			TCPAddr:            ServerPortTCP,
			WSAddr:             ServerPortWS,
			TickMs:             DefaultTickMs,
			AmbientTemperature: 18,
			SpawnX:             100,
			SpawnY:             100,
			Cupboards: []CupboardConfig{
				{X: 100, Y: 100, Radius: 200},
			},
		},
		HUD: HUDConfig{
			ChangeDetection: string(hud.ChangeByCount),
			DemoStatuses:    true,
			Layout: LayoutConfig{
				X:            l.X,
				Y:            l.Y,
				Width:        l.Width,
				EntryHeight:  l.EntryHeight,
				EntryGap:     l.EntryGap,
				MaxSlots:     l.MaxSlots,
				FontSize:     l.FontSize,
				LabelInset:   l.LabelInset,
				ValuePadding: l.ValuePadding,
				IconInset:    l.IconInset,
				IconSize:     l.IconSize,
				TextColor:    l.TextColor,
			},
			Thresholds: ThresholdConfig{
				Cold:       th.Cold,
				Hot:        th.Hot,
				Starving:   th.Starving,
				Dehydrated: th.Dehydrated,
				Wet:        th.Wet,
				Oxygen:     th.Oxygen,
			},
			Icons: map[string]string{
				"safezone":  "icon-safezone",
				"hydration": "icon-hydration",
			},
		},
	}
}

// Load reads path over the defaults, applies environment overrides,
// then validates and normalizes. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	Normalize(cfg)
	return cfg, nil
}

// LayoutSpec converts the layout section for the HUD engine.
func (c HUDConfig) LayoutSpec() hud.Layout {
	l := hud.DefaultLayout()
	l.X, l.Y = c.Layout.X, c.Layout.Y
	l.Width = c.Layout.Width
	l.EntryHeight = c.Layout.EntryHeight
	l.EntryGap = c.Layout.EntryGap
	l.MaxSlots = c.Layout.MaxSlots
	l.FontSize = c.Layout.FontSize
	l.LabelInset = c.Layout.LabelInset
	l.ValuePadding = c.Layout.ValuePadding
	l.IconInset = c.Layout.IconInset
	l.IconSize = c.Layout.IconSize
	if c.Layout.TextColor != "" {
		l.TextColor = c.Layout.TextColor
	}
	return l
}

func (c HUDConfig) ThresholdSpec() hud.Thresholds {
	return hud.Thresholds{
		Cold:       c.Thresholds.Cold,
		Hot:        c.Thresholds.Hot,
		Starving:   c.Thresholds.Starving,
		Dehydrated: c.Thresholds.Dehydrated,
		Wet:        c.Thresholds.Wet,
		Oxygen:     c.Thresholds.Oxygen,
	}
}

// Options builds controller options; icons may be nil.
func (c HUDConfig) Options(icons hud.IconResolver) hud.Options {
	mode, err := hud.ParseChangeMode(c.ChangeDetection)
	if err != nil {
		mode = hud.ChangeByCount
	}
	return hud.Options{
		Layout:     c.LayoutSpec(),
		Thresholds: c.ThresholdSpec(),
		Mode:       mode,
		Icons:      icons,
	}
}
