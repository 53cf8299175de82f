// Package config loads the scanline configuration.
//
// Configuration is YAML decoded over Default(), so a file only needs the
// keys it changes. A .env file and SCANLINE_* environment variables are
// applied last:
//
//	SCANLINE_LOG_LEVEL       log.level
//	SCANLINE_SCAN_PERIOD     scan.period (Go duration, e.g. 8s)
//	SCANLINE_FRAME_INTERVAL  scan.frame_interval
//	SCANLINE_WIDTH           layout.width
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"scanline/internal/layout"
	"scanline/internal/scan"
	"scanline/internal/tooltip"
)

// ErrInvalid reports a configuration value that cannot work.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the complete configuration for rendering and animating
// timelines. It maps directly to YAML files.
//
// Key configuration patterns:
//   - For a calmer scan line: raise scan.period
//   - For fewer staggered labels: lower timeline.min_label_spacing
//   - For busier turning-point tracks: narrow timeline.pill_width
type Config struct {
	Font struct {
		Family string  `yaml:"family"` // Font family for all text elements
		Size   float64 `yaml:"size"`   // Base font size in pixels
	} `yaml:"font"`
	Colors struct {
		Background  string `yaml:"background"`  // SVG background color
		Track       string `yaml:"track"`       // Row track line color
		Text        string `yaml:"text"`        // Row labels and item labels
		Muted       string `yaml:"muted"`       // Sub-labels and connectors
		Marker      string `yaml:"marker"`      // Idle marker fill
		Approaching string `yaml:"approaching"` // Marker fill ahead of the scan line
		Peak        string `yaml:"peak"`        // Marker fill at the scan line
		Fading      string `yaml:"fading"`      // Marker fill after the peak
		ScanLine    string `yaml:"scan_line"`   // Scan line stroke
		Intensity   string `yaml:"intensity"`   // Intensity curve stroke
	} `yaml:"colors"`
	Layout struct {
		Width        float64 `yaml:"width"`         // Total width in pixels
		MarginTop    float64 `yaml:"margin_top"`    // Top margin in pixels
		MarginLeft   float64 `yaml:"margin_left"`   // Left margin in pixels
		MarginRight  float64 `yaml:"margin_right"`  // Right margin in pixels
		MarginBottom float64 `yaml:"margin_bottom"` // Bottom margin in pixels
		LabelColumn  float64 `yaml:"label_column"`  // Width reserved for row labels
		RowGap       float64 `yaml:"row_gap"`       // Vertical space between rows
	} `yaml:"layout"`
	Timeline struct {
		MarkerRadius    float64 `yaml:"marker_radius"`     // Marker radius in pixels
		WrapChars       int     `yaml:"wrap_chars"`        // Wrap item labels at this many characters
		BumpStep        float64 `yaml:"bump_step"`         // Vertical distance between bump tiers
		TextGap         float64 `yaml:"text_gap"`          // Gap between marker and label
		MinLabelSpacing float64 `yaml:"min_label_spacing"` // Anchors closer than this are staggered
		StaggerTiers    int     `yaml:"stagger_tiers"`     // Number of stagger tiers
		PillWidth       float64 `yaml:"pill_width"`        // Turning-point pill width
		PillHeight      float64 `yaml:"pill_height"`       // Turning-point pill height
		PillGap         float64 `yaml:"pill_gap"`          // Minimum gap between pills in a row
	} `yaml:"timeline"`
	Scan struct {
		Period        time.Duration `yaml:"period"`         // One full sweep
		PeakEpsilon   float64       `yaml:"peak_epsilon"`   // Peak band half-width (normalized)
		ApproachBand  float64       `yaml:"approach_band"`  // Approach band width (normalized)
		FadeDelay     time.Duration `yaml:"fade_delay"`     // Peak -> Fading
		IdleDelay     time.Duration `yaml:"idle_delay"`     // Fading -> Idle
		FrameInterval time.Duration `yaml:"frame_interval"` // Built-in loop cadence
	} `yaml:"scan"`
	Tooltip struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
		Margin float64 `yaml:"margin"` // Distance above the anchor
	} `yaml:"tooltip"`
	Plot struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"plot"`
	Log struct {
		Level string `yaml:"level"` // debug, info, warn, error or none
	} `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var c Config
	c.Font.Family = "Georgia, serif"
	c.Font.Size = 12

	c.Colors.Background = "#0b0b0f"
	c.Colors.Track = "#3f3f46"
	c.Colors.Text = "#e4e4e7"
	c.Colors.Muted = "#a1a1aa"
	c.Colors.Marker = "#71717a"
	c.Colors.Approaching = "#f59e0b"
	c.Colors.Peak = "#ef4444"
	c.Colors.Fading = "#7f1d1d"
	c.Colors.ScanLine = "#fbbf24"
	c.Colors.Intensity = "#dc2626"

	c.Layout.Width = 1200
	c.Layout.MarginTop = 30
	c.Layout.MarginLeft = 40
	c.Layout.MarginRight = 40
	c.Layout.MarginBottom = 30
	c.Layout.LabelColumn = 120
	c.Layout.RowGap = 24

	c.Timeline.MarkerRadius = 6
	c.Timeline.WrapChars = 18
	c.Timeline.BumpStep = 28
	c.Timeline.TextGap = 8
	c.Timeline.MinLabelSpacing = 40
	c.Timeline.StaggerTiers = 3
	c.Timeline.PillWidth = 96
	c.Timeline.PillHeight = 18
	c.Timeline.PillGap = 2

	d := scan.DefaultOptions()
	c.Scan.Period = d.Period
	c.Scan.PeakEpsilon = d.PeakEpsilon
	c.Scan.ApproachBand = d.ApproachBand
	c.Scan.FadeDelay = d.FadeDelay
	c.Scan.IdleDelay = d.IdleDelay
	c.Scan.FrameInterval = d.FrameInterval

	c.Tooltip.Width = 220
	c.Tooltip.Height = 64
	c.Tooltip.Margin = 12

	c.Plot.Width = 1000
	c.Plot.Height = 360

	c.Log.Level = "info"
	return c
}

// Load reads path (if non-empty) over the defaults, then applies the
// environment. A missing .env file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("%w: .env: %v", ErrInvalid, err)
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("SCANLINE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("SCANLINE_SCAN_PERIOD"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: SCANLINE_SCAN_PERIOD: %v", ErrInvalid, err)
		}
		c.Scan.Period = d
	}
	if v := getenv("SCANLINE_FRAME_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: SCANLINE_FRAME_INTERVAL: %v", ErrInvalid, err)
		}
		c.Scan.FrameInterval = d
	}
	if v := getenv("SCANLINE_WIDTH"); v != "" {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: SCANLINE_WIDTH: %v", ErrInvalid, err)
		}
		c.Layout.Width = w
	}
	return nil
}

// Validate rejects values the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Layout.Width <= 0:
		return fmt.Errorf("%w: layout.width must be positive", ErrInvalid)
	case c.Scan.Period <= 0:
		return fmt.Errorf("%w: scan.period must be positive", ErrInvalid)
	case c.Scan.FrameInterval <= 0:
		return fmt.Errorf("%w: scan.frame_interval must be positive", ErrInvalid)
	case c.Scan.PeakEpsilon <= 0 || c.Scan.PeakEpsilon >= 0.5:
		return fmt.Errorf("%w: scan.peak_epsilon must be in (0, 0.5)", ErrInvalid)
	case c.Scan.ApproachBand <= 0:
		return fmt.Errorf("%w: scan.approach_band must be positive", ErrInvalid)
	case c.Font.Size <= 0:
		return fmt.Errorf("%w: font.size must be positive", ErrInvalid)
	}
	return nil
}

// LayoutOptions converts the layout sections for the row layout.
func (c Config) LayoutOptions() layout.Options {
	return layout.Options{
		Width:        c.Layout.Width,
		MarginLeft:   c.Layout.MarginLeft,
		MarginRight:  c.Layout.MarginRight,
		MarginTop:    c.Layout.MarginTop,
		RowGap:       c.Layout.RowGap,
		LabelColumn:  c.Layout.LabelColumn,
		MarkerRadius: c.Timeline.MarkerRadius,
		FontSize:     c.Font.Size,
		WrapChars:    c.Timeline.WrapChars,
		BumpStep:     c.Timeline.BumpStep,
		TextGap:      c.Timeline.TextGap,
		MinSpacing:   c.Timeline.MinLabelSpacing,
		Tiers:        c.Timeline.StaggerTiers,
	}
}

// PillOptions sizes turning-point pills.
func (c Config) PillOptions() layout.PillOptions {
	return layout.PillOptions{
		Width:  c.Timeline.PillWidth,
		Height: c.Timeline.PillHeight,
		MinGap: c.Timeline.PillGap,
		RowGap: 4,
	}
}

// ScanOptions converts the scan section for the animator.
func (c Config) ScanOptions() scan.Options {
	return scan.Options{
		Period:        c.Scan.Period,
		PeakEpsilon:   c.Scan.PeakEpsilon,
		ApproachBand:  c.Scan.ApproachBand,
		FadeDelay:     c.Scan.FadeDelay,
		IdleDelay:     c.Scan.IdleDelay,
		FrameInterval: c.Scan.FrameInterval,
	}
}

// TooltipSize returns the configured tooltip box.
func (c Config) TooltipSize() tooltip.Size {
	return tooltip.Size{W: c.Tooltip.Width, H: c.Tooltip.Height}
}
