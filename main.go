package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"scanline/internal/config"
	"scanline/internal/log"
	"scanline/internal/timeline"
)

// app carries what every subcommand needs once the persistent flags are parsed.
type app struct {
	configPath string
	logLevel   string
	debug      bool

	cfg config.Config
	log *log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "scanline",
		Short: "Animated scan-line timelines and dramatic-intensity plots",
		Long: `scanline lays out multi-row timelines, sweeps a scan line across them and
highlights each marker as the line approaches, peaks on and passes it.

Commands:
  render     Write the timeline as SVG, optionally frozen at a point in the sweep
  plot       Chart the dramatic-intensity curve as SVG or PNG
  simulate   Replay the sweep on a deterministic clock and print every transition
  watch      Run the animated timeline in the terminal
  timecode   Parse M:SS / H:MM:SS timecodes

If no config file is specified, default settings will be used.

Example:
  scanline render --fixture fixtures/sinners.yaml --at 4.9s --output sinners.svg`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file (optional)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn, error or none (overrides config)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug mode for verbose output")

	root.AddCommand(
		newRenderCmd(a),
		newPlotCmd(a),
		newSimulateCmd(a),
		newWatchCmd(a),
		newTimecodeCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	a.cfg = cfg

	level := log.LevelFromString(cfg.Log.Level)
	if a.logLevel != "" {
		level = log.LevelFromString(a.logLevel)
	}
	if a.debug {
		level = log.LevelDebug
	}
	a.log = log.New(cmd.ErrOrStderr(), level)
	a.log.Debugf("configuration loaded: width=%g period=%s frame=%s", cfg.Layout.Width, cfg.Scan.Period, cfg.Scan.FrameInterval)
	return nil
}

func (a *app) loadFixture(path string) (*timeline.Fixture, error) {
	if path == "" {
		return nil, fmt.Errorf("fixture file is required. Use --fixture to specify the file")
	}
	f, err := timeline.Load(path)
	if err != nil {
		return nil, err
	}
	markers := 0
	if f.Timeline != nil {
		markers = len(f.Timeline.Markers())
		// every marker lands on the midpoint, but the view still renders
		if err := f.Timeline.Validate(); err != nil {
			a.log.Warnf("%s: %v", path, err)
		}
	}
	a.log.Debugf("parsed %s: %d markers, %d intensity points, %d turning points",
		path, markers, len(f.Intensity), len(f.TurningPoints))
	return f, nil
}

// outputFilename returns outputFile, or the fixture's base name with ext.
func outputFilename(fixture, outputFile, ext string) string {
	if outputFile != "" {
		return outputFile
	}
	base := filepath.Base(fixture)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
