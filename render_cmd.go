package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"scanline/internal/highlight"
	"scanline/internal/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		fixture string
		output  string
		hover   string
		at      time.Duration
		fps     int
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the timeline as SVG",
		Long: `Render the fixture's timeline rows, markers and turning-point pills as SVG.

With --at the sweep is replayed up to that moment and the markers carry
their highlight state there, with the scan line drawn at its position.

Examples:
  scanline render --fixture fixtures/sinners.yaml
  scanline render --fixture fixtures/sinners.yaml --at 4.9s --hover smokestack-arrive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.loadFixture(fixture)
			if err != nil {
				return err
			}
			scene := render.NewScene(f, a.cfg)
			opt := render.Options{Hover: hover}

			if cmd.Flags().Changed("at") {
				frame, err := replay(scene, a.cfg.ScanOptions(), a.log, at, fps, nil)
				if err != nil {
					return err
				}
				opt.Frame = &frame
				a.log.Debugf("frame at %s: scan=%.3f peak=%v", at, frame.Scan, frame.In(highlight.Peak))
			}

			path := outputFilename(fixture, output, ".svg")
			if err := os.WriteFile(path, []byte(render.SVG(scene, a.cfg, opt)), 0644); err != nil {
				return fmt.Errorf("error writing SVG file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Timeline SVG generated successfully: %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&fixture, "fixture", "f", "", "YAML fixture with the timeline (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output SVG filename (default: fixture name with .svg)")
	cmd.Flags().StringVar(&hover, "hover", "", "Item ID to draw the tooltip for")
	cmd.Flags().DurationVar(&at, "at", 0, "Freeze the sweep at this elapsed time")
	cmd.Flags().IntVar(&fps, "fps", 60, "Replay frame rate used to reach --at")
	return cmd
}
