package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scanline/internal/intensity"
	"scanline/internal/render"
)

func newPlotCmd(a *app) *cobra.Command {
	var (
		fixture string
		output  string
		format  string
	)
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Chart the dramatic-intensity curve",
		Long: `Chart the fixture's intensity beats as a line over the runtime.

Beats with malformed timecodes are skipped with a warning; the rest are
sorted by time and clamped to 0..100.

Examples:
  scanline plot --fixture fixtures/sinners.yaml
  scanline plot --fixture fixtures/sinners.yaml --format svg -o intensity.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != render.FormatPNG && format != render.FormatSVG {
				return fmt.Errorf("unsupported format %q (want png or svg)", format)
			}
			f, err := a.loadFixture(fixture)
			if err != nil {
				return err
			}

			plot, skipped := intensity.Build(f.Intensity, a.log)
			if len(skipped) > 0 {
				a.log.Warnf("%d of %d intensity points skipped", len(skipped), len(f.Intensity))
			}

			var buf bytes.Buffer
			if err := render.IntensityChart(&buf, plot, f.Title, format, a.cfg); err != nil {
				return fmt.Errorf("error rendering chart: %w", err)
			}
			path := outputFilename(fixture, output, "."+format)
			if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("error writing chart file: %w", err)
			}

			out := cmd.OutOrStdout()
			if peak, ok := plot.Peak(); ok {
				fmt.Fprintf(out, "Peak intensity %.0f at %.1f min", peak.Intensity, peak.Minutes)
				if peak.Label != "" {
					fmt.Fprintf(out, " (%s)", peak.Label)
				}
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "Intensity chart generated successfully: %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&fixture, "fixture", "f", "", "YAML fixture with intensity points (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output filename (default: fixture name with the format extension)")
	cmd.Flags().StringVar(&format, "format", render.FormatPNG, "png or svg")
	return cmd
}
