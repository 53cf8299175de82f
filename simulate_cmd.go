package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"scanline/internal/highlight"
	"scanline/internal/render"
	"scanline/internal/scan"
)

func newSimulateCmd(a *app) *cobra.Command {
	var (
		fixture  string
		duration time.Duration
		fps      int
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay the sweep on a fake clock and print transitions",
		Long: `Replay the scan line over the laid-out timeline on a deterministic clock
and print every highlight transition with its elapsed time. The same
fixture and flags always print the same output.

Example:
  scanline simulate --fixture fixtures/sinners.yaml --duration 12s --fps 60`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.loadFixture(fixture)
			if err != nil {
				return err
			}
			scene := render.NewScene(f, a.cfg)
			out := cmd.OutOrStdout()

			peaks := make(map[string]int)
			_, err = replay(scene, a.cfg.ScanOptions(), a.log, duration, fps, func(elapsed time.Duration, fr scan.Frame) {
				for _, c := range fr.Changes {
					label := c.ID
					if it, ok := scene.Timeline.Item(c.ID); ok && it.Label != "" {
						label = it.Label
					}
					fmt.Fprintf(out, "%9.3fs  scan=%.3f  %-12s -> %-12s %s\n",
						elapsed.Seconds(), fr.Scan, c.From, c.To, label)
					if c.To == highlight.Peak {
						peaks[c.ID]++
					}
				}
			})
			if err != nil {
				return err
			}

			ids := make([]string, 0, len(peaks))
			for id := range peaks {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			fmt.Fprintf(out, "\n%d markers peaked over %s:\n", len(ids), duration)
			for _, id := range ids {
				fmt.Fprintf(out, "  %-24s %d\n", id, peaks[id])
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&fixture, "fixture", "f", "", "YAML fixture with the timeline (required)")
	cmd.Flags().DurationVar(&duration, "duration", 12*time.Second, "Simulated wall time")
	cmd.Flags().IntVar(&fps, "fps", 60, "Simulated frame rate")
	return cmd
}
