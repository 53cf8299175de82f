package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"scanline/internal/tui"
)

func newWatchCmd(a *app) *cobra.Command {
	var fixture string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the animated timeline in the terminal",
		Long: `Mount the timeline in the terminal and run the scan line live. Markers
turn amber as the line approaches, red at the peak and fade afterwards.
Press q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.loadFixture(fixture)
			if err != nil {
				return err
			}
			model := tui.New(f, a.cfg, a.log)
			defer model.Animator().Stop()

			a.log.Infof("watching %s (animator %s)", fixture, model.Animator().ID())
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(cmd.OutOrStdout()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running terminal view: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&fixture, "fixture", "f", "", "YAML fixture with the timeline (required)")
	return cmd
}
