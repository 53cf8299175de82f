package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scanline/internal/timecode"
)

func newTimecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "timecode <text>...",
		Short:   "Parse M:SS or H:MM:SS timecodes",
		Example: `  scanline timecode 1:05 45:30 2:01:07`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			bad := 0
			for _, text := range args {
				d, err := timecode.Parse(text)
				if err != nil {
					a.log.Warnf("%v", err)
					bad++
					continue
				}
				fmt.Fprintf(out, "%s\t%gs\t%.3f min\t%s\n", text, d.Seconds(), d.Minutes(), timecode.Format(d))
			}
			if bad > 0 {
				return fmt.Errorf("%d of %d timecodes invalid", bad, len(args))
			}
			return nil
		},
	}
}
