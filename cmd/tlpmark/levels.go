package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/tlpmark/pkg/tlp"
)

func newLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the selectable classification levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, c := range tlp.Levels() {
				r, err := tlp.RecordFor(c)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-6s %-10s %s %s\n",
					c, r.Token,
					bannerStyle(r.Color).Render(r.Header),
					mutedStyle.Render(r.Color.String()),
				)
			}
			return nil
		},
	}
}
