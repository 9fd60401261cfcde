package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/tlpmark/pkg/tlp"
)

func newApplyCmd(a *app) *cobra.Command {
	var (
		level  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "apply FILE",
		Short: "Classify a workbook and write its banner row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := tlp.Parse(level)
			if err != nil {
				return err
			}

			wb, ctrl, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer wb.Close()

			if err := ctrl.Apply(c); err != nil {
				return err
			}

			dest := output
			if dest == "" {
				dest = args[0]
			}
			if err := wb.SaveFile(dest); err != nil {
				return err
			}

			record, _ := tlp.RecordFor(c)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				bannerStyle(record.Color).Render(record.Header),
				mutedStyle.Render("-> "+dest),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", "", "classification level (white, green, amber, red, or a TLP token)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this path instead of overwriting FILE")
	cmd.MarkFlagRequired("level")
	return cmd
}
