package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/tlpmark/pkg/formatting"
	"github.com/JaimeStill/tlpmark/pkg/tlp"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Print a workbook's stored classification and banner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			info, err := os.Stat(path)
			if err != nil {
				return err
			}

			wb, ctrl, err := a.open(path)
			if err != nil {
				return err
			}
			defer wb.Close()

			current, err := ctrl.Current()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "file:           %s (%s)\n", path, formatting.FormatBytes(info.Size(), 1))

			if current == tlp.None {
				fmt.Fprintf(out, "classification: %s\n", mutedStyle.Render("unclassified"))
				return nil
			}

			record, err := tlp.RecordFor(current)
			if err != nil {
				return err
			}
			banner, err := wb.FirstRowBanner()
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "classification: %s (%s)\n", current, record.Token)
			fmt.Fprintf(out, "banner:         %s\n", bannerStyle(record.Color).Render(banner.Text))
			if banner.Text != record.Header {
				fmt.Fprintln(out, mutedStyle.Render("banner differs from classification; it is rewritten on the next save"))
			}
			return nil
		},
	}
}
