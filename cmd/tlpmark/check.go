package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/tlpmark/internal/classifications"
	"github.com/JaimeStill/tlpmark/pkg/tlp"
	"github.com/JaimeStill/tlpmark/pkg/workbook"
)

func newCheckCmd(a *app) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Run the save check; exits non-zero when the save would be cancelled",
		Long: "check runs the same guard as a save: an unclassified workbook is refused,\n" +
			"a classified one has its banner re-applied. With --write the workbook is\n" +
			"saved in place through that guard.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, ctrl, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer wb.Close()

			if write {
				err = wb.SaveFile(args[0])
			} else {
				err = ctrl.CheckSave()
			}

			if err != nil {
				msg := classifications.FailureMessage
				if errors.Is(err, classifications.ErrUnclassified) || isUnclassifiedDenial(err) {
					msg = classifications.UnclassifiedMessage
				}
				fmt.Fprintln(cmd.ErrOrStderr(), blockingStyle.Render(msg))
				return err
			}

			current, err := ctrl.Current()
			if err != nil {
				return err
			}
			record, _ := tlp.RecordFor(current)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) %s\n",
				bannerStyle(record.Color).Render(record.Header),
				record.Token,
				mutedStyle.Render("save allowed"),
			)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "save the workbook in place through the guard")
	return cmd
}

func isUnclassifiedDenial(err error) bool {
	return errors.Is(err, workbook.ErrSaveCancelled) &&
		strings.Contains(err.Error(), classifications.UnclassifiedMessage)
}
