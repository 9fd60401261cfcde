package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/tlpmark/internal/classifications"
	"github.com/JaimeStill/tlpmark/pkg/workbook"
)

var version = "dev"

type app struct {
	verbose bool
	stderr  io.Writer
}

func (a *app) logger() *slog.Logger {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
}

// open loads path and binds a registered controller to it, so every later
// save of the workbook passes through the classification check.
func (a *app) open(path string) (*workbook.Workbook, *classifications.Controller, error) {
	logger := a.logger()

	wb, err := workbook.OpenFile(path, logger)
	if err != nil {
		return nil, nil, err
	}

	ctrl := classifications.New(wb, logger)
	ctrl.Register()
	return wb, ctrl, nil
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stderr: stderr}

	root := &cobra.Command{
		Use:           "tlpmark",
		Short:         "Apply and enforce TLP classification banners on spreadsheets",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log controller activity to stderr")

	root.AddCommand(
		newLevelsCmd(),
		newShowCmd(a),
		newApplyCmd(a),
		newCheckCmd(a),
	)

	wrapErrors(root, stderr)
	return root
}

// wrapErrors prints any RunE error as a styled line on stderr.
func wrapErrors(cmd *cobra.Command, stderr io.Writer) {
	for _, sub := range cmd.Commands() {
		run := sub.RunE
		if run == nil {
			continue
		}
		sub.RunE = func(c *cobra.Command, args []string) error {
			err := run(c, args)
			if err != nil {
				fmt.Fprintln(stderr, errorStyle.Render("error: "+err.Error()))
			}
			return err
		}
	}
}
