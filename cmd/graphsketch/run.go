package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ritzau/graphsketch/pkg/editor"
	"github.com/ritzau/graphsketch/pkg/output"
	"github.com/ritzau/graphsketch/pkg/script"
	"github.com/spf13/cobra"
)

func runCmd(a *app) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "run [script]",
		Short: "Run a command script headlessly and print the resulting graph",
		Long: "Run reads editor commands from a file, or from stdin when no file or \"-\"\n" +
			"is given, and prints a report of the final graph.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, name, err := openScript(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			ctrl := editor.New(newGraph(a.cfg), nil, editor.WithSettings(editorSettings(a.cfg)))
			runner := script.NewRunner(ctrl, cmd.OutOrStdout())
			if err := runner.Run(cmd.Context(), in); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			if !quiet {
				output.PrintReport(cmd.OutOrStdout(), name, ctrl.Snapshot())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the script's own output")
	return cmd
}

func openScript(cmd *cobra.Command, args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), "stdin", nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("failed to open script: %w", err)
	}
	return f, args[0], nil
}
