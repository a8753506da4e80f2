package main

import (
	"os"

	"github.com/spf13/cobra"

	"scopelint/internal/diagfmt"
	"scopelint/internal/driver"
	"scopelint/internal/project"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags]",
	Short: "Format the project with forge fmt",
	Args:  cobra.NoArgs,
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "only show the diff, do not rewrite files")
}

func runFmt(cmd *cobra.Command, args []string) error {
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	colored, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	proj, err := project.Discover(wd)
	if err != nil {
		return err
	}

	out, err := driver.Forge(cmd.Context(), driver.ExecRunner{}, proj.Root, check)
	if err != nil {
		return err
	}
	if err := diagfmt.ForgeDiff(cmd.OutOrStdout(), out.Stdout, colored); err != nil {
		return err
	}
	cmd.ErrOrStderr().Write(out.Stderr)
	if out.Failed {
		if check {
			cmd.PrintErrln(fmtFailedMsg)
		}
		return errReported
	}
	return nil
}
