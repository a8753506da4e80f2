package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"scopelint/internal/driver"
	"scopelint/internal/project"
	"scopelint/internal/source"
	"scopelint/internal/spec"
)

var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "Print a specification of the contracts built from their test names",
	Long: `spec lists every public and external function of the src contracts and
turns the tests of the matching test contract (Increment or Counter_Increment
for increment) into requirement sentences.`,
	Args: cobra.NoArgs,
	RunE: runSpec,
}

func init() {
	specCmd.Flags().Bool("show-internal", false, "also list internal and private functions")
}

func runSpec(cmd *cobra.Command, args []string) error {
	showInternal, err := cmd.Flags().GetBool("show-internal")
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
	return writeSpec(cmd.Context(), cmd.OutOrStdout(), proj, spec.Options{ShowInternal: showInternal})
}

func writeSpec(ctx context.Context, out io.Writer, proj *project.Project, opts spec.Options) error {
	targets, err := driver.Discover(ctx, proj, nil)
	if err != nil {
		return err
	}
	files := source.NewFileSetWithBase(proj.Root)
	var srcs, tests []spec.Source
	for _, t := range targets {
		if !t.Kind.Is(project.KindSrc, project.KindTest) {
			continue
		}
		id, err := files.Load(t.Abs)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", t.Path, err)
		}
		parsed := spec.Parse(t.Path, files.Get(id))
		if t.Kind == project.KindSrc {
			srcs = append(srcs, parsed)
		} else {
			tests = append(tests, parsed)
		}
	}
	return spec.Write(out, spec.Build(srcs, tests, opts))
}
