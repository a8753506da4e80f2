package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scopelint/internal/diag"
	"scopelint/internal/diagfmt"
	"scopelint/internal/driver"
	"scopelint/internal/observ"
	"scopelint/internal/project"
	"scopelint/internal/trace"
	"scopelint/internal/version"
)

const (
	lintFailedMsg = "error: Convention checks failed, see details above"
	fmtFailedMsg  = "error: Formatting validation failed, run `scopelint fmt` to fix"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path...]",
	Short: "Check conventions and formatting of the project",
	Long: `check lints every Solidity file under the configured src, script and test
directories (or only the given paths) and runs forge fmt --check.
Findings can be silenced inline with scopelint: directives or per file in .scopelint.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "text", "report format (text|json|sarif)")
	checkCmd.Flags().Int("jobs", 0, "files checked in parallel (0 = GOMAXPROCS)")
	checkCmd.Flags().Bool("no-fmt", false, "skip the forge fmt --check step")
	checkCmd.Flags().Bool("cache", false, "reuse findings of unchanged files from the disk cache")
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	checkCmd.Flags().Uint("max-parse-errors", 20, "parse errors reported per file (0 = all)")
	checkCmd.Flags().Bool("summary", false, "print a count of checked files and findings")
	checkCmd.Flags().Bool("include-suppressed", false, "list suppressed findings in json output")
}

// checkConfig is the parsed flag set of the check command.
type checkConfig struct {
	format            string
	jobs              int
	noFmt             bool
	useCache          bool
	ui                uiMode
	maxParseErrors    uint
	summary           bool
	includeSuppressed bool
	color             bool
	quiet             bool
	timings           bool
}

func readCheckConfig(cmd *cobra.Command) (checkConfig, error) {
	var cfg checkConfig
	var err error
	flags := cmd.Flags()
	if cfg.format, err = flags.GetString("format"); err != nil {
		return cfg, err
	}
	cfg.format = strings.ToLower(strings.TrimSpace(cfg.format))
	switch cfg.format {
	case "text", "json", "sarif":
	default:
		return cfg, fmt.Errorf("unsupported format %q (must be text, json or sarif)", cfg.format)
	}
	if cfg.jobs, err = flags.GetInt("jobs"); err != nil {
		return cfg, err
	}
	if cfg.noFmt, err = flags.GetBool("no-fmt"); err != nil {
		return cfg, err
	}
	if cfg.useCache, err = flags.GetBool("cache"); err != nil {
		return cfg, err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return cfg, err
	}
	if cfg.ui, err = readUIMode(uiValue); err != nil {
		return cfg, err
	}
	if cfg.maxParseErrors, err = flags.GetUint("max-parse-errors"); err != nil {
		return cfg, err
	}
	if cfg.summary, err = flags.GetBool("summary"); err != nil {
		return cfg, err
	}
	if cfg.includeSuppressed, err = flags.GetBool("include-suppressed"); err != nil {
		return cfg, err
	}
	if cfg.color, err = useColor(cmd, os.Stdout); err != nil {
		return cfg, err
	}
	root := cmd.Root().PersistentFlags()
	if cfg.quiet, err = root.GetBool("quiet"); err != nil {
		return cfg, err
	}
	if cfg.timings, err = root.GetBool("timings"); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	defer dumpTraceOnPanic(cmd)

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	cfg, err := readCheckConfig(cmd)
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

	var runner driver.Runner = driver.ExecRunner{}
	if cfg.noFmt {
		runner = nil
	}
	ok, err := checkProject(cmd.Context(), proj, args, cfg, runner, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if !ok {
		return errReported
	}
	return nil
}

// checkProject runs the whole check and renders the report to out. It
// returns false when the run must exit non-zero; the reason has already been
// written to errOut. A nil runner skips the formatting step.
func checkProject(ctx context.Context, proj *project.Project, paths []string, cfg checkConfig, runner driver.Runner, out, errOut io.Writer) (ok bool, err error) {
	span, ctx := trace.Start(ctx, trace.ScopeDriver, "check")
	defer func() {
		span.WithExtra("valid", fmt.Sprint(ok)).End("")
	}()

	if !cfg.quiet {
		for _, w := range proj.Warnings {
			fmt.Fprintf(errOut, "warning: %v\n", w)
		}
	}

	var timer *observ.Timer
	if cfg.timings {
		timer = observ.NewTimer()
		defer printTimings(errOut, timer)
	}

	endDiscover := timer.Track(string(driver.StageDiscover))
	targets, err := driver.Discover(ctx, proj, paths)
	endDiscover(fmt.Sprintf("%d files", len(targets)))
	if err != nil {
		return false, err
	}

	opts := driver.Options{
		Jobs:           cfg.jobs,
		MaxParseErrors: cfg.maxParseErrors,
		Timer:          timer,
	}
	if cfg.useCache {
		cache, cerr := driver.OpenDiskCache("scopelint")
		if cerr != nil {
			fmt.Fprintf(errOut, "warning: cache disabled: %v\n", cerr)
		} else {
			opts.Cache = cache
		}
	}

	var res *driver.Result
	if cfg.format == "text" && !cfg.quiet && len(targets) > 0 && shouldUseTUI(cfg.ui) {
		res, err = runCheckWithUI(ctx, "scopelint check", proj, targets, opts)
	} else {
		res, err = driver.Check(ctx, proj, targets, opts)
	}
	if err != nil {
		return false, err
	}

	fmtFailed := false
	if runner != nil {
		endFmt := timer.Track(string(driver.StageFormat))
		fr, ferr := driver.CheckFormat(ctx, runner, proj, res.Report, res.Files)
		endFmt("")
		switch {
		case ferr != nil:
			fmt.Fprintf(errOut, "error: %v\n", ferr)
			fmtFailed = true
		case fr.Unattributed:
			errOut.Write(fr.Stderr)
			fmtFailed = true
		}
	}

	endRender := timer.Track("render")
	err = render(out, res.Report, cfg)
	endRender(cfg.format)
	if err != nil {
		return false, err
	}

	ok = true
	if !res.Report.LintValid() {
		fmt.Fprintln(errOut, lintFailedMsg)
		ok = false
	}
	if fmtFailed || !res.Report.FormatValid() {
		fmt.Fprintln(errOut, fmtFailedMsg)
		ok = false
	}
	return ok, nil
}

func render(out io.Writer, report *diag.Report, cfg checkConfig) error {
	switch cfg.format {
	case "json":
		return diagfmt.JSON(out, report, diagfmt.JSONOpts{IncludeSuppressed: cfg.includeSuppressed})
	case "sarif":
		return diagfmt.Sarif(out, report, diagfmt.SarifRunMeta{
			ToolName:       "scopelint",
			ToolVersion:    version.Get().Version,
			InformationURI: "https://github.com/ScopeLift/scopelint",
			InvocationArgs: os.Args,
		})
	default:
		return diagfmt.Text(out, report, diagfmt.TextOpts{Color: cfg.color, Summary: cfg.summary})
	}
}
