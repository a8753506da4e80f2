package driver

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"scopelint/internal/diag"
	"scopelint/internal/directive"
	"scopelint/internal/lexer"
	"scopelint/internal/project"
	"scopelint/internal/rule"
	"scopelint/internal/source"
	"scopelint/internal/suppress"
	"scopelint/internal/trace"
)

// FormatMessage is the message of every formatting finding.
const FormatMessage = "File is not formatted, run `scopelint fmt`"

// Runner executes an external command in dir.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// FileDiff is the set of changed lines forge reported for one file.
// Lines are 1-based line numbers in the current (unformatted) file.
type FileDiff struct {
	Path  string
	Lines []uint32
}

// ForgeOutput is the raw result of a forge fmt invocation.
type ForgeOutput struct {
	Stdout []byte
	Stderr []byte
	// Failed is set when forge exited non-zero.
	Failed bool
}

// Forge runs "forge fmt", adding --check when check is set. A non-zero exit
// is reported through Failed; only a failure to start forge is an error.
func Forge(ctx context.Context, r Runner, dir string, check bool) (ForgeOutput, error) {
	args := []string{"fmt"}
	if check {
		args = append(args, "--check")
	}
	stdout, stderr, err := r.Run(ctx, dir, "forge", args...)
	out := ForgeOutput{Stdout: stdout, Stderr: stderr}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return out, fmt.Errorf("failed to run forge fmt: %w", err)
		}
		out.Failed = true
	}
	return out, nil
}

// ParseForgeDiff extracts changed lines from "forge fmt --check" output:
//
//	Diff in src/Counter.sol:
//	4  4   |     uint256 public number;
//	5      |-    function f() public { x = 1; }
//	   5   |+    function f() public {
//
// Removed lines carry their old line number. Added lines are attributed to
// the last old line seen in the hunk, so that they land on a line that
// exists in the unformatted file.
func ParseForgeDiff(out []byte) []FileDiff {
	var (
		diffs   []FileDiff
		cur     *FileDiff
		lastOld uint32
		seen    map[uint32]bool
	)
	mark := func(n uint32) {
		if cur == nil || n == 0 || seen[n] {
			return
		}
		seen[n] = true
		cur.Lines = append(cur.Lines, n)
	}

	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if rest, ok := strings.CutPrefix(line, "Diff in "); ok {
			diffs = append(diffs, FileDiff{Path: strings.TrimSuffix(strings.TrimSpace(rest), ":")})
			cur = &diffs[len(diffs)-1]
			lastOld = 0
			seen = make(map[uint32]bool)
			continue
		}
		gutter, body, ok := strings.Cut(line, "|")
		if !ok || cur == nil {
			continue
		}
		nums := gutterNumbers(gutter)
		switch {
		case strings.HasPrefix(body, "-"):
			if len(nums) > 0 {
				lastOld = nums[0]
			}
			mark(lastOld)
		case strings.HasPrefix(body, "+"):
			if lastOld == 0 && len(nums) > 0 {
				lastOld = nums[0]
			}
			mark(lastOld)
		default:
			// context lines carry "old new"
			if len(nums) > 0 {
				lastOld = nums[0]
			}
		}
	}
	// keep whatever was parsed; a truncated stream still yields findings
	return diffs
}

func gutterNumbers(s string) []uint32 {
	var out []uint32
	for _, f := range strings.Fields(s) {
		n, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return out
		}
		out = append(out, uint32(n))
	}
	return out
}

// FormatResult summarises a formatting check.
type FormatResult struct {
	ForgeOutput
	Diffs []FileDiff
	// Unattributed is set when forge failed without naming any file.
	Unattributed bool
}

// CheckFormat runs "forge fmt --check" in the project root and records one
// rule.Format finding per changed line. The findings honour disable-*
// directives through the report. Files forge names that were not linted are
// loaded into files so their directives apply too.
func CheckFormat(ctx context.Context, r Runner, proj *project.Project, report *diag.Report, files *source.FileSet) (FormatResult, error) {
	span, _ := trace.Start(ctx, trace.ScopePass, string(StageFormat))

	out, err := Forge(ctx, r, proj.Root, true)
	if err != nil {
		span.End("error")
		return FormatResult{ForgeOutput: out}, err
	}
	res := FormatResult{ForgeOutput: out, Diffs: ParseForgeDiff(out.Stdout)}
	res.Unattributed = out.Failed && len(res.Diffs) == 0

	for _, d := range res.Diffs {
		abs := d.Path
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(proj.Root, filepath.FromSlash(abs))
		}
		display := proj.Rel(abs)
		file, ok := files.GetByPath(abs)
		if !ok {
			id, lerr := files.Load(abs)
			if lerr != nil {
				report.Add(diag.FileInfo{Path: display}, diag.New(rule.Format, source.Span{}, FormatMessage))
				continue
			}
			file = files.Get(id)
		}
		info := diag.FileInfo{Path: display, File: file, Set: suppressionFor(file), Overrides: proj.IgnoredRules(abs)}
		report.AddFile(info)
		for _, n := range d.Lines {
			sp, ok := file.LineSpan(n)
			if !ok {
				sp = file.Span(file.Len(), file.Len())
			}
			report.Add(info, diag.New(rule.Format, sp, FormatMessage))
		}
	}
	span.WithExtra("files", fmt.Sprint(len(res.Diffs))).End("")
	return res, nil
}

// suppressionFor builds the suppression set of a file that was not linted.
func suppressionFor(file *source.File) *suppress.Set {
	dirs, _ := directive.Collect(lexer.Tokenize(file, lexer.Options{}))
	return suppress.Build(file.Content, dirs)
}
