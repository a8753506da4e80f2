package driver

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"scopelint/internal/check"
	"scopelint/internal/diag"
	"scopelint/internal/observ"
	"scopelint/internal/project"
	"scopelint/internal/rule"
	"scopelint/internal/source"
	"scopelint/internal/suppress"
	"scopelint/internal/trace"
	"scopelint/internal/version"
)

// Options configure a check run.
type Options struct {
	// Jobs bounds the worker pool; 0 means GOMAXPROCS.
	Jobs int
	// Rules to run; nil means check.Default().
	Rules []check.Rule
	// MaxParseErrors caps parse findings per file; 0 means no cap.
	MaxParseErrors uint
	// Cache is optional.
	Cache    *DiskCache
	Progress ProgressSink
	Timer    *observ.Timer
}

// Result is the outcome of Check.
type Result struct {
	Report  *diag.Report
	Files   *source.FileSet
	Targets []Target
	// CacheHits counts files whose findings came from the disk cache.
	CacheHits int
}

// Check lints every target in parallel and collects the findings in one
// report. Per-file failures become findings; only cancellation is an error.
func Check(ctx context.Context, proj *project.Project, targets []Target, opts Options) (*Result, error) {
	span, ctx := trace.Start(ctx, trace.ScopePass, "lint")
	done := opts.Timer.Track(string(StageLint))

	res := &Result{
		Report:  diag.NewReport(),
		Files:   source.NewFileSetWithBase(proj.Root),
		Targets: targets,
	}
	for _, t := range targets {
		emit(opts.Progress, Event{File: t.Path, Stage: StageLint, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	salt := rulesSalt(opts.Rules, opts.MaxParseErrors)

	var hits atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(targets))))
	for _, t := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if lintOne(gctx, proj, res, t, opts, salt) {
				hits.Add(1)
			}
			return nil
		})
	}
	err := g.Wait()

	res.CacheHits = int(hits.Load())
	note := fmt.Sprintf("%d files, %d cached", len(targets), res.CacheHits)
	done(note)
	span.WithExtra("files", fmt.Sprint(len(targets))).End(note)
	return res, err
}

// lintOne processes one target and reports whether the cache answered.
func lintOne(ctx context.Context, proj *project.Project, res *Result, t Target, opts Options, salt project.Digest) (cached bool) {
	start := time.Now()
	span, _ := trace.Start(ctx, trace.ScopeFile, "lint:"+t.Path)
	emit(opts.Progress, Event{File: t.Path, Stage: StageLint, Status: StatusWorking})

	id, err := res.Files.Load(t.Abs)
	if err != nil {
		res.Report.Add(diag.FileInfo{Path: t.Path, Overrides: t.Overrides},
			diag.New(rule.Parse, source.Span{}, "failed to read file: "+err.Error()))
		emit(opts.Progress, Event{File: t.Path, Stage: StageLint, Status: StatusError, Err: err, Elapsed: time.Since(start)})
		span.End("read error")
		return false
	}
	file := res.Files.Get(id)
	in := check.Input{Path: t.Path, File: file, Kind: t.Kind, Overrides: t.Overrides}

	var key project.Digest
	if opts.Cache != nil {
		key = cacheKey(file, t, proj, salt)
		var payload DiskPayload
		if ok, gerr := opts.Cache.Get(key, &payload); gerr == nil && ok && payload.Path == t.Path {
			if findings, dirs, ok := fromPayload(file, &payload); ok {
				set := suppress.Build(file.Content, dirs)
				res.Report.AddMany(in.Info(set), findings)
				emit(opts.Progress, Event{File: t.Path, Stage: StageLint, Status: StatusCached, Findings: len(findings), Elapsed: time.Since(start)})
				span.WithExtra("cache", "hit").End("")
				return true
			}
		}
	}

	out := check.Run(res.Report, in, check.Options{Rules: opts.Rules, MaxParseErrors: opts.MaxParseErrors})
	if opts.Cache != nil {
		if perr := opts.Cache.Put(key, toPayload(t.Path, out.Findings, out.Directives)); perr != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache", perr.Error(), span.ID())
		}
	}
	emit(opts.Progress, Event{File: t.Path, Stage: StageLint, Status: StatusDone, Findings: len(out.Findings), Elapsed: time.Since(start)})
	span.WithExtra("findings", fmt.Sprint(len(out.Findings))).End("")
	return false
}

// rulesSalt separates cache entries produced by different rule selections,
// parse-error caps and builds.
func rulesSalt(rules []check.Rule, maxParseErrors uint) project.Digest {
	if rules == nil {
		rules = check.Default()
	}
	ids := make([]string, 0, len(rules)+2)
	ids = append(ids, version.Version, "max-parse-errors:"+strconv.FormatUint(uint64(maxParseErrors), 10))
	for _, r := range rules {
		ids = append(ids, r.ID().String()+":"+r.Description())
	}
	return project.HashStrings(strings.Join(ids, "\x00"))
}
