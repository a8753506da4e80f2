package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"scopelint/internal/project"
	"scopelint/internal/rule"
	"scopelint/internal/trace"
)

// Target is one Solidity file scheduled for checking.
type Target struct {
	// Abs is the absolute path on disk.
	Abs string
	// Path is the display path relative to the project root ("./src/A.sol").
	Path      string
	Kind      project.FileKind
	Overrides []rule.ID
}

// skipDirs are never descended into.
var skipDirs = []string{"node_modules"}

// Discover lists the .sol files to check. With no explicit paths it walks the
// project's src, script and test directories, skipping the ones that do not
// exist. Files excluded by .scopelint are dropped; the result is sorted by
// display path.
func Discover(ctx context.Context, proj *project.Project, paths []string) ([]Target, error) {
	span, _ := trace.Start(ctx, trace.ScopePass, "discover")

	explicit := len(paths) > 0
	roots := paths
	if !explicit {
		for _, dir := range proj.Paths.All() {
			roots = append(roots, filepath.Join(proj.Root, filepath.FromSlash(dir)))
		}
	}

	seen := make(map[string]struct{})
	var out []Target
	add := func(abs string) {
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}
		if proj.IsFileIgnored(abs) {
			return
		}
		out = append(out, Target{
			Abs:       abs,
			Path:      proj.Rel(abs),
			Kind:      proj.Classify(abs),
			Overrides: proj.IgnoredRules(abs),
		})
	}

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			span.End("cancelled")
			return nil, err
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			span.End("error")
			return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			if !explicit && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			span.End("error")
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(abs)
			continue
		}
		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != abs && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(d.Name(), ".sol") {
				add(path)
			}
			return nil
		})
		if err != nil {
			span.End("error")
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	slices.SortFunc(out, func(a, b Target) int { return strings.Compare(a.Path, b.Path) })
	span.WithExtra("files", fmt.Sprint(len(out))).End("")
	return out, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || slices.Contains(skipDirs, name)
}
