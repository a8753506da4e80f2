package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"scopelint/internal/rule"
)

// Project bundles everything discovered about the tree being checked.
type Project struct {
	// Root is the directory holding foundry.toml, or the start directory.
	Root   string
	Paths  Paths
	Config *Config
	// Warnings are configuration problems that fell back to defaults.
	Warnings []error
	// Digest identifies the configuration for cache keys.
	Digest Digest
}

// Discover walks up from startDir for foundry.toml and .scopelint.
// Parse errors in either file are kept as warnings; only I/O failures
// while searching are returned as errors.
func Discover(startDir string) (*Project, error) {
	if startDir == "" {
		startDir = "."
	}
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	p := &Project{Root: abs, Paths: DefaultPaths(), Config: &Config{Dir: abs}}

	foundryPath, ok, err := FindUp(abs, FoundryFileName)
	if err != nil {
		return nil, err
	}
	if ok {
		p.Root = filepath.Dir(foundryPath)
		paths, perr := LoadPaths(foundryPath)
		if perr != nil {
			p.Warnings = append(p.Warnings, perr)
		}
		p.Paths = paths
	}

	cfgPath, ok, err := FindUp(abs, ConfigFileName)
	if err != nil {
		return nil, err
	}
	if ok {
		cfg, cerr := LoadConfig(cfgPath)
		if cerr != nil {
			p.Warnings = append(p.Warnings, fmt.Errorf("failed to parse %s, using default config: %w", ConfigFileName, cerr))
			cfg = &Config{Dir: filepath.Dir(cfgPath)}
		}
		p.Config = cfg
	}

	p.Digest = p.digest()
	return p, nil
}

// Rel returns path relative to the project root in display form ("./src/A.sol").
func (p *Project) Rel(path string) string {
	if filepath.IsAbs(path) {
		if rel, err := filepath.Rel(p.Root, path); err == nil && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	rel := NormalizeRel(filepath.ToSlash(path))
	if strings.HasPrefix(rel, "/") {
		return rel
	}
	return "./" + rel
}

// Classify returns the kind of path, which may be absolute or root-relative.
func (p *Project) Classify(path string) FileKind {
	return p.Paths.Classify(p.Rel(path))
}

// IsFileIgnored reports whether .scopelint excludes path entirely.
func (p *Project) IsFileIgnored(path string) bool {
	return p.Config.IsFileIgnored(p.abs(path))
}

// IgnoredRules returns the per-file rule overrides for path.
func (p *Project) IgnoredRules(path string) []rule.ID {
	return p.Config.IgnoredRules(p.abs(path))
}

func (p *Project) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Root, filepath.FromSlash(path))
}

func (p *Project) digest() Digest {
	parts := []string{p.Paths.Src, p.Paths.Script, p.Paths.Test}
	if p.Config != nil {
		parts = append(parts, p.Config.ignored...)
		for _, ov := range p.Config.overrides {
			parts = append(parts, ov.pattern)
			for _, id := range ov.rules {
				parts = append(parts, id.String())
			}
		}
	}
	return HashStrings(parts...)
}
