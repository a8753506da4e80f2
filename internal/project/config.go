package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"

	"scopelint/internal/rule"
)

var (
	// ErrUnknownRule is returned for a rule name that is not in the rule vocabulary.
	ErrUnknownRule = errors.New("unknown rule")
	// ErrBadPattern wraps an invalid glob in [ignore].
	ErrBadPattern = errors.New("invalid glob pattern")
)

type override struct {
	pattern string
	rules   []rule.ID
}

// Config is the parsed .scopelint file. The zero value ignores nothing.
type Config struct {
	// Dir is the directory the file was found in; paths are matched relative to it.
	Dir       string
	ignored   []string
	overrides []override
}

type configFile struct {
	Ignore struct {
		Files     []string            `toml:"files"`
		Overrides map[string][]string `toml:"overrides"`
	} `toml:"ignore"`
}

// LoadConfig reads a .scopelint file.
func LoadConfig(path string) (*Config, error) {
	var raw configFile
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg, err := configFrom(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Dir = filepath.Dir(path)
	return cfg, nil
}

// ParseConfig parses .scopelint content; dir is the directory paths are relative to.
func ParseConfig(content, dir string) (*Config, error) {
	var raw configFile
	if _, err := toml.Decode(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	cfg, err := configFrom(raw)
	if err != nil {
		return nil, err
	}
	cfg.Dir = dir
	return cfg, nil
}

func configFrom(raw configFile) (*Config, error) {
	cfg := &Config{}
	for _, pat := range raw.Ignore.Files {
		pat = NormalizeRel(pat)
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("%w '%s'", ErrBadPattern, pat)
		}
		cfg.ignored = append(cfg.ignored, pat)
	}

	// map order is random; sort so overrides are applied deterministically
	patterns := make([]string, 0, len(raw.Ignore.Overrides))
	for pat := range raw.Ignore.Overrides {
		patterns = append(patterns, pat)
	}
	slices.Sort(patterns)
	for _, rawPat := range patterns {
		pat := NormalizeRel(rawPat)
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("%w '%s'", ErrBadPattern, rawPat)
		}
		ov := override{pattern: pat}
		for _, name := range raw.Ignore.Overrides[rawPat] {
			id, err := rule.ParseInline(strings.TrimSpace(name))
			if err != nil {
				return nil, fmt.Errorf("%w: '%s'", ErrUnknownRule, name)
			}
			ov.rules = append(ov.rules, id)
		}
		cfg.overrides = append(cfg.overrides, ov)
	}
	return cfg, nil
}

// Rel makes path relative to the config directory in glob form.
func (c *Config) Rel(path string) string {
	if c != nil && c.Dir != "" && filepath.IsAbs(path) {
		if rel, err := filepath.Rel(c.Dir, path); err == nil && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	return NormalizeRel(filepath.ToSlash(path))
}

// IsFileIgnored reports whether path matches an [ignore].files pattern.
func (c *Config) IsFileIgnored(path string) bool {
	if c == nil || len(c.ignored) == 0 {
		return false
	}
	rel := c.Rel(path)
	for _, pat := range c.ignored {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}

// IgnoredRules lists the rules [ignore.overrides] switches off for path.
// Duplicates are removed; the order follows the sorted patterns.
func (c *Config) IgnoredRules(path string) []rule.ID {
	if c == nil || len(c.overrides) == 0 {
		return nil
	}
	rel := c.Rel(path)
	var out []rule.ID
	for _, ov := range c.overrides {
		if ok, _ := doublestar.Match(ov.pattern, rel); !ok {
			continue
		}
		for _, id := range ov.rules {
			if !slices.Contains(out, id) {
				out = append(out, id)
			}
		}
	}
	return out
}
