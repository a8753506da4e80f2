package project

import (
	"fmt"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
)

// Paths are the source, script and test directories, relative to the
// project root and always written with a leading "./".
type Paths struct {
	Src    string
	Script string
	Test   string
}

// DefaultPaths is the stock Foundry layout.
func DefaultPaths() Paths {
	return Paths{Src: "./src", Script: "./script", Test: "./test"}
}

// All lists the directories in src, script, test order.
func (p Paths) All() []string {
	return []string{p.Src, p.Script, p.Test}
}

type foundryProfile struct {
	Src    string `toml:"src"`
	Script string `toml:"script"`
	Test   string `toml:"test"`
}

type foundryFile struct {
	foundryProfile
	Profile map[string]foundryProfile `toml:"profile"`
	Check   struct {
		SrcPath    string `toml:"src_path"`
		ScriptPath string `toml:"script_path"`
		TestPath   string `toml:"test_path"`
	} `toml:"check"`
}

// LoadPaths reads foundry.toml at path.
func LoadPaths(path string) (Paths, error) {
	var cfg foundryFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return DefaultPaths(), fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return pathsFrom(cfg, meta), nil
}

// ParsePaths is LoadPaths over an in-memory document.
func ParsePaths(content string) (Paths, error) {
	var cfg foundryFile
	meta, err := toml.Decode(content, &cfg)
	if err != nil {
		return DefaultPaths(), fmt.Errorf("failed to parse TOML: %w", err)
	}
	return pathsFrom(cfg, meta), nil
}

// pathsFrom: [check] *_path wins, then [profile.default], then root keys, then defaults.
func pathsFrom(cfg foundryFile, meta toml.MetaData) Paths {
	def := cfg.Profile["default"]
	pick := func(check, checkKey, profile, profileKey, root, fallback string) string {
		switch {
		case meta.IsDefined("check", checkKey):
			return normalizeDir(check)
		case meta.IsDefined("profile", "default", profileKey):
			return normalizeDir(profile)
		case meta.IsDefined(profileKey):
			return normalizeDir(root)
		default:
			return fallback
		}
	}
	d := DefaultPaths()
	return Paths{
		Src:    pick(cfg.Check.SrcPath, "src_path", def.Src, "src", cfg.Src, d.Src),
		Script: pick(cfg.Check.ScriptPath, "script_path", def.Script, "script", cfg.Script, d.Script),
		Test:   pick(cfg.Check.TestPath, "test_path", def.Test, "test", cfg.Test, d.Test),
	}
}

// normalizeDir ensures a "./" prefix for relative directories.
func normalizeDir(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	switch {
	case p == "":
		return "./."
	case strings.HasPrefix(p, "/"):
		return path.Clean(p)
	default:
		return "./" + strings.TrimPrefix(path.Clean(p), "./")
	}
}
