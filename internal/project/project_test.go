package project

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"scopelint/internal/rule"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestParsePaths(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want Paths
	}{
		{"defaults", "[fmt]\nline_length = 100\n", DefaultPaths()},
		{"profile", "[profile.default]\nsrc = \"contracts\"\ntest = \"tests\"\n",
			Paths{Src: "./contracts", Script: "./script", Test: "./tests"}},
		{"root keys", "src = \"lib/src\"\n", Paths{Src: "./lib/src", Script: "./script", Test: "./test"}},
		{"check overrides profile", "[profile.default]\nsrc = \"contracts\"\n[check]\nsrc_path = \"./core\"\n",
			Paths{Src: "./core", Script: "./script", Test: "./test"}},
		{"check partial", "[profile.default]\nscript = \"scripts\"\n[check]\ntest_path = \"t\"\n",
			Paths{Src: "./src", Script: "./scripts", Test: "./t"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePaths(tt.toml)
			if err != nil {
				t.Fatalf("ParsePaths: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}

	if _, err := ParsePaths("[[["); err == nil {
		t.Fatal("expected an error for invalid TOML")
	}
}

func TestClassify(t *testing.T) {
	p := DefaultPaths()
	tests := []struct {
		path string
		want FileKind
	}{
		{"./src/Counter.sol", KindSrc},
		{"src/nested/Lib.sol", KindSrc},
		{"./test/Counter.t.sol", KindTest},
		{"./test/handlers/Handler.sol", KindHandler},
		{"./script/Deploy.s.sol", KindScript},
		{"./script/Helpers.sol", KindScriptHelper},
		{"./lib/forge-std/src/Test.sol", KindOther},
		{"./srcfoo/A.sol", KindOther},
		{"./src/README.md", KindOther},
	}
	for _, tt := range tests {
		if got := p.Classify(tt.path); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestParseConfig(t *testing.T) {
	content := `
[ignore]
files = ["src/legacy/old.sol", "test/integration/*.sol"]

[ignore.overrides]
"src/Base.sol" = ["src"]
"src/legacy/**/*.sol" = ["src", "error"]
`
	cfg, err := ParseConfig(content, "/proj")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}

	ignored := map[string]bool{
		"/proj/src/legacy/old.sol":          true,
		"/proj/test/integration/A.sol":      true,
		"/proj/test/integration/deep/A.sol": false,
		"/proj/src/Counter.sol":             false,
		"src/legacy/old.sol":                true,
		"./src/legacy/old.sol":              true,
	}
	for path, want := range ignored {
		if got := cfg.IsFileIgnored(path); got != want {
			t.Errorf("IsFileIgnored(%q) = %v, want %v", path, got, want)
		}
	}

	if got := cfg.IgnoredRules("/proj/src/Base.sol"); !slices.Equal(got, []rule.ID{rule.Src}) {
		t.Errorf("Base.sol rules = %v", got)
	}
	if got := cfg.IgnoredRules("/proj/src/legacy/a/b/C.sol"); !slices.Equal(got, []rule.ID{rule.Src, rule.Error}) {
		t.Errorf("legacy rules = %v", got)
	}
	if got := cfg.IgnoredRules("/proj/src/Other.sol"); len(got) != 0 {
		t.Errorf("Other.sol rules = %v", got)
	}
}

func TestParseConfigErrors(t *testing.T) {
	_, err := ParseConfig("[ignore.overrides]\n\"a.sol\" = [\"nope\"]\n", "/x")
	if !errors.Is(err, ErrUnknownRule) {
		t.Fatalf("got %v, want ErrUnknownRule", err)
	}
	_, err = ParseConfig("[ignore.overrides]\n\"a.sol\" = [\"directive\"]\n", "/x")
	if !errors.Is(err, ErrUnknownRule) {
		t.Fatalf("directive must not be accepted: %v", err)
	}
	_, err = ParseConfig("[ignore]\nfiles = [\"src/[.sol\"]\n", "/x")
	if !errors.Is(err, ErrBadPattern) {
		t.Fatalf("got %v, want ErrBadPattern", err)
	}
	cfg, err := ParseConfig("", "/x")
	if err != nil {
		t.Fatalf("empty config: %v", err)
	}
	if cfg.IsFileIgnored("/x/a.sol") || cfg.IgnoredRules("/x/a.sol") != nil {
		t.Fatal("empty config must ignore nothing")
	}
}

func TestNilConfig(t *testing.T) {
	var cfg *Config
	if cfg.IsFileIgnored("a.sol") || cfg.IgnoredRules("a.sol") != nil {
		t.Fatal("nil config must ignore nothing")
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "foundry.toml"), "[profile.default]\nsrc = \"contracts\"\n")
	writeFile(t, filepath.Join(root, ".scopelint"), "[ignore]\nfiles = [\"contracts/Skip.sol\"]\n")
	sub := filepath.Join(root, "contracts", "deep")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	p, err := Discover(sub)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(p.Warnings) != 0 {
		t.Fatalf("warnings: %v", p.Warnings)
	}
	wantRoot, _ := filepath.EvalSymlinks(root)
	gotRoot, _ := filepath.EvalSymlinks(p.Root)
	if gotRoot != wantRoot {
		t.Fatalf("root = %q, want %q", p.Root, root)
	}
	if p.Paths.Src != "./contracts" {
		t.Fatalf("src = %q", p.Paths.Src)
	}
	if got := p.Classify(filepath.Join(p.Root, "contracts", "A.sol")); got != KindSrc {
		t.Errorf("Classify = %v", got)
	}
	if got := p.Rel(filepath.Join(p.Root, "contracts", "A.sol")); got != "./contracts/A.sol" {
		t.Errorf("Rel = %q", got)
	}
	if !p.IsFileIgnored("contracts/Skip.sol") {
		t.Error("Skip.sol should be ignored")
	}
}

func TestDiscoverBrokenConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".scopelint"), "[ignore.overrides]\n\"a.sol\" = [\"bogus\"]\n")

	p, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(p.Warnings) != 1 || !errors.Is(p.Warnings[0], ErrUnknownRule) {
		t.Fatalf("warnings = %v", p.Warnings)
	}
	if p.Paths != DefaultPaths() {
		t.Fatalf("paths = %+v", p.Paths)
	}
	if p.IgnoredRules("a.sol") != nil {
		t.Fatal("broken config must fall back to ignoring nothing")
	}
}

func TestDigestChangesWithConfig(t *testing.T) {
	a := &Project{Paths: DefaultPaths(), Config: &Config{}}
	b := &Project{Paths: DefaultPaths(), Config: &Config{ignored: []string{"x.sol"}}}
	if a.digest() == b.digest() {
		t.Fatal("digest must depend on the ignore list")
	}
	if a.digest() != (&Project{Paths: DefaultPaths(), Config: &Config{}}).digest() {
		t.Fatal("digest must be deterministic")
	}
}
