package diag_test

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scopelint/internal/diag"
	"scopelint/internal/directive"
	"scopelint/internal/lexer"
	"scopelint/internal/rule"
	"scopelint/internal/source"
	"scopelint/internal/suppress"
)

type testFile struct {
	t    *testing.T
	src  string
	info diag.FileInfo
}

func newFile(t *testing.T, fs *source.FileSet, path, src string) *testFile {
	t.Helper()
	file := fs.Get(fs.AddVirtual(path, []byte(src)))
	toks, bad := directive.Collect(lexer.Tokenize(file, lexer.Options{}))
	require.Empty(t, bad)
	return &testFile{
		t:   t,
		src: src,
		info: diag.FileInfo{
			Path: "./" + path,
			File: file,
			Set:  suppress.Build(file.Content, toks),
		},
	}
}

// at returns a finding of rule id spanning the n-th occurrence of text.
func (f *testFile) at(id rule.ID, text string, n int, msg string) diag.Finding {
	f.t.Helper()
	from := 0
	for {
		i := strings.Index(f.src[from:], text)
		require.GreaterOrEqual(f.t, i, 0, "%q not found", text)
		if n == 0 {
			start := uint32(from + i)
			return diag.New(id, f.info.File.Span(start, start+uint32(len(text))), msg)
		}
		n--
		from += i + len(text)
	}
}

func render(t *testing.T, r *diag.Report) []string {
	t.Helper()
	var buf bytes.Buffer
	_, err := r.WriteTo(&buf)
	require.NoError(t, err)
	out := strings.TrimSuffix(buf.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestNextLineScenario(t *testing.T) {
	fs := source.NewFileSet()
	f := newFile(t, fs, "src/Counter.sol", "// scopelint: ignore-error-next-line\nerror Foo();\nerror Foo();\n")

	r := diag.NewReport()
	r.Add(f.info, f.at(rule.Error, "error Foo();", 0, "Error 'Foo' should be prefixed with 'Counter_'"))
	r.Add(f.info, f.at(rule.Error, "error Foo();", 1, "Error 'Foo' should be prefixed with 'Counter_'"))

	assert.False(t, r.IsValid())
	assert.Equal(t, []string{
		"Invalid error name in ./src/Counter.sol on line 3: Error 'Foo' should be prefixed with 'Counter_'",
	}, render(t, r))
}

func TestRegionScenario(t *testing.T) {
	fs := source.NewFileSet()
	src := "// scopelint: ignore-error-start\n" +
		"error Inside();\n" +
		"// scopelint: ignore-error-end\n" +
		"error Outside();\n"
	f := newFile(t, fs, "src/Counter.sol", src)

	r := diag.NewReport()
	r.AddMany(f.info, []diag.Finding{
		f.at(rule.Error, "error Inside();", 0, "Error 'Inside' should be prefixed with 'Counter_'"),
		f.at(rule.Error, "error Outside();", 0, "Error 'Outside' should be prefixed with 'Counter_'"),
	})

	assert.False(t, r.IsValid())
	lines := render(t, r)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Outside")
}

func TestWholeFileScenario(t *testing.T) {
	fs := source.NewFileSet()
	src := "// scopelint: ignore-error-file\n" +
		"import {Unused} from \"./Unused.sol\";\n" +
		"error A();\n" +
		"error B();\n" +
		"error C();\n"
	f := newFile(t, fs, "src/Counter.sol", src)

	r := diag.NewReport()
	for _, name := range []string{"A", "B", "C"} {
		r.Add(f.info, f.at(rule.Error, "error "+name, 0, "Error '"+name+"' should be prefixed with 'Counter_'"))
	}
	r.Add(f.info, f.at(rule.Import, "Unused", 0, "Unused import: 'Unused'"))

	assert.Equal(t, []string{
		"Invalid import in ./src/Counter.sol on line 2: Unused import: 'Unused'",
	}, render(t, r))
	st := r.Stats()
	assert.Equal(t, 4, st.Findings)
	assert.Equal(t, 3, st.Suppressed)
	assert.Equal(t, 1, st.Surfaced)
	assert.Equal(t, 1, st.ByRule[rule.Import])
}

func TestGenericIgnoreCoversEveryLintRuleButNotFormatting(t *testing.T) {
	fs := source.NewFileSet()
	f := newFile(t, fs, "src/A.sol", "uint x; // scopelint: ignore-line\nuint y; // scopelint: disable-line\n")

	r := diag.NewReport()
	r.Add(f.info, f.at(rule.Variable, "uint x;", 0, "v"))
	r.Add(f.info, f.at(rule.Constant, "uint x;", 0, "c"))
	r.Add(f.info, f.at(rule.Format, "uint x;", 0, "not formatted"))
	r.Add(f.info, f.at(rule.Format, "uint y;", 0, "not formatted"))
	r.Add(f.info, f.at(rule.Variable, "uint y;", 0, "still reported"))

	assert.False(t, r.IsValid())
	assert.False(t, r.LintValid())
	assert.False(t, r.FormatValid())
	assert.Equal(t, []string{
		"Invalid formatting in ./src/A.sol on line 1: not formatted",
		"Invalid variable name in ./src/A.sol on line 2: still reported",
	}, render(t, r))
}

func TestOverridesSuppressWholeRules(t *testing.T) {
	fs := source.NewFileSet()
	f := newFile(t, fs, "src/Base.sol", "function run() {}\n")
	f.info.Overrides = []rule.ID{rule.Src}

	r := diag.NewReport()
	r.Add(f.info, f.at(rule.Src, "run", 0, "Missing SPDX-License-Identifier header"))
	assert.True(t, r.IsValid())
	r.Add(f.info, f.at(rule.Script, "run", 0, "other rule"))
	assert.False(t, r.IsValid())
}

func TestRenderOrderAndFileLevelRules(t *testing.T) {
	fs := source.NewFileSet()
	b := newFile(t, fs, "src/B.sol", "error X();\nerror Y();\n")
	a := newFile(t, fs, "src/A.sol", "uint a;\nuint b;\n")

	r := diag.NewReport()
	r.Add(b.info, b.at(rule.Error, "error Y();", 0, "y"))
	r.Add(b.info, b.at(rule.Eip712, "error X();", 0, "typehash mismatch"))
	r.Add(b.info, b.at(rule.Error, "error X();", 0, "x"))
	r.Add(a.info, a.at(rule.Variable, "uint b;", 0, "b"))
	r.Add(a.info, a.at(rule.Directive, "uint a;", 0, "Invalid inline config item: nope"))
	r.Add(a.info, a.at(rule.Constant, "uint a;", 0, "a"))

	assert.Equal(t, []string{
		"Invalid constant or immutable name in ./src/A.sol on line 1: a",
		"Invalid directive in ./src/A.sol: Invalid inline config item: nope",
		"Invalid variable name in ./src/A.sol on line 2: b",
		"Invalid error name in ./src/B.sol on line 1: x",
		"Invalid EIP712 typehash in ./src/B.sol: typehash mismatch",
		"Invalid error name in ./src/B.sol on line 2: y",
	}, render(t, r))
}

func TestEmptyReportIsValid(t *testing.T) {
	r := diag.NewReport()
	assert.True(t, r.IsValid())
	assert.Empty(t, render(t, r))
	r.AddFile(diag.FileInfo{Path: "./src/Clean.sol"})
	assert.Equal(t, 1, r.Stats().Files)
	assert.True(t, r.IsValid())
}

func TestMissingFileRendersWithoutLine(t *testing.T) {
	r := diag.NewReport()
	r.Add(diag.FileInfo{Path: "./src/Broken.sol"}, diag.New(rule.Parse, source.Span{}, "read failed"))
	assert.Equal(t, []string{"Invalid source in ./src/Broken.sol: read failed"}, render(t, r))
}

func TestConcurrentInsertion(t *testing.T) {
	fs := source.NewFileSet()
	r := diag.NewReport()

	var wg sync.WaitGroup
	for i := range 16 {
		f := newFile(t, fs, fmt.Sprintf("src/F%02d.sol", i), "error E();\n")
		finding := f.at(rule.Error, "error E();", 0, "e")
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				r.Add(f.info, finding)
			}
		}()
	}
	wg.Wait()

	st := r.Stats()
	assert.Equal(t, 16, st.Files)
	assert.Equal(t, 160, st.Findings)
	items := r.Unsuppressed()
	require.Len(t, items, 160)
	assert.Equal(t, "./src/F00.sol", items[0].Path)
	assert.Equal(t, "./src/F15.sol", items[len(items)-1].Path)
}

func TestQueriesDoNotMutate(t *testing.T) {
	fs := source.NewFileSet()
	f := newFile(t, fs, "src/A.sol", "// scopelint: ignore-next-line\nerror E();\n")
	r := diag.NewReport()
	r.Add(f.info, f.at(rule.Error, "error E();", 0, "e"))

	first := r.Items()
	second := r.Items()
	assert.Equal(t, first, second)
	require.Len(t, first, 1)
	assert.True(t, first[0].Suppressed)
	assert.Empty(t, r.Unsuppressed())
	assert.True(t, r.IsValid())
}
