package directive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scopelint/internal/directive"
	"scopelint/internal/lexer"
	"scopelint/internal/rule"
	"scopelint/internal/source"
)

func collect(t *testing.T, src string) ([]directive.Token, []directive.Malformed, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("Collect.sol", []byte(src)))
	toks, bad := directive.Collect(lexer.Tokenize(file, lexer.Options{}))
	return toks, bad, file
}

func TestCollectFindsAllCommentShapes(t *testing.T) {
	src := "// scopelint: ignore-error-next-line\n" +
		"error Foo();\n" +
		"/* scopelint: disable-start */\n" +
		"/// scopelint:ignore-src-file trailing prose\n" +
		"/** scopelint: ignore-end */\n" +
		"// plain comment\n" +
		"contract A {} // scopelint: ignore-line\n"
	toks, bad, file := collect(t, src)
	require.Empty(t, bad)
	require.Len(t, toks, 5)

	assert.Equal(t, directive.Kind{Family: directive.Rule, Scope: directive.NextLine, Rule: rule.Error}, toks[0].Kind)
	assert.Equal(t, "// scopelint: ignore-error-next-line", file.Text(toks[0].Span))
	assert.Equal(t, directive.Kind{Family: directive.Disable, Scope: directive.RegionStart}, toks[1].Kind)
	assert.Equal(t, directive.Kind{Family: directive.Rule, Scope: directive.WholeFile, Rule: rule.Src}, toks[2].Kind)
	assert.Equal(t, directive.Kind{Family: directive.Ignore, Scope: directive.RegionEnd}, toks[3].Kind)
	assert.Equal(t, directive.Kind{Family: directive.Ignore, Scope: directive.Line}, toks[4].Kind)
}

func TestCollectReportsMalformed(t *testing.T) {
	toks, bad, file := collect(t, "// scopelint: ignore-nothing\ncontract A {}\n// scopelint:\n")
	assert.Empty(t, toks)
	require.Len(t, bad, 2)
	assert.Equal(t, "ignore-nothing", bad[0].Text)
	assert.ErrorIs(t, bad[0].Err, directive.ErrInvalid)
	assert.Equal(t, "// scopelint: ignore-nothing", file.Text(bad[0].Span))
	assert.Equal(t, "", bad[1].Text)
}

func TestCollectMalformedKeepsProse(t *testing.T) {
	_, bad, _ := collect(t, "// scopelint: this directive is invalid\ncontract A {}\n")
	require.Len(t, bad, 1)
	assert.Equal(t, "this directive is invalid", bad[0].Text)
}

func TestCollectIgnoresStrings(t *testing.T) {
	toks, bad, _ := collect(t, `string constant S = "// scopelint: ignore-line";`)
	assert.Empty(t, toks)
	assert.Empty(t, bad)
}
