package directive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scopelint/internal/directive"
	"scopelint/internal/rule"
)

func TestParseGeneric(t *testing.T) {
	tests := map[string]directive.Kind{
		"disable-next-item": {Family: directive.Disable, Scope: directive.NextItem},
		"disable-line":      {Family: directive.Disable, Scope: directive.Line},
		"disable-next-line": {Family: directive.Disable, Scope: directive.NextLine},
		"disable-start":     {Family: directive.Disable, Scope: directive.RegionStart},
		"disable-end":       {Family: directive.Disable, Scope: directive.RegionEnd},
		"ignore-next-item":  {Family: directive.Ignore, Scope: directive.NextItem},
		"ignore-line":       {Family: directive.Ignore, Scope: directive.Line},
		"ignore-next-line":  {Family: directive.Ignore, Scope: directive.NextLine},
		"ignore-start":      {Family: directive.Ignore, Scope: directive.RegionStart},
		"ignore-end":        {Family: directive.Ignore, Scope: directive.RegionEnd},
	}
	for text, want := range tests {
		got, err := directive.Parse(text)
		require.NoError(t, err, text)
		assert.Equal(t, want, got, text)
		assert.True(t, got.Generic())
	}
}

func TestParseRuleScoped(t *testing.T) {
	tests := map[string]directive.Kind{
		"ignore-error":           {Family: directive.Rule, Scope: directive.NextItem, Rule: rule.Error},
		"ignore-error-next-item": {Family: directive.Rule, Scope: directive.NextItem, Rule: rule.Error},
		"ignore-error-next-line": {Family: directive.Rule, Scope: directive.NextLine, Rule: rule.Error},
		"ignore-import-line":     {Family: directive.Rule, Scope: directive.Line, Rule: rule.Import},
		"ignore-src-start":       {Family: directive.Rule, Scope: directive.RegionStart, Rule: rule.Src},
		"ignore-script-end":      {Family: directive.Rule, Scope: directive.RegionEnd, Rule: rule.Script},
		"ignore-eip712-file":     {Family: directive.Rule, Scope: directive.WholeFile, Rule: rule.Eip712},
		"ignore-event":           {Family: directive.Rule, Scope: directive.NextItem, Rule: rule.Event},
	}
	for text, want := range tests {
		got, err := directive.Parse(text)
		require.NoError(t, err, text)
		assert.Equal(t, want, got, text)
		assert.False(t, got.Generic())
	}
}

func TestParseInvalid(t *testing.T) {
	for _, text := range []string{
		"",
		"disable",
		"disable-file",
		"ignore-file",
		"ignore-",
		"ignore-foo",
		"ignore-foo-line",
		"ignore-error-bogus",
		"ignore-error-",
		"ignore-directive",
		"ignore-format-line",
		"Ignore-error",
		"enable-line",
	} {
		_, err := directive.Parse(text)
		assert.ErrorIs(t, err, directive.ErrInvalid, "%q should be rejected", text)
	}
}

func TestRoundTrip(t *testing.T) {
	vocab := directive.Vocabulary()
	require.Len(t, vocab, 10+9*6)
	seen := make(map[string]bool, len(vocab))
	for _, k := range vocab {
		text := k.String()
		assert.False(t, seen[text], "duplicate canonical text %q", text)
		seen[text] = true

		back, err := directive.Parse(text)
		require.NoError(t, err, text)
		assert.Equal(t, k, back, text)
	}
	assert.Equal(t, "ignore-error-next-line",
		directive.Kind{Family: directive.Rule, Scope: directive.NextLine, Rule: rule.Error}.String())
}
