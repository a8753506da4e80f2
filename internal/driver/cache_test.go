package driver

import (
	"path/filepath"
	"testing"

	"scopelint/internal/diag"
	"scopelint/internal/directive"
	"scopelint/internal/project"
	"scopelint/internal/rule"
	"scopelint/internal/source"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	c, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("A.sol", []byte("contract A {}\n")))

	findings := []diag.Finding{diag.New(rule.Src, file.Span(9, 10), "helper")}
	dirs := []directive.Token{{
		Span: file.Span(0, 5),
		Kind: directive.Kind{Family: directive.Rule, Scope: directive.NextLine, Rule: rule.Error},
	}}
	key := project.HashStrings("a")

	var miss DiskPayload
	if ok, err := c.Get(key, &miss); ok || err != nil {
		t.Fatalf("empty cache Get = %v, %v", ok, err)
	}
	if err := c.Put(key, toPayload("./src/A.sol", findings, dirs)); err != nil {
		t.Fatal(err)
	}

	var got DiskPayload
	ok, err := c.Get(key, &got)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	f2, d2, ok := fromPayload(file, &got)
	if !ok {
		t.Fatal("payload rejected")
	}
	if len(f2) != 1 || f2[0] != findings[0] {
		t.Errorf("findings = %+v", f2)
	}
	if len(d2) != 1 || d2[0] != dirs[0] {
		t.Errorf("directives = %+v", d2)
	}

	if err := c.DropAll(); err != nil {
		t.Fatal(err)
	}
	if ok, _ := c.Get(key, &got); ok {
		t.Fatal("entry survived DropAll")
	}
}

func TestFromPayloadRejectsUnknownRule(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("A.sol", []byte("x")))
	p := &DiskPayload{Schema: diskCacheSchemaVersion, Findings: []cachedFinding{{Rule: uint8(rule.Count)}}}
	if _, _, ok := fromPayload(file, p); ok {
		t.Fatal("expected rejection")
	}
}

func TestNilDiskCache(t *testing.T) {
	var c *DiskCache
	if err := c.Put(project.Digest{}, &DiskPayload{}); err != nil {
		t.Fatal(err)
	}
	if ok, err := c.Get(project.Digest{}, &DiskPayload{}); ok || err != nil {
		t.Fatal("nil cache must miss")
	}
}
