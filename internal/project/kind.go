package project

import (
	"path"
	"strings"
)

// FileKind is the role a Solidity file plays in a Foundry project.
type FileKind uint8

const (
	KindOther FileKind = iota
	// KindSrc: under the src directory.
	KindSrc
	// KindTest: *.t.sol under the test directory.
	KindTest
	// KindHandler: any other .sol under the test directory.
	KindHandler
	// KindScript: *.s.sol under the script directory.
	KindScript
	// KindScriptHelper: any other .sol under the script directory.
	KindScriptHelper
)

var fileKindNames = [...]string{
	KindOther:        "other",
	KindSrc:          "src",
	KindTest:         "test",
	KindHandler:      "handler",
	KindScript:       "script",
	KindScriptHelper: "script-helper",
}

func (k FileKind) String() string {
	if int(k) < len(fileKindNames) {
		return fileKindNames[k]
	}
	return "kind?"
}

// Is reports whether k is one of kinds.
func (k FileKind) Is(kinds ...FileKind) bool {
	for _, x := range kinds {
		if k == x {
			return true
		}
	}
	return false
}

// Classify decides the kind of rel, a path relative to the project root.
func (p Paths) Classify(rel string) FileKind {
	rel = NormalizeRel(rel)
	if !strings.HasSuffix(rel, ".sol") {
		return KindOther
	}
	switch {
	case under(rel, p.Test):
		if strings.HasSuffix(rel, ".t.sol") {
			return KindTest
		}
		return KindHandler
	case under(rel, p.Script):
		if strings.HasSuffix(rel, ".s.sol") {
			return KindScript
		}
		return KindScriptHelper
	case under(rel, p.Src):
		return KindSrc
	default:
		return KindOther
	}
}

func under(rel, dir string) bool {
	dir = NormalizeRel(dir)
	if dir == "" {
		return true
	}
	return rel == dir || strings.HasPrefix(rel, dir+"/")
}

// NormalizeRel turns a relative path into glob form: forward slashes, cleaned,
// without a leading "./".
func NormalizeRel(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if p == "" {
		return ""
	}
	p = path.Clean(p)
	if p == "." {
		return ""
	}
	return strings.TrimPrefix(p, "./")
}
