package driver

import (
	"os"
	"path/filepath"
	"testing"

	"scopelint/internal/project"
)

// newProject writes files under a fresh root and discovers it.
func newProject(t *testing.T, files map[string]string) *project.Project {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("eval symlinks: %v", err)
	}
	if _, ok := files["foundry.toml"]; !ok {
		files["foundry.toml"] = "[profile.default]\nsrc = \"src\"\n"
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	proj, err := project.Discover(root)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(proj.Warnings) > 0 {
		t.Fatalf("unexpected warnings: %v", proj.Warnings)
	}
	return proj
}

func targetPaths(ts []Target) []string {
	out := make([]string, len(ts))
	for i, tg := range ts {
		out[i] = tg.Path
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

const goodSrc = `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.17;

contract Counter {
  uint256 public number;
  error Counter_Bad();

  function increment() public {
    number++;
  }
}
`

const badSrc = `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.17;

contract Legacy {
  error Bad();

  function helper() internal {}
}
`
