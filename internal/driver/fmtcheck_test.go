package driver

import (
	"context"
	"errors"
	"os/exec"
	"reflect"
	"testing"

	"scopelint/internal/diag"
	"scopelint/internal/rule"
	"scopelint/internal/source"
)

const forgeDiff = `Diff in src/Counter.sol:
3 3   | contract Counter {
4     |-    function f() public { x = 1; }
  4   |+    function f() public {
  5   |+        x = 1;
  6   |+    }
7 9   | }
Diff in src/Other.sol:
1     |-pragma solidity  ^0.8.17;
  1   |+pragma solidity ^0.8.17;
`

func TestParseForgeDiff(t *testing.T) {
	got := ParseForgeDiff([]byte(forgeDiff))
	want := []FileDiff{
		{Path: "src/Counter.sol", Lines: []uint32{4}},
		{Path: "src/Other.sol", Lines: []uint32{1}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestParseForgeDiffPureInsertion(t *testing.T) {
	got := ParseForgeDiff([]byte("Diff in a.sol:\n2 2   | x\n  3   |+y\n"))
	if len(got) != 1 || !reflect.DeepEqual(got[0].Lines, []uint32{2}) {
		t.Fatalf("got %+v", got)
	}
	if len(ParseForgeDiff([]byte("garbage\n| - stray\n"))) != 0 {
		t.Fatal("lines before a header must be ignored")
	}
}

type fakeRunner struct {
	stdout string
	err    error
	args   []string
}

func (f *fakeRunner) Run(_ context.Context, _ string, name string, args ...string) ([]byte, []byte, error) {
	f.args = append([]string{name}, args...)
	return []byte(f.stdout), nil, f.err
}

// exitError produces a real *exec.ExitError.
func exitError(t *testing.T) error {
	t.Helper()
	err := exec.Command("sh", "-c", "exit 1").Run()
	var ee *exec.ExitError
	if !errors.As(err, &ee) {
		t.Skip("no shell available")
	}
	return err
}

func TestCheckFormatHonoursDisable(t *testing.T) {
	src := "// SPDX-License-Identifier: MIT\n" +
		"// scopelint: disable-next-line\n" +
		"pragma solidity  ^0.8.17;\n" +
		"contract Counter {   }\n"
	proj := newProject(t, map[string]string{"src/Counter.sol": src})
	r := &fakeRunner{
		stdout: "Diff in src/Counter.sol:\n3     |-pragma solidity  ^0.8.17;\n  3   |+pragma solidity ^0.8.17;\n4     |-contract Counter {   }\n  4   |+contract Counter {}\n",
		err:    exitError(t),
	}
	report := diag.NewReport()
	res, err := CheckFormat(context.Background(), r, proj, report, source.NewFileSet())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(r.args, []string{"forge", "fmt", "--check"}) {
		t.Errorf("args = %v", r.args)
	}
	if !res.Failed || res.Unattributed {
		t.Errorf("result = %+v", res)
	}

	items := report.Unsuppressed()
	if len(items) != 1 {
		t.Fatalf("surfaced = %v", items)
	}
	if items[0].Finding.Rule != rule.Format || items[0].Line != 4 {
		t.Errorf("unexpected item %+v", items[0])
	}
	if report.FormatValid() || !report.LintValid() {
		t.Error("only formatting should be invalid")
	}
	want := "Invalid formatting in ./src/Counter.sol on line 4: " + FormatMessage
	if items[0].String() != want {
		t.Errorf("line = %q, want %q", items[0].String(), want)
	}
}

func TestCheckFormatUnattributedFailure(t *testing.T) {
	proj := newProject(t, map[string]string{})
	res, err := CheckFormat(context.Background(), &fakeRunner{err: exitError(t)}, proj, diag.NewReport(), source.NewFileSet())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Unattributed {
		t.Fatal("a failing forge without diffs must be unattributed")
	}
}

func TestForgeNotInstalled(t *testing.T) {
	_, err := Forge(context.Background(), &fakeRunner{err: exec.ErrNotFound}, ".", false)
	if err == nil {
		t.Fatal("expected start error")
	}
}
