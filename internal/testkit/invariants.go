// Package testkit holds assertions shared by parser and rule tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"scopelint/internal/ast"
	"scopelint/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) every span points at the file and lies within its content
// 2) contract members lie within their contract
// 3) contracts appear in source order without overlapping
func CheckSpanInvariants(f *ast.File) error {
	if f == nil || f.Source == nil {
		return fmt.Errorf("nil file")
	}
	size, err := safecast.Conv[uint32](len(f.Source.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	inFile := func(what string, sp source.Span) error {
		if sp.File != f.Source.ID {
			return fmt.Errorf("%s span points to different file id: got=%d want=%d", what, sp.File, f.Source.ID)
		}
		if sp.Start > sp.End || sp.End > size {
			return fmt.Errorf("%s span %v is outside content of %d bytes", what, sp, size)
		}
		return nil
	}

	for _, imp := range f.Imports {
		if err := inFile("import", imp.Span); err != nil {
			return err
		}
	}
	for _, fn := range f.Functions {
		if err := inFile("function "+fn.Name.Name, fn.Span); err != nil {
			return err
		}
	}

	var prev *ast.Contract
	for _, c := range f.Contracts {
		if err := inFile("contract "+c.Name.Name, c.Span); err != nil {
			return err
		}
		if prev != nil && c.Span.Start < prev.Span.End {
			return fmt.Errorf("contract %s %v overlaps %s %v", c.Name.Name, c.Span, prev.Name.Name, prev.Span)
		}
		prev = c

		// члены контракта
		check := func(what string, sp source.Span) error {
			if err := inFile(what, sp); err != nil {
				return err
			}
			if !sp.Within(c.Span) {
				return fmt.Errorf("%s span %v is outside contract %s %v", what, sp, c.Name.Name, c.Span)
			}
			return nil
		}
		for _, fn := range c.Functions {
			if err := check("function "+fn.Name.Name, fn.Span); err != nil {
				return err
			}
		}
		for _, m := range c.Modifiers {
			if err := check("modifier "+m.Name.Name, m.Span); err != nil {
				return err
			}
		}
		for _, v := range c.Variables {
			if err := check("variable "+v.Name.Name, v.Span); err != nil {
				return err
			}
		}
		for _, e := range c.Errors {
			if err := check("error "+e.Name.Name, e.Span); err != nil {
				return err
			}
		}
		for _, e := range c.Events {
			if err := check("event "+e.Name.Name, e.Span); err != nil {
				return err
			}
		}
	}
	return nil
}
