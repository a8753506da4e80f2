// Package spec turns test names into a readable specification of the
// project's contracts.
//
// A source function `increment` is specified by the test functions of a
// test contract named `Increment` (or `Counter_Increment`): each valid test
// name becomes one requirement sentence.
package spec

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"scopelint/internal/ast"
	"scopelint/internal/check"
	"scopelint/internal/diag"
	"scopelint/internal/lexer"
	"scopelint/internal/parser"
	"scopelint/internal/source"
)

// Options tune Build.
type Options struct {
	// ShowInternal lists internal and private functions too.
	ShowInternal bool
}

// Method is one specified function.
type Method struct {
	Name         string
	Requirements []string
}

// Contract is the specification of one source contract.
type Contract struct {
	Path    string
	Name    string
	Methods []Method
}

// Source is a parsed file and its display path.
type Source struct {
	Path string
	File *ast.File
}

// Parse lexes and parses file, dropping syntax errors.
func Parse(path string, file *source.File) Source {
	toks := lexer.Tokenize(file, lexer.Options{})
	return Source{Path: path, File: parser.ParseFile(file, toks, parser.Options{Reporter: diag.NopReporter{}})}
}

var (
	title = cases.Title(language.English)
	lower = cases.Lower(language.English)
)

// Build collects the contracts of srcs and attaches requirements found in tests.
// Interfaces are skipped. Methods keep declaration order.
func Build(srcs, tests []Source, opts Options) []Contract {
	reqs := requirements(tests)

	var out []Contract
	for _, s := range srcs {
		for _, c := range s.File.Contracts {
			if c.Kind == ast.ContractInterface {
				continue
			}
			spec := Contract{Path: s.Path, Name: c.Name.Name}
			for _, fn := range c.Functions {
				name, ok := methodName(fn, opts)
				if !ok {
					continue
				}
				key := testContractName(name)
				m := Method{Name: name}
				m.Requirements = append(m.Requirements, reqs[c.Name.Name+"_"+key]...)
				m.Requirements = append(m.Requirements, reqs[key]...)
				spec.Methods = append(spec.Methods, m)
			}
			out = append(out, spec)
		}
	}
	return out
}

func methodName(fn *ast.Function, opts Options) (string, bool) {
	switch fn.Kind {
	case ast.FnConstructor:
		return "constructor", true
	case ast.FnFunction:
		if fn.Visibility.Exposed() || opts.ShowInternal {
			return fn.Name.Name, true
		}
	}
	return "", false
}

// testContractName is the test contract that specifies method: the name
// with its first letter upper-cased.
func testContractName(method string) string {
	r := []rune(method)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// requirements maps test contract names to the sentences of their tests.
func requirements(tests []Source) map[string][]string {
	out := make(map[string][]string)
	for _, t := range tests {
		for _, c := range t.File.Contracts {
			for _, fn := range c.Functions {
				if fn.Kind != ast.FnFunction || !strings.HasPrefix(fn.Name.Name, "test") || !check.IsValidTestName(fn.Name.Name) {
					continue
				}
				if s := Describe(fn.Name.Name); s != "" {
					out[c.Name.Name] = append(out[c.Name.Name], s)
				}
			}
		}
	}
	return out
}

// Describe turns a test name into a sentence:
//
//	test_IncrementsNumberByOne        -> "Increments number by one"
//	testFuzz_RevertIf_CallerIsNotOwner -> "Revert if caller is not owner"
//	test_SetsTheERC20Balance          -> "Sets the ERC20 balance"
func Describe(name string) string {
	rest := strings.TrimPrefix(name, "test")
	rest = strings.TrimPrefix(rest, "Fork")
	rest = strings.TrimPrefix(rest, "Fuzz")

	var words []string
	for part := range strings.SplitSeq(rest, "_") {
		words = append(words, splitCamel(part)...)
	}
	if len(words) == 0 {
		return ""
	}
	for i, w := range words {
		if !isAcronym(w) {
			words[i] = lower.String(w)
		}
	}
	if !isAcronym(words[0]) {
		words[0] = title.String(words[0])
	}
	return strings.Join(words, " ")
}

// splitCamel splits before a capital that follows a lower-case letter or a
// digit, and before the last capital of an acronym run ("ERCToken" → "ERC", "Token").
func splitCamel(s string) []string {
	r := []rune(s)
	var out []string
	start := 0
	for i := 1; i < len(r); i++ {
		prev, cur := r[i-1], r[i]
		boundary := unicode.IsUpper(cur) && (unicode.IsLower(prev) || unicode.IsDigit(prev) ||
			(unicode.IsUpper(prev) && i+1 < len(r) && unicode.IsLower(r[i+1])))
		if boundary {
			out = append(out, string(r[start:i]))
			start = i
		}
	}
	if start < len(r) {
		out = append(out, string(r[start:]))
	}
	return slices.DeleteFunc(out, func(w string) bool { return w == "" })
}

func isAcronym(w string) bool {
	letters := 0
	for _, c := range w {
		if unicode.IsLower(c) {
			return false
		}
		if unicode.IsLetter(c) {
			letters++
		}
	}
	return letters > 1
}
