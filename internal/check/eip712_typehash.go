package check

import (
	"fmt"
	"regexp"
	"strings"

	"scopelint/internal/project"
	"scopelint/internal/rule"
	"scopelint/internal/token"
)

var typeParams = regexp.MustCompile(`\(([^)]+)\)`)

// Eip712Typehash compares the member count of a `*_TYPEHASH` type string with
// every `abi.encode(TYPEHASH, ...)` that uses it. abi.encodePacked is not checked.
type Eip712Typehash struct{}

func (Eip712Typehash) ID() rule.ID { return rule.Eip712 }

func (Eip712Typehash) Description() string {
	return "EIP712 typehash strings match the abi.encode calls that use them"
}

func (Eip712Typehash) Applies(kind project.FileKind) bool { return kind == project.KindSrc }

func (Eip712Typehash) Check(ctx *Context) {
	for _, c := range ctx.File.Contracts {
		for _, v := range c.Variables {
			structName, ok := typehashStruct(v.Name.Name)
			if !ok {
				continue
			}
			typeString, ok := firstString(v.Init)
			if !ok {
				ctx.Report(rule.Eip712, v.Name.Span, fmt.Sprintf(
					"Typehash '%s' for struct '%s' has no keccak256 string - this will cause signature mismatches",
					v.Name.Name, structName))
				continue
			}
			want := TypeParamCount(typeString)
			for _, got := range encodeUsages(ctx.File.Tokens, v.Name.Name) {
				if got != want {
					ctx.Report(rule.Eip712, v.Name.Span, fmt.Sprintf(
						"EIP712 typehash '%s' parameter mismatch: typehash defines %d parameters but abi.encode usage uses %d parameters",
						v.Name.Name, want, got))
				}
			}
		}
	}
}

func typehashStruct(name string) (string, bool) {
	if s, ok := strings.CutSuffix(name, "_TYPEHASH"); ok {
		return s, true
	}
	if s, ok := strings.CutPrefix(name, "TYPEHASH_"); ok {
		return s, true
	}
	return "", false
}

func firstString(toks []token.Token) (string, bool) {
	for _, tok := range toks {
		if tok.Kind == token.StringLit {
			text := tok.Text
			if len(text) >= 2 {
				text = text[1 : len(text)-1]
			}
			return text, true
		}
	}
	return "", false
}

// TypeParamCount counts the members of the primary type in an EIP712 type
// string, e.g. 3 for "Mail(Person from,Person to,string contents)Person(...)".
func TypeParamCount(typeString string) int {
	m := typeParams.FindStringSubmatch(typeString)
	if m == nil {
		return 0
	}
	return strings.Count(m[1], ",") + 1
}

// encodeUsages returns the argument count after the typehash for every
// `abi.encode(name, ...)` in toks. Nested calls count as one argument.
func encodeUsages(toks []token.Token, name string) []int {
	var out []int
	for i := 0; i+5 < len(toks); i++ {
		if !toks[i].IsWord("abi") || toks[i+1].Kind != token.Dot || !toks[i+2].IsWord("encode") ||
			toks[i+3].Kind != token.LParen || !toks[i+4].IsWord(name) || toks[i+5].Kind != token.Comma {
			continue
		}
		args, depth := 1, 0
	scan:
		for j := i + 6; j < len(toks); j++ {
			switch toks[j].Kind {
			case token.LParen, token.LBracket, token.LBrace:
				depth++
			case token.RParen, token.RBracket, token.RBrace:
				if depth == 0 {
					break scan
				}
				depth--
			case token.Comma:
				if depth == 0 {
					args++
				}
			case token.EOF:
				break scan
			}
		}
		out = append(out, args)
	}
	return out
}
