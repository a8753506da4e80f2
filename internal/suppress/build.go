package suppress

import (
	"bytes"
	"cmp"
	"slices"

	"fortio.org/safecast"

	"scopelint/internal/directive"
	"scopelint/internal/lexer"
	"scopelint/internal/rule"
)

// region is the nesting state of one universe.
type region struct {
	depth   int
	pending uint32
	open    bool
}

type builder struct {
	src []byte
	n   uint32
	set *Set

	format region
	lint   region
	rules  [rule.Count]region
}

// Build turns the directive tokens of one file into its suppression set.
// Tokens are processed in order of their start offset; ties keep discovery order.
// Sources whose offsets do not fit a span get an empty set.
func Build(src []byte, toks []directive.Token) *Set {
	n, ok := sourceLen(len(src))
	if !ok {
		return &Set{}
	}
	b := &builder{src: src, n: n, set: &Set{}}

	sorted := slices.Clone(toks)
	slices.SortStableFunc(sorted, func(x, y directive.Token) int {
		return cmp.Compare(x.Span.Start, y.Span.Start)
	})

	for _, tok := range sorted {
		switch tok.Kind.Family {
		case directive.Disable:
			b.apply(&b.format, &b.set.format, tok, true)
		case directive.Ignore:
			b.apply(&b.lint, &b.set.lint, tok, true)
		case directive.Rule:
			id := tok.Kind.Rule
			if !id.Valid() {
				continue
			}
			b.apply(&b.rules[id], &b.set.rules[id], tok, false)
		}
	}

	b.closeOpen(&b.format, &b.set.format)
	b.closeOpen(&b.lint, &b.set.lint)
	for id := range b.rules {
		b.closeOpen(&b.rules[id], &b.set.rules[id])
	}
	return b.set
}

func (b *builder) apply(st *region, out *[]Range, tok directive.Token, generic bool) {
	switch tok.Kind.Scope {
	case directive.NextItem:
		if r, ok := b.nextItem(tok.Span.End); ok {
			*out = append(*out, r)
		}

	case directive.Line:
		*out = append(*out, b.line(tok.Span.Start, tok.Span.End))

	case directive.NextLine:
		mode := Loose
		if generic {
			mode = Strict
		}
		if r, ok := b.nextLine(tok.Span.End, mode); ok {
			*out = append(*out, r)
		}

	case directive.RegionStart:
		if st.depth == 0 {
			st.pending = tok.Span.End
			st.open = true
		}
		st.depth++

	case directive.RegionEnd:
		if st.depth > 0 {
			st.depth--
		}
		if st.depth == 0 && st.open {
			// Generic regions stop before the closing comment, rule-scoped ones after it.
			end := tok.Span.End
			if generic {
				end = tok.Span.Start
			}
			*out = append(*out, Range{Start: st.pending, End: max(end, st.pending), Mode: Strict})
			st.open = false
		}

	case directive.WholeFile:
		if !generic {
			// +1 so a span starting exactly at EOF still passes the exclusive Loose bound.
			*out = append(*out, Range{Start: 0, End: b.n + 1, Mode: Loose})
		}
	}
}

func (b *builder) closeOpen(st *region, out *[]Range) {
	if st.open {
		*out = append(*out, Range{Start: st.pending, End: max(b.n, st.pending), Mode: Strict})
		st.open = false
	}
}

// nextItem covers the first code item after off: from its first character to
// the brace that balances its first '{', or to EOF.
func (b *builder) nextItem(off uint32) (Range, bool) {
	start, ok := lexer.NextCode(b.src, off)
	if !ok {
		return Range{}, false
	}
	end := b.n
	depth := 0
	found := false
scan:
	for i := start; i < b.n; i++ {
		switch b.src[i] {
		case '{':
			depth++
			found = true
		case '}':
			depth--
			if found && depth == 0 {
				end = i + 1
				break scan
			}
		}
	}
	return Range{Start: start, End: end, Mode: Loose}, true
}

func sourceLen(n int) (uint32, bool) {
	v, err := safecast.Conv[uint32](n)
	return v, err == nil
}

// line covers the line holding [start, end): from the byte after the previous
// newline to the next newline (exclusive), or EOF.
func (b *builder) line(start, end uint32) Range {
	start = min(start, b.n)
	lo := uint32(0)
	if i := bytes.LastIndexByte(b.src[:start], '\n'); i >= 0 {
		lo = uint32(i) + 1 // #nosec G115 -- i < len(src) which fits in uint32
	}
	return Range{Start: lo, End: b.newlineFrom(end), Mode: Strict}
}

// nextLine covers the line after the one holding off, including its newline.
func (b *builder) nextLine(off uint32, mode Mode) (Range, bool) {
	nl := b.newlineFrom(off)
	if nl+1 >= b.n {
		return Range{}, false
	}
	start := nl + 1
	end := b.newlineFrom(start)
	if end < b.n {
		end++
	}
	return Range{Start: start, End: end, Mode: mode}, true
}

// newlineFrom returns the offset of the first '\n' at or after off, or len(src).
func (b *builder) newlineFrom(off uint32) uint32 {
	if off >= b.n {
		return b.n
	}
	if i := bytes.IndexByte(b.src[off:], '\n'); i >= 0 {
		return off + uint32(i) // #nosec G115 -- i < len(src)
	}
	return b.n
}
