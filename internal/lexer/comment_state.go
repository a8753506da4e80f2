package lexer

import (
	"iter"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
)

// CommentState classifies one character of source text.
type CommentState uint8

const (
	// StateCode is normal code, including string literal contents.
	StateCode CommentState = iota
	// StateLineComment covers "//" up to, not including, the newline.
	StateLineComment
	// StateBlockComment covers "/*" through the closing "*/".
	StateBlockComment
)

func (s CommentState) String() string {
	switch s {
	case StateCode:
		return "code"
	case StateLineComment:
		return "line-comment"
	case StateBlockComment:
		return "block-comment"
	}
	return "unknown"
}

// Char is one rune of source text with its offset and comment state.
type Char struct {
	Off   uint32
	Rune  rune
	State CommentState
}

// Chars walks src from offset from, assuming from is in code, and yields every
// rune with its comment state. Quotes are tracked so comment markers inside
// string literals stay code.
func Chars(src []byte, from uint32) iter.Seq[Char] {
	return func(yield func(Char) bool) {
		n, err := safecast.Conv[uint32](len(src))
		if err != nil || from >= n {
			return
		}
		state := StateCode
		var quote byte
		escaped := false

		for off := from; off < n; {
			b := src[off]
			r, size := rune(b), uint32(1)
			if b >= utf8.RuneSelf {
				rr, sz := utf8.DecodeRune(src[off:])
				r, size = rr, uint32(sz) // #nosec G115 -- sz is at most utf8.UTFMax
			}
			cur := state

			switch state {
			case StateCode:
				switch {
				case quote != 0:
					switch {
					case escaped:
						escaped = false
					case b == '\\':
						escaped = true
					case b == quote || b == '\n':
						quote = 0
					}
				case b == '"' || b == '\'':
					quote = b
				case b == '/' && off+1 < n && src[off+1] == '/':
					state, cur = StateLineComment, StateLineComment
				case b == '/' && off+1 < n && src[off+1] == '*':
					if !yield(Char{Off: off, Rune: r, State: StateBlockComment}) {
						return
					}
					if !yield(Char{Off: off + 1, Rune: '*', State: StateBlockComment}) {
						return
					}
					state = StateBlockComment
					off += 2
					continue
				}
			case StateLineComment:
				if b == '\n' {
					state, cur = StateCode, StateCode
				}
			case StateBlockComment:
				if b == '*' && off+1 < n && src[off+1] == '/' {
					if !yield(Char{Off: off, Rune: r, State: StateBlockComment}) {
						return
					}
					if !yield(Char{Off: off + 1, Rune: '/', State: StateBlockComment}) {
						return
					}
					state = StateCode
					off += 2
					continue
				}
			}

			if !yield(Char{Off: off, Rune: r, State: cur}) {
				return
			}
			off += size
		}
	}
}

// CodeOffsets yields the offset and rune of every code character from from on.
func CodeOffsets(src []byte, from uint32) iter.Seq2[uint32, rune] {
	return func(yield func(uint32, rune) bool) {
		for c := range Chars(src, from) {
			if c.State != StateCode {
				continue
			}
			if !yield(c.Off, c.Rune) {
				return
			}
		}
	}
}

// NextCode returns the offset of the first non-whitespace code character at or
// after from. ok is false when only comments and whitespace remain.
func NextCode(src []byte, from uint32) (off uint32, ok bool) {
	for o, r := range CodeOffsets(src, from) {
		if !unicode.IsSpace(r) {
			return o, true
		}
	}
	return 0, false
}
