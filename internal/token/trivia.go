package token

import "scopelint/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment  // //
	TriviaBlockComment // /* */
	TriviaDocLine      // ///
	TriviaDocBlock     // /** */
)

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsComment reports whether the trivia is any kind of comment.
func (tv Trivia) IsComment() bool {
	switch tv.Kind {
	case TriviaLineComment, TriviaBlockComment, TriviaDocLine, TriviaDocBlock:
		return true
	default:
		return false
	}
}

// Body returns the comment text without its markers. Line comments lose the
// leading slashes; block comments lose the opening and the closing marker.
func (tv Trivia) Body() string {
	s := tv.Text
	switch tv.Kind {
	case TriviaLineComment:
		return s[min(2, len(s)):]
	case TriviaDocLine:
		return s[min(3, len(s)):]
	case TriviaBlockComment, TriviaDocBlock:
		open := 2
		if tv.Kind == TriviaDocBlock {
			open = 3
		}
		s = s[min(open, len(s)):]
		if len(s) >= 2 && s[len(s)-2:] == "*/" {
			s = s[:len(s)-2]
		}
		return s
	default:
		return ""
	}
}
