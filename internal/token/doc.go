// Package token defines lexical token kinds and trivia for Solidity sources.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Comments and whitespace never appear in the main token stream; they are
//     kept as leading Trivia of the next significant token (or of EOF).
//   - Contextual words (from, error, revert, receive, fallback, transient, ...)
//     are identifiers. The parser recognises them by text.
package token
