// Package token defines the lexical vocabulary of kappa.
// Invariants:
//   - Kind is a closed enumeration; ordinals are stable and start at EOF = 0.
//   - Token.Span starts at the lexer cursor before scanning, so whitespace and
//     skipped characters that precede a lexeme belong to its span.
//   - Token.Text is the span's source text with surrounding whitespace trimmed.
//   - Token.Value is absent for punctuation and EOF.
//   - NotEqual, Not and DoubleQuote are declared but no lexer rule produces them.
package token
