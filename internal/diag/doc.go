// Package diag defines the diagnostic model shared by the lexer, the parser and the driver.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for findings produced while
//     tokenizing and parsing.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//   - Carry fatal front-end failures as Go errors (Error) without losing the
//     code and span.
//
// # Fatal versus reported
//
// The front end has exactly two fatal failures: a bare '/' in the lexer
// (LexUnexpectedSlash) and a mandatory token mismatch in the parser
// (SynUnexpectedToken). Both are returned as *Error and abort the run.
// Everything else (unterminated strings or comments, odd numbers, skipped
// top-level tokens, a missing initializer expression) is best-effort output and
// is at most reported to an optional Reporter with warning or info severity.
//
// # Scope
//
// Package diag performs no formatting or IO. Rendering lives in internal/diagfmt,
// orchestration in internal/driver.
package diag
