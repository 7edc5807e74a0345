package token

import (
	"kappa/internal/source"
)

// Token represents a single source token with its location and decoded value.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string
	Value Value
}

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Number, String, True, False:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool { return t.Kind.IsPunct() }

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Identifier }

// IsComment reports whether the token is a comment of any flavour.
func (t Token) IsComment() bool { return t.Kind.IsComment() }
