package ast

import (
	"encoding/json"
	"math"
)

type LiteralType string

const (
	StringLiteral  LiteralType = "StringLiteral"
	NumericLiteral LiteralType = "NumericLiteral"
)

// Literal — строковый или числовой литерал.
// Value: string для строк (с кавычками, как в исходнике), float64 для чисел.
type Literal struct {
	Node  `json:"node"`
	Value any         `json:"value"`
	Type  LiteralType `json:"type"`
}

func (*Literal) exprNode() {}

// Str returns the raw string payload.
func (l *Literal) Str() (string, bool) {
	s, ok := l.Value.(string)
	return s, ok
}

// Number returns the numeric payload.
func (l *Literal) Number() (float64, bool) {
	f, ok := l.Value.(float64)
	return f, ok
}

// MarshalJSON пишет null вместо NaN/Inf: encoding/json такие значения не принимает.
func (l *Literal) MarshalJSON() ([]byte, error) {
	type plain Literal
	out := *l
	if f, ok := out.Value.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		out.Value = nil
	}
	return json.Marshal((*plain)(&out))
}
