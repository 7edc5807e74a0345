package token

import "strconv"

// ValueKind tags the payload carried by a Value.
type ValueKind uint8

const (
	// ValueNone means the token carries no decoded payload.
	ValueNone ValueKind = iota
	// ValueNumber holds a decoded float64.
	ValueNumber
	// ValueString holds raw source text (quotes and comment delimiters included).
	ValueString
)

// Value is the decoded payload of a token.
type Value struct {
	Kind ValueKind
	num  float64
	str  string
}

// NumberValue wraps a decoded numeric literal.
func NumberValue(v float64) Value { return Value{Kind: ValueNumber, num: v} }

// StringValue wraps raw lexeme text.
func StringValue(s string) Value { return Value{Kind: ValueString, str: s} }

// IsNone reports whether the value is absent.
func (v Value) IsNone() bool { return v.Kind == ValueNone }

// Number returns the numeric payload.
func (v Value) Number() (float64, bool) {
	return v.num, v.Kind == ValueNumber
}

// Str returns the textual payload.
func (v Value) Str() (string, bool) {
	return v.str, v.Kind == ValueString
}

// Any returns the payload as float64, string or nil.
func (v Value) Any() any {
	switch v.Kind {
	case ValueNumber:
		return v.num
	case ValueString:
		return v.str
	default:
		return nil
	}
}

// String renders the payload: identity for text, shortest decimal form for numbers.
func (v Value) String() string {
	switch v.Kind {
	case ValueNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case ValueString:
		return v.str
	default:
		return ""
	}
}
