package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// EOF marks the end of the source input.
	EOF Kind = iota
	// Number represents a numeric literal.
	Number
	Plus   // +
	Minus  // -
	Star   // *
	Slash  // /
	LParen // (
	RParen // )
	// Identifier represents a run of lowercase letters that is not a keyword.
	Identifier
	If    // if
	While // while
	For   // for
	// String represents a double-quoted string literal.
	String
	LBrace             // {
	RBrace             // }
	Assignment         // =
	Let                // let
	Semicolon          // ;
	Function           // function
	Comma              // ,
	Return             // return
	Class              // class
	Equal              // ==
	NotEqual           // reserved
	StrictEqual        // ===
	LessThan           // <
	GreaterThan        // >
	LessThanOrEqual    // <=
	GreaterThanOrEqual // >=
	Not                // reserved
	And                // &
	Or                 // |
	LogicalAnd         // &&
	LogicalOr          // ||
	DoubleQuote        // reserved
	Period             // .
	LBracket           // [
	RBracket           // ]
	This               // this
	True               // true
	False              // false
	// SingleLineComment represents a // comment up to the end of the line.
	SingleLineComment
	// MultiLineComment represents a /* ... */ comment.
	MultiLineComment
	// JSDocComment represents a /** ... */ comment.
	JSDocComment
	Const // const

	numKinds
)

// Start is the kind of the parser's sentinel token before the first advance.
// It lies outside the enumeration and is never produced by the lexer.
const Start Kind = 0xFF

var kindNames = [numKinds]string{
	EOF:                "EOF",
	Number:             "Number",
	Plus:               "Plus",
	Minus:              "Minus",
	Star:               "Star",
	Slash:              "Slash",
	LParen:             "LParen",
	RParen:             "RParen",
	Identifier:         "Identifier",
	If:                 "If",
	While:              "While",
	For:                "For",
	String:             "String",
	LBrace:             "LBrace",
	RBrace:             "RBrace",
	Assignment:         "Assignment",
	Let:                "Let",
	Semicolon:          "Semicolon",
	Function:           "Function",
	Comma:              "Comma",
	Return:             "Return",
	Class:              "Class",
	Equal:              "Equal",
	NotEqual:           "NotEqual",
	StrictEqual:        "StrictEqual",
	LessThan:           "LessThan",
	GreaterThan:        "GreaterThan",
	LessThanOrEqual:    "LessThanOrEqual",
	GreaterThanOrEqual: "GreaterThanOrEqual",
	Not:                "Not",
	And:                "And",
	Or:                 "Or",
	LogicalAnd:         "LogicalAnd",
	LogicalOr:          "LogicalOr",
	DoubleQuote:        "DoubleQuote",
	Period:             "Period",
	LBracket:           "LBracket",
	RBracket:           "RBracket",
	This:               "This",
	True:               "True",
	False:              "False",
	SingleLineComment:  "SingleLineComment",
	MultiLineComment:   "MultiLineComment",
	JSDocComment:       "JSDocComment",
	Const:              "Const",
}

// Valid reports whether k belongs to the closed enumeration.
func (k Kind) Valid() bool { return k < numKinds }

func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	if k == Start {
		return "Start"
	}
	return "Kind(?)"
}

// IsComment reports whether k is one of the comment kinds.
func (k Kind) IsComment() bool {
	switch k {
	case SingleLineComment, MultiLineComment, JSDocComment:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether k is produced from the keyword table.
func (k Kind) IsKeyword() bool {
	switch k {
	case If, While, For, Let, Const, Function, Return, Class, This, True, False:
		return true
	default:
		return false
	}
}

// IsPunct reports whether k is an operator or punctuation kind.
func (k Kind) IsPunct() bool {
	switch k {
	case Plus, Minus, Star, Slash, LParen, RParen, LBrace, RBrace, Assignment, Semicolon, Comma,
		Equal, NotEqual, StrictEqual, LessThan, GreaterThan, LessThanOrEqual, GreaterThanOrEqual,
		Not, And, Or, LogicalAnd, LogicalOr, DoubleQuote, Period, LBracket, RBracket:
		return true
	default:
		return false
	}
}

// Kinds returns every kind of the enumeration in ordinal order.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds)
	for k := EOF; k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}
