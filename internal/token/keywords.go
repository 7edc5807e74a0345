package token

var keywords = map[string]Kind{
	"if":       If,
	"while":    While,
	"for":      For,
	"let":      Let,
	"const":    Const,
	"function": Function,
	"return":   Return,
	"class":    Class,
	"this":     This,
	"true":     True,
	"false":    False,
}

const (
	// MinKeywordLen and MaxKeywordLen bound the words checked against the keyword table.
	// Shorter or longer words are always identifiers.
	MinKeywordLen = 2
	MaxKeywordLen = 10
)

// LookupKeyword returns the keyword kind for word.
// Lookup is exact; case folding of the first character is the lexer's job.
func LookupKeyword(word string) (Kind, bool) {
	if len(word) < MinKeywordLen || len(word) > MaxKeywordLen {
		return Identifier, false
	}
	k, ok := keywords[word]
	if !ok {
		return Identifier, false
	}
	return k, true
}
