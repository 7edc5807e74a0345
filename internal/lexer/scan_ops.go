package lexer

import (
	"kappa/internal/token"
)

// scanOperatorOrPunct разбирает оператор, первый символ которого r уже съеден.
// Жадность: '=' → '==' → '===', '<'/'>' с необязательным '=', '&&', '||'.
// Лишний lookahead на несовпадении не потребляется.
func (lx *Lexer) scanOperatorOrPunct(r rune) (token.Kind, bool) {
	switch r {
	case '+':
		return token.Plus, true
	case '-':
		return token.Minus, true
	case '*':
		return token.Star, true
	case '(':
		return token.LParen, true
	case ')':
		return token.RParen, true
	case '{':
		return token.LBrace, true
	case '}':
		return token.RBrace, true
	case '[':
		return token.LBracket, true
	case ']':
		return token.RBracket, true
	case ';':
		return token.Semicolon, true
	case ',':
		return token.Comma, true
	case '.':
		return token.Period, true
	case '=':
		if !lx.try1('=') {
			return token.Assignment, true
		}
		if lx.try1('=') {
			return token.StrictEqual, true
		}
		return token.Equal, true
	case '<':
		if lx.try1('=') {
			return token.LessThanOrEqual, true
		}
		return token.LessThan, true
	case '>':
		if lx.try1('=') {
			return token.GreaterThanOrEqual, true
		}
		return token.GreaterThan, true
	case '&':
		if lx.try1('&') {
			return token.LogicalAnd, true
		}
		return token.And, true
	case '|':
		if lx.try1('|') {
			return token.LogicalOr, true
		}
		return token.Or, true
	}
	return token.EOF, false
}
