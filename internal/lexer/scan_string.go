package lexer

import (
	"kappa/internal/diag"
	"kappa/internal/token"
)

// scanString: открывающая '"' уже съедена. Сканируем до следующей '"' включительно,
// escape-последовательностей нет. Незакрытая строка съедает всё до EOF.
func (lx *Lexer) scanString(start Mark) token.Token {
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() == '"' {
			return lx.emit(token.String, start)
		}
	}
	tok := lx.emit(token.String, start)
	lx.warn(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}
