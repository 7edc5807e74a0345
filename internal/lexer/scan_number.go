package lexer

import (
	"math"
	"strconv"

	"kappa/internal/diag"
	"kappa/internal/token"
)

// scanNumber: первая цифра уже съедена. Хвост — любые [0-9._] без проверки
// расположения; значение — самый длинный префикс вида digits('.'digits*)?,
// как у parseFloat. Если префикс короче текста — предупреждение LEX1004.
func (lx *Lexer) scanNumber(start Mark) token.Token {
	for isNumberContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Number, start)

	prefix := numberPrefix(tok.Text)
	if prefix == "" {
		// перед цифрами в тексте остались пропущенные символы
		tok.Value = token.NumberValue(math.NaN())
	} else {
		// префикс всегда синтаксически валиден; при переполнении ParseFloat вернёт +Inf
		v, _ := strconv.ParseFloat(prefix, 64)
		tok.Value = token.NumberValue(v)
	}
	if len(prefix) != len(tok.Text) {
		lx.warn(diag.LexBadNumber, tok.Span, "malformed number literal "+strconv.Quote(tok.Text))
	}
	return tok
}

// numberPrefix возвращает самый длинный префикс s вида digits('.'digits*)?.
func numberPrefix(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return ""
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	return s[:i]
}
