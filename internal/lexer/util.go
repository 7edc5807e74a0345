package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ===== Работа с рунами поверх Cursor =====

// bumpLower читает руну под курсором, продвигает курсор за неё и
// возвращает её в нижнем регистре. Для многорунных отображений берётся первая руна.
func (lx *Lexer) bumpLower() rune {
	rest := lx.cursor.Rest()
	b := rest[0]
	if b < utf8.RuneSelf { // fast-path ASCII
		lx.cursor.Bump()
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		return rune(b)
	}
	r, sz := utf8.DecodeRune(rest)
	lx.cursor.Advance(sz)
	if r == utf8.RuneError {
		return r
	}
	mapped := lx.lower.String(string(r))
	lr, _ := utf8.DecodeRuneInString(mapped)
	return lr
}

// ===== Классификаторы =====

func isDec(r rune) bool         { return r >= '0' && r <= '9' }
func isLowerLetter(r rune) bool { return r >= 'a' && r <= 'z' }

func isNumberContinue(b byte) bool {
	return (b >= '0' && b <= '9') || b == '.' || b == '_'
}

// isSpace — набор пробельных символов, которые отрезает trim в JavaScript:
// Unicode White_Space без U+0085 и с U+FEFF.
func isSpace(r rune) bool {
	switch r {
	case '\uFEFF':
		return true
	case '\u0085':
		return false
	}
	return unicode.Is(unicode.White_Space, r)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// ===== Жадное сопоставление операторов =====

// try1 "съедает" байт, если совпадает; на несовпадении курсор не двигается.
func (lx *Lexer) try1(b byte) bool {
	return lx.cursor.Eat(b)
}
