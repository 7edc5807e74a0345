package lexer

import (
	"kappa/internal/token"
)

// scanIdentOrKeyword: первая буква first уже съедена и приведена к нижнему регистру.
// Дальше берём только сырые байты a-z; цифры и '_' идентификатор не продолжают.
// Слово сверяется с таблицей ключевых слов; Text остаётся исходным срезом.
func (lx *Lexer) scanIdentOrKeyword(start Mark, first rune) token.Token {
	from := lx.cursor.Off
	for isLowerLetter(rune(lx.cursor.Peek())) {
		lx.cursor.Bump()
	}
	word := string(first) + string(lx.file.Content[from:lx.cursor.Off])

	kind, _ := token.LookupKeyword(word)
	return lx.emit(kind, start)
}
