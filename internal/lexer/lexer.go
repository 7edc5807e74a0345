package lexer

import (
	"kappa/internal/diag"
	"kappa/internal/source"
	"kappa/internal/token"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	lower  cases.Caser
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		lower:  cases.Lower(language.Und),
	}
}

// FromString лексит строку из памяти как виртуальный файл без репортера.
func FromString(src string) *Lexer {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<input>", []byte(src))
	return New(fs.Get(id), Options{})
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File { return lx.file }

// Next сканирует ровно один токен от текущей позиции.
// Пробелы и неизвестные символы пропускаются, но остаются внутри Span токена.
// После EOF всегда возвращает EOF. Ошибка возможна только на одиночном '/'.
func (lx *Lexer) Next() (token.Token, error) {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		r := lx.bumpLower()
		switch {
		case r == '/':
			return lx.scanSlash(start)
		case r == '"':
			return lx.scanString(start), nil
		case isDec(r):
			return lx.scanNumber(start), nil
		case isLowerLetter(r):
			return lx.scanIdentOrKeyword(start, r), nil
		}
		if k, ok := lx.scanOperatorOrPunct(r); ok {
			return lx.emit(k, start), nil
		}
		// пробелы, '!', '@', заглавные после свёртки и прочее — пропускаем
	}
	return lx.emit(token.EOF, start), nil
}

// emit строит токен по диапазону [start, cursor); Text — обрезанный срез.
func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	tok := token.Token{
		Kind: k,
		Span: sp,
		Text: trimSpace(lx.file.Text(sp)),
	}
	switch {
	case k == token.EOF, k.IsPunct():
	default:
		tok.Value = token.StringValue(tok.Text)
	}
	return tok
}

func (lx *Lexer) fail(code diag.Code, start Mark, format string, args ...any) (token.Token, error) {
	return token.Token{}, diag.Errorf(code, lx.cursor.SpanFrom(start), format, args...)
}
