package lexer

import (
	"bytes"

	"kappa/internal/diag"
	"kappa/internal/token"
)

var blockCommentEnd = []byte("*/")

// scanSlash: '/' уже съеден.
//   - "//" до '\n' (не включая) → SingleLineComment
//   - "/*" до первого "*/" включительно → MultiLineComment
//   - "/**" → JSDocComment; третий '*' только подсматриваем, поэтому "/**/" тоже JSDoc
//   - одиночный '/' — фатальная ошибка
func (lx *Lexer) scanSlash(start Mark) (token.Token, error) {
	switch {
	case lx.cursor.Eat('/'):
		if i := bytes.IndexByte(lx.cursor.Rest(), '\n'); i >= 0 {
			lx.cursor.Advance(i)
		} else {
			lx.cursor.Advance(len(lx.cursor.Rest()))
		}
		return lx.emit(token.SingleLineComment, start), nil

	case lx.cursor.Eat('*'):
		kind := token.MultiLineComment
		if lx.cursor.Peek() == '*' {
			kind = token.JSDocComment
		}
		rest := lx.cursor.Rest()
		if i := bytes.Index(rest, blockCommentEnd); i >= 0 {
			lx.cursor.Advance(i + len(blockCommentEnd))
			return lx.emit(kind, start), nil
		}
		lx.cursor.Advance(len(rest))
		tok := lx.emit(kind, start)
		lx.warn(diag.LexUnterminatedBlockComment, tok.Span, "unterminated block comment")
		return tok, nil
	}
	return lx.fail(diag.LexUnexpectedSlash, start, "unexpected '/': division is not supported")
}
