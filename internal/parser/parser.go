package parser

import (
	"fmt"

	"kappa/internal/ast"
	"kappa/internal/diag"
	"kappa/internal/lexer"
	"kappa/internal/source"
	"kappa/internal/token"

	"fortio.org/safecast"
)

type Options struct {
	// Reporter получает нефатальные диагностики парсера и лексера; может быть nil.
	Reporter diag.Reporter
	// MaxDiagnostics ограничивает число диагностик от парсера; 0 — без лимита.
	MaxDiagnostics uint
	reported       uint
}

// Enough - проверить, достигли ли мы максимального количества диагностик
func (o *Options) Enough() bool {
	if o.MaxDiagnostics == 0 {
		return false
	}
	return o.reported >= o.MaxDiagnostics
}

// Parser — состояние парсера на один файл. Одноразовый: Parse вызывается один раз.
type Parser struct {
	lx      *lexer.Lexer
	file    *source.File
	opts    Options
	cur     token.Token // lookahead
	prevEnd uint32      // конец последнего съеденного токена
}

func New(file *source.File, opts Options) *Parser {
	return &Parser{
		lx:   lexer.New(file, lexer.Options{Reporter: opts.Reporter}),
		file: file,
		opts: opts,
		cur:  token.Token{Kind: token.Start},
	}
}

// ParseString разбирает строку из памяти без репортера.
func ParseString(src string) (*ast.Program, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<input>", []byte(src))
	return New(fs.Get(id), Options{}).Parse()
}

// Parse — основной цикл верхнего уровня: пока не EOF, разбираем let-объявления,
// остальные токены пропускаем. Любая ошибка лексера или expect прерывает разбор,
// программа в этом случае не возвращается.
func (p *Parser) Parse() (*ast.Program, error) {
	size, err := safecast.Conv[uint32](len(p.file.Content))
	if err != nil {
		return nil, fmt.Errorf("source too large: %w", err)
	}
	prog := &ast.Program{
		Node: ast.Node{Start: 0, End: size},
		Body: make([]ast.Statement, 0),
	}

	if err := p.advance(); err != nil {
		return nil, err
	}
	for !p.at(token.EOF) {
		if p.at(token.Let) {
			decl, err := p.parseVariableDeclarationStatement()
			if err != nil {
				return nil, err
			}
			prog.Body = append(prog.Body, decl)
			continue
		}
		if !p.cur.IsComment() {
			p.info(diag.SynUnexpectedTopLevel, p.cur.Span, fmt.Sprintf("skipping %s at top level", p.cur.Kind))
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return prog, nil
}
