package parser

import (
	"kappa/internal/ast"
	"kappa/internal/diag"
	"kappa/internal/source"
	"kappa/internal/token"
)

func (p *Parser) at(k token.Kind) bool {
	return p.cur.Kind == k
}

// advance — безусловно тянет следующий токен; prevEnd сдвигается на конец старого lookahead.
func (p *Parser) advance() error {
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	if p.cur.Kind != token.Start {
		p.prevEnd = p.cur.Span.End
	}
	p.cur = tok
	return nil
}

// eat — съедает токен, если lookahead совпадает; иначе состояние не меняется.
func (p *Parser) eat(k token.Kind) (bool, error) {
	if !p.at(k) {
		return false, nil
	}
	return true, p.advance()
}

// expect — обязательный токен. Несовпадение фатально.
func (p *Parser) expect(k token.Kind) error {
	if p.at(k) {
		return p.advance()
	}
	return diag.Errorf(diag.SynUnexpectedToken, p.cur.Span, "expected token of kind %s, got %s", k, p.cur.Kind)
}

// startNode фиксирует начало lookahead на входе в правило.
func (p *Parser) startNode() ast.Node {
	return ast.Node{Start: p.cur.Span.Start}
}

// finishNode закрывает узел концом последнего съеденного токена.
func (p *Parser) finishNode(n ast.Node) ast.Node {
	n.End = p.prevEnd
	return n
}

// репортует info; без репортера ничего не делает
func (p *Parser) info(code diag.Code, sp source.Span, msg string) {
	if p.opts.Reporter == nil || p.opts.Enough() {
		return
	}
	p.opts.reported++
	diag.ReportInfo(p.opts.Reporter, code, sp, msg).Emit()
}
