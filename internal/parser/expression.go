package parser

import (
	"kappa/internal/ast"
	"kappa/internal/token"
)

// parseExpression — пока только строковые и числовые литералы.
// false означает "выражения здесь нет"; токен при этом не съедается.
func (p *Parser) parseExpression() (ast.Expression, bool, error) {
	node := p.startNode()
	tok := p.cur

	switch tok.Kind {
	case token.String:
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		return &ast.Literal{
			Node:  p.finishNode(node),
			Value: tok.Text,
			Type:  ast.StringLiteral,
		}, true, nil

	case token.Number:
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		v, _ := tok.Value.Number()
		return &ast.Literal{
			Node:  p.finishNode(node),
			Value: v,
			Type:  ast.NumericLiteral,
		}, true, nil
	}
	return nil, false, nil
}
