package parser

import (
	"kappa/internal/ast"
	"kappa/internal/diag"
	"kappa/internal/token"
)

// parseVariableDeclarationStatement:
//
//	let x = init;
//	let x;
//
// Диапазон объявления не включает ни "let", ни ';'.
func (p *Parser) parseVariableDeclarationStatement() (*ast.VariableDeclaration, error) {
	if err := p.expect(token.Let); err != nil {
		return nil, err
	}
	decl, err := p.parseVariableDeclaration()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseVariableDeclaration — BindingIdentifier ("=" Expression)?
// Объявление и его единственный декларатор делят один диапазон.
func (p *Parser) parseVariableDeclaration() (*ast.VariableDeclaration, error) {
	node := p.startNode()
	id, err := p.parseBindingIdentifier()
	if err != nil {
		return nil, err
	}

	var init ast.Expression
	assignTok := p.cur
	hasInit, err := p.eat(token.Assignment)
	if err != nil {
		return nil, err
	}
	if hasInit {
		expr, ok, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if ok {
			init = expr
		} else {
			p.info(diag.SynExpectExpression, assignTok.Span, "expected string or number after '='; initializer left empty")
		}
	}

	declarator := &ast.VariableDeclarator{
		Node: p.finishNode(node),
		ID:   id,
		Init: init,
	}
	return &ast.VariableDeclaration{
		Node:         p.finishNode(node),
		Declarations: []*ast.VariableDeclarator{declarator},
		Kind:         ast.DeclLet,
	}, nil
}

func (p *Parser) parseBindingIdentifier() (*ast.BindingIdentifier, error) {
	node := p.startNode()
	tok := p.cur
	if err := p.expect(token.Identifier); err != nil {
		return nil, err
	}
	return &ast.BindingIdentifier{
		Node: p.finishNode(node),
		Name: tok.Text,
	}, nil
}
