package ast

import "fmt"

// Visitor's Visit method is invoked for each entity encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children
// with w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(e Entity) (w Visitor)
}

// Walk traverses the tree in depth-first order.
func Walk(v Visitor, e Entity) {
	if v = v.Visit(e); v == nil {
		return
	}

	switch n := e.(type) {
	case *Program:
		for _, st := range n.Body {
			Walk(v, st)
		}
	case *VariableDeclaration:
		for _, d := range n.Declarations {
			Walk(v, d)
		}
	case *VariableDeclarator:
		if n.ID != nil {
			Walk(v, n.ID)
		}
		if n.Init != nil {
			Walk(v, n.Init)
		}
	case *BindingIdentifier, *Literal:
		// листья
	default:
		panic(fmt.Sprintf("ast.Walk: unexpected entity type %T", e))
	}

	v.Visit(nil)
}

type inspector func(Entity) bool

func (f inspector) Visit(e Entity) Visitor {
	if f(e) {
		return f
	}
	return nil
}

// Inspect traverses the tree in depth-first order: it starts by calling
// f(e); if f returns true, Inspect invokes f recursively for each child,
// followed by a call of f(nil).
func Inspect(e Entity, f func(Entity) bool) {
	Walk(inspector(f), e)
}
