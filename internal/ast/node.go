package ast

import "kappa/internal/source"

// Node — позиция сущности в исходнике, полуоткрытый диапазон байт.
type Node struct {
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

// Pos returns the node range; every entity gets it through embedding.
func (n Node) Pos() Node { return n }

// Span переводит диапазон в source.Span конкретного файла.
func (n Node) Span(file source.FileID) source.Span {
	return source.Span{File: file, Start: n.Start, End: n.End}
}

func (n Node) Len() uint32 {
	if n.End < n.Start {
		return 0
	}
	return n.End - n.Start
}

// Contains reports whether other lies within n.
func (n Node) Contains(other Node) bool {
	return n.Start <= other.Start && other.End <= n.End
}

// Entity — любой узел дерева.
type Entity interface {
	Pos() Node
}

// Statement is a top-level statement. Only *VariableDeclaration for now.
type Statement interface {
	Entity
	stmtNode()
}

// Expression is an initializer expression. Only *Literal for now.
type Expression interface {
	Entity
	exprNode()
}
