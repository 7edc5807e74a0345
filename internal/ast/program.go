package ast

// Program — корень дерева; диапазон всегда [0, len(source)).
type Program struct {
	Node `json:"node"`
	Body []Statement `json:"body"`
}

type DeclKind string

const DeclLet DeclKind = "let"

// VariableDeclaration covers "let x = init" without the keyword and the
// trailing semicolon. It always holds exactly one declarator today.
type VariableDeclaration struct {
	Node         `json:"node"`
	Declarations []*VariableDeclarator `json:"declarations"`
	Kind         DeclKind              `json:"kind"`
}

func (*VariableDeclaration) stmtNode() {}

type VariableDeclarator struct {
	Node `json:"node"`
	ID   *BindingIdentifier `json:"id"`
	// Init is nil when there is no initializer.
	Init Expression `json:"init,omitempty"`
}

// InitExpr returns the initializer, if any.
func (d *VariableDeclarator) InitExpr() (Expression, bool) {
	if d == nil || d.Init == nil {
		return nil, false
	}
	return d.Init, true
}

type BindingIdentifier struct {
	Node `json:"node"`
	Name string `json:"name"`
}
