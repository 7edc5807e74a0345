package diagfmt

import (
	"fmt"
	"io"
	"strconv"

	"kappa/internal/ast"
	"kappa/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

// FormatASTTree печатает дерево с ветками ├─/└─, у каждого узла позиция l:c-l:c.
func FormatASTTree(w io.Writer, prog *ast.Program, file source.FileID, fs *source.FileSet) error {
	if prog == nil {
		return fmt.Errorf("nil program")
	}
	root := buildTree(prog, file, fs)
	if _, err := fmt.Fprintln(w, root.label); err != nil {
		return err
	}
	return renderChildren(w, root, "")
}

// buildTree собирает treeNode через ast.Inspect: стек повторяет глубину обхода.
func buildTree(prog *ast.Program, file source.FileID, fs *source.FileSet) *treeNode {
	var root *treeNode
	var stack []*treeNode
	ast.Inspect(prog, func(e ast.Entity) bool {
		if e == nil {
			stack = stack[:len(stack)-1]
			return false
		}
		n := &treeNode{label: fmt.Sprintf("%s [%s]", entityLabel(e), formatRange(e.Pos(), file, fs))}
		if len(stack) == 0 {
			root = n
		} else {
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, n)
		}
		stack = append(stack, n)
		return true
	})
	return root
}

func entityLabel(e ast.Entity) string {
	switch n := e.(type) {
	case *ast.Program:
		return "Program"
	case *ast.VariableDeclaration:
		return "VariableDeclaration kind=" + string(n.Kind)
	case *ast.VariableDeclarator:
		if n.Init == nil {
			return "VariableDeclarator (no init)"
		}
		return "VariableDeclarator"
	case *ast.BindingIdentifier:
		return "BindingIdentifier " + strconv.Quote(n.Name)
	case *ast.Literal:
		return fmt.Sprintf("%s %s", n.Type, formatExpr(n))
	default:
		return fmt.Sprintf("%T", e)
	}
}

func renderChildren(w io.Writer, n *treeNode, prefix string) error {
	for i, child := range n.children {
		branch, next := "├─ ", "│  "
		if i == len(n.children)-1 {
			branch, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, child.label); err != nil {
			return err
		}
		if err := renderChildren(w, child, prefix+next); err != nil {
			return err
		}
	}
	return nil
}
