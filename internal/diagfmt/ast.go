package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"kappa/internal/ast"
	"kappa/internal/source"
)

// FormatASTJSON печатает дерево в форме node/body/declarations/... с отступом в два пробела.
func FormatASTJSON(w io.Writer, prog *ast.Program) error {
	if prog == nil {
		return fmt.Errorf("nil program")
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(prog)
}

// FormatASTPretty печатает программу обратно в исходный вид: по оператору на строку,
// справа позиция оператора.
func FormatASTPretty(w io.Writer, prog *ast.Program, file source.FileID, fs *source.FileSet) error {
	if prog == nil {
		return fmt.Errorf("nil program")
	}
	for _, st := range prog.Body {
		line := formatStmt(st)
		if _, err := fmt.Fprintf(w, "%-40s // %s\n", line, formatRange(st.Pos(), file, fs)); err != nil {
			return err
		}
	}
	return nil
}

func formatStmt(st ast.Statement) string {
	switch s := st.(type) {
	case *ast.VariableDeclaration:
		var sb strings.Builder
		sb.WriteString(string(s.Kind))
		sb.WriteByte(' ')
		for i, d := range s.Declarations {
			if i > 0 {
				sb.WriteString(", ")
			}
			if d.ID != nil {
				sb.WriteString(d.ID.Name)
			}
			if init, ok := d.InitExpr(); ok {
				sb.WriteString(" = ")
				sb.WriteString(formatExpr(init))
			}
		}
		sb.WriteByte(';')
		return sb.String()
	default:
		return fmt.Sprintf("<%T>", st)
	}
}

func formatExpr(e ast.Expression) string {
	switch x := e.(type) {
	case *ast.Literal:
		if s, ok := x.Str(); ok {
			return s
		}
		if f, ok := x.Number(); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return fmt.Sprint(x.Value)
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

// formatRange — "l:c-l:c", либо байтовый диапазон, если файла нет.
func formatRange(n ast.Node, file source.FileID, fs *source.FileSet) string {
	if lookupFile(fs, file) == nil {
		return fmt.Sprintf("%d..%d", n.Start, n.End)
	}
	start, end := fs.Resolve(n.Span(file))
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}
