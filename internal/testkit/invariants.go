package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"kappa/internal/ast"
	"kappa/internal/source"
)

// CheckRangeInvariants runs a minimal set of range invariants on a parsed program:
// 1) program range is exactly [0, len(content))
// 2) every node has Start <= End and lies inside its parent
// 3) top-level statements appear in source order and do not overlap
// 4) binding identifiers are non-empty
func CheckRangeInvariants(prog *ast.Program, sf *source.File) error {
	if prog == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	// 1) program range
	if prog.Start != 0 || prog.End != lenContent {
		return fmt.Errorf("program range %d-%d, want 0-%d", prog.Start, prog.End, lenContent)
	}

	// 2) вложенность через стек родителей
	var (
		stack    []ast.Entity
		firstErr error
	)
	ast.Inspect(prog, func(e ast.Entity) bool {
		if firstErr != nil {
			return false
		}
		if e == nil {
			stack = stack[:len(stack)-1]
			return false
		}
		n := e.Pos()
		if n.Start > n.End {
			firstErr = fmt.Errorf("%T range is inverted: %d-%d", e, n.Start, n.End)
			return false
		}
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			if !parent.Pos().Contains(n) {
				firstErr = fmt.Errorf("%T range %d-%d is outside %T range %d-%d",
					e, n.Start, n.End, parent, parent.Pos().Start, parent.Pos().End)
				return false
			}
		}
		if id, ok := e.(*ast.BindingIdentifier); ok && id.Len() == 0 {
			firstErr = fmt.Errorf("empty binding identifier range at %d", id.Start)
			return false
		}
		stack = append(stack, e)
		return true
	})
	if firstErr != nil {
		return firstErr
	}

	// 3) statements ordered
	var prevEnd uint32
	for i, st := range prog.Body {
		n := st.Pos()
		if n.Start < prevEnd {
			return fmt.Errorf("statement %d starts at %d before previous end %d", i, n.Start, prevEnd)
		}
		prevEnd = n.End
	}
	return nil
}
