package diag

import (
	"fmt"
	"sort"
	"strings"

	"kappa/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShort renders diagnostics into a stable, single-line-per-entry form:
//
//	path:line:col: SEVERITY CODE: message
//
// Entries are sorted by path and position. Notes follow their diagnostic as
// "note" lines when includeNotes is set. Multi-line messages are folded.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]shortDiagnostic, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		rendered = append(rendered, toShort(fs, d.Severity.String(), d.Code.ID(), d.Primary, d.Message))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			rendered = append(rendered, toShort(fs, "NOTE", d.Code.ID(), n.Span, n.Msg))
		}
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		return di.Column < dj.Column
	})

	var sb strings.Builder
	for _, r := range rendered {
		fmt.Fprintf(&sb, "%s:%d:%d: %s %s: %s\n", r.Path, r.Line, r.Column, r.Severity, r.Code, r.Message)
	}
	return sb.String()
}

func toShort(fs *source.FileSet, sev, code string, sp source.Span, msg string) shortDiagnostic {
	path := "<unknown>"
	var pos source.LineCol
	if int(sp.File) < fs.Len() {
		path = fs.Get(sp.File).Path
		pos, _ = fs.Resolve(sp)
	}
	return shortDiagnostic{
		Severity: sev,
		Code:     code,
		Path:     path,
		Line:     pos.Line,
		Column:   pos.Col,
		Message:  strings.ReplaceAll(msg, "\n", " "),
	}
}
