package lexer

import (
	"kappa/internal/diag"
	"kappa/internal/source"
)

// ReporterAdapter отдаёт лексеру и парсеру один репортер поверх diag.Bag.
// Предупреждения лексера (LEX####) с тем же кодом и началом диапазона
// попадают в bag один раз; остальные диагностики проходят без изменений.
type ReporterAdapter struct {
	Bag *diag.Bag
}

// Reporter returns a fresh diag.Reporter bound to the adapter's bag.
func (r *ReporterAdapter) Reporter() diag.Reporter {
	return &lexWarningReporter{
		next: diag.BagReporter{Bag: r.Bag},
		seen: make(map[lexWarningKey]struct{}),
	}
}

type lexWarningKey struct {
	code  diag.Code
	file  source.FileID
	start uint32
}

type lexWarningReporter struct {
	next diag.Reporter
	seen map[lexWarningKey]struct{}
}

func (r *lexWarningReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	if code.IsLex() && sev == diag.SevWarning {
		key := lexWarningKey{code: code, file: primary.File, start: primary.Start}
		if _, ok := r.seen[key]; ok {
			return
		}
		r.seen[key] = struct{}{}
	}
	r.next.Report(code, sev, primary, msg, notes)
}
