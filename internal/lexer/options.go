package lexer

import (
	"kappa/internal/diag"
	"kappa/internal/source"
)

type Options struct {
	// Reporter получает нефатальные предупреждения; может быть nil — тогда они игнорируются.
	Reporter diag.Reporter
}

func (lx *Lexer) warn(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportWarning(lx.opts.Reporter, code, sp, msg).Emit()
}
