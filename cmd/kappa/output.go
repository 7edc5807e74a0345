package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"kappa/internal/diag"
	"kappa/internal/diagfmt"
	"kappa/internal/source"
)

// printDiagnostics выводит bag в stderr в формате output.diagnostics,
// отсеивая всё ниже output.min_severity (под --quiet — ниже WARNING).
func (s *settings) printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if bag.Len() == 0 {
		return nil
	}
	bag = atLeast(bag, s.minSeverity())
	if bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	w := cmd.ErrOrStderr()
	switch s.cfg.Output.Diagnostics {
	case "short":
		_, err := io.WriteString(w, diag.FormatShort(bag.Items(), fs, true))
		return err
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeAuto,
			IncludeNotes:     true,
		})
	}
	opts := diagfmt.PrettyOpts{
		Color:     s.useColor(os.Stderr),
		Context:   1,
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
	}
	return diagfmt.Pretty(w, bag, fs, opts)
}

// atLeast оставляет диагностики не ниже min; при пороге INFO bag возвращается как есть.
func atLeast(bag *diag.Bag, min diag.Severity) *diag.Bag {
	if min == diag.SevInfo {
		return bag
	}
	out := diag.NewBag(0)
	for _, d := range bag.Items() {
		if d.Severity.AtLeast(min) {
			out.Add(d)
		}
	}
	return out
}
