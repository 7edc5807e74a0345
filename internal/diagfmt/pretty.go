package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"kappa/internal/diag"
	"kappa/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note *color.Color
	path, gutter, mark    *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		mark:   color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.path, p.gutter, p.mark} {
		// явный выбор, иначе fatih/color сам смотрит на stdout
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if err := prettyOne(w, d, fs, opts, pal); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) error {
	sevColor := pal.severity(d.Severity)
	_, err := fmt.Fprintf(w, "%s: %s: %s\n",
		pal.path.Sprint(location(d.Primary, fs, opts.PathMode)),
		sevColor.Sprintf("%s %s", d.Severity, d.Code.ID()),
		d.Message,
	)
	if err != nil {
		return err
	}

	if f := lookupFile(fs, d.Primary.File); f != nil {
		if err := snippet(w, f, fs, d.Primary, opts, pal, sevColor); err != nil {
			return err
		}
	}

	if !opts.ShowNotes {
		return nil
	}
	for _, n := range d.Notes {
		_, err := fmt.Fprintf(w, "  %s %s: %s\n",
			pal.note.Sprint("= note:"),
			location(n.Span, fs, opts.PathMode),
			n.Msg,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func location(sp source.Span, fs *source.FileSet, mode PathMode) string {
	f := lookupFile(fs, sp.File)
	if f == nil {
		return "<unknown>"
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(f, fs, mode), start.Line, start.Col)
}

func snippet(w io.Writer, f *source.File, fs *source.FileSet, sp source.Span, opts PrettyOpts, pal palette, markColor *color.Color) error {
	start, end := fs.Resolve(sp)
	lineCount := uint32(len(f.LineIdx)) + 1

	ctx := uint32(max(opts.Context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := min(start.Line+ctx, lineCount)
	gutterWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		raw := f.GetLine(ln)
		text := clip(expandTabs(raw), opts.Width)
		if _, err := fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), text); err != nil {
			return err
		}
		if ln != start.Line {
			continue
		}

		from := min(int(start.Col-1), len(raw))
		to := len(raw)
		if end.Line == start.Line {
			to = max(min(int(end.Col-1), len(raw)), from)
		}
		pad := runewidth.StringWidth(expandTabs(raw[:from]))
		width := max(runewidth.StringWidth(expandTabs(raw[from:to])), 1)
		if opts.Width > 0 {
			if pad >= int(opts.Width) {
				continue
			}
			width = max(min(width, int(opts.Width)-pad), 1)
		}

		_, err := fmt.Fprintf(w, "%s %s%s\n",
			pal.gutter.Sprintf("%*s |", gutterWidth, ""),
			strings.Repeat(" ", pad),
			markColor.Sprint("^"+strings.Repeat("~", width-1)),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func clip(s string, width uint8) string {
	if width == 0 {
		return s
	}
	return runewidth.Truncate(s, int(width), "…")
}
