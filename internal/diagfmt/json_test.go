package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"kappa/internal/diag"
	"kappa/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("let a = 1;\nlet x = \"unterminated\n")
	fileID := fs.AddVirtual("test.js", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevWarning,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 19, End: 32},
		"unterminated string literal",
	))

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
	})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got count=%d len=%d", output.Count, len(output.Diagnostics))
	}

	d := output.Diagnostics[0]
	if d.Severity != "WARNING" {
		t.Errorf("severity = %s, want WARNING", d.Severity)
	}
	if d.Code != "LEX1002" {
		t.Errorf("code = %s, want LEX1002", d.Code)
	}
	want := LocationJSON{File: "test.js", StartByte: 19, EndByte: 32, StartLine: 2, StartCol: 9, EndLine: 2, EndCol: 22}
	if d.Location != want {
		t.Errorf("location = %+v, want %+v", d.Location, want)
	}
}

func TestJSONNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("n.js", []byte("let x 5;"))

	bag := diag.NewBag(4)
	d := diag.New(diag.SevError, diag.SynUnexpectedToken, source.Span{File: fileID, Start: 5, End: 7}, "expected token of kind Semicolon, got Number")
	d = d.WithNote(source.Span{File: fileID, Start: 0, End: 3}, "declaration starts here")
	bag.Add(d)

	for _, include := range []bool{false, true} {
		output := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludeNotes: include})
		got := len(output.Diagnostics[0].Notes)
		want := 0
		if include {
			want = 1
		}
		if got != want {
			t.Fatalf("IncludeNotes=%v: notes = %d, want %d", include, got, want)
		}
	}
}

func TestJSONWithoutPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("p.js", []byte("let x = 1;"))
	bag := diag.NewBag(4)
	bag.Add(diag.New(diag.SevInfo, diag.SynUnexpectedTopLevel, source.Span{File: fileID, Start: 4, End: 5}, "skipped"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	if bytes.Contains(buf.Bytes(), []byte("start_line")) {
		t.Fatalf("positions leaked into output:\n%s", buf.String())
	}
}

func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("m.js", []byte("a b c d e"))
	bag := diag.NewBag(0)
	for i := range uint32(5) {
		bag.Add(diag.New(diag.SevInfo, diag.SynUnexpectedTopLevel, source.Span{File: fileID, Start: 2 * i, End: 2*i + 1}, "skipped"))
	}

	output := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 3})
	if output.Count != 3 {
		t.Fatalf("count = %d, want 3", output.Count)
	}
}

func TestJSONUnknownFile(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: 7}, "boom"))

	output := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludePositions: true})
	if got := output.Diagnostics[0].Location.File; got != "<unknown>" {
		t.Fatalf("file = %q, want <unknown>", got)
	}
}

func TestFormatDiagnosticsJSON(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("f.js", []byte("/"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.LexUnexpectedSlash, source.Span{File: fileID, Start: 0, End: 1}, "unexpected '/'"))

	var buf bytes.Buffer
	if err := FormatDiagnosticsJSON(&buf, bag, fs); err != nil {
		t.Fatalf("FormatDiagnosticsJSON: %v", err)
	}
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	loc := output.Diagnostics[0].Location
	if loc.File != "f.js" || loc.StartLine != 1 || loc.StartCol != 1 {
		t.Fatalf("location = %+v", loc)
	}
}
