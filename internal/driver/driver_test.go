package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"kappa/internal/ast"
	"kappa/internal/diag"
	"kappa/internal/observ"
	"kappa/internal/token"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.js", "let x = 1;")

	res, err := Tokenize(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []token.Kind{token.Let, token.Identifier, token.Assignment, token.Number, token.Semicolon, token.EOF}
	got := kinds(res.Tokens)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
	if res.Fatal != nil || res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
}

func TestTokenizeFatalSlash(t *testing.T) {
	res, err := TokenizeSource(context.Background(), "<stdin>", []byte("let a = 1 / 2;"), Options{})
	if err != nil {
		t.Fatalf("TokenizeSource: %v", err)
	}
	if res.Fatal == nil || res.Fatal.Code() != diag.LexUnexpectedSlash {
		t.Fatalf("fatal = %v, want LEX1006", res.Fatal)
	}
	if len(res.Tokens) != 4 {
		t.Fatalf("tokens before failure = %d, want 4", len(res.Tokens))
	}
	if !res.Bag.HasErrors() {
		t.Fatal("fatal error must be in the bag")
	}
}

func TestFatalSurvivesFullBag(t *testing.T) {
	// два предупреждения заполняют bag, ошибка всё равно должна попасть
	src := "let a = 1..2; let b = 3..4; /"
	res, err := TokenizeSource(context.Background(), "full.js", []byte(src), Options{MaxDiagnostics: 1})
	if err != nil {
		t.Fatalf("TokenizeSource: %v", err)
	}
	if res.Fatal == nil {
		t.Fatal("expected fatal error")
	}
	if !res.Bag.HasErrors() {
		t.Fatalf("bag lost the fatal error: %v", res.Bag.Items())
	}
}

func TestTokenizeCache(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	path := writeFile(t, dir, "s.js", "let s = 1.5;\nlet t = \"open")
	opts := Options{Cache: cache}

	first, err := Tokenize(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if first.Cached {
		t.Fatal("first run must miss the cache")
	}
	second, err := Tokenize(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if !second.Cached {
		t.Fatal("second run must hit the cache")
	}

	if len(first.Tokens) != len(second.Tokens) {
		t.Fatalf("token count %d vs %d", len(first.Tokens), len(second.Tokens))
	}
	for i := range first.Tokens {
		a, b := first.Tokens[i], second.Tokens[i]
		if a.Kind != b.Kind || a.Span != b.Span || a.Text != b.Text || a.Value != b.Value {
			t.Fatalf("token %d differs: %+v vs %+v", i, a, b)
		}
	}
	if first.Bag.Len() != 1 || second.Bag.Len() != 1 {
		t.Fatalf("warnings: %d vs %d, want 1", first.Bag.Len(), second.Bag.Len())
	}
	if second.Bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("restored code = %v", second.Bag.Items()[0].Code)
	}
}

func TestTokenizeCacheKeepsFatal(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Cache: cache}
	src := []byte("let a = /")
	if _, err := TokenizeSource(context.Background(), "f.js", src, opts); err != nil {
		t.Fatal(err)
	}
	res, err := TokenizeSource(context.Background(), "f.js", src, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Cached || res.Fatal == nil || res.Fatal.Code() != diag.LexUnexpectedSlash {
		t.Fatalf("cached=%v fatal=%v", res.Cached, res.Fatal)
	}
}

func TestMaxSourceBytes(t *testing.T) {
	path := writeFile(t, t.TempDir(), "big.js", strings.Repeat("let x = 1;\n", 10))

	_, err := Parse(context.Background(), path, Options{MaxSourceBytes: 16})
	de, ok := diag.AsError(err)
	if !ok || de.Code() != diag.IOSourceTooLarge {
		t.Fatalf("err = %v, want IO4002", err)
	}
	if _, err := ParseSource(context.Background(), "-", make([]byte, 32), Options{MaxSourceBytes: 16}); err == nil {
		t.Fatal("stdin input must respect the limit too")
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Tokenize(context.Background(), filepath.Join(t.TempDir(), "nope.js"), Options{})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestParse(t *testing.T) {
	timer := observ.NewTimer()
	path := writeFile(t, t.TempDir(), "p.js", "let x = 5;\nlet y = \"s\";\nfoo;")

	res, err := Parse(context.Background(), path, Options{Timer: timer})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Fatal != nil || res.Program == nil {
		t.Fatalf("fatal = %v", res.Fatal)
	}
	if len(res.Program.Body) != 2 {
		t.Fatalf("statements = %d, want 2", len(res.Program.Body))
	}
	// "foo" и ";" пропущены с INFO
	if res.Bag.Len() != 2 || res.Bag.HasWarnings() {
		t.Fatalf("diagnostics = %v", res.Bag.Items())
	}

	summary := timer.Summary()
	for _, phase := range []string{"load", "parse"} {
		if !strings.Contains(summary, phase) {
			t.Fatalf("timer summary lacks %q:\n%s", phase, summary)
		}
	}
}

func TestParseKeepsRawOffsets(t *testing.T) {
	src := "\ufefflet a = 1;\r\nlet b = 2;\r\n"
	path := writeFile(t, t.TempDir(), "crlf.js", src)

	for name, parse := range map[string]func() (*ParseResult, error){
		"file":  func() (*ParseResult, error) { return Parse(context.Background(), path, Options{}) },
		"stdin": func() (*ParseResult, error) { return ParseSource(context.Background(), "-", []byte(src), Options{}) },
	} {
		t.Run(name, func(t *testing.T) {
			res, err := parse()
			if err != nil || res.Fatal != nil {
				t.Fatalf("parse: %v %v", err, res.Fatal)
			}
			if res.Program.End != uint32(len(src)) {
				t.Fatalf("program end = %d, want %d", res.Program.End, len(src))
			}
			if len(res.Program.Body) != 2 {
				t.Fatalf("statements = %d", len(res.Program.Body))
			}
			second := res.Program.Body[1].(*ast.VariableDeclaration).Declarations[0]
			// BOM (3 байта) + "let a = 1;" + "\r\n" + "let" = 18
			if second.ID.Start != 18 || second.ID.End != 20 {
				t.Fatalf("second id range = %d-%d, want 18-20", second.ID.Start, second.ID.End)
			}
			if got := res.File.Text(second.ID.Span(res.File.ID)); got != " b" {
				t.Fatalf("id text = %q", got)
			}
		})
	}
}

func TestParseFatal(t *testing.T) {
	res, err := ParseSource(context.Background(), "<stdin>", []byte("let x 5;"), Options{})
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	if res.Program != nil {
		t.Fatal("program must be nil after a fatal error")
	}
	if res.Fatal == nil || res.Fatal.Code() != diag.SynUnexpectedToken {
		t.Fatalf("fatal = %v", res.Fatal)
	}
	if res.Fatal.Diag.Primary.Start != 5 || res.Fatal.Diag.Primary.End != 7 {
		t.Fatalf("span = %v", res.Fatal.Diag.Primary)
	}
}

func TestParseCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ParseSource(ctx, "x.js", []byte("let x = 1;"), Options{}); err == nil {
		t.Fatal("expected context error")
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) statuses(file string) []Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Status
	for _, ev := range s.events {
		if ev.File == file {
			out = append(out, ev.Status)
		}
	}
	return out
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.js", "let a = 1;")
	b := writeFile(t, dir, "b.kappa", "let b = \"two\";")
	writeFile(t, dir, "notes.txt", "let ignored = 0;")
	d := writeFile(t, dir, "sub/d.js", "let d = /")

	sink := &recordingSink{}
	fileSet, results, err := ParseDir(context.Background(), dir, Options{Jobs: 2, Progress: sink})
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if fileSet.Len() != 3 || len(results) != 3 {
		t.Fatalf("files = %d, results = %d, want 3", fileSet.Len(), len(results))
	}
	wantPaths := []string{a, b, d}
	for i, r := range results {
		if r.Path != wantPaths[i] {
			t.Fatalf("results[%d].Path = %s, want %s", i, r.Path, wantPaths[i])
		}
	}
	if results[0].Program == nil || results[1].Program == nil {
		t.Fatal("clean files must produce programs")
	}
	if results[2].Fatal == nil || results[2].Fatal.Code() != diag.LexUnexpectedSlash {
		t.Fatalf("d.js fatal = %v", results[2].Fatal)
	}

	for _, path := range wantPaths {
		st := sink.statuses(path)
		if len(st) != 3 || st[0] != StatusQueued || st[1] != StatusWorking {
			t.Fatalf("%s statuses = %v", path, st)
		}
	}
	if st := sink.statuses(d); st[2] != StatusError {
		t.Fatalf("d.js final status = %v", st[2])
	}
}

func TestParseDirExtensionsAndLoadFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.js", "let a = 1;")
	big := writeFile(t, dir, "big.mjs", strings.Repeat("let x = 1;", 20))
	small := writeFile(t, dir, "small.mjs", "let s = 2;")

	fileSet, results, err := ParseDir(context.Background(), dir, Options{
		Extensions:     []string{".mjs"},
		MaxSourceBytes: 64,
	})
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if len(results) != 2 || results[0].Path != big || results[1].Path != small {
		t.Fatalf("results = %+v", results)
	}
	bad := results[0]
	if bad.Fatal == nil || bad.Fatal.Code() != diag.IOSourceTooLarge {
		t.Fatalf("big.mjs fatal = %v", bad.Fatal)
	}
	if got := fileSet.Get(bad.Bag.Items()[0].Primary.File).Path; got != bad.Path {
		t.Fatalf("diagnostic points at %s, want %s", got, bad.Path)
	}
	if results[1].Program == nil {
		t.Fatal("small.mjs must parse")
	}
}

func TestParseDirEmpty(t *testing.T) {
	fileSet, results, err := ParseDir(context.Background(), t.TempDir(), Options{})
	if err != nil || fileSet == nil || len(results) != 0 {
		t.Fatalf("fs=%v results=%v err=%v", fileSet, results, err)
	}
}
