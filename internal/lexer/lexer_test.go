package lexer_test

import (
	"math"
	"strings"
	"testing"

	"kappa/internal/diag"
	"kappa/internal/lexer"
	"kappa/internal/source"
	"kappa/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки с репортером в Bag
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.js", []byte(input))
	bag := diag.NewBag(0)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

// collectAllTokens собирает все токены до EOF (сам EOF не включается)
func collectAllTokens(t *testing.T, lx *lexer.Lexer) []token.Token {
	t.Helper()
	tokens := make([]token.Token, 0)
	for {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("unexpected lexer error: %v", err)
		}
		if tok.Kind == token.EOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func kindsOf(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func assertKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	tokens := collectAllTokens(t, lexer.FromString(input))
	got := kindsOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("%q: got %d tokens %v, want %d %v", input, len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d is %v, want %v (all: %v)", input, i, got[i], want[i], got)
		}
	}
	return tokens
}

func assertNumber(t *testing.T, tok token.Token, want float64) {
	t.Helper()
	got, ok := tok.Value.Number()
	if !ok {
		t.Fatalf("token %v %q carries no number", tok.Kind, tok.Text)
	}
	if got != want {
		t.Fatalf("token %q value = %v, want %v", tok.Text, got, want)
	}
}

func TestArithmetic(t *testing.T) {
	tokens := assertKinds(t, "2 + 3 * 4",
		token.Number, token.Plus, token.Number, token.Star, token.Number)
	assertNumber(t, tokens[0], 2)
	assertNumber(t, tokens[2], 3)
	assertNumber(t, tokens[4], 4)
	if tokens[1].Text != "+" || tokens[3].Text != "*" {
		t.Fatalf("operator texts = %q, %q", tokens[1].Text, tokens[3].Text)
	}
	if !tokens[1].Value.IsNone() {
		t.Fatalf("punctuation must carry no value, got %v", tokens[1].Value)
	}
}

func TestFractions(t *testing.T) {
	tokens := assertKinds(t, "2.5 + 3.5", token.Number, token.Plus, token.Number)
	assertNumber(t, tokens[0], 2.5)
	assertNumber(t, tokens[2], 3.5)
}

func TestLetStatement(t *testing.T) {
	tokens := assertKinds(t, "let x = 2 + 3;",
		token.Let, token.Identifier, token.Assignment, token.Number, token.Plus, token.Number, token.Semicolon)

	wantText := []string{"let", "x", "=", "2", "+", "3", ";"}
	for i, tok := range tokens {
		if tok.Text != wantText[i] {
			t.Errorf("token %d text = %q, want %q", i, tok.Text, wantText[i])
		}
	}
	if s, ok := tokens[0].Value.Str(); !ok || s != "let" {
		t.Errorf("keyword value = %v", tokens[0].Value)
	}
	if s, ok := tokens[1].Value.Str(); !ok || s != "x" {
		t.Errorf("identifier value = %v", tokens[1].Value)
	}
}

func TestFunctionDeclarationTokens(t *testing.T) {
	assertKinds(t, "function add(x,y) { return x + y; }",
		token.Function, token.Identifier, token.LParen, token.Identifier, token.Comma, token.Identifier,
		token.RParen, token.LBrace, token.Return, token.Identifier, token.Plus, token.Identifier,
		token.Semicolon, token.RBrace)
}

func TestComparisons(t *testing.T) {
	assertKinds(t, "if (x == 2) { return x; }",
		token.If, token.LParen, token.Identifier, token.Equal, token.Number, token.RParen,
		token.LBrace, token.Return, token.Identifier, token.Semicolon, token.RBrace)
	assertKinds(t, "x === 3", token.Identifier, token.StrictEqual, token.Number)
	assertKinds(t, "while (x <= 10) { }",
		token.While, token.LParen, token.Identifier, token.LessThanOrEqual, token.Number,
		token.RParen, token.LBrace, token.RBrace)
	assertKinds(t, "a > b >= c < d",
		token.Identifier, token.GreaterThan, token.Identifier, token.GreaterThanOrEqual,
		token.Identifier, token.LessThan, token.Identifier)
}

func TestForLoop(t *testing.T) {
	assertKinds(t, "for (let i = 0; i < 10; i = i + 1) { }",
		token.For, token.LParen, token.Let, token.Identifier, token.Assignment, token.Number,
		token.Semicolon, token.Identifier, token.LessThan, token.Number, token.Semicolon,
		token.Identifier, token.Assignment, token.Identifier, token.Plus, token.Number,
		token.RParen, token.LBrace, token.RBrace)
}

func TestLogicalOperators(t *testing.T) {
	assertKinds(t, "a && b || c & d | e",
		token.Identifier, token.LogicalAnd, token.Identifier, token.LogicalOr, token.Identifier,
		token.And, token.Identifier, token.Or, token.Identifier)
	// "====" — жадно "===", затем "="
	assertKinds(t, "====", token.StrictEqual, token.Assignment)
}

func TestMembersArraysAndCalls(t *testing.T) {
	tokens := assertKinds(t, `obj.kappa = "str"`,
		token.Identifier, token.Period, token.Identifier, token.Assignment, token.String)
	if tokens[4].Text != `"str"` {
		t.Fatalf("string text = %q, want quotes kept", tokens[4].Text)
	}
	assertKinds(t, "[1,2,3]",
		token.LBracket, token.Number, token.Comma, token.Number, token.Comma, token.Number, token.RBracket)
	assertKinds(t, "let x = true;", token.Let, token.Identifier, token.Assignment, token.True, token.Semicolon)
	assertKinds(t, "function(arg)", token.Function, token.LParen, token.Identifier, token.RParen)
	assertKinds(t, `function(function(){console.log("x")})()`,
		token.Function, token.LParen, token.Function, token.LParen, token.RParen, token.LBrace,
		token.Identifier, token.Period, token.Identifier, token.LParen, token.String, token.RParen,
		token.RBrace, token.RParen, token.LParen, token.RParen)
}

func TestKeywords(t *testing.T) {
	for _, tc := range []struct {
		word string
		kind token.Kind
	}{
		{"if", token.If}, {"while", token.While}, {"for", token.For}, {"let", token.Let},
		{"const", token.Const}, {"function", token.Function}, {"return", token.Return},
		{"class", token.Class}, {"this", token.This}, {"true", token.True}, {"false", token.False},
		{"x", token.Identifier}, {"lets", token.Identifier}, {"abcdefghijk", token.Identifier},
	} {
		t.Run(tc.word, func(t *testing.T) {
			assertKinds(t, tc.word, tc.kind)
		})
	}
}

func TestIdentifierStopsAtDigitAndUnderscore(t *testing.T) {
	tokens := assertKinds(t, "ab1 c_d", token.Identifier, token.Number, token.Identifier, token.Identifier)
	if tokens[0].Text != "ab" || tokens[1].Text != "1" {
		t.Fatalf("texts = %q %q", tokens[0].Text, tokens[1].Text)
	}
	// '_' пропускается и остаётся внутри диапазона следующего токена
	if tokens[3].Text != "_d" || tokens[3].Span.Start != 5 {
		t.Fatalf("token after underscore = %q at %v", tokens[3].Text, tokens[3].Span)
	}
}

func TestCaseFolding(t *testing.T) {
	// первая буква приводится к нижнему регистру, поэтому "Let" — ключевое слово
	tokens := assertKinds(t, "Let", token.Let)
	if tokens[0].Text != "Let" {
		t.Fatalf("text must keep source spelling, got %q", tokens[0].Text)
	}
	// внутри прогона берутся только сырые a-z: "LET" распадается посимвольно
	assertKinds(t, "LET", token.Identifier, token.Identifier, token.Identifier)
	// знак Кельвина (U+212A) сворачивается в 'k'
	tokens = assertKinds(t, "\u212Aappa", token.Identifier)
	if tokens[0].Span.End != uint32(len("\u212Aappa")) {
		t.Fatalf("span = %v", tokens[0].Span)
	}
	// 'Σ' сворачивается в 'σ' и пропускается
	tokens = assertKinds(t, "Σx", token.Identifier)
	if tokens[0].Text != "Σx" || tokens[0].Span.Start != 0 {
		t.Fatalf("token = %q %v", tokens[0].Text, tokens[0].Span)
	}
}

func TestNumberValues(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want float64
		warn bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{"3.25", 3.25, false},
		{"7.", 7, false},
		{"1_000", 1, true},
		{"1.2.3", 1.2, true},
		{"5..", 5, true},
	} {
		t.Run(tc.src, func(t *testing.T) {
			lx, bag := makeTestLexer(tc.src)
			tokens := collectAllTokens(t, lx)
			if len(tokens) != 1 || tokens[0].Kind != token.Number {
				t.Fatalf("tokens = %v", kindsOf(tokens))
			}
			assertNumber(t, tokens[0], tc.want)
			if tokens[0].Text != tc.src {
				t.Fatalf("text = %q", tokens[0].Text)
			}
			if got := bag.HasWarnings(); got != tc.warn {
				t.Fatalf("warning reported = %v, want %v (%v)", got, tc.warn, bag.Items())
			}
			if tc.warn && bag.Items()[0].Code != diag.LexBadNumber {
				t.Fatalf("code = %v", bag.Items()[0].Code)
			}
		})
	}
}

func TestNumberAfterSkippedCharIsNaN(t *testing.T) {
	tokens := assertKinds(t, "@5", token.Number)
	v, _ := tokens[0].Value.Number()
	if !math.IsNaN(v) {
		t.Fatalf("value = %v, want NaN", v)
	}
}

func TestComments(t *testing.T) {
	tokens := assertKinds(t, "// This is a comment", token.SingleLineComment)
	if tokens[0].Text != "// This is a comment" {
		t.Fatalf("text = %q", tokens[0].Text)
	}

	tokens = assertKinds(t, "// a\nx", token.SingleLineComment, token.Identifier)
	if tokens[0].Span.End != 4 {
		t.Fatalf("line comment must stop before newline, span %v", tokens[0].Span)
	}

	multi := "/* This is a multiline comment\n    a truly multiline comment\n*/"
	tokens = assertKinds(t, multi, token.MultiLineComment)
	if tokens[0].Text != multi {
		t.Fatalf("text = %q", tokens[0].Text)
	}

	doc := "/** This is a jsdoc comment */"
	tokens = assertKinds(t, doc, token.JSDocComment)
	if tokens[0].Text != doc {
		t.Fatalf("text = %q", tokens[0].Text)
	}

	assertKinds(t, "/**/", token.JSDocComment)
	assertKinds(t, "/* a */ /* b */", token.MultiLineComment, token.MultiLineComment)
}

func TestUnterminatedLiteralsWarn(t *testing.T) {
	for _, tc := range []struct {
		src  string
		kind token.Kind
		code diag.Code
	}{
		{`"abc`, token.String, diag.LexUnterminatedString},
		{"/* abc", token.MultiLineComment, diag.LexUnterminatedBlockComment},
		{"/** abc *", token.JSDocComment, diag.LexUnterminatedBlockComment},
	} {
		t.Run(tc.src, func(t *testing.T) {
			lx, bag := makeTestLexer(tc.src)
			tokens := collectAllTokens(t, lx)
			if len(tokens) != 1 || tokens[0].Kind != tc.kind {
				t.Fatalf("tokens = %v", kindsOf(tokens))
			}
			if tokens[0].Span.End != uint32(len(tc.src)) {
				t.Fatalf("unterminated literal must consume to EOF, span %v", tokens[0].Span)
			}
			items := bag.Items()
			if len(items) != 1 || items[0].Code != tc.code || items[0].Severity != diag.SevWarning {
				t.Fatalf("diagnostics = %+v", items)
			}
		})
	}
}

func TestLoneSlashIsFatal(t *testing.T) {
	lx := lexer.FromString("a / b")
	if tok, err := lx.Next(); err != nil || tok.Kind != token.Identifier {
		t.Fatalf("first token = %v, %v", tok, err)
	}
	_, err := lx.Next()
	de, ok := diag.AsError(err)
	if !ok {
		t.Fatalf("expected *diag.Error, got %v", err)
	}
	if de.Code() != diag.LexUnexpectedSlash {
		t.Fatalf("code = %v", de.Code())
	}
	if de.Diag.Primary.Start != 1 || de.Diag.Primary.End != 3 {
		t.Fatalf("error span = %v", de.Diag.Primary)
	}
}

func TestSkippedCharactersAndSpans(t *testing.T) {
	tokens := assertKinds(t, "  !x ;", token.Identifier, token.Semicolon)
	if tokens[0].Span != (source.Span{Start: 0, End: 4}) || tokens[0].Text != "!x" {
		t.Fatalf("identifier = %q %v", tokens[0].Text, tokens[0].Span)
	}
	if tokens[1].Span != (source.Span{Start: 4, End: 6}) || tokens[1].Text != ";" {
		t.Fatalf("semicolon = %q %v", tokens[1].Text, tokens[1].Span)
	}
}

func TestEOFIsSticky(t *testing.T) {
	lx := lexer.FromString("x  ")
	if _, err := lx.Next(); err != nil {
		t.Fatal(err)
	}
	for i := range 3 {
		tok, err := lx.Next()
		if err != nil || tok.Kind != token.EOF {
			t.Fatalf("call %d: %v %v", i, tok, err)
		}
		if i == 0 && tok.Span != (source.Span{Start: 1, End: 3}) {
			t.Fatalf("first EOF span = %v", tok.Span)
		}
		if i > 0 && !tok.Span.Empty() {
			t.Fatalf("repeated EOF span = %v", tok.Span)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	tok, err := lexer.FromString("").Next()
	if err != nil || tok.Kind != token.EOF || !tok.Span.Empty() || tok.Text != "" {
		t.Fatalf("empty input = %+v, %v", tok, err)
	}
}

// TestSpansTileInput: диапазоны токенов идут подряд и покрывают весь вход.
func TestSpansTileInput(t *testing.T) {
	inputs := []string{
		"let x = \"kappa\";\n// tail",
		"  for (let i = 0; i <= 10; i = i + 1) { x.y[2] = !z && w || v; }  ",
		"/** doc */\nclass A { this.a === 1.5_0 }",
		"ЮНИКОД let ü = 3",
	}
	for _, src := range inputs {
		lx := lexer.FromString(src)
		var end uint32
		for {
			tok, err := lx.Next()
			if err != nil {
				t.Fatalf("%q: %v", src, err)
			}
			if tok.Span.Start != end {
				t.Fatalf("%q: gap before %v at %v", src, tok.Kind, tok.Span)
			}
			if tok.Span.End < tok.Span.Start {
				t.Fatalf("%q: inverted span %v", src, tok.Span)
			}
			if tok.Text != strings.TrimSpace(tok.Text) {
				t.Fatalf("%q: text %q not trimmed", src, tok.Text)
			}
			end = tok.Span.End
			if tok.Kind == token.EOF {
				break
			}
		}
		if end != uint32(len(src)) {
			t.Fatalf("%q: tokens end at %d, want %d", src, end, len(src))
		}
	}
}

func TestNoReporterIgnoresWarnings(t *testing.T) {
	tokens := collectAllTokens(t, lexer.FromString(`"open`))
	if len(tokens) != 1 || tokens[0].Kind != token.String {
		t.Fatalf("tokens = %v", kindsOf(tokens))
	}
}

func TestReporterAdapterCollapsesLexWarnings(t *testing.T) {
	bag := diag.NewBag(0)
	adapter := &lexer.ReporterAdapter{Bag: bag}
	rep := adapter.Reporter()
	sp := source.Span{Start: 1, End: 2}
	rep.Report(diag.LexBadNumber, diag.SevWarning, sp, "bad", nil)
	// тот же код и начало, другой конец и текст — всё равно дубль
	rep.Report(diag.LexBadNumber, diag.SevWarning, source.Span{Start: 1, End: 5}, "bad again", nil)
	rep.Report(diag.LexUnterminatedString, diag.SevWarning, sp, "open", nil)
	// не-лексерные диагностики не схлопываются
	rep.Report(diag.SynUnexpectedTopLevel, diag.SevInfo, sp, "skip", nil)
	rep.Report(diag.SynUnexpectedTopLevel, diag.SevInfo, sp, "skip", nil)
	if bag.Len() != 4 {
		t.Fatalf("bag len = %d, want 4: %v", bag.Len(), bag.Items())
	}

	// новый Reporter начинает с чистого списка
	adapter.Reporter().Report(diag.LexBadNumber, diag.SevWarning, sp, "bad", nil)
	if bag.Len() != 5 {
		t.Fatalf("fresh reporter dropped a warning, bag len = %d", bag.Len())
	}
}

// sameToken — == для токенов, но NaN-числа считаются равными друг другу.
func sameToken(a, b token.Token) bool {
	if a == b {
		return true
	}
	an, aok := a.Value.Number()
	bn, bok := b.Value.Number()
	if !aok || !bok || !math.IsNaN(an) || !math.IsNaN(bn) {
		return false
	}
	a.Value, b.Value = token.Value{}, token.Value{}
	return a == b
}

func TestLexingIsDeterministic(t *testing.T) {
	inputs := []string{
		"",
		"let x = 'hello';",
		`Let x = "k"; /** d */ 1.2.3 <= ===K`,
		"/* open",
		`"open`,
		"a && b || c & d | e",
		"// line\n\t@1 Kappa\r\n",
		"\ufefflet y = 1_000;",
	}
	for _, src := range inputs {
		first := collectAllTokens(t, lexer.FromString(src))
		second := collectAllTokens(t, lexer.FromString(src))
		if len(first) != len(second) {
			t.Fatalf("%q: %d tokens, then %d", src, len(first), len(second))
		}
		for i := range first {
			if !sameToken(first[i], second[i]) {
				t.Fatalf("%q: token %d differs: %+v vs %+v", src, i, first[i], second[i])
			}
		}
	}
}
