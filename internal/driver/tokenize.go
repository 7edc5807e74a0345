package driver

import (
	"context"
	"fmt"

	"kappa/internal/diag"
	"kappa/internal/lexer"
	"kappa/internal/source"
	"kappa/internal/token"
	"kappa/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Tokens заканчивается EOF, если лексер не упал; иначе — токены до ошибки.
	Tokens []token.Token
	Bag    *diag.Bag
	// Fatal — ошибка, остановившая лексер; она же лежит в Bag.
	Fatal  *diag.Error
	Cached bool
}

// Tokenize загружает файл и прогоняет лексер до EOF или первой фатальной ошибки.
// Ошибка возвращается только при проблемах загрузки и отмене ctx.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := loadFile(ctx, fs, path, opts)
	if err != nil {
		return nil, err
	}
	return tokenizeFile(ctx, fs, fileID, opts)
}

// TokenizeSource — то же для содержимого из памяти (stdin).
func TokenizeSource(ctx context.Context, name string, src []byte, opts Options) (*TokenizeResult, error) {
	if err := checkSize(name, int64(len(src)), opts.MaxSourceBytes); err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)
	return tokenizeFile(ctx, fs, fileID, opts)
}

func tokenizeFile(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options) (*TokenizeResult, error) {
	file := fs.Get(fileID)
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "tokenize", trace.CurrentSpan(ctx)).
		WithExtra("path", file.Path)

	res := &TokenizeResult{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}

	key := KeyFor(file.Content)
	if opts.Cache != nil {
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache-corrupt", err.Error())
		}
		if hit {
			res.restore(&payload)
			span.WithExtra("cache", "hit").End(fmt.Sprintf("%d tokens", len(res.Tokens)))
			return res, nil
		}
	}

	idx := opts.Timer.Begin("lex")
	err := res.lex(ctx)
	opts.Timer.End(idx, fmt.Sprintf("%s: %d tokens", file.Path, len(res.Tokens)))
	if err != nil {
		span.End(err.Error())
		return nil, err
	}

	if opts.Cache != nil {
		payload := tokensToPayload(res.Tokens, res.Bag.Items(), res.Fatal)
		if err := opts.Cache.Put(key, payload); err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache-write-failed", err.Error())
		}
	}

	span.WithExtra("cache", "miss").End(fmt.Sprintf("%d tokens", len(res.Tokens)))
	return res, nil
}

func (res *TokenizeResult) lex(ctx context.Context) error {
	reporterAdapter := &lexer.ReporterAdapter{Bag: res.Bag}
	lx := lexer.New(res.File, lexer.Options{Reporter: reporterAdapter.Reporter()})

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		tok, err := lx.Next()
		if err != nil {
			de, ok := diag.AsError(err)
			if !ok {
				return err
			}
			res.Fatal = de
			addFatal(res.Bag, de.Diag)
			return nil
		}
		res.Tokens = append(res.Tokens, tok)
		if tok.Kind == token.EOF {
			return nil
		}
	}
}

func (res *TokenizeResult) restore(payload *DiskPayload) {
	res.Cached = true
	res.Tokens = payloadTokens(payload, res.File.ID)
	for _, cd := range payload.Diags {
		res.Bag.Add(cd.restore(res.File.ID))
	}
	if payload.Fatal != nil {
		res.Fatal = &diag.Error{Diag: payload.Fatal.restore(res.File.ID)}
	}
}
