package driver

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"kappa/internal/ast"
	"kappa/internal/diag"
	"kappa/internal/lexer"
	"kappa/internal/parser"
	"kappa/internal/source"
	"kappa/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Program равен nil, если разбор остановила фатальная ошибка.
	Program *ast.Program
	Bag     *diag.Bag
	Fatal   *diag.Error
}

func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := loadFile(ctx, fs, path, opts)
	if err != nil {
		return nil, err
	}
	return parseFile(ctx, fs, fileID, opts)
}

// ParseSource разбирает содержимое из памяти; name используется в диагностиках.
func ParseSource(ctx context.Context, name string, src []byte, opts Options) (*ParseResult, error) {
	if err := checkSize(name, int64(len(src)), opts.MaxSourceBytes); err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)
	return parseFile(ctx, fs, fileID, opts)
}

func parseFile(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options) (*ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "parse", trace.CurrentSpan(ctx)).
		WithExtra("path", file.Path)

	maxDiagnostics, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(opts.MaxDiagnostics)
	reporterAdapter := &lexer.ReporterAdapter{Bag: bag}
	p := parser.New(file, parser.Options{
		Reporter:       reporterAdapter.Reporter(),
		MaxDiagnostics: maxDiagnostics,
	})

	idx := opts.Timer.Begin("parse")
	prog, err := p.Parse()
	res := &ParseResult{FileSet: fs, File: file, Program: prog, Bag: bag}
	if err != nil {
		de, ok := diag.AsError(err)
		if !ok {
			opts.Timer.End(idx, err.Error())
			span.End(err.Error())
			return nil, err
		}
		res.Fatal = de
		addFatal(bag, de.Diag)
	}

	detail := fmt.Sprintf("%s: %d statements", file.Path, statementCount(prog))
	if res.Fatal != nil {
		detail = fmt.Sprintf("%s: %s", file.Path, res.Fatal.Code().ID())
	}
	opts.Timer.End(idx, detail)
	span.End(detail)
	return res, nil
}

func statementCount(prog *ast.Program) int {
	if prog == nil {
		return 0
	}
	return len(prog.Body)
}
