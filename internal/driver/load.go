package driver

import (
	"context"
	"fmt"
	"os"

	"kappa/internal/diag"
	"kappa/internal/source"
	"kappa/internal/trace"
)

// loadFile читает файл в fs, отказываясь от файлов больше MaxSourceBytes.
func loadFile(ctx context.Context, fs *source.FileSet, path string, opts Options) (source.FileID, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "load", trace.CurrentSpan(ctx)).
		WithExtra("path", path)
	var id source.FileID
	err := opts.Timer.Measure("load", func() (err error) {
		id, err = readFile(fs, path, opts.MaxSourceBytes)
		return err
	})

	note := ""
	if err != nil {
		note = err.Error()
	} else {
		span = span.WithExtra("flags", fs.Get(id).Flags.String())
	}
	span.End(note)
	return id, err
}

func readFile(fs *source.FileSet, path string, limit int64) (source.FileID, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to load %s: %w", path, err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("failed to load %s: is a directory", path)
	}
	if err := checkSize(path, info.Size(), limit); err != nil {
		return 0, err
	}
	id, err := fs.Load(path)
	if err != nil {
		return 0, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return id, nil
}

func checkSize(name string, size, limit int64) error {
	if limit > 0 && size > limit {
		return diag.Errorf(diag.IOSourceTooLarge, source.Span{}, "%s: %d bytes exceeds the limit of %d bytes", name, size, limit)
	}
	return nil
}

// addFatal кладёт фатальную диагностику в bag даже при исчерпанном лимите.
func addFatal(bag *diag.Bag, d diag.Diagnostic) {
	if bag.Add(d) {
		return
	}
	overflow := diag.NewBag(1)
	overflow.Add(d)
	bag.Merge(overflow)
}

// loadFailure превращает ошибку загрузки в диагностику для пакетных режимов.
func loadFailure(err error) diag.Diagnostic {
	if de, ok := diag.AsError(err); ok {
		return de.Diag
	}
	return diag.NewError(diag.IOLoadFileError, source.Span{}, err.Error())
}
