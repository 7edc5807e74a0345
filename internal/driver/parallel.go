package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"kappa/internal/ast"
	"kappa/internal/diag"
	"kappa/internal/source"
	"kappa/internal/trace"
)

// ParseDirResult содержит результат парсинга одного файла
type ParseDirResult struct {
	Path    string        // Путь к файлу
	FileID  source.FileID // ID файла в FileSet
	Program *ast.Program  // nil при фатальной ошибке или ошибке загрузки
	Bag     *diag.Bag     // Диагностики
	Fatal   *diag.Error
}

// ListSourceFiles возвращает отсортированный список исходников в директории
func ListSourceFiles(dir string, opts Options) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && opts.hasSourceExt(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ParseDir разбирает все исходники директории параллельно (не больше opts.Jobs
// одновременно). Результаты идут в порядке путей. Ошибки загрузки отдельных
// файлов попадают в их Bag; error возвращается только при сбое обхода
// директории или отмене ctx.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []ParseDirResult, error) {
	tracer := trace.FromContext(ctx)
	dirSpan := trace.Begin(tracer, trace.ScopePass, "parse-dir", trace.CurrentSpan(ctx)).
		WithExtra("dir", dir)
	ctx = trace.WithSpan(ctx, dirSpan)

	files, err := ListSourceFiles(dir, opts)
	if err != nil {
		dirSpan.End(err.Error())
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		dirSpan.End("no files")
		return fileSet, nil, nil
	}

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusQueued})
	}

	// FileSet не потокобезопасен, поэтому грузим всё заранее в одной горутине
	results := make([]ParseDirResult, len(files))
	loaded := make([]bool, len(files))
	for i, path := range files {
		results[i] = ParseDirResult{Path: path}
		fileID, err := loadFile(ctx, fileSet, path, opts)
		if err != nil {
			// пустой виртуальный файл нужен, чтобы диагностика указывала на путь
			fileID = fileSet.AddVirtual(path, nil)
			d := loadFailure(err)
			d.Primary = source.Span{File: fileID}
			bag := diag.NewBag(opts.MaxDiagnostics)
			addFatal(bag, d)
			results[i].FileID = fileID
			results[i].Bag = bag
			results[i].Fatal = &diag.Error{Diag: d}
			emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
			continue
		}
		results[i].FileID = fileID
		loaded[i] = true
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(files)))

	for i, path := range files {
		if !loaded[i] {
			continue
		}
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})
			started := time.Now()

			res, err := parseFile(gctx, fileSet, results[i].FileID, opts)
			if err != nil {
				emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusError, Err: err, Elapsed: time.Since(started)})
				return err
			}
			results[i].Program = res.Program
			results[i].Bag = res.Bag
			results[i].Fatal = res.Fatal

			ev := Event{File: path, Stage: StageParse, Status: StatusDone, Elapsed: time.Since(started)}
			if res.Fatal != nil {
				ev.Status = StatusError
				ev.Err = res.Fatal
			}
			emit(opts.Progress, ev)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		dirSpan.End(err.Error())
		return fileSet, nil, err
	}

	emit(opts.Progress, Event{Stage: StageParse, Status: StatusDone})
	dirSpan.WithExtra("files", strconv.Itoa(len(files))).End("")
	return fileSet, results, nil
}
