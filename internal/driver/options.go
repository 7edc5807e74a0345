package driver

import (
	"runtime"
	"strings"

	"kappa/internal/observ"
)

// DefaultExtensions — какие файлы ParseDir считает исходниками.
var DefaultExtensions = []string{".js", ".kappa"}

// Options управляет загрузкой, лимитами и побочными эффектами драйвера.
type Options struct {
	// MaxDiagnostics ограничивает Bag каждого файла; 0 — без лимита.
	MaxDiagnostics int
	// MaxSourceBytes — файлы больше этого размера не читаются; 0 — без лимита.
	MaxSourceBytes int64
	// Jobs — число воркеров ParseDir; 0 — GOMAXPROCS.
	Jobs       int
	Extensions []string
	// Cache может быть nil: тогда Tokenize всегда лексит заново.
	Cache    *DiskCache
	Progress ProgressSink
	// Timer собирает фазы load/lex/parse для --timings; nil отключает замеры.
	Timer *observ.Timer
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions
	}
	return o.Extensions
}

func (o Options) hasSourceExt(path string) bool {
	for _, ext := range o.extensions() {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func (o Options) jobs(files int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(min(jobs, files), 1)
}
