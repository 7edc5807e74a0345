package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"kappa/internal/diag"
)

// Config — содержимое kappa.toml после подстановки значений по умолчанию.
type Config struct {
	Parse  ParseConfig  `toml:"parse"`
	Output OutputConfig `toml:"output"`
	Cache  CacheConfig  `toml:"cache"`

	// Path — откуда прочитан манифест; пусто для Default().
	Path string `toml:"-"`
}

type ParseConfig struct {
	Extensions     []string `toml:"extensions"`
	Jobs           int      `toml:"jobs"`
	MaxSourceBytes int64    `toml:"max_source_bytes"`
}

type OutputConfig struct {
	Format         string `toml:"format"`
	Color          string `toml:"color"`
	UI             string `toml:"ui"`
	MinSeverity    string `toml:"min_severity"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	// Diagnostics — формат диагностик в stderr: pretty, short или json.
	Diagnostics string `toml:"diagnostics"`
}

type CacheConfig struct {
	Enabled bool `toml:"enabled"`
	// Dir пустой — каталог по умолчанию ($XDG_CACHE_HOME/kappa).
	Dir string `toml:"dir"`
}

var (
	// ErrUnknownKeys reports keys that no Config field consumes.
	ErrUnknownKeys = errors.New("unknown keys")
	// ErrInvalidValue reports a key with a value out of its domain.
	ErrInvalidValue = errors.New("invalid value")
)

var (
	formats = []string{"pretty", "json", "tree"}
	colors  = []string{"auto", "on", "off"}
	diagFmt = []string{"pretty", "short", "json"}
)

// Default returns the configuration used when no kappa.toml exists.
func Default() Config {
	return Config{
		Parse: ParseConfig{
			Extensions:     []string{".js", ".kappa"},
			Jobs:           0,
			MaxSourceBytes: 1 << 20,
		},
		Output: OutputConfig{
			Format:         "pretty",
			Color:          "auto",
			UI:             "auto",
			MinSeverity:    "info",
			MaxDiagnostics: 100,
			Diagnostics:    "pretty",
		},
		Cache: CacheConfig{Enabled: true},
	}
}

// Load parses kappa.toml at path over Default(). Keys the file leaves out
// keep their defaults; keys Config does not know are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKeys, strings.Join(keys, ", "))
	}
	cfg.Path = path
	// относительный cache.dir отсчитывается от каталога манифеста
	if cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(cfg.Root(), cfg.Cache.Dir)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ManifestName — имя файла конфигурации проекта.
const ManifestName = "kappa.toml"

// FindManifest ищет kappa.toml от startDir вверх. Каталог с .git — последний,
// который проверяется: манифесты выше корня репозитория не подхватываются.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		found, err := exists(candidate)
		if err != nil || found {
			return candidate, found, err
		}
		if repo, err := exists(filepath.Join(dir, ".git")); err != nil || repo {
			return "", false, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %q: %w", path, err)
}

// Root — каталог, где лежит манифест; пусто для Default().
func (c Config) Root() string {
	if c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

// Find ищет kappa.toml вверх от startDir; без манифеста возвращает Default().
func Find(startDir string) (Config, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks value domains.
func (c Config) Validate() error {
	if !slices.Contains(formats, c.Output.Format) {
		return fmt.Errorf("%w: output.format = %q (want %s)", ErrInvalidValue, c.Output.Format, strings.Join(formats, "|"))
	}
	if !slices.Contains(colors, c.Output.Color) {
		return fmt.Errorf("%w: output.color = %q (want %s)", ErrInvalidValue, c.Output.Color, strings.Join(colors, "|"))
	}
	if !slices.Contains(colors, c.Output.UI) {
		return fmt.Errorf("%w: output.ui = %q (want %s)", ErrInvalidValue, c.Output.UI, strings.Join(colors, "|"))
	}
	if _, err := diag.ParseSeverity(c.Output.MinSeverity); err != nil {
		return fmt.Errorf("%w: output.min_severity: %w", ErrInvalidValue, err)
	}
	if !slices.Contains(diagFmt, c.Output.Diagnostics) {
		return fmt.Errorf("%w: output.diagnostics = %q (want %s)", ErrInvalidValue, c.Output.Diagnostics, strings.Join(diagFmt, "|"))
	}
	if c.Output.MaxDiagnostics < 0 {
		return fmt.Errorf("%w: output.max_diagnostics = %d", ErrInvalidValue, c.Output.MaxDiagnostics)
	}
	if c.Parse.Jobs < 0 {
		return fmt.Errorf("%w: parse.jobs = %d", ErrInvalidValue, c.Parse.Jobs)
	}
	if c.Parse.MaxSourceBytes < 0 {
		return fmt.Errorf("%w: parse.max_source_bytes = %d", ErrInvalidValue, c.Parse.MaxSourceBytes)
	}
	if len(c.Parse.Extensions) == 0 {
		return fmt.Errorf("%w: parse.extensions is empty", ErrInvalidValue)
	}
	for _, ext := range c.Parse.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%w: parse.extensions entry %q must look like \".ext\"", ErrInvalidValue, ext)
		}
	}
	return nil
}
