package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"kappa/internal/diag"
	"kappa/internal/driver"
	"kappa/internal/observ"
	"kappa/internal/project"
)

// settings — kappa.toml, поверх которого применены явно заданные флаги.
type settings struct {
	cfg     project.Config
	quiet   bool
	timings bool
	timer   *observ.Timer
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg project.Config
	if configPath != "" {
		cfg, err = project.Load(configPath)
	} else {
		cfg, err = project.Find(".")
	}
	if err != nil {
		return nil, err
	}

	if flags.Changed("max-diagnostics") {
		if cfg.Output.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if flags.Changed("diagnostics") {
		if cfg.Output.Diagnostics, err = flags.GetString("diagnostics"); err != nil {
			return nil, fmt.Errorf("failed to get diagnostics flag: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if flags.Changed("min-severity") {
		if cfg.Output.MinSeverity, err = flags.GetString("min-severity"); err != nil {
			return nil, fmt.Errorf("failed to get min-severity flag: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if flags.Changed("color") {
		value, err := flags.GetString("color")
		if err != nil {
			return nil, fmt.Errorf("failed to get color flag: %w", err)
		}
		mode, err := parseSwitch("color", value)
		if err != nil {
			return nil, err
		}
		cfg.Output.Color = string(mode)
	}

	s := &settings{cfg: cfg}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.timings {
		s.timer = observ.NewTimer()
	}
	return s, nil
}

// driverOptions собирает driver.Options; кэш открывается только по запросу.
func (s *settings) driverOptions(cmd *cobra.Command, withCache bool) driver.Options {
	opts := driver.Options{
		MaxDiagnostics: s.cfg.Output.MaxDiagnostics,
		MaxSourceBytes: s.cfg.Parse.MaxSourceBytes,
		Jobs:           s.cfg.Parse.Jobs,
		Extensions:     s.cfg.Parse.Extensions,
		Timer:          s.timer,
	}
	if withCache && s.cfg.Cache.Enabled {
		var (
			cache *driver.DiskCache
			err   error
		)
		if s.cfg.Cache.Dir != "" {
			cache, err = driver.OpenDiskCacheAt(s.cfg.Cache.Dir)
		} else {
			cache, err = driver.OpenDiskCache("kappa")
		}
		if err != nil {
			s.note(cmd, "cache disabled: %v", err)
		} else {
			opts.Cache = cache
		}
	}
	return opts
}

// switchMode — auto|on|off для output.color и output.ui (и флагов --color, --ui).
type switchMode string

const (
	modeAuto switchMode = "auto"
	modeOn   switchMode = "on"
	modeOff  switchMode = "off"
)

// parseSwitch читает значение флага name; пустая строка означает auto.
func parseSwitch(name, value string) (switchMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return modeAuto, nil
	case "on":
		return modeOn, nil
	case "off":
		return modeOff, nil
	default:
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", name, value)
	}
}

// forTerminal: явные on/off побеждают, auto смотрит, терминал ли f.
func (m switchMode) forTerminal(f *os.File) bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	default:
		return isTerminal(f)
	}
}

// minSeverity — порог вывода диагностик; --quiet поднимает его до WARNING.
func (s *settings) minSeverity() diag.Severity {
	min, err := diag.ParseSeverity(s.cfg.Output.MinSeverity)
	if err != nil {
		min = diag.SevInfo
	}
	if s.quiet && min < diag.SevWarning {
		min = diag.SevWarning
	}
	return min
}

// useColor решает, красить ли вывод в f.
func (s *settings) useColor(f *os.File) bool {
	return colorEnabled(switchMode(s.cfg.Output.Color), f)
}

// useProgressUI — TUI для parse <dir>; под --quiet его нет никогда.
func (s *settings) useProgressUI() bool {
	return !s.quiet && switchMode(s.cfg.Output.UI).forTerminal(os.Stdout)
}

// colorEnabled учитывает NO_COLOR только в режиме auto.
func colorEnabled(mode switchMode, f *os.File) bool {
	if mode == modeAuto && os.Getenv("NO_COLOR") != "" {
		return false
	}
	return mode.forTerminal(f)
}

// applyColorFlag настраивает глобальный fatih/color для stdout.
func applyColorFlag(cmd *cobra.Command) error {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := parseSwitch("color", value)
	if err != nil {
		return err
	}
	color.NoColor = !colorEnabled(mode, os.Stdout)
	return nil
}

// note печатает служебное сообщение в stderr, если не задан --quiet.
func (s *settings) note(cmd *cobra.Command, format string, args ...any) {
	if s.quiet {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "kappa: "+format+"\n", args...)
}

func (s *settings) printTimings(cmd *cobra.Command) {
	if !s.timings {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), s.timer.Summary())
}
