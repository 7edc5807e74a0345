package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"kappa/internal/version"
)

// errFrontEnd — фатальная ошибка лексера/парсера уже напечатана как диагностика,
// остаётся только код выхода.
var errFrontEnd = errors.New("front-end errors reported")

var rootCmd = &cobra.Command{
	Use:               "kappa",
	Short:             "Front end for a small JavaScript-like language",
	Long:              `kappa tokenizes and parses let-declarations of a JavaScript-like language and prints tokens, ASTs and diagnostics`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: prepareRun,
}

// cleanup закрывает трейсер и профили; выставляется в prepareRun.
var cleanup = func() {}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("min-severity", "info", "hide diagnostics below this severity (info|warning|error)")
	rootCmd.PersistentFlags().String("diagnostics", "pretty", "diagnostics format on stderr (pretty|short|json)")
	rootCmd.PersistentFlags().String("config", "", "path to kappa.toml (default: search upwards from the working directory)")

	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr, *.ndjson for NDJSON)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer size for --trace-mode=ring|both")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")

	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")
}

// main executes the root command. If command execution returns an error, the
// process exits with status code 1; front-end errors were already printed as
// diagnostics.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	err := rootCmd.Execute()
	cleanup()
	if err != nil {
		if !errors.Is(err, errFrontEnd) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func prepareRun(cmd *cobra.Command, _ []string) error {
	stopTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	stopProf, err := setupProfiling(cmd)
	if err != nil {
		stopTrace()
		return err
	}
	cleanup = func() {
		stopProf()
		stopTrace()
	}
	return applyColorFlag(cmd)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
