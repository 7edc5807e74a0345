package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"kappa/internal/ast"
	"kappa/internal/diag"
	"kappa/internal/diagfmt"
	"kappa/internal/driver"
	"kappa/internal/source"
	"kappa/internal/trace"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file|directory|->",
	Short: "Parse a source file or directory and output the AST",
	Long:  `Parse analyzes a source file, stdin ("-"), or every source file of a directory and prints the syntax trees`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "", "output format (pretty|json|tree); default from kappa.toml")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	parseCmd.Flags().String("ui", "", "progress UI for directories (auto|on|off); default from kappa.toml")
}

type parseFlags struct {
	format string
}

func runParse(cmd *cobra.Command, args []string) error {
	target := args[0]

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	pf, err := readParseFlags(cmd, s)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "kappa parse", 0).WithExtra("path", target)
	ctx = trace.WithSpan(ctx, span)
	defer span.End("")
	cmd.SetContext(ctx)

	if target == "-" {
		src, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("failed to read stdin: %w", readErr)
		}
		result, parseErr := driver.ParseSource(ctx, "<stdin>", src, s.driverOptions(cmd, false))
		if parseErr != nil {
			return fmt.Errorf("parsing failed: %w", parseErr)
		}
		return finishSingle(cmd, s, pf, result)
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if st.IsDir() {
		return runParseDir(cmd, s, pf, target)
	}

	result, err := driver.Parse(ctx, target, s.driverOptions(cmd, false))
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	return finishSingle(cmd, s, pf, result)
}

func readParseFlags(cmd *cobra.Command, s *settings) (parseFlags, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return parseFlags{}, fmt.Errorf("failed to get format flag: %w", err)
	}
	if format == "" {
		format = s.cfg.Output.Format
	}
	switch format {
	case "pretty", "json", "tree":
	default:
		return parseFlags{}, fmt.Errorf("unknown format: %s", format)
	}

	if cmd.Flags().Changed("jobs") {
		if s.cfg.Parse.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return parseFlags{}, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}

	if cmd.Flags().Changed("ui") {
		value, err := cmd.Flags().GetString("ui")
		if err != nil {
			return parseFlags{}, fmt.Errorf("failed to get ui flag: %w", err)
		}
		mode, err := parseSwitch("ui", value)
		if err != nil {
			return parseFlags{}, err
		}
		s.cfg.Output.UI = string(mode)
	}
	return parseFlags{format: format}, nil
}

func finishSingle(cmd *cobra.Command, s *settings, pf parseFlags, result *driver.ParseResult) error {
	if err := s.printDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}
	if result.Program != nil {
		if err := printProgram(cmd.OutOrStdout(), pf.format, result.Program, result.File.ID, result.FileSet); err != nil {
			return err
		}
	}
	s.printTimings(cmd)
	if result.Fatal != nil {
		return errFrontEnd
	}
	return nil
}

func printProgram(w io.Writer, format string, prog *ast.Program, file source.FileID, fs *source.FileSet) error {
	switch format {
	case "json":
		return diagfmt.FormatASTJSON(w, prog)
	case "tree":
		return diagfmt.FormatASTTree(w, prog, file, fs)
	default:
		return diagfmt.FormatASTPretty(w, prog, file, fs)
	}
}

type dirProgramJSON struct {
	Path    string       `json:"path"`
	Program *ast.Program `json:"program"`
}

func runParseDir(cmd *cobra.Command, s *settings, pf parseFlags, dir string) error {
	ctx := cmd.Context()
	opts := s.driverOptions(cmd, false)

	var (
		fileSet *source.FileSet
		results []driver.ParseDirResult
		err     error
	)
	if s.useProgressUI() {
		files, listErr := driver.ListSourceFiles(dir, opts)
		if listErr != nil {
			return fmt.Errorf("failed to list %s: %w", dir, listErr)
		}
		fileSet, results, err = runParseDirWithUI(ctx, "parse "+dir, files, dir, opts)
	} else {
		fileSet, results, err = driver.ParseDir(ctx, dir, opts)
	}
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if len(results) == 0 {
		s.note(cmd, "no source files in %s", dir)
		return nil
	}

	bag := diag.NewBag(0)
	failed := false
	for _, r := range results {
		bag.Merge(r.Bag)
		failed = failed || r.Fatal != nil
	}
	if err := s.printDiagnostics(cmd, bag, fileSet); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if pf.format == "json" {
		payload := make([]dirProgramJSON, 0, len(results))
		for _, r := range results {
			if r.Program != nil {
				payload = append(payload, dirProgramJSON{Path: r.Path, Program: r.Program})
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Program == nil {
				continue
			}
			fmt.Fprintf(out, "== %s ==\n", r.Path)
			if err := printProgram(out, pf.format, r.Program, r.FileID, fileSet); err != nil {
				return err
			}
		}
	}

	s.printTimings(cmd)
	if failed {
		return errFrontEnd
	}
	return nil
}
