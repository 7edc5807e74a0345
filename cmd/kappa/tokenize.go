package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"kappa/internal/diagfmt"
	"kappa/internal/driver"
	"kappa/internal/trace"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file|->",
	Short: "Tokenize a source file",
	Long:  `Tokenize breaks a source file (or stdin with "-") into tokens and prints them`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "", "output format (pretty|json); default from kappa.toml")
	tokenizeCmd.Flags().Bool("no-cache", false, "do not read or write the token cache")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format == "" {
		// tree у токенов нет
		format = s.cfg.Output.Format
		if format == "tree" {
			format = "pretty"
		}
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "kappa tokenize", 0).WithExtra("path", filePath)
	ctx = trace.WithSpan(ctx, span)
	defer span.End("")

	opts := s.driverOptions(cmd, !noCache)

	var result *driver.TokenizeResult
	if filePath == "-" {
		src, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("failed to read stdin: %w", readErr)
		}
		result, err = driver.TokenizeSource(ctx, "<stdin>", src, opts)
	} else {
		result, err = driver.Tokenize(ctx, filePath, opts)
	}
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if result.Cached {
		trace.Point(trace.FromContext(ctx), trace.ScopePass, "cache-hit", filePath)
	}

	if err := s.printDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	default:
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	}
	if err != nil {
		return err
	}

	s.printTimings(cmd)
	if result.Fatal != nil {
		return errFrontEnd
	}
	return nil
}
