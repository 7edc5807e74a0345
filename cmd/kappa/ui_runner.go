package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"kappa/internal/driver"
	"kappa/internal/source"
	"kappa/internal/ui"
)

type parseDirOutcome struct {
	fileSet *source.FileSet
	results []driver.ParseDirResult
	err     error
}

// runParseDirWithUI гоняет ParseDir в фоне, пока Bubble Tea рисует прогресс в stderr;
// stdout остаётся под AST.
func runParseDirWithUI(ctx context.Context, title string, files []string, dir string, opts driver.Options) (*source.FileSet, []driver.ParseDirResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan parseDirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.ParseDir(ctx, dir, optsCopy)
		outcomeCh <- parseDirOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// UI мог выйти раньше (Ctrl+C); дочитываем события, чтобы воркеры не встали
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
