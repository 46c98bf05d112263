package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"hdlgraph/internal/driver"
	"hdlgraph/internal/pipeline"
	"hdlgraph/internal/ui"
)

type runOutcome struct {
	results []driver.FileResult
	err     error
}

// runWithUI runs the batch while a progress view consumes its events.
func runWithUI(ctx context.Context, title string, paths []string, opts driver.Options) ([]driver.FileResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		o := opts
		o.Progress = pipeline.ChannelSink{Ch: events}
		res, err := driver.Run(ctx, paths, o)
		outcomeCh <- runOutcome{results: res, err: err}
		close(events)
	}()

	files := pipeline.NormalizeFiles(paths, opts.BaseDir)
	program := tea.NewProgram(ui.NewProgressModel(title, files, events), tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// the view may quit early; keep draining so the driver never blocks
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
