package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"scopelint/internal/driver"
	"scopelint/internal/project"
	"scopelint/internal/ui"
)

type checkOutcome struct {
	result *driver.Result
	err    error
}

// runCheckWithUI runs driver.Check while a progress view renders on stderr.
func runCheckWithUI(ctx context.Context, title string, proj *project.Project, targets []driver.Target, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.Check(ctx, proj, targets, opts)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	files := make([]string, len(targets))
	for i, t := range targets {
		files[i] = t.Path
	}
	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep draining so Check never blocks on a full channel
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
