package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"jsonfix/internal/driver"
)

// Task runs a batch job, reporting progress through sink.
type Task func(ctx context.Context, sink driver.ProgressSink) (*driver.Batch, error)

type outcome struct {
	batch *driver.Batch
	err   error
}

// RunWithProgress runs task while a progress view renders to out. The
// view exits after task returns.
func RunWithProgress(ctx context.Context, out io.Writer, title string, files []string, task Task) (*driver.Batch, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan outcome, 1)

	go func() {
		b, err := task(ctx, driver.ChannelSink(events))
		outcomeCh <- outcome{batch: b, err: err}
		close(events)
	}()

	program := tea.NewProgram(NewProgressModel(title, files, events), tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	// если UI завершился раньше задачи, не даём ей заблокироваться на канале
	go func() {
		for range events {
		}
	}()
	res := <-outcomeCh
	if uiErr != nil {
		return res.batch, uiErr
	}
	return res.batch, res.err
}
