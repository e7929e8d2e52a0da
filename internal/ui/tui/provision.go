package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/pvelamp/internal/provisioning"
)

// ErrInterrupted is returned when the display is quit before the
// provisioning run finished.
var ErrInterrupted = errors.New("provisioning interrupted")

// programObserver forwards provisioning output into a running Bubble Tea
// program. It satisfies provisioning.Observer.
type programObserver struct {
	program *tea.Program
}

func (o *programObserver) Printf(format string, v ...interface{}) {
	o.program.Send(LogMsg{Line: fmt.Sprintf(format, v...)})
}

func (o *programObserver) Event(event provisioning.Event) {
	o.program.Send(EventMsg{Event: event})
}

// RunProvisionTUI wraps a provisioning run with a Bubble Tea TUI. run
// receives an observer wired to the display and executes the pipeline in
// a background goroutine; the returned error is the pipeline's.
//
// Quitting the display cancels the run's context and waits for the
// pipeline to stop before returning, so the caller never acts on a run
// that is still in flight. An early quit surfaces as an error and the
// caller's teardown removes whatever the run had created.
func RunProvisionTUI(ctx context.Context, hostname string, run func(ctx context.Context, observer provisioning.Observer) error, opts ...tea.ProgramOption) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewProvisionModel(hostname)
	p := tea.NewProgram(m, opts...)

	done := make(chan error, 1)
	go func() {
		err := run(runCtx, &programObserver{program: p})
		if err != nil {
			p.Send(ErrMsg{Err: err})
		} else {
			p.Send(DoneMsg{})
		}
		done <- err
	}()

	finalModel, tuiErr := p.Run()

	cancel()
	runErr := <-done

	if tuiErr != nil {
		return fmt.Errorf("TUI error: %w", tuiErr)
	}
	// Prefer the pipeline's error over the display copy so wrapped
	// types survive for exit code extraction.
	if runErr != nil {
		return runErr
	}
	fm := finalModel.(Model)
	if fm.Err != nil {
		return fm.Err
	}
	if !fm.Done {
		return ErrInterrupted
	}
	return nil
}
