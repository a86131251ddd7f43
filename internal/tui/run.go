package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// startupDelay gives bubbletea time to start its event loop and paint
	// the initial frame before the first row update arrives.
	startupDelay = 50 * time.Millisecond

	// sendYield spaces out consecutive sends so the renderer draws a frame
	// between row updates. Installs are dominated by solver and download
	// time, so the pause costs nothing.
	sendYield = 5 * time.Millisecond
)

// RunWithWork renders the progress model while workFn executes in the
// background. workFn receives a send callback that forwards messages to the
// running program; RunWithWork blocks until the program exits and returns
// the model's fatal error, if any.
func RunWithWork(out io.Writer, model ProgressModel, workFn func(send func(tea.Msg))) error {
	p := tea.NewProgram(model, tea.WithOutput(out))

	go func() {
		time.Sleep(startupDelay)
		workFn(func(msg tea.Msg) {
			p.Send(msg)
			time.Sleep(sendYield)
		})
		p.Send(WorkDoneMsg{})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(ProgressModel); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
