package service

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run is a headless event loop for the controller. It runs cmd and every
// command the controller returns on their own goroutines, and applies their
// messages to c.Update one at a time on the calling goroutine. It returns
// once nothing is outstanding, or with ctx.Err() when ctx ends first.
func Run(ctx context.Context, c *SearchController, cmd tea.Cmd) error {
	msgs := make(chan tea.Msg)
	outstanding := 0

	spawn := func(cmd tea.Cmd) {
		if cmd == nil {
			return
		}
		outstanding++
		go func() {
			msg := cmd()
			select {
			case msgs <- msg:
			case <-ctx.Done():
			}
		}()
	}

	spawn(cmd)
	for outstanding > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-msgs:
			outstanding--
			switch msg := msg.(type) {
			case nil:
			case tea.BatchMsg:
				for _, sub := range msg {
					spawn(sub)
				}
			default:
				spawn(c.Update(msg))
			}
		}
	}
	return nil
}
