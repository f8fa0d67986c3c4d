package app

import tea "github.com/charmbracelet/bubbletea"

// Drive runs cmd and every command it leads to on the calling goroutine,
// feeding each message back into Update, until nothing is left to run.
// It serves non-interactive callers; the interactive program runs the
// same commands through the bubbletea runtime instead.
func (c *Core) Drive(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			queue = append(queue, c.Update(msg))
		}
	}
}

// Bootstrap runs the whole bootstrap sequence synchronously and returns
// the phase it ended in.
func (c *Core) Bootstrap() Phase {
	c.Drive(c.Start())
	return c.phase
}
