package tui

import (
	"context"

	"github.com/gabapcia/addresswatch/internal/pkg/logger"
	"github.com/gabapcia/addresswatch/internal/pkg/x/chflow"

	tea "github.com/charmbracelet/bubbletea"
)

const notifierBufferSize = 64

// Notifier carries panel callbacks into the running program. The panel and
// the wallet call it from their own goroutines, possibly before the program
// started; Forward delivers the queued messages once it runs.
type Notifier struct {
	ctx  context.Context
	msgs chan tea.Msg
}

// NewNotifier returns a Notifier whose alerts wait for queue room until ctx
// is done.
func NewNotifier(ctx context.Context) *Notifier {
	return &Notifier{ctx: ctx, msgs: make(chan tea.Msg, notifierBufferSize)}
}

// Changed asks for a redraw. Redraw requests are dropped while the queue is
// full since a queued one already covers them.
func (n *Notifier) Changed() {
	chflow.TrySend[tea.Msg](n.msgs, refreshMsg{})
}

// Alert shows text in a modal. It waits for room in the queue and gives up
// only once the notifier context is done.
func (n *Notifier) Alert(text string) {
	if !chflow.Send[tea.Msg](n.ctx, n.msgs, alertMsg{text: text}) {
		logger.Warn(n.ctx, "dropping alert, notifier is closed", "alert", text)
	}
}

// Forward hands queued messages to send until ctx is done. send is usually
// (*tea.Program).Send.
func (n *Notifier) Forward(ctx context.Context, send func(tea.Msg)) {
	for {
		msg, ok := chflow.Receive(ctx, n.msgs)
		if !ok {
			return
		}
		send(msg)
	}
}
