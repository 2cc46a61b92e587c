package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestNotifier(t *testing.T) {
	t.Run("forwards alerts and redraws in order", func(t *testing.T) {
		n := NewNotifier(t.Context())
		n.Changed()
		n.Alert("boom")

		ctx, cancel := context.WithCancel(t.Context())
		received := make(chan tea.Msg, 2)
		done := make(chan struct{})
		go func() {
			defer close(done)
			n.Forward(ctx, func(msg tea.Msg) { received <- msg })
		}()

		assert.Equal(t, refreshMsg{}, <-received)
		assert.Equal(t, alertMsg{text: "boom"}, <-received)

		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Forward did not return after cancel")
		}
	})

	t.Run("redraws never block when nobody forwards", func(t *testing.T) {
		n := NewNotifier(t.Context())
		for range notifierBufferSize * 2 {
			n.Changed()
		}

		assert.Len(t, n.msgs, notifierBufferSize)
	})

	t.Run("alert waits for room in a full queue", func(t *testing.T) {
		n := NewNotifier(t.Context())
		for range notifierBufferSize {
			n.Changed()
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			n.Alert("kept")
		}()
		require.Never(t, func() bool { return isClosed(done) }, 50*time.Millisecond, 5*time.Millisecond)

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		received := make(chan tea.Msg, notifierBufferSize+1)
		go n.Forward(ctx, func(msg tea.Msg) { received <- msg })

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Alert did not return once the queue drained")
		}
		assert.Eventually(t, func() bool { return len(received) == notifierBufferSize+1 }, time.Second, 5*time.Millisecond)
	})

	t.Run("alert gives up once the notifier is closed", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		n := NewNotifier(ctx)
		for range notifierBufferSize {
			n.Changed()
		}
		cancel()

		n.Alert("dropped")

		assert.Len(t, n.msgs, notifierBufferSize)
	})
}
