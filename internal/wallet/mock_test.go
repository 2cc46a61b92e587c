package wallet

import (
	"context"
	"slices"
	"sync"
)

// fakeSocket records tracking requests and lets tests push socket events.
type fakeSocket struct {
	mu        sync.Mutex
	tracked   [][]string
	untracked [][]string
	starts    int
	stops     int
	waited    []bool

	events   chan SocketEvent
	startErr error
	onStart  func(s *fakeSocket)
}

var _ Socket = (*fakeSocket)(nil)

func newFakeSocket() *fakeSocket {
	return &fakeSocket{events: make(chan SocketEvent, 16)}
}

func (s *fakeSocket) emit(kind SocketEventKind) {
	s.events <- SocketEvent{Kind: kind}
}

func (s *fakeSocket) Start(ctx context.Context, wait bool) error {
	s.mu.Lock()
	s.starts++
	s.waited = append(s.waited, wait)
	s.mu.Unlock()

	if s.onStart != nil {
		s.onStart(s)
	}
	return s.startErr
}

func (s *fakeSocket) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.stops++
	s.mu.Unlock()

	s.emit(SocketOffline)
	return nil
}

func (s *fakeSocket) Subscribe(ctx context.Context) <-chan SocketEvent {
	return s.events
}

func (s *fakeSocket) TrackScripts(ctx context.Context, scripts []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tracked = append(s.tracked, slices.Clone(scripts))
	return nil
}

func (s *fakeSocket) UntrackScripts(ctx context.Context, scripts []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.untracked = append(s.untracked, slices.Clone(scripts))
	return nil
}

func (s *fakeSocket) trackCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.tracked)
}
