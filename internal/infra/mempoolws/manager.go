// Package mempoolws keeps a websocket to a mempool.space compatible backend
// open, subscribes it to a set of output scripts, and reports transactions
// touching those scripts as wallet socket events.
//
// The connection cycles through Ready, Connecting, Connected, and
// Disconnected, waiting a reconnect delay after every disconnection, until
// it is stopped and goes Offline.
package mempoolws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/gabapcia/addresswatch/internal/pkg/logger"
	"github.com/gabapcia/addresswatch/internal/pkg/types"
	"github.com/gabapcia/addresswatch/internal/pkg/x/chflow"
	"github.com/gabapcia/addresswatch/internal/wallet"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var ErrAlreadyStarted = errors.New("websocket manager already started")

const eventBufferSize = 256

// Status is the state of the connection loop.
type Status int

const (
	StatusReady Status = iota
	StatusConnecting
	StatusConnected
	StatusDisconnected
	StatusOffline
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusDisconnected:
		return "disconnected"
	case StatusOffline:
		return "offline"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// run holds what belongs to a single Start..Offline cycle.
type run struct {
	closing   chan struct{}
	closeOnce sync.Once
	settled   chan struct{}
	settle    sync.Once
	done      chan struct{}
}

func (r *run) close() {
	r.closeOnce.Do(func() { close(r.closing) })
}

// Manager keeps one websocket connection to a mempool.space compatible
// backend alive and fans its address events out to subscribers. The set of
// tracked scripts survives reconnections and is sent again on every new
// connection.
type Manager struct {
	url    string
	dialer *websocket.Dialer

	reconnectDelay  time.Duration
	pingAfter       time.Duration
	disconnectAfter time.Duration
	checkInterval   time.Duration

	mu      sync.Mutex
	status  Status
	current *run
	active  types.Set[string]

	resubscribe chan struct{}

	subMu       sync.Mutex
	subscribers map[chan wallet.SocketEvent]struct{}

	reconnects metric.Int64Counter
}

var _ wallet.Socket = (*Manager)(nil)

type config struct {
	dialer          *websocket.Dialer
	reconnectDelay  time.Duration
	pingAfter       time.Duration
	disconnectAfter time.Duration
	checkInterval   time.Duration
	meter           metric.Meter
}

// Option configures a Manager.
type Option func(*config)

// New creates a manager for the websocket at url. Nothing is dialed before
// Start.
//
// Defaults: 30s reconnect delay, ping after 30s of silence, disconnect after
// 60s of silence, silence checked every second.
func New(url string, opts ...Option) *Manager {
	cfg := config{
		dialer:          &websocket.Dialer{HandshakeTimeout: 60 * time.Second},
		reconnectDelay:  30 * time.Second,
		pingAfter:       30 * time.Second,
		disconnectAfter: 60 * time.Second,
		checkInterval:   time.Second,
		meter:           otel.Meter("github.com/gabapcia/addresswatch/internal/infra/mempoolws"),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	reconnects, _ := cfg.meter.Int64Counter("addresswatch.ws.reconnects",
		metric.WithDescription("Websocket disconnections followed by a reconnect attempt"),
	)

	return &Manager{
		url:             url,
		dialer:          cfg.dialer,
		reconnectDelay:  cfg.reconnectDelay,
		pingAfter:       cfg.pingAfter,
		disconnectAfter: cfg.disconnectAfter,
		checkInterval:   cfg.checkInterval,
		status:          StatusOffline,
		active:          types.NewSet[string](),
		resubscribe:     make(chan struct{}, 1),
		subscribers:     make(map[chan wallet.SocketEvent]struct{}),
		reconnects:      reconnects,
	}
}

// WithDialer sets the dialer used to open connections.
func WithDialer(d *websocket.Dialer) Option {
	return func(c *config) {
		c.dialer = d
	}
}

// WithReconnectDelay sets the pause between a dropped connection and the
// next dial.
func WithReconnectDelay(d time.Duration) Option {
	return func(c *config) {
		c.reconnectDelay = d
	}
}

// WithPingAfter sets how long the server may stay silent before a ping is
// sent.
func WithPingAfter(d time.Duration) Option {
	return func(c *config) {
		c.pingAfter = d
	}
}

// WithDisconnectAfter sets how long the server may stay silent before the
// connection is dropped and reestablished.
func WithDisconnectAfter(d time.Duration) Option {
	return func(c *config) {
		c.disconnectAfter = d
	}
}

// WithCheckInterval sets how often the connection is checked for silence.
func WithCheckInterval(d time.Duration) Option {
	return func(c *config) {
		c.checkInterval = d
	}
}

// WithMeter sets the meter the reconnection counter is registered on.
func WithMeter(m metric.Meter) Option {
	return func(c *config) {
		c.meter = m
	}
}

// Status returns the current state of the connection loop.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.status
}

func (m *Manager) setStatus(r *run, status Status) {
	m.mu.Lock()
	m.status = status
	m.mu.Unlock()

	if status == StatusConnected || status == StatusOffline {
		r.settle.Do(func() { close(r.settled) })
	}
}

// Subscribe returns the socket events emitted from now on. The channel is
// closed once ctx is done. Events are dropped for subscribers that fall
// behind.
func (m *Manager) Subscribe(ctx context.Context) <-chan wallet.SocketEvent {
	ch := make(chan wallet.SocketEvent, eventBufferSize)

	m.subMu.Lock()
	m.subscribers[ch] = struct{}{}
	m.subMu.Unlock()

	go func() {
		<-ctx.Done()

		m.subMu.Lock()
		defer m.subMu.Unlock()

		delete(m.subscribers, ch)
		close(ch)
	}()

	return ch
}

func (m *Manager) notify(event wallet.SocketEvent) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	for ch := range m.subscribers {
		if !chflow.TrySend(ch, event) {
			logger.Warn(context.Background(), "dropping socket event for slow subscriber",
				"ws.event", event.Kind.String(),
			)
		}
	}
}

// TrackScripts adds scripts to the subscription. The server is told about
// the new set right away when connected, otherwise on the next connection.
func (m *Manager) TrackScripts(_ context.Context, scripts []string) error {
	m.updateActive(func(active types.Set[string]) bool {
		changed := false
		for _, script := range scripts {
			changed = active.AddNew(script) || changed
		}
		return changed
	})
	return nil
}

// UntrackScripts removes scripts from the subscription.
func (m *Manager) UntrackScripts(_ context.Context, scripts []string) error {
	m.updateActive(func(active types.Set[string]) bool {
		changed := false
		for _, script := range scripts {
			if active.Has(script) {
				active.Delete(script)
				changed = true
			}
		}
		return changed
	})
	return nil
}

func (m *Manager) updateActive(update func(types.Set[string]) bool) {
	m.mu.Lock()
	changed := update(m.active)
	m.mu.Unlock()

	if changed {
		chflow.TrySend(m.resubscribe, struct{}{})
	}
}

func (m *Manager) activeScripts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	scripts := m.active.ToSlice()
	slices.Sort(scripts)
	return scripts
}

// Start launches the connection loop. With wait set, it returns once the
// loop is connected for the first time or went offline. The loop stops when
// ctx is done or Stop is called.
func (m *Manager) Start(ctx context.Context, wait bool) error {
	m.mu.Lock()
	if m.current != nil {
		m.mu.Unlock()
		return ErrAlreadyStarted
	}

	r := &run{
		closing: make(chan struct{}),
		settled: make(chan struct{}),
		done:    make(chan struct{}),
	}
	m.current = r
	m.status = StatusReady
	m.mu.Unlock()

	go m.loop(ctx, r)

	if !wait {
		return nil
	}

	select {
	case <-r.settled:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop closes the connection and waits until the loop is offline.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	r := m.current
	m.mu.Unlock()

	if r == nil {
		return nil
	}

	r.close()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) loop(ctx context.Context, r *run) {
	defer func() {
		m.mu.Lock()
		m.current = nil
		m.mu.Unlock()

		close(r.done)
	}()

	status := StatusReady
	for {
		m.setStatus(r, status)
		logger.Debug(ctx, "websocket status", "ws.status", status.String())

		switch status {
		case StatusReady:
			status = StatusConnecting

		case StatusConnecting:
			conn, err := m.connect(ctx)
			if err != nil {
				logger.Warn(ctx, "websocket connection failed", "ws.url", m.url, "error", err)
				m.notify(wallet.SocketEvent{Kind: wallet.SocketError})
				status = StatusDisconnected
				continue
			}

			m.setStatus(r, StatusConnected)
			m.notify(wallet.SocketEvent{Kind: wallet.SocketConnected})
			status = m.serve(r, conn)
			conn.close()

		case StatusDisconnected:
			m.notify(wallet.SocketEvent{Kind: wallet.SocketDisconnected})
			m.reconnects.Add(ctx, 1)

			timer := time.NewTimer(m.reconnectDelay)
			select {
			case <-timer.C:
				status = StatusReady
			case <-r.closing:
				timer.Stop()
				status = StatusOffline
			case <-ctx.Done():
				timer.Stop()
				status = StatusOffline
			}

		case StatusOffline:
			m.notify(wallet.SocketEvent{Kind: wallet.SocketOffline})
			return

		default:
			status = StatusOffline
		}
	}
}

// serve runs while a connection is up and returns the next status.
func (m *Manager) serve(r *run, conn *connection) Status {
	ctx := conn.ctx

	if scripts := m.activeScripts(); len(scripts) > 0 {
		if err := conn.writeSubscription(scripts); err != nil {
			logger.Warn(ctx, "failed to send script subscription", "error", err)
			return StatusDisconnected
		}
	}

	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	var (
		lastResponse = time.Now()
		waitingPong  bool
	)

	for {
		select {
		case <-ctx.Done():
			conn.writeClose()
			return StatusOffline

		case <-r.closing:
			logger.Info(ctx, "closing websocket on request")
			conn.writeClose()
			return StatusOffline

		case <-m.resubscribe:
			if err := conn.writeSubscription(m.activeScripts()); err != nil {
				logger.Warn(ctx, "failed to update script subscription", "error", err)
				return StatusDisconnected
			}

		case data := <-conn.incoming:
			lastResponse = time.Now()
			m.handleMessage(ctx, data)

		case err := <-conn.readErr:
			logger.Warn(ctx, "websocket read failed", "error", err)
			return StatusDisconnected

		case now := <-ticker.C:
			silence := now.Sub(lastResponse)
			switch {
			case silence > m.disconnectAfter:
				logger.Warn(ctx, "websocket is unresponsive, reconnecting", "ws.silence", silence.String())
				return StatusDisconnected
			case !waitingPong && silence > m.pingAfter:
				logger.Debug(ctx, "no websocket traffic, sending ping", "ws.silence", silence.String())
				if err := conn.write(pingPayload); err != nil {
					logger.Warn(ctx, "failed to send ping", "error", err)
					return StatusDisconnected
				}
				waitingPong = true
			case waitingPong && silence <= m.pingAfter:
				waitingPong = false
			}
		}
	}
}

func (m *Manager) handleMessage(ctx context.Context, data []byte) {
	var res response
	if err := json.Unmarshal(data, &res); err != nil {
		logger.Error(ctx, "failed to parse websocket message", "error", err)
		return
	}

	for _, event := range res.addressEvents() {
		m.notify(wallet.SocketEvent{Kind: wallet.SocketAddressEvent, Address: event})
	}
}

// connection is one established websocket.
type connection struct {
	ctx      context.Context
	ws       *websocket.Conn
	incoming chan []byte
	readErr  chan error
	stop     chan struct{}
}

func (m *Manager) connect(ctx context.Context) (*connection, error) {
	ctx = logger.Derive(ctx, "ws.connection_id", uuid.NewString())
	logger.Debug(ctx, "dialing websocket", "ws.url", m.url)

	ws, _, err := m.dialer.DialContext(ctx, m.url, nil)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "websocket connected", "ws.url", m.url)

	c := &connection{
		ctx:      ctx,
		ws:       ws,
		incoming: make(chan []byte),
		readErr:  make(chan error, 1),
		stop:     make(chan struct{}),
	}
	go c.readLoop()

	return c, nil
}

func (c *connection) readLoop() {
	for {
		kind, data, err := c.ws.ReadMessage()
		if err != nil {
			c.readErr <- err
			return
		}

		if kind != websocket.TextMessage {
			logger.Debug(c.ctx, "ignoring non text websocket message", "ws.message_type", kind)
			continue
		}

		select {
		case c.incoming <- data:
		case <-c.stop:
			return
		}
	}
}

func (c *connection) write(payload []byte) error {
	return c.ws.WriteMessage(websocket.TextMessage, payload)
}

func (c *connection) writeSubscription(scripts []string) error {
	if scripts == nil {
		scripts = []string{}
	}

	payload, err := json.Marshal(trackScriptsMessage{TrackScriptPubKeys: scripts})
	if err != nil {
		return err
	}

	logger.Debug(c.ctx, "updating script subscription", "ws.scripts", len(scripts))
	return c.write(payload)
}

func (c *connection) writeClose() {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
}

func (c *connection) close() {
	close(c.stop)
	_ = c.ws.Close()
}
