// Package wallet follows bitcoin output scripts on an esplora-compatible
// backend. History is fetched over REST and kept current through a realtime
// socket; every change is published as an Event and, for addresses tracked
// through TrackAddress, forwarded to an UpdateHandler with the address's
// transaction count and balance.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/gabapcia/addresswatch/internal/pkg/logger"
	"github.com/gabapcia/addresswatch/internal/pkg/resilience/retry"
	"github.com/gabapcia/addresswatch/internal/pkg/types"
	"github.com/gabapcia/addresswatch/internal/pkg/x/chflow"

	"github.com/btcsuite/btcd/chaincfg"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrAlreadyConnected = errors.New("wallet already connected")
	ErrNoUpdateHandler  = errors.New("wallet has no update handler")
	ErrSyncFailed       = errors.New("address history sync failed")
)

const eventBufferSize = 256

// HistoryFetcher retrieves the transaction history of a script, oldest
// first. When untilTxid or untilHeight are set, the fetcher may stop once it
// reaches that transaction or a confirmation at or below that height.
type HistoryFetcher interface {
	FetchAddressHistory(ctx context.Context, script, untilTxid string, untilHeight *uint32) ([]Tx, error)
}

// Socket is the realtime feed of script activity.
type Socket interface {
	// Start runs the connection in the background. When wait is true it
	// returns once the first connection attempt settled.
	Start(ctx context.Context, wait bool) error

	// Stop closes the connection and waits until it is offline.
	Stop(ctx context.Context) error

	// Subscribe returns the socket events. The channel is closed once ctx
	// is done.
	Subscribe(ctx context.Context) <-chan SocketEvent

	TrackScripts(ctx context.Context, scripts []string) error
	UntrackScripts(ctx context.Context, scripts []string) error
}

// HistoryCache stores script states between runs so history sync only
// fetches what changed since.
type HistoryCache interface {
	LoadState(ctx context.Context, network, script string) (State, bool, error)
	SaveState(ctx context.Context, network string, state State) error
}

// UpdateHandler receives the current figures of a tracked address.
type UpdateHandler func(address string, txCount int, balance *Balances)

// Wallet tracks a set of scripts. It is safe for concurrent use.
type Wallet struct {
	api      HistoryFetcher
	socket   Socket
	network  *chaincfg.Params
	retry    retry.Retry
	cache    HistoryCache
	onUpdate UpdateHandler
	waitConn bool

	mu       sync.Mutex
	trackers map[string]*tracker
	labels   types.DefaultMap[string, types.Set[string]]
	loopDone chan struct{}

	subMu       sync.Mutex
	subscribers map[chan Event]struct{}

	eventCounter metric.Int64Counter
	syncFailures metric.Int64Counter
}

type config struct {
	network  *chaincfg.Params
	retry    retry.Retry
	cache    HistoryCache
	onUpdate UpdateHandler
	waitConn bool
	meter    metric.Meter
}

// Option configures a Wallet.
type Option func(*config)

// New creates a wallet reading history from api and realtime activity from
// socket. The wallet defaults to mainnet.
func New(api HistoryFetcher, socket Socket, opts ...Option) *Wallet {
	cfg := config{
		network:  &chaincfg.MainNetParams,
		retry:    retry.New(retry.WithName("address history sync")),
		waitConn: true,
		meter:    otel.Meter("github.com/gabapcia/addresswatch/internal/wallet"),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	eventCounter, _ := cfg.meter.Int64Counter("addresswatch.wallet.events",
		metric.WithDescription("Events published by the wallet"),
	)
	syncFailures, _ := cfg.meter.Int64Counter("addresswatch.wallet.sync_failures",
		metric.WithDescription("Address history syncs that gave up"),
	)

	return &Wallet{
		api:          api,
		socket:       socket,
		network:      cfg.network,
		retry:        cfg.retry,
		cache:        cfg.cache,
		onUpdate:     cfg.onUpdate,
		waitConn:     cfg.waitConn,
		trackers:     make(map[string]*tracker),
		labels:       types.NewDefaultMap[string](func() types.Set[string] { return types.NewSet[string]() }),
		subscribers:  make(map[chan Event]struct{}),
		eventCounter: eventCounter,
		syncFailures: syncFailures,
	}
}

// WithWaitForConnection controls whether Connect blocks until the first
// connection attempt settled. It does by default.
func WithWaitForConnection(wait bool) Option {
	return func(c *config) {
		c.waitConn = wait
	}
}

// WithNetwork sets the chain addresses are decoded for.
func WithNetwork(params *chaincfg.Params) Option {
	return func(c *config) {
		c.network = params
	}
}

// WithUpdateHandler sets the handler Subscribe forwards address updates to.
func WithUpdateHandler(h UpdateHandler) Option {
	return func(c *config) {
		c.onUpdate = h
	}
}

// WithRetry sets the policy used for history requests.
func WithRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retry = r
	}
}

// WithHistoryCache enables incremental sync across restarts.
func WithHistoryCache(cache HistoryCache) Option {
	return func(c *config) {
		c.cache = cache
	}
}

// WithMeter overrides the OpenTelemetry meter used for wallet counters.
func WithMeter(m metric.Meter) Option {
	return func(c *config) {
		c.meter = m
	}
}

// Network returns the chain parameters the wallet decodes addresses for.
func (w *Wallet) Network() *chaincfg.Params {
	return w.network
}

// Events returns a channel receiving every event published from now on. The
// channel is closed once ctx is done. Events are dropped for subscribers that
// fall behind.
func (w *Wallet) Events(ctx context.Context) <-chan Event {
	ch := make(chan Event, eventBufferSize)

	w.subMu.Lock()
	w.subscribers[ch] = struct{}{}
	w.subMu.Unlock()

	go func() {
		<-ctx.Done()

		w.subMu.Lock()
		defer w.subMu.Unlock()

		delete(w.subscribers, ch)
		close(ch)
	}()

	return ch
}

func (w *Wallet) publish(event Event) {
	w.eventCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("event.kind", event.Kind.String())),
	)

	w.subMu.Lock()
	defer w.subMu.Unlock()

	for ch := range w.subscribers {
		if !chflow.TrySend(ch, event) {
			logger.Warn(context.Background(), "dropping wallet event for slow subscriber",
				"wallet.event", event.Kind.String(),
				"wallet.script", event.Script,
			)
		}
	}
}

// Subscribe forwards address updates to the configured UpdateHandler until
// ctx is done. An address is reported once its history is synced and again
// after every change; reports pause between a disconnection and the next
// sync.
func (w *Wallet) Subscribe(ctx context.Context) error {
	if w.onUpdate == nil {
		return ErrNoUpdateHandler
	}

	events := w.Events(ctx)
	go w.forwardUpdates(ctx, events)

	return nil
}

func (w *Wallet) forwardUpdates(ctx context.Context, events <-chan Event) {
	ready := types.NewSet[string]()
	for event := range events {
		switch event.Kind {
		case EventDisconnected:
			logger.Debug(ctx, "wallet disconnected")
			ready.Clear()
		case EventAddressReady:
			ready.Add(event.Script)
			w.notify(event.Script)
		case EventAddress:
			if ready.Has(event.Script) {
				logger.Debug(ctx, "wallet address event", "wallet.event", event.Address.String())
				w.notify(event.Script)
			}
		}
	}
}

func (w *Wallet) notify(script string) {
	state, ok := w.AddressState(script)
	if !ok {
		return
	}

	w.mu.Lock()
	set, _ := w.labels.Lookup(script)
	labels := set.ToSlice()
	w.mu.Unlock()

	for _, label := range labels {
		balance := state.Balance
		w.onUpdate(label, len(state.Transactions), &balance)
	}
}

// Connect starts the realtime socket. Unless WithWaitForConnection(false)
// was given, it returns once the first connection attempt settled. Every (re)connection re-tracks the known scripts and
// resyncs their history.
func (w *Wallet) Connect(ctx context.Context) error {
	w.mu.Lock()
	if w.loopDone != nil {
		select {
		case <-w.loopDone:
		default:
			w.mu.Unlock()
			return ErrAlreadyConnected
		}
	}
	done := make(chan struct{})
	w.loopDone = done
	w.mu.Unlock()

	events := w.socket.Subscribe(ctx)
	go w.handleSocketEvents(ctx, events, done)

	if err := w.socket.Start(ctx, w.waitConn); err != nil {
		return fmt.Errorf("start socket: %w", err)
	}

	return nil
}

func (w *Wallet) handleSocketEvents(ctx context.Context, events <-chan SocketEvent, done chan<- struct{}) {
	defer close(done)

	for {
		event, ok := chflow.Receive(ctx, events)
		if !ok {
			return
		}

		switch event.Kind {
		case SocketOffline:
			logger.Info(ctx, "wallet socket offline")
			return
		case SocketDisconnected:
			logger.Info(ctx, "wallet socket disconnected")
			w.publish(Event{Kind: EventDisconnected})
		case SocketConnected:
			logger.Info(ctx, "wallet socket connected")
			go w.initAddresses(ctx)
		case SocketError:
			logger.Warn(ctx, "wallet socket reported an error")
		case SocketAddressEvent:
			w.handleAddressEvent(ctx, event.Address, true)
		}
	}
}

// initAddresses re-tracks every known script on a fresh connection and
// resyncs their history.
func (w *Wallet) initAddresses(ctx context.Context) {
	w.mu.Lock()
	scripts := make([]string, 0, len(w.trackers))
	trackers := make([]*tracker, 0, len(w.trackers))
	for script, t := range w.trackers {
		scripts = append(scripts, script)
		trackers = append(trackers, t)
	}
	w.mu.Unlock()

	if len(scripts) == 0 {
		return
	}

	logger.Debug(ctx, "reinitialising tracked scripts", "wallet.scripts", len(scripts))

	if err := w.socket.TrackScripts(ctx, scripts); err != nil {
		logger.Warn(ctx, "failed to re-track scripts", "error", err)
	}

	for _, t := range trackers {
		if err := w.syncHistory(ctx, t); err != nil {
			logger.Warn(ctx, "address history sync failed", "wallet.script", t.script, "error", err)
		}
	}
}

func (w *Wallet) handleAddressEvent(ctx context.Context, event AddressEvent, realtime bool) {
	w.mu.Lock()
	t, ok := w.trackers[event.Script]
	w.mu.Unlock()

	if !ok {
		logger.Warn(ctx, "address event for unknown script", "wallet.script", event.Script)
		return
	}

	t.processEvent(event, realtime)
}

// Disconnect stops the socket and waits for the event loop to finish.
func (w *Wallet) Disconnect(ctx context.Context) error {
	if err := w.socket.Stop(ctx); err != nil {
		return fmt.Errorf("stop socket: %w", err)
	}

	w.mu.Lock()
	done := w.loopDone
	w.mu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrackAddress starts following address. It returns false when the address
// does not decode for the wallet's network. A failed history sync does not
// undo the tracking; the address is synced again on the next connection.
func (w *Wallet) TrackAddress(ctx context.Context, address string) (bool, error) {
	script, err := ScriptForAddress(address, w.network)
	if err != nil {
		logger.Debug(ctx, "refusing to track address", "wallet.address", address, "error", err)
		return false, nil
	}

	w.mu.Lock()
	w.labels.Get(script).Add(address)
	w.mu.Unlock()

	if _, err := w.Watch(ctx, []string{script}); err != nil {
		if !errors.Is(err, ErrSyncFailed) {
			return false, err
		}
		logger.Warn(ctx, "tracking address without history", "wallet.address", address, "error", err)
	}

	return true, nil
}

// Watch tracks scripts on the socket, syncs the history of the ones not
// tracked yet, and returns the state of every requested script. Sync
// failures are reported wrapped in ErrSyncFailed alongside the states.
func (w *Wallet) Watch(ctx context.Context, scripts []string) ([]State, error) {
	if err := w.socket.TrackScripts(ctx, scripts); err != nil {
		return nil, fmt.Errorf("track scripts: %w", err)
	}

	var created []*tracker
	w.mu.Lock()
	for _, script := range scripts {
		if _, ok := w.trackers[script]; ok {
			continue
		}

		t := newTracker(script, w.publish)
		w.trackers[script] = t
		created = append(created, t)
	}
	w.mu.Unlock()

	var errs []error
	for _, t := range created {
		w.restoreFromCache(ctx, t)
		if err := w.syncHistory(ctx, t); err != nil {
			errs = append(errs, err)
		}
	}

	states := make([]State, 0, len(scripts))
	for _, script := range scripts {
		if state, ok := w.AddressState(script); ok {
			states = append(states, state)
		}
	}

	if len(errs) > 0 {
		return states, fmt.Errorf("%w: %w", ErrSyncFailed, errors.Join(errs...))
	}

	return states, nil
}

// Unwatch forgets scripts and stops tracking them on the socket.
func (w *Wallet) Unwatch(ctx context.Context, scripts []string) error {
	w.mu.Lock()
	for _, script := range scripts {
		delete(w.trackers, script)
		w.labels.Delete(script)
	}
	w.mu.Unlock()

	if err := w.socket.UntrackScripts(ctx, scripts); err != nil {
		return fmt.Errorf("untrack scripts: %w", err)
	}

	return nil
}

// AddressState returns the current state of script.
func (w *Wallet) AddressState(script string) (State, bool) {
	w.mu.Lock()
	t, ok := w.trackers[script]
	w.mu.Unlock()

	if !ok {
		return State{}, false
	}

	return t.state(), true
}

// States returns the state of every tracked script, ordered by script.
func (w *Wallet) States() []State {
	w.mu.Lock()
	trackers := make([]*tracker, 0, len(w.trackers))
	for _, t := range w.trackers {
		trackers = append(trackers, t)
	}
	w.mu.Unlock()

	states := make([]State, 0, len(trackers))
	for _, t := range trackers {
		states = append(states, t.state())
	}
	slices.SortFunc(states, func(a, b State) int {
		return strings.Compare(a.Script, b.Script)
	})

	return states
}
