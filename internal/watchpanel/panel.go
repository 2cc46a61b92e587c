// Package watchpanel keeps the state behind the address watch panel: the
// ordered set of watched addresses, the row shown for each one, and the short
// credit/debit/confirmation highlight that follows a balance change.
//
// The panel does not know how balances are obtained. It is handed a Wallet
// that it asks to track addresses, and the wallet reports back through
// OnAddressEvent. Rendering is left to the caller, which reads Rows and is
// told about changes through the OnChange hook.
package watchpanel

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gabapcia/addresswatch/internal/pkg/logger"
	"github.com/gabapcia/addresswatch/internal/pkg/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// ErrNotInitialized is returned when an address is tracked before Init
// handed the panel a wallet.
var ErrNotInitialized = errors.New("watch panel has no wallet")

// DefaultFlashDuration is how long a row keeps its highlight.
const DefaultFlashDuration = time.Second

// Wallet is the collaborator that knows how to follow addresses on chain.
type Wallet interface {
	// Subscribe starts delivering address updates to the panel's owner.
	Subscribe(ctx context.Context) error

	// Connect opens the wallet's connection to its backend.
	Connect(ctx context.Context) error

	// TrackAddress asks the wallet to start following address. The returned
	// boolean tells whether the wallet accepted it.
	TrackAddress(ctx context.Context, address string) (bool, error)
}

// Alerter shows a blocking, user-facing message.
type Alerter func(message string)

// stopper is the part of *time.Timer the panel relies on.
type stopper interface {
	Stop() bool
}

type afterFunc func(d time.Duration, f func()) stopper

func timeAfterFunc(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

// Panel is the address watch panel. It is safe for concurrent use: wallet
// callbacks and user submissions may arrive from different goroutines.
type Panel struct {
	mu sync.Mutex

	wallet Wallet

	registry types.Set[string]
	order    []string
	rows     map[string]*row

	alert         Alerter
	onChange      func()
	flashDuration time.Duration
	afterFunc     afterFunc

	trackedCounter metric.Int64Counter
	flashCounter   metric.Int64Counter
}

type config struct {
	alert         Alerter
	onChange      func()
	flashDuration time.Duration
	meter         metric.Meter
}

// Option configures a Panel.
type Option func(*config)

// New creates an empty panel.
func New(opts ...Option) *Panel {
	cfg := config{
		alert:         func(string) {},
		onChange:      func() {},
		flashDuration: DefaultFlashDuration,
		meter:         otel.Meter("github.com/gabapcia/addresswatch/internal/watchpanel"),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	trackedCounter, _ := cfg.meter.Int64Counter("addresswatch.panel.tracked",
		metric.WithDescription("Addresses added to the watch panel"),
	)
	flashCounter, _ := cfg.meter.Int64Counter("addresswatch.panel.flashes",
		metric.WithDescription("Balance changes highlighted on a row"),
	)

	return &Panel{
		registry:       types.NewSet[string](),
		rows:           make(map[string]*row),
		alert:          cfg.alert,
		onChange:       cfg.onChange,
		flashDuration:  cfg.flashDuration,
		afterFunc:      timeAfterFunc,
		trackedCounter: trackedCounter,
		flashCounter:   flashCounter,
	}
}

// WithAlerter sets how invalid input is reported to the user.
func WithAlerter(a Alerter) Option {
	return func(c *config) {
		c.alert = a
	}
}

// WithOnChange registers a hook called after every visible change. It is
// called without the panel lock held.
func WithOnChange(f func()) Option {
	return func(c *config) {
		c.onChange = f
	}
}

// WithFlashDuration sets how long a row stays highlighted.
func WithFlashDuration(d time.Duration) Option {
	return func(c *config) {
		c.flashDuration = d
	}
}

// WithMeter overrides the OpenTelemetry meter used for panel counters.
func WithMeter(m metric.Meter) Option {
	return func(c *config) {
		c.meter = m
	}
}

// Init hands the panel its wallet, then subscribes to and connects the
// wallet, in that order. Calling Init again replaces the wallet.
//
// Both wallet calls are always made; their errors are joined.
func (p *Panel) Init(ctx context.Context, wallet Wallet) error {
	p.mu.Lock()
	p.wallet = wallet
	p.mu.Unlock()

	subscribeErr := wallet.Subscribe(ctx)
	if subscribeErr != nil {
		logger.Error(ctx, "wallet subscribe failed", "error", subscribeErr)
	}

	connectErr := wallet.Connect(ctx)
	if connectErr != nil {
		logger.Error(ctx, "wallet connect failed", "error", connectErr)
	}

	return errors.Join(subscribeErr, connectErr)
}

// Rows returns the rows in the order the addresses were added.
func (p *Panel) Rows() []Row {
	p.mu.Lock()
	defer p.mu.Unlock()

	rows := make([]Row, 0, len(p.order))
	for _, address := range p.order {
		rows = append(rows, p.rows[address].snapshot())
	}
	return rows
}

// Row returns the row for address.
func (p *Panel) Row(address string) (Row, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	r, ok := p.rows[address]
	if !ok {
		return Row{}, false
	}
	return r.snapshot(), true
}

// Len returns the number of watched addresses.
func (p *Panel) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.order)
}

// Visible reports whether the table should be shown, which is once at least
// one address is watched.
func (p *Panel) Visible() bool {
	return p.Len() > 0
}

// Close stops pending highlight timers. Rows keep their current state.
func (p *Panel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, r := range p.rows {
		if r.timer != nil {
			r.timer.Stop()
			r.timer = nil
		}
	}
}
