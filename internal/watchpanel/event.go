package watchpanel

import (
	"context"

	"github.com/gabapcia/addresswatch/internal/pkg/logger"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OnAddressEvent applies a wallet update to the row of address.
//
// A nil balance leaves the row untouched. Otherwise the balance and
// transaction count are replaced, and when the row is not already
// highlighted and the new balance is non-zero, the row is flagged credit,
// debit, or conf by comparing against the previous balance. The flag clears
// itself after the flash duration; until then further updates do not change it.
func (p *Panel) OnAddressEvent(address string, txCount int, balance *Balance) {
	ctx := context.Background()

	p.mu.Lock()
	r, ok := p.rows[address]
	if !ok {
		p.mu.Unlock()
		logger.Debug(ctx, "update for unknown address ignored", "address", address)
		return
	}

	if balance == nil {
		p.mu.Unlock()
		return
	}

	newBalance := balance.Net()
	prevBalance := r.balance

	r.balance = newBalance
	r.txCount = txCount
	r.reported = true

	flash := FlashNone
	if r.flash == FlashNone && newBalance != 0 {
		flash = flashFor(prevBalance, newBalance)
		r.flash = flash
		r.timer = p.afterFunc(p.flashDuration, func() {
			p.clearFlash(address)
		})
	}
	p.mu.Unlock()

	if flash != FlashNone {
		p.flashCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("flash", string(flash))))
		logger.Debug(ctx, "balance change highlighted",
			"address", address,
			"balance.previous", prevBalance,
			"balance.current", newBalance,
			"flash", string(flash),
		)
	}

	p.onChange()
}

func flashFor(prev, current int64) Flash {
	switch {
	case prev < current:
		return FlashCredit
	case prev > current:
		return FlashDebit
	default:
		return FlashConfirmation
	}
}

// clearFlash ends the highlight of address, making the row eligible again.
func (p *Panel) clearFlash(address string) {
	p.mu.Lock()
	r, ok := p.rows[address]
	if !ok || r.flash == FlashNone {
		p.mu.Unlock()
		return
	}

	r.flash = FlashNone
	r.timer = nil
	p.mu.Unlock()

	p.onChange()
}
