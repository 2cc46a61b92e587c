package watchpanel

import (
	"context"
	"fmt"

	"github.com/gabapcia/addresswatch/internal/pkg/logger"
	"github.com/gabapcia/addresswatch/internal/pkg/validator"
)

// InvalidAddressMessage is the alert text for input outside the address grammar.
func InvalidAddressMessage(address string) string {
	return fmt.Sprintf("%s is not a valid bitcoin address!", address)
}

// TrackAddress adds address to the panel and asks the wallet to track it.
//
// Input outside the address grammar raises an alert and returns false with no
// state change. An address already on the panel returns true without
// contacting the wallet again. Otherwise the row is added first and the
// wallet's answer, error included, is returned as is.
func (p *Panel) TrackAddress(ctx context.Context, address string) (bool, error) {
	if !validator.IsWatchAddress(address) {
		logger.Debug(ctx, "rejected address input", "address", address)
		p.alert(InvalidAddressMessage(address))
		return false, nil
	}

	p.mu.Lock()
	if !p.registry.AddNew(address) {
		p.mu.Unlock()
		return true, nil
	}

	p.rows[address] = &row{address: address}
	p.order = append(p.order, address)
	wallet := p.wallet
	p.mu.Unlock()

	p.trackedCounter.Add(ctx, 1)
	p.onChange()

	if wallet == nil {
		return false, ErrNotInitialized
	}

	logger.Info(ctx, "tracking address", "address", address)
	return wallet.TrackAddress(ctx, address)
}
