package wallet

import (
	"context"
	"fmt"

	"github.com/gabapcia/addresswatch/internal/pkg/logger"
	"github.com/gabapcia/addresswatch/internal/pkg/types"
)

// syncHistory brings t up to date with the backend.
//
// Only the part of the history newer than the last confirmed transaction
// already known is fetched. Known transactions in that range that the
// backend no longer returns are removed. Realtime events received in the
// meantime are queued by the tracker and applied once the fetched history
// is in place. Syncs of the same tracker never overlap: a second one waits
// and then fetches from whatever the first one left behind.
func (w *Wallet) syncHistory(ctx context.Context, t *tracker) error {
	t.syncMu.Lock()
	defer t.syncMu.Unlock()

	t.mu.Lock()
	t.setLoadingLocked(true)
	initial := t.stateLocked()
	t.mu.Unlock()

	var (
		untilTxid   string
		untilHeight *uint32
	)
	if last, ok := initial.lastConfirmed(); ok {
		untilTxid = last.Txid
		height := last.Status.BlockHeight
		untilHeight = &height
	}

	logger.Debug(ctx, "syncing address history",
		"wallet.script", t.script,
		"wallet.known_transactions", len(initial.Transactions),
	)

	var fetched []Tx
	err := w.retry.Execute(ctx, func() error {
		txs, err := w.api.FetchAddressHistory(ctx, t.script, untilTxid, untilHeight)
		if err != nil {
			return err
		}

		fetched = txs
		return nil
	})
	if err != nil {
		t.setLoading(false)
		w.syncFailures.Add(ctx, 1)
		return fmt.Errorf("sync history of %s: %w", t.script, err)
	}

	fetchedIDs := types.NewSet[string]()
	for _, tx := range fetched {
		fetchedIDs.Add(tx.Txid)
	}

	t.mu.Lock()
	for i := len(initial.Transactions) - 1; i >= 0; i-- {
		tx := initial.Transactions[i]
		if tx.Status.Confirmed && untilHeight != nil && tx.Status.BlockHeight <= *untilHeight {
			break
		}

		if !fetchedIDs.Has(tx.Txid) {
			t.processEventLocked(AddressEvent{Kind: AddressEventRemoved, Script: t.script, Tx: tx}, false)
		}
	}

	for _, tx := range fetched {
		kind := AddressEventMempool
		if tx.Status.Confirmed {
			kind = AddressEventConfirmed
		}
		t.processEventLocked(AddressEvent{Kind: kind, Script: t.script, Tx: tx}, false)
	}

	t.setLoadingLocked(false)
	state := t.stateLocked()
	t.mu.Unlock()

	w.publish(Event{Kind: EventAddressReady, Script: t.script})

	if w.cache != nil {
		if err := w.cache.SaveState(ctx, w.network.Name, state); err != nil {
			logger.Warn(ctx, "failed to cache address history",
				"wallet.script", t.script,
				"error", err,
			)
		}
	}

	logger.Debug(ctx, "address history synced",
		"wallet.script", t.script,
		"wallet.fetched_transactions", len(fetched),
		"wallet.transactions", len(state.Transactions),
	)

	return nil
}

// restoreFromCache seeds a fresh tracker with the cached state of its script.
func (w *Wallet) restoreFromCache(ctx context.Context, t *tracker) {
	if w.cache == nil {
		return
	}

	state, found, err := w.cache.LoadState(ctx, w.network.Name, t.script)
	if err != nil {
		logger.Warn(ctx, "failed to load cached address history",
			"wallet.script", t.script,
			"error", err,
		)
		return
	}

	if found {
		t.restore(state)
	}
}
