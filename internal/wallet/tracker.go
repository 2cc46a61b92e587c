package wallet

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/gabapcia/addresswatch/internal/pkg/logger"
)

// Balance sums the value received and sent by a script.
type Balance struct {
	Funded uint64 `json:"funded"`
	Spent  uint64 `json:"spent"`
}

// Balances splits a script's balance between unconfirmed and confirmed
// activity.
type Balances struct {
	Mempool   Balance `json:"mempool"`
	Confirmed Balance `json:"confirmed"`
}

// Total merges mempool and confirmed activity.
func (b Balances) Total() Balance {
	return Balance{
		Funded: b.Mempool.Funded + b.Confirmed.Funded,
		Spent:  b.Mempool.Spent + b.Confirmed.Spent,
	}
}

// State is a point-in-time copy of what the wallet knows about a script.
// Transactions are ordered confirmed first by height, then mempool; ties
// are broken by txid.
type State struct {
	Script       string   `json:"script"`
	Transactions []Tx     `json:"transactions"`
	Balance      Balances `json:"balance"`
}

// lastConfirmed returns the most recent confirmed transaction of the state.
func (s State) lastConfirmed() (Tx, bool) {
	for i := len(s.Transactions) - 1; i >= 0; i-- {
		if s.Transactions[i].Status.Confirmed {
			return s.Transactions[i], true
		}
	}
	return Tx{}, false
}

func compareTx(a, b Tx) int {
	if (a.Status.Confirmed || b.Status.Confirmed) && a.Status.BlockHeight != b.Status.BlockHeight {
		switch {
		case a.Status.Confirmed && b.Status.Confirmed:
			return cmp.Compare(a.Status.BlockHeight, b.Status.BlockHeight)
		case a.Status.Confirmed:
			return -1
		default:
			return 1
		}
	}
	return cmp.Compare(a.Txid, b.Txid)
}

// tracker keeps the transaction set and balance of a single script.
// Realtime events that arrive while the history is loading are queued and
// applied once loading ends.
type tracker struct {
	mu sync.Mutex

	// syncMu is held for a whole history sync.
	syncMu sync.Mutex

	script       string
	transactions map[string]Tx
	balance      Balances
	queue        []AddressEvent
	loading      bool

	publish func(Event)
}

func newTracker(script string, publish func(Event)) *tracker {
	return &tracker{
		script:       script,
		transactions: make(map[string]Tx),
		loading:      true,
		publish:      publish,
	}
}

// restore replays a previously saved state into an empty tracker.
func (t *tracker) restore(state State) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, tx := range state.Transactions {
		t.addTransaction(tx)
	}
}

func (t *tracker) state() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.stateLocked()
}

func (t *tracker) stateLocked() State {
	txs := slices.Collect(maps.Values(t.transactions))
	slices.SortFunc(txs, compareTx)

	return State{
		Script:       t.script,
		Transactions: txs,
		Balance:      t.balance,
	}
}

func (t *tracker) processEvent(event AddressEvent, realtime bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.processEventLocked(event, realtime)
}

func (t *tracker) processEventLocked(event AddressEvent, realtime bool) {
	if realtime && t.loading {
		logger.Debug(context.Background(), "queuing address event while loading",
			"wallet.script", t.script,
			"wallet.event", event.String(),
		)
		t.queue = append(t.queue, event)
		return
	}

	switch event.Kind {
	case AddressEventMempool, AddressEventConfirmed:
		t.addTransaction(event.Tx)
	case AddressEventRemoved:
		t.removeTransaction(event.Tx.Txid)
	}

	event.Script = t.script
	t.publish(Event{Kind: EventAddress, Script: t.script, Address: event})
}

func (t *tracker) setLoading(loading bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.setLoadingLocked(loading)
}

func (t *tracker) setLoadingLocked(loading bool) {
	wasLoading := t.loading
	t.loading = loading
	if wasLoading && !loading {
		t.drainQueueLocked()
	}
}

func (t *tracker) drainQueueLocked() {
	queue := t.queue
	t.queue = nil
	for _, event := range queue {
		t.processEventLocked(event, false)
	}
}

func (t *tracker) addTransaction(tx Tx) {
	// a previous version of tx is undone before the new one is applied
	if _, ok := t.transactions[tx.Txid]; ok {
		t.removeTransaction(tx.Txid)
	}

	t.apply(tx, func(b *Balance, funded, spent uint64) {
		b.Funded += funded
		b.Spent += spent
	})
	t.transactions[tx.Txid] = tx
}

func (t *tracker) removeTransaction(txid string) {
	tx, ok := t.transactions[txid]
	if !ok {
		return
	}

	delete(t.transactions, txid)
	t.apply(tx, func(b *Balance, funded, spent uint64) {
		b.Funded -= funded
		b.Spent -= spent
	})
}

// apply computes what tx funds and spends for the tracked script and hands
// it to f together with the bucket it belongs to.
func (t *tracker) apply(tx Tx, f func(b *Balance, funded, spent uint64)) {
	var funded, spent uint64
	for _, in := range tx.Vin {
		if in.Prevout != nil && in.Prevout.ScriptPubKey == t.script {
			spent += in.Prevout.Value
		}
	}
	for _, out := range tx.Vout {
		if out.ScriptPubKey == t.script {
			funded += out.Value
		}
	}

	bucket := &t.balance.Mempool
	if tx.Status.Confirmed {
		bucket = &t.balance.Confirmed
	}
	f(bucket, funded, spent)
}
