package mempoolws

import (
	"encoding/json"
	"slices"

	"github.com/gabapcia/addresswatch/internal/wallet"
)

type trackScriptsMessage struct {
	TrackScriptPubKeys []string `json:"track-scriptpubkeys"`
}

type pingMessage struct {
	Action string `json:"action"`
}

var pingPayload, _ = json.Marshal(pingMessage{Action: "ping"})

type scriptTransactions struct {
	Mempool   []wallet.Tx `json:"mempool"`
	Confirmed []wallet.Tx `json:"confirmed"`
	Removed   []wallet.Tx `json:"removed"`
}

type response struct {
	MultiScriptPubKeyTransactions map[string]scriptTransactions `json:"multi-scriptpubkey-transactions"`
}

// addressEvents turns a multi-scriptpubkey-transactions payload into wallet
// events. For each script, removals come first, then mempool entries, then
// confirmations. Scripts are visited in lexical order.
func (r response) addressEvents() []wallet.AddressEvent {
	scripts := make([]string, 0, len(r.MultiScriptPubKeyTransactions))
	for script := range r.MultiScriptPubKeyTransactions {
		scripts = append(scripts, script)
	}
	slices.Sort(scripts)

	var events []wallet.AddressEvent
	for _, script := range scripts {
		txs := r.MultiScriptPubKeyTransactions[script]
		events = appendEvents(events, wallet.AddressEventRemoved, script, txs.Removed)
		events = appendEvents(events, wallet.AddressEventMempool, script, txs.Mempool)
		events = appendEvents(events, wallet.AddressEventConfirmed, script, txs.Confirmed)
	}
	return events
}

func appendEvents(events []wallet.AddressEvent, kind wallet.AddressEventKind, script string, txs []wallet.Tx) []wallet.AddressEvent {
	for _, tx := range txs {
		events = append(events, wallet.AddressEvent{Kind: kind, Script: script, Tx: tx})
	}
	return events
}
