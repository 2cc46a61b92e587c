package watchpanel

import (
	"strconv"

	"github.com/btcsuite/btcd/btcutil"
)

// BalanceEntry is a funded/spent pair of satoshi totals.
type BalanceEntry struct {
	Funded uint64 `json:"funded"`
	Spent  uint64 `json:"spent"`
}

// Balance is the snapshot a wallet reports for an address: mempool and
// confirmed totals kept apart.
type Balance struct {
	Mempool   BalanceEntry `json:"mempool"`
	Confirmed BalanceEntry `json:"confirmed"`
}

// Net returns the spendable balance in satoshis across mempool and confirmed
// activity. It is negative when unconfirmed spends outweigh what is known to
// have been received.
func (b Balance) Net() int64 {
	funded := b.Mempool.Funded + b.Confirmed.Funded
	spent := b.Mempool.Spent + b.Confirmed.Spent

	if funded >= spent {
		return int64(funded - spent)
	}
	return -int64(spent - funded)
}

// FormatBTC renders a satoshi amount with eight decimals followed by " BTC".
func FormatBTC(sats int64) string {
	return strconv.FormatFloat(btcutil.Amount(sats).ToBTC(), 'f', 8, 64) + " BTC"
}
