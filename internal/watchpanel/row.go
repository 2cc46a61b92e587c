package watchpanel

import "strconv"

// Flash is the transient visual state of a row after a balance change.
type Flash string

// Flash values. FlashConfirmation marks an update that left the total
// balance unchanged, such as a confirmation.
const (
	FlashNone         Flash = ""
	FlashCredit       Flash = "credit"
	FlashDebit        Flash = "debit"
	FlashConfirmation Flash = "conf"
)

// Row is a read-only snapshot of one watched address as displayed.
type Row struct {
	Address string

	// Reported is false until the wallet delivered the first balance. The
	// balance and transaction count cells stay blank until then.
	Reported bool
	Balance  int64
	TxCount  int

	Flash Flash
}

// BalanceText returns the balance cell, e.g. "1.50000000 BTC".
func (r Row) BalanceText() string {
	if !r.Reported {
		return ""
	}
	return FormatBTC(r.Balance)
}

// TxCountText returns the transaction count cell.
func (r Row) TxCountText() string {
	if !r.Reported {
		return ""
	}
	return strconv.Itoa(r.TxCount)
}

// row is the panel-owned state behind a Row.
type row struct {
	address  string
	reported bool
	balance  int64
	txCount  int
	flash    Flash
	timer    stopper
}

func (r *row) snapshot() Row {
	return Row{
		Address:  r.address,
		Reported: r.reported,
		Balance:  r.balance,
		TxCount:  r.txCount,
		Flash:    r.flash,
	}
}
