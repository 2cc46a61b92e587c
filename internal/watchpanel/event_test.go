package watchpanel

import (
	"testing"

	watchpaneltest "github.com/gabapcia/addresswatch/internal/watchpanel/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// trackedPanel returns a panel already watching address.
func trackedPanel(t *testing.T, address string) (*Panel, *fakeTimers) {
	t.Helper()

	p, timers, _ := newTestPanel(t)
	wallet := watchpaneltest.NewWallet(t)
	wallet.EXPECT().TrackAddress(mock.Anything, address).Return(true, nil)
	p.wallet = wallet

	_, err := p.TrackAddress(t.Context(), address)
	require.NoError(t, err)

	return p, timers
}

func confirmed(funded, spent uint64) *Balance {
	return &Balance{Confirmed: BalanceEntry{Funded: funded, Spent: spent}}
}

func mustRow(t *testing.T, p *Panel, address string) Row {
	t.Helper()

	row, ok := p.Row(address)
	require.True(t, ok)
	return row
}

func TestPanel_OnAddressEvent(t *testing.T) {
	t.Run("incoming funds are highlighted as credit", func(t *testing.T) {
		p, timers := trackedPanel(t, genesisAddress)
		p.OnAddressEvent(genesisAddress, 2, confirmed(100_000_000, 0))
		timers.fireAll()

		p.OnAddressEvent(genesisAddress, 3, confirmed(150_000_000, 0))

		row := mustRow(t, p, genesisAddress)
		assert.Equal(t, "1.50000000 BTC", row.BalanceText())
		assert.Equal(t, "3", row.TxCountText())
		assert.Equal(t, FlashCredit, row.Flash)
		assert.Equal(t, 1, timers.count(), "one highlight scheduled")
	})

	t.Run("outgoing funds are highlighted as debit", func(t *testing.T) {
		p, timers := trackedPanel(t, genesisAddress)
		p.OnAddressEvent(genesisAddress, 1, confirmed(100_000_000, 0))
		timers.fireAll()

		p.OnAddressEvent(genesisAddress, 2, &Balance{
			Mempool:   BalanceEntry{Spent: 40_000_000},
			Confirmed: BalanceEntry{Funded: 100_000_000},
		})

		row := mustRow(t, p, genesisAddress)
		assert.Equal(t, "0.60000000 BTC", row.BalanceText())
		assert.Equal(t, FlashDebit, row.Flash)
	})

	t.Run("unchanged balance is highlighted as confirmation", func(t *testing.T) {
		p, timers := trackedPanel(t, genesisAddress)
		p.OnAddressEvent(genesisAddress, 1, &Balance{Mempool: BalanceEntry{Funded: 5000}})
		timers.fireAll()

		p.OnAddressEvent(genesisAddress, 1, &Balance{Confirmed: BalanceEntry{Funded: 5000}})

		row := mustRow(t, p, genesisAddress)
		assert.Equal(t, "0.00005000 BTC", row.BalanceText())
		assert.Equal(t, FlashConfirmation, row.Flash)
	})

	t.Run("first report compares against an empty balance", func(t *testing.T) {
		p, _ := trackedPanel(t, genesisAddress)

		p.OnAddressEvent(genesisAddress, 1, confirmed(1000, 0))

		assert.Equal(t, FlashCredit, mustRow(t, p, genesisAddress).Flash)
	})

	t.Run("zero balance never highlights", func(t *testing.T) {
		p, timers := trackedPanel(t, genesisAddress)
		p.OnAddressEvent(genesisAddress, 1, confirmed(100_000, 0))
		timers.fireAll()

		p.OnAddressEvent(genesisAddress, 2, confirmed(100_000, 100_000))

		row := mustRow(t, p, genesisAddress)
		assert.Equal(t, "0.00000000 BTC", row.BalanceText())
		assert.Equal(t, "2", row.TxCountText())
		assert.Equal(t, FlashNone, row.Flash)
		assert.Zero(t, timers.count())
	})

	t.Run("zero balance on first report never highlights", func(t *testing.T) {
		p, timers := trackedPanel(t, genesisAddress)

		p.OnAddressEvent(genesisAddress, 0, &Balance{})

		row := mustRow(t, p, genesisAddress)
		assert.True(t, row.Reported)
		assert.Equal(t, FlashNone, row.Flash)
		assert.Zero(t, timers.count())
	})

	t.Run("update during a highlight keeps the current flag", func(t *testing.T) {
		p, timers := trackedPanel(t, genesisAddress)
		p.OnAddressEvent(genesisAddress, 1, confirmed(100_000, 0))
		require.Equal(t, FlashCredit, mustRow(t, p, genesisAddress).Flash)

		p.OnAddressEvent(genesisAddress, 2, confirmed(100_000, 60_000))

		row := mustRow(t, p, genesisAddress)
		assert.Equal(t, FlashCredit, row.Flash, "flag must not change mid-highlight")
		assert.Equal(t, "0.00040000 BTC", row.BalanceText(), "values still update")
		assert.Equal(t, "2", row.TxCountText())
		assert.Equal(t, 1, timers.count())

		timers.fireAll()
		assert.Equal(t, FlashNone, mustRow(t, p, genesisAddress).Flash)

		p.OnAddressEvent(genesisAddress, 3, confirmed(100_000, 70_000))
		assert.Equal(t, FlashDebit, mustRow(t, p, genesisAddress).Flash)
	})

	t.Run("missing balance leaves the row unchanged", func(t *testing.T) {
		p, timers := trackedPanel(t, genesisAddress)
		p.OnAddressEvent(genesisAddress, 4, confirmed(42, 0))
		timers.fireAll()
		before := mustRow(t, p, genesisAddress)

		p.OnAddressEvent(genesisAddress, 9, nil)

		assert.Equal(t, before, mustRow(t, p, genesisAddress))
		assert.Zero(t, timers.count())
	})

	t.Run("missing balance before any report keeps cells blank", func(t *testing.T) {
		p, _ := trackedPanel(t, genesisAddress)

		p.OnAddressEvent(genesisAddress, 9, nil)

		row := mustRow(t, p, genesisAddress)
		assert.Empty(t, row.BalanceText())
		assert.Empty(t, row.TxCountText())
	})

	t.Run("unknown address is ignored", func(t *testing.T) {
		p, timers := trackedPanel(t, genesisAddress)
		changes := 0
		p.onChange = func() { changes++ }

		p.OnAddressEvent(segwitAddress, 1, confirmed(1, 0))

		assert.Equal(t, 1, p.Len())
		assert.Zero(t, changes)
		assert.Zero(t, timers.count())
	})

	t.Run("highlight is scheduled for the flash duration", func(t *testing.T) {
		p, timers := trackedPanel(t, genesisAddress)

		p.OnAddressEvent(genesisAddress, 1, confirmed(1, 0))

		require.Equal(t, 1, timers.count())
		assert.Equal(t, DefaultFlashDuration, timers.pending[0].d)
	})

	t.Run("every visible change notifies", func(t *testing.T) {
		p, timers := trackedPanel(t, genesisAddress)
		changes := 0
		p.onChange = func() { changes++ }

		p.OnAddressEvent(genesisAddress, 1, confirmed(1, 0))
		timers.fireAll()

		assert.Equal(t, 2, changes, "update and highlight clear")
	})
}

func TestFlashFor(t *testing.T) {
	assert.Equal(t, FlashCredit, flashFor(0, 1))
	assert.Equal(t, FlashDebit, flashFor(1, 0))
	assert.Equal(t, FlashConfirmation, flashFor(7, 7))
	assert.Equal(t, FlashDebit, flashFor(5, -5))
}
