package wallet

import "fmt"

// AddressEventKind classifies a change in a script's transaction set.
type AddressEventKind int

const (
	AddressEventMempool AddressEventKind = iota
	AddressEventConfirmed
	AddressEventRemoved
)

func (k AddressEventKind) String() string {
	switch k {
	case AddressEventMempool:
		return "mempool"
	case AddressEventConfirmed:
		return "confirmed"
	case AddressEventRemoved:
		return "removed"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// AddressEvent reports that Tx entered the mempool, confirmed, or was
// dropped for the script it pays to or spends from.
type AddressEvent struct {
	Kind   AddressEventKind
	Script string
	Tx     Tx
}

func (e AddressEvent) String() string {
	return fmt.Sprintf("%s | %s | %s", e.Kind, e.Script, e.Tx.Txid)
}

// EventKind classifies the events a Wallet publishes.
type EventKind int

const (
	// EventDisconnected means the realtime feed was lost. Address states are
	// stale until each address is ready again.
	EventDisconnected EventKind = iota

	// EventAddressReady means the history of Event.Script finished syncing.
	EventAddressReady

	// EventAddress carries a realtime or sync-time AddressEvent.
	EventAddress
)

func (k EventKind) String() string {
	switch k {
	case EventDisconnected:
		return "disconnected"
	case EventAddressReady:
		return "address_ready"
	case EventAddress:
		return "address"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Event is published by the wallet to its subscribers.
type Event struct {
	Kind    EventKind
	Script  string
	Address AddressEvent
}

// SocketEventKind classifies what the realtime connection reports.
type SocketEventKind int

const (
	SocketConnected SocketEventKind = iota
	SocketDisconnected
	SocketOffline
	SocketError
	SocketAddressEvent
)

func (k SocketEventKind) String() string {
	switch k {
	case SocketConnected:
		return "connected"
	case SocketDisconnected:
		return "disconnected"
	case SocketOffline:
		return "offline"
	case SocketError:
		return "error"
	case SocketAddressEvent:
		return "address_event"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// SocketEvent is emitted by a Socket. Address is only set for
// SocketAddressEvent.
type SocketEvent struct {
	Kind    SocketEventKind
	Address AddressEvent
}
