package wallet

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

var (
	// ErrUnknownNetwork is returned for network names the wallet cannot map
	// to chain parameters.
	ErrUnknownNetwork = errors.New("unknown bitcoin network")

	// ErrInvalidAddress is returned when an address does not decode for the
	// wallet's network.
	ErrInvalidAddress = errors.New("invalid bitcoin address")
)

// NetworkParams maps a network name to its chain parameters.
func NetworkParams(name string) (*chaincfg.Params, error) {
	switch strings.ToLower(name) {
	case "", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownNetwork, name)
	}
}

// ScriptForAddress decodes address for net and returns its hex encoded
// output script.
func ScriptForAddress(address string, net *chaincfg.Params) (string, error) {
	addr, err := btcutil.DecodeAddress(address, net)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	if !addr.IsForNet(net) {
		return "", fmt.Errorf("%w: %s is not a %s address", ErrInvalidAddress, address, net.Name)
	}

	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return hex.EncodeToString(script), nil
}
