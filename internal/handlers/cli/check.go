package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabapcia/addresswatch/internal/config"
	"github.com/gabapcia/addresswatch/internal/pkg/validator"
	"github.com/gabapcia/addresswatch/internal/wallet"

	"github.com/urfave/cli/v3"
)

var (
	ErrNoAddresses      = errors.New("no addresses given")
	ErrInvalidAddresses = errors.New("some addresses are invalid")
)

// checkCommand validates addresses the way the panel does, then decodes them
// for the configured network.
//
// Usage example:
//
//	addresswatch check --network testnet tb1q... mxyz...
func checkCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:        "check",
		Description: "Validate bitcoin addresses for a network without contacting the backend.",
		Usage:       "Checks one or more addresses. Prints one line per address.",
		ArgsUsage:   "ADDRESS...",
		Flags:       backendFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := applyBackendFlags(cfg, c)
			if err != nil {
				return err
			}

			addresses := c.Args().Slice()
			if len(addresses) == 0 {
				return ErrNoAddresses
			}

			params, err := wallet.NetworkParams(cfg.Backend.Network)
			if err != nil {
				return err
			}

			out := c.Root().Writer
			invalid := 0
			for _, address := range addresses {
				if !validator.IsWatchAddress(address) {
					invalid++
					fmt.Fprintf(out, "%s\tinvalid\tdoes not look like a bitcoin address\n", address)
					continue
				}

				script, err := wallet.ScriptForAddress(address, params)
				if err != nil {
					invalid++
					fmt.Fprintf(out, "%s\tinvalid\t%v\n", address, err)
					continue
				}

				fmt.Fprintf(out, "%s\tvalid\t%s\n", address, script)
			}

			if invalid > 0 {
				return fmt.Errorf("%w: %d of %d", ErrInvalidAddresses, invalid, len(addresses))
			}

			return nil
		},
	}
}
