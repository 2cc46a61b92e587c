package cli

import (
	"context"
	"io"
	"os"

	"github.com/gabapcia/addresswatch/internal/config"

	"github.com/urfave/cli/v3"
)

// Run executes the addresswatch command line with os.Args.
//
// Commands:
//
//   - `watch`: opens the terminal panel and follows addresses live.
//   - `check`: validates addresses without contacting the backend.
//
// cfg holds the environment configuration; command flags override it.
func Run(ctx context.Context, cfg config.Config) error {
	return newApp(cfg, os.Stdout).Run(ctx, os.Args)
}

func newApp(cfg config.Config, out io.Writer) *cli.Command {
	return &cli.Command{
		EnableShellCompletion: true,
		Name:                  "addresswatch",
		Description:           "Watch bitcoin addresses and see their balance change as transactions arrive.",
		Usage:                 "addresswatch [command] [flags]",
		Writer:                out,
		Commands: []*cli.Command{
			watchCommand(cfg),
			checkCommand(cfg),
		},
	}
}

func backendFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "host",
			Usage: "Esplora backend host, e.g. mempool.space",
		},
		&cli.StringFlag{
			Name:  "network",
			Usage: "Bitcoin network: mainnet, testnet, signet or regtest",
		},
		&cli.BoolFlag{
			Name:  "secure",
			Usage: "Use https and wss to reach the backend",
		},
	}
}

// applyBackendFlags overrides the backend settings with the flags the user
// set and validates the result.
func applyBackendFlags(cfg config.Config, c *cli.Command) (config.Config, error) {
	if c.IsSet("host") {
		cfg.Backend.Host = c.String("host")
	}
	if c.IsSet("network") {
		cfg.Backend.Network = c.String("network")
	}
	if c.IsSet("secure") {
		cfg.Backend.Secure = c.Bool("secure")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}
