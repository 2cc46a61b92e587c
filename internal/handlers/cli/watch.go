package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gabapcia/addresswatch/internal/config"
	"github.com/gabapcia/addresswatch/internal/handlers/tui"
	"github.com/gabapcia/addresswatch/internal/infra/esplora"
	"github.com/gabapcia/addresswatch/internal/infra/mempoolws"
	"github.com/gabapcia/addresswatch/internal/infra/storage/redis"
	"github.com/gabapcia/addresswatch/internal/pkg/logger"
	"github.com/gabapcia/addresswatch/internal/pkg/resilience/retry"
	httptransport "github.com/gabapcia/addresswatch/internal/pkg/transport/http"
	"github.com/gabapcia/addresswatch/internal/wallet"
	"github.com/gabapcia/addresswatch/internal/watchpanel"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

// watchCommand opens the terminal panel. Addresses given as arguments are
// submitted as if typed, in order.
//
// Usage example:
//
//	addresswatch watch --host mempool.space 1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa
func watchCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:        "watch",
		Description: "Open the address panel and follow balances as transactions arrive.",
		Usage:       "Watches bitcoin addresses live. Addresses can be given as arguments or typed in the panel.",
		ArgsUsage:   "[ADDRESS...]",
		Flags:       backendFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := applyBackendFlags(cfg, c)
			if err != nil {
				return err
			}

			s, err := newSession(ctx, cfg)
			if err != nil {
				return err
			}
			defer s.close(ctx)

			return s.run(ctx, c.Args().Slice())
		},
	}
}

// session is one running panel with its wallet and backend connections.
type session struct {
	panel    *watchpanel.Panel
	wallet   *wallet.Wallet
	notifier *tui.Notifier
	closers  []func() error
}

func newSession(ctx context.Context, cfg config.Config) (*session, error) {
	params, err := wallet.NetworkParams(cfg.Backend.Network)
	if err != nil {
		return nil, err
	}

	s := &session{notifier: tui.NewNotifier(ctx)}

	httpClient := httptransport.NewClient(
		httptransport.WithTimeout(cfg.Backend.HTTPTimeout),
		httptransport.WithRetryMax(cfg.Backend.HTTPRetries),
	)
	api := esplora.NewClient(cfg.Backend.APIURL(), httpClient)
	socket := mempoolws.New(cfg.Backend.WebsocketURL(),
		mempoolws.WithReconnectDelay(cfg.Backend.ReconnectDelay),
	)

	s.panel = watchpanel.New(
		watchpanel.WithAlerter(s.notifier.Alert),
		watchpanel.WithOnChange(s.notifier.Changed),
		watchpanel.WithFlashDuration(cfg.Panel.FlashDuration),
	)

	walletOpts := []wallet.Option{
		wallet.WithNetwork(params),
		wallet.WithUpdateHandler(panelUpdateHandler(s.panel)),
		wallet.WithWaitForConnection(false),
		wallet.WithRetry(retry.New(
			retry.WithAttempts(cfg.Backend.SyncAttempts),
			retry.WithName("address history sync"),
		)),
	}

	if cfg.Redis.CacheEnabled() {
		cache, err := redis.NewClient(ctx, cfg.Redis.Addr,
			redis.WithCredentials(cfg.Redis.Username, cfg.Redis.Password),
			redis.WithDB(cfg.Redis.DB),
			redis.WithTTL(cfg.Redis.HistoryTTL),
		)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		s.closers = append(s.closers, cache.Close)
		walletOpts = append(walletOpts, wallet.WithHistoryCache(cache))
	}

	s.wallet = wallet.New(api, socket, walletOpts...)
	return s, nil
}

// panelUpdateHandler feeds wallet updates into the panel.
func panelUpdateHandler(panel *watchpanel.Panel) wallet.UpdateHandler {
	return func(address string, txCount int, balance *wallet.Balances) {
		panel.OnAddressEvent(address, txCount, toPanelBalance(balance))
	}
}

func toPanelBalance(b *wallet.Balances) *watchpanel.Balance {
	if b == nil {
		return nil
	}

	return &watchpanel.Balance{
		Mempool:   watchpanel.BalanceEntry{Funded: b.Mempool.Funded, Spent: b.Mempool.Spent},
		Confirmed: watchpanel.BalanceEntry{Funded: b.Confirmed.Funded, Spent: b.Confirmed.Spent},
	}
}

func (s *session) run(ctx context.Context, addresses []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := s.panel.Init(ctx, s.wallet); err != nil {
		return fmt.Errorf("start wallet: %w", err)
	}

	program := tea.NewProgram(
		tui.NewModel(ctx, s.panel, addresses...),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	go s.notifier.Forward(ctx, program.Send)

	if _, err := program.Run(); err != nil && !(errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return fmt.Errorf("run terminal ui: %w", err)
	}

	return nil
}

const shutdownTimeout = 5 * time.Second

func (s *session) close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	s.panel.Close()

	if err := s.wallet.Disconnect(ctx); err != nil {
		logger.Warn(ctx, "wallet disconnect failed", "error", err)
	}

	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			logger.Warn(ctx, "close failed", "error", err)
		}
	}
}
