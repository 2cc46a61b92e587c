package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gabapcia/addresswatch/internal/wallet"

	"github.com/redis/go-redis/v9"
)

const (
	// historyKeyPrefix namespaces cached script states.
	historyKeyPrefix = "wallet:history"

	defaultHistoryTTL = 30 * 24 * time.Hour
)

func historyKey(network, script string) string {
	return fmt.Sprintf("%s:%s:%s", historyKeyPrefix, network, script)
}

// LoadState returns the cached state of script on network. The boolean is
// false when nothing is cached.
func (c *client) LoadState(ctx context.Context, network, script string) (wallet.State, bool, error) {
	data, err := c.conn.Get(ctx, historyKey(network, script)).Bytes()
	if errors.Is(err, redis.Nil) {
		return wallet.State{}, false, nil
	}
	if err != nil {
		return wallet.State{}, false, err
	}

	var state wallet.State
	if err := json.Unmarshal(data, &state); err != nil {
		return wallet.State{}, false, fmt.Errorf("decode cached state: %w", err)
	}

	if state.Script != script {
		return wallet.State{}, false, nil
	}

	return state, true, nil
}

// SaveState caches state under its network and script, refreshing its TTL.
func (c *client) SaveState(ctx context.Context, network string, state wallet.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	return c.conn.Set(ctx, historyKey(network, state.Script), data, c.ttl).Err()
}

var _ wallet.HistoryCache = (*client)(nil)
