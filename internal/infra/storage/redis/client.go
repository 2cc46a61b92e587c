// Package redis keeps wallet address history in Redis so history syncs can
// resume where the previous run stopped.
package redis

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

type client struct {
	conn *redis.Client
	ttl  time.Duration
}

type config struct {
	username string
	password string
	db       int
	ttl      time.Duration
}

// Option configures the Redis client.
type Option func(*config)

// WithCredentials sets the ACL username and password.
func WithCredentials(username, password string) Option {
	return func(c *config) {
		c.username = username
		c.password = password
	}
}

// WithDB selects the logical database.
func WithDB(db int) Option {
	return func(c *config) {
		c.db = db
	}
}

// WithTTL sets how long a stored history survives without being refreshed.
func WithTTL(d time.Duration) Option {
	return func(c *config) {
		c.ttl = d
	}
}

// NewClient connects to the Redis at addr and checks the connection with a
// PING. Stored histories expire after 30 days unless WithTTL says otherwise.
func NewClient(ctx context.Context, addr string, opts ...Option) (*client, error) {
	cfg := config{ttl: defaultHistoryTTL}
	for _, opt := range opts {
		opt(&cfg)
	}

	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s: %w", addr, err)
	}

	return &client{conn: conn, ttl: cfg.ttl}, nil
}

func (c *client) Close() error {
	return c.conn.Close()
}
