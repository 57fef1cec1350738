// Package cache holds the Redis-backed join-code index. The index maps a
// trip's join code to its id so joins by code can skip the document query.
// It is advisory: callers always re-check the code on the loaded trip, so a
// stale or missing entry costs a repo read, never a wrong join.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by this package.
const DefaultPrefix = "tripcrew"

// NewClient parses a redis:// URL, applies connection timeouts and pings the
// server so a misconfigured cache fails at startup, not on first join.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cache.NewClient: parse url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.MinIdleConns = 2
	opts.MaxRetries = 3

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache.NewClient: ping: %w", err)
	}
	return client, nil
}

// Key joins prefix and the non-empty parts with colons: tripcrew:code:AB12CD34.
func Key(prefix string, parts ...string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	var sb strings.Builder
	sb.WriteString(prefix)
	for _, part := range parts {
		if part != "" {
			sb.WriteString(":")
			sb.WriteString(part)
		}
	}
	return sb.String()
}

// CodeIndex stores code -> trip id entries with a TTL.
type CodeIndex struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewCodeIndex wraps client. A zero ttl keeps entries until evicted.
func NewCodeIndex(client redis.Cmdable, prefix string, ttl time.Duration) *CodeIndex {
	return &CodeIndex{client: client, prefix: prefix, ttl: ttl}
}

// Lookup returns the trip id cached for code. ok is false when the code is
// not cached.
func (c *CodeIndex) Lookup(ctx context.Context, code string) (id uuid.UUID, ok bool, err error) {
	val, err := c.client.Get(ctx, c.key(code)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("cache.CodeIndex.Lookup: %w", err)
	}
	id, err = uuid.Parse(val)
	if err != nil {
		// A corrupt entry is treated as a miss and dropped.
		_ = c.client.Del(ctx, c.key(code)).Err()
		return uuid.Nil, false, nil
	}
	return id, true, nil
}

// Remember caches code -> id.
func (c *CodeIndex) Remember(ctx context.Context, code string, id uuid.UUID) error {
	if err := c.client.Set(ctx, c.key(code), id.String(), c.ttl).Err(); err != nil {
		return fmt.Errorf("cache.CodeIndex.Remember: %w", err)
	}
	return nil
}

// Forget drops the entry for code.
func (c *CodeIndex) Forget(ctx context.Context, code string) error {
	if err := c.client.Del(ctx, c.key(code)).Err(); err != nil {
		return fmt.Errorf("cache.CodeIndex.Forget: %w", err)
	}
	return nil
}

func (c *CodeIndex) key(code string) string {
	return Key(c.prefix, "code", code)
}
