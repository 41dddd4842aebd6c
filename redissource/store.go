package redissource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/lazykit/lazylist"
)

// Store saves lists as JSON arrays under prefixed keys.
type Store[T comparable] struct {
	client    *Client
	keyPrefix string
	opts      []lazylist.Option
}

// NewStore creates a Store backed by client. Keys are prefixed with
// keyPrefix followed by a colon. opts are applied to every loaded list.
func NewStore[T comparable](client *Client, keyPrefix string, opts ...lazylist.Option) *Store[T] {
	return &Store[T]{client: client, keyPrefix: keyPrefix, opts: opts}
}

func (s *Store[T]) fullKey(key string) string {
	if s.keyPrefix == "" {
		return key
	}
	return s.keyPrefix + ":" + key
}

// Save materializes l and stores it with ttl. A ttl of 0 means no expiry.
// Nothing is written if a source fails.
func (s *Store[T]) Save(ctx context.Context, key string, l *lazylist.List[T], ttl time.Duration) error {
	items := []T{}
	for v, err := range l.All(ctx) {
		if err != nil {
			return err
		}
		items = append(items, v)
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("store marshal %q: %w", key, err)
	}
	if err := s.client.rdb.Set(ctx, s.fullKey(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("store save %q: %w", key, err)
	}
	return nil
}

// Load returns the list saved under key as a strict list, or (nil, nil)
// when the key does not exist.
func (s *Store[T]) Load(ctx context.Context, key string) (*lazylist.List[T], error) {
	raw, err := s.client.rdb.Get(ctx, s.fullKey(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store load %q: %w", key, err)
	}

	l := lazylist.New[T](s.opts...)
	if err := json.Unmarshal(raw, l); err != nil {
		return nil, fmt.Errorf("store unmarshal %q: %w", key, err)
	}
	return l, nil
}

// Delete removes the key.
func (s *Store[T]) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.fullKey(key)); err != nil {
		return fmt.Errorf("store delete %q: %w", key, err)
	}
	return nil
}

// PushList appends every element of l to the Redis LIST at key in batches
// of batch elements, so it can be read back with ListSource. Batches
// already pushed stay in place when a source fails.
func PushList(ctx context.Context, c *Client, key string, l *lazylist.List[string], batch int) error {
	if batch <= 0 {
		batch = DefaultPageSize
	}
	buf := make([]string, 0, batch)
	for v, err := range l.All(ctx) {
		if err != nil {
			return err
		}
		buf = append(buf, v)
		if len(buf) == batch {
			if err := c.Push(ctx, key, buf...); err != nil {
				return fmt.Errorf("push %q: %w", key, err)
			}
			buf = buf[:0]
		}
	}
	if err := c.Push(ctx, key, buf...); err != nil {
		return fmt.Errorf("push %q: %w", key, err)
	}
	return nil
}
