// Package redis provides a glint.Source that follows a page config stored
// in a Redis key, so every page process can be retuned from one place.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/zoobzio/glint"
)

// Ensure Source implements glint.Source.
var _ glint.Source = (*Source)(nil)

// Source watches a Redis key through keyspace notifications.
// Redis must publish them:
//
//	CONFIG SET notify-keyspace-events K$
type Source struct {
	client *redis.Client
	key    string
	db     int
}

// Option configures a Source.
type Option func(*Source)

// WithDB sets the database whose keyspace channel is watched. Default: 0.
func WithDB(db int) Option {
	return func(s *Source) {
		s.db = db
	}
}

// New creates a Source for key.
func New(client *redis.Client, key string, opts ...Option) *Source {
	s := &Source{
		client: client,
		key:    key,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Channel returns the keyspace notification channel for the key.
func (s *Source) Channel() string {
	return fmt.Sprintf("__keyspace@%d__:%s", s.db, s.key)
}

// Watch emits the key's current value, if set, and then its value after
// every write. The channel closes when ctx ends or the subscription drops.
func (s *Source) Watch(ctx context.Context) (<-chan []byte, error) {
	pubsub := s.client.Subscribe(ctx, s.Channel())
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to keyspace notifications: %w", err)
	}

	out := make(chan []byte)

	go func() {
		defer close(out)
		defer pubsub.Close()

		if !s.send(ctx, out) {
			return
		}

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if !isWrite(msg.Payload) {
					continue
				}
				if !s.send(ctx, out) {
					return
				}
			}
		}
	}()

	return out, nil
}

// send reads the key and forwards it. It returns false once ctx is done.
func (s *Source) send(ctx context.Context, out chan<- []byte) bool {
	val, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		// redis.Nil (no key yet) and transient read errors both wait for
		// the next write.
		return ctx.Err() == nil
	}
	select {
	case out <- val:
		return true
	case <-ctx.Done():
		return false
	}
}

// isWrite reports whether a keyspace event replaced the key's value.
func isWrite(event string) bool {
	switch event {
	case "set", "setex", "psetex", "setnx", "setrange", "append", "rename_to", "restore":
		return true
	default:
		return false
	}
}
