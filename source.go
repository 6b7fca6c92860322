package glint

import "context"

// Source observes something for changes and emits raw bytes on a channel.
// Implementations must emit the current value as soon as Watch is called.
type Source interface {
	// Watch begins observing and returns a channel that emits raw bytes on
	// every change. The channel is closed when ctx is cancelled or the
	// source fails for good.
	Watch(ctx context.Context) (<-chan []byte, error)
}

// ChannelSource wraps an existing byte channel as a Source.
// Useful for testing and for callers that already produce bytes.
type ChannelSource struct {
	ch   <-chan []byte
	sync bool
}

// NewChannelSource forwards values from ch through an internal goroutine.
func NewChannelSource(ch <-chan []byte) *ChannelSource {
	return &ChannelSource{ch: ch}
}

// NewSyncChannelSource returns ch itself from Watch, with no goroutine in
// between. Pair it with Reloader.SyncMode for deterministic tests.
func NewSyncChannelSource(ch <-chan []byte) *ChannelSource {
	return &ChannelSource{ch: ch, sync: true}
}

// Watch returns a channel that emits values from the wrapped channel.
func (s *ChannelSource) Watch(ctx context.Context) (<-chan []byte, error) {
	if s.sync {
		return s.ch, nil
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-s.ch:
				if !ok {
					return
				}
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
