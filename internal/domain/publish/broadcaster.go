package publish

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Broadcaster triggers background drains of the publication queue. The
// delivery function arrives after construction, from the wiring step that
// resolves the cyclic dependency with the transport layer.
type Broadcaster struct {
	queue  *Queue
	logger zerolog.Logger

	mu      sync.RWMutex
	deliver DeliverFunc
}

// NewBroadcaster creates a broadcaster over the queue
func NewBroadcaster(queue *Queue, logger zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		queue:  queue,
		logger: logger,
	}
}

// SetDeliver sets the per-item delivery function
func (b *Broadcaster) SetDeliver(deliver DeliverFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deliver = deliver
}

// Trigger starts a background drain. Returns immediately; posts stay queued
// if no delivery function is configured yet.
func (b *Broadcaster) Trigger() {
	b.mu.RLock()
	deliver := b.deliver
	b.mu.RUnlock()

	if deliver == nil {
		b.logger.Error().Msg("No delivery function configured, broadcast postponed")
		return
	}

	go func() {
		if err := b.queue.Drain(context.Background(), deliver); err != nil {
			b.logger.Error().Err(err).Msg("Broadcast drain failed")
		}
	}()
}
