// Package publish holds confirmed news posts awaiting broadcast and runs the
// broadcast itself.
package publish

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/yourusername/anticovid-bot/internal/domain/report/entities"
)

// SubscriberSource provides the recipient snapshot for a broadcast
type SubscriberSource interface {
	ListSubscribers(ctx context.Context) ([]int64, error)
}

// DeliverFunc sends one content item to one recipient. Implementations should
// bound the attempt with their own timeout so one unreachable recipient
// cannot stall the whole broadcast.
type DeliverFunc func(ctx context.Context, recipient int64, item entities.ContentItem) error

// Queue is the pending list of confirmed news posts. Enqueue never blocks;
// Drain serializes broadcasts so two posts confirmed in quick succession are
// delivered in confirmation order and never interleaved.
type Queue struct {
	subscribers SubscriberSource
	logger      zerolog.Logger

	mu      chan struct{} // broadcast exclusion, held for the whole Drain
	pending *pendingList
}

// NewQueue creates a publication queue reading recipients from subscribers
func NewQueue(subscribers SubscriberSource, logger zerolog.Logger) *Queue {
	mu := make(chan struct{}, 1)
	return &Queue{
		subscribers: subscribers,
		logger:      logger,
		mu:          mu,
		pending:     newPendingList(),
	}
}

// Enqueue appends a confirmed post to the pending list. Never blocks.
func (q *Queue) Enqueue(post *entities.NewsPost) {
	q.pending.push(post)
	q.logger.Info().Int("items", len(post.Items)).Int("pending", q.pending.len()).Msg("News post enqueued")
}

// Pending returns the number of posts awaiting broadcast
func (q *Queue) Pending() int {
	return q.pending.len()
}

// Drain broadcasts every currently queued post to every subscriber.
//
// Only one Drain runs at a time; a concurrent call blocks until the first
// completes (or its context expires while waiting). The subscriber set is
// snapshotted once per Drain. A post leaves the pending list only after
// delivery was attempted to all recipients; per-recipient failures are
// logged and skipped, there is no retry queue (lossy broadcast).
func (q *Queue) Drain(ctx context.Context, deliver DeliverFunc) error {
	select {
	case q.mu <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-q.mu }()

	recipients, err := q.subscribers.ListSubscribers(ctx)
	if err != nil {
		return err
	}

	drained := 0
	for {
		post, ok := q.pending.peek()
		if !ok {
			break
		}

		for _, recipient := range recipients {
			for _, item := range post.Items {
				if err := deliver(ctx, recipient, item); err != nil {
					q.logger.Warn().
						Int64("recipient", recipient).
						Str("kind", string(item.Kind)).
						Err(err).
						Msg("Failed to deliver broadcast item, skipping recipient item")
				}
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}

		q.pending.pop()
		drained++
	}

	q.logger.Info().Int("posts", drained).Int("recipients", len(recipients)).Msg("Broadcast finished")
	return nil
}
