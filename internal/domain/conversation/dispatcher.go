package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultIdleTimeout is how long a user's worker lives without events
	// before the session is evicted
	DefaultIdleTimeout = 30 * time.Minute

	eventBuffer = 64
)

// Dispatcher serializes events per user id: one lightweight worker with a
// single-consumer queue per active user, so a user can never have two
// conflicting in-flight transitions while different users are handled
// concurrently. Workers expire after an idle period and evict their session.
type Dispatcher struct {
	engine    *Engine
	logger    zerolog.Logger
	idleAfter time.Duration

	mu      sync.Mutex
	queues  map[int64]chan Event
	done    chan struct{}
	stopped sync.Once

	senderMu sync.RWMutex
	sender   Sender
}

// NewDispatcher creates a per-user serialized dispatcher over the engine
func NewDispatcher(engine *Engine, idleAfter time.Duration, logger zerolog.Logger) *Dispatcher {
	if idleAfter <= 0 {
		idleAfter = DefaultIdleTimeout
	}
	return &Dispatcher{
		engine:    engine,
		logger:    logger,
		idleAfter: idleAfter,
		queues:    make(map[int64]chan Event),
		done:      make(chan struct{}),
	}
}

// SetSender sets the outbound sender after construction.
// Called from the wiring step to resolve the cyclic dependency between the
// dispatcher and the Telegram handlers.
func (d *Dispatcher) SetSender(sender Sender) {
	d.senderMu.Lock()
	defer d.senderMu.Unlock()
	d.sender = sender
}

// Dispatch hands an event to the owning user's worker, creating one if
// needed. Never blocks: if a user's queue is full the event is dropped with
// an operator log entry.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	select {
	case <-d.done:
		return
	default:
	}

	ch, ok := d.queues[ev.UserID]
	if !ok {
		ch = make(chan Event, eventBuffer)
		d.queues[ev.UserID] = ch
		go d.worker(ev.UserID, ch)
	}

	select {
	case ch <- ev:
	default:
		d.logger.Error().Int64("user_id", ev.UserID).Msg("User event queue full, dropping event")
	}
}

// Stop shuts down all workers. Queued events are discarded.
func (d *Dispatcher) Stop() {
	d.stopped.Do(func() { close(d.done) })
}

// ActiveWorkers returns the number of live per-user workers
func (d *Dispatcher) ActiveWorkers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queues)
}

func (d *Dispatcher) worker(userID int64, ch chan Event) {
	idle := time.NewTimer(d.idleAfter)
	defer idle.Stop()

	for {
		select {
		case ev := <-ch:
			d.process(ev)
			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(d.idleAfter)

		case <-idle.C:
			d.mu.Lock()
			if len(ch) > 0 {
				// an event raced in while the timer fired
				d.mu.Unlock()
				idle.Reset(d.idleAfter)
				continue
			}
			delete(d.queues, userID)
			d.mu.Unlock()
			d.engine.Evict(userID)
			return

		case <-d.done:
			d.mu.Lock()
			delete(d.queues, userID)
			d.mu.Unlock()
			return
		}
	}
}

func (d *Dispatcher) process(ev Event) {
	ctx := context.Background()
	outs := d.engine.Handle(ctx, ev)
	if len(outs) == 0 {
		return
	}

	d.senderMu.RLock()
	sender := d.sender
	d.senderMu.RUnlock()
	if sender == nil {
		d.logger.Error().Int64("user_id", ev.UserID).Msg("No sender configured, dropping outbound messages")
		return
	}

	for _, out := range outs {
		if err := sender.Send(ctx, out); err != nil {
			d.logger.Error().Int64("chat_id", out.ChatID).Str("key", out.Key).Err(err).Msg("Failed to send outbound message")
		}
	}
}
