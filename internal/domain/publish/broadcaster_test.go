package publish

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/anticovid-bot/internal/domain/report/entities"
)

func TestTrigger_WithoutDeliverFuncKeepsPending(t *testing.T) {
	queue := NewQueue(staticSubscribers{1}, zerolog.Nop())
	queue.Enqueue(textPost("news"))

	b := NewBroadcaster(queue, zerolog.Nop())
	b.Trigger()

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 1, queue.Pending())
}

func TestTrigger_DrainsInBackground(t *testing.T) {
	queue := NewQueue(staticSubscribers{1, 2}, zerolog.Nop())
	queue.Enqueue(textPost("news"))

	var mu sync.Mutex
	var reached []int64

	b := NewBroadcaster(queue, zerolog.Nop())
	b.SetDeliver(func(ctx context.Context, recipient int64, item entities.ContentItem) error {
		mu.Lock()
		defer mu.Unlock()
		reached = append(reached, recipient)
		return nil
	})
	b.Trigger()

	require.Eventually(t, func() bool {
		return queue.Pending() == 0
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []int64{1, 2}, reached)
}
