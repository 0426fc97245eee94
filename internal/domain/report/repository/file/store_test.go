package file

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/anticovid-bot/internal/domain/report/entities"
	domainerrors "github.com/yourusername/anticovid-bot/internal/domain/report/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return store
}

func TestAddReport_AssignsSequentialIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id1, err := store.AddReport(ctx, entities.ReportTypeShopOverprice, "prices doubled overnight")
	require.NoError(t, err)
	require.Equal(t, int64(1), id1)

	id2, err := store.AddReport(ctx, entities.ReportTypeOther, "need help")
	require.NoError(t, err)
	require.Equal(t, int64(2), id2)

	ids, err := store.ListReportIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2}, ids)
}

func TestAddReport_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.AddReport(ctx, entities.ReportTypeShopOverprice, "I hate this shop")
	require.NoError(t, err)

	report, err := store.GetReport(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, report.ID)
	require.Equal(t, entities.ReportTypeShopOverprice, report.Type)
	require.Equal(t, entities.ReportStatusUnseen, report.Status)
	require.Equal(t, "I hate this shop", report.Message)
	require.False(t, report.CreatedAt.IsZero())
}

func TestAddReport_ConcurrentIDsUnique(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	const workers = 20
	ids := make(chan int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := store.AddReport(ctx, entities.ReportTypeOther, "concurrent")
			if err == nil {
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	count := 0
	for id := range ids {
		require.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
		count++
	}
	require.Equal(t, workers, count)
	for id := int64(1); id <= workers; id++ {
		require.True(t, seen[id], "id %d missing", id)
	}
}

func TestGetReport_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetReport(context.Background(), 42)
	require.ErrorIs(t, err, domainerrors.ErrReportNotFound)
}

func TestSetStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.AddReport(ctx, entities.ReportTypeOther, "check me")
	require.NoError(t, err)

	require.NoError(t, store.SetStatus(ctx, id, entities.ReportStatusSeen))

	report, err := store.GetReport(ctx, id)
	require.NoError(t, err)
	require.Equal(t, entities.ReportStatusSeen, report.Status)
	require.Equal(t, "check me", report.Message, "status change must preserve other fields")

	// re-applying the same status is a no-op
	require.NoError(t, store.SetStatus(ctx, id, entities.ReportStatusSeen))
	again, err := store.GetReport(ctx, id)
	require.NoError(t, err)
	require.Equal(t, report.CreatedAt, again.CreatedAt)
}

func TestSetStatus_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.SetStatus(context.Background(), 7, entities.ReportStatusSeen)
	require.ErrorIs(t, err, domainerrors.ErrReportNotFound)
}

func TestSetStatus_RemovedStillRetrievable(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.AddReport(ctx, entities.ReportTypeOther, "spam")
	require.NoError(t, err)
	require.NoError(t, store.SetStatus(ctx, id, entities.ReportStatusRemoved))

	report, err := store.GetReport(ctx, id)
	require.NoError(t, err)
	require.Equal(t, entities.ReportStatusRemoved, report.Status)

	ids, err := store.ListReportIDs(ctx)
	require.NoError(t, err)
	require.Contains(t, ids, id, "removal is a status, not a deletion")
}

func TestSubscribers_EmptyWithoutFile(t *testing.T) {
	store := newTestStore(t)

	subs, err := store.ListSubscribers(context.Background())
	require.NoError(t, err)
	require.Empty(t, subs)
}

func TestSubscribers_SortedAndIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []int64{1000, 10, 100000, 10} {
		require.NoError(t, store.Subscribe(ctx, id))
	}

	subs, err := store.ListSubscribers(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{10, 1000, 100000}, subs)

	ok, err := store.IsSubscribed(ctx, 1000)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.Unsubscribe(ctx, 1000))
	require.NoError(t, store.Unsubscribe(ctx, 1000))

	subs, err = store.ListSubscribers(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{10, 100000}, subs)

	ok, err = store.IsSubscribed(ctx, 1000)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSubscribeUnsubscribe_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Subscribe(ctx, 500))
	before, err := store.ListSubscribers(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Subscribe(ctx, 123))
	require.NoError(t, store.Unsubscribe(ctx, 123))

	after, err := store.ListSubscribers(ctx)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir, zerolog.Nop())
	require.NoError(t, err)

	id, err := store.AddReport(ctx, entities.ReportTypeOther, "persisted")
	require.NoError(t, err)
	require.NoError(t, store.Subscribe(ctx, 77))

	reopened, err := NewStore(dir, zerolog.Nop())
	require.NoError(t, err)

	report, err := reopened.GetReport(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "persisted", report.Message)

	nextID, err := reopened.AddReport(ctx, entities.ReportTypeOther, "next")
	require.NoError(t, err)
	require.Equal(t, id+1, nextID)

	subs, err := reopened.ListSubscribers(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{77}, subs)
}
