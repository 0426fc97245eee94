package query

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/anticovid-bot/internal/domain/report/entities"
	domainerrors "github.com/yourusername/anticovid-bot/internal/domain/report/errors"
	"github.com/yourusername/anticovid-bot/internal/domain/report/repository/file"
)

func TestListByStatus(t *testing.T) {
	ctx := context.Background()
	store, err := file.NewStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	var ids []int64
	for i := 0; i < 4; i++ {
		id, err := store.AddReport(ctx, entities.ReportTypeOther, "r")
		require.NoError(t, err)
		ids = append(ids, id)
	}
	require.NoError(t, store.SetStatus(ctx, ids[1], entities.ReportStatusSeen))
	require.NoError(t, store.SetStatus(ctx, ids[3], entities.ReportStatusRemoved))

	unseen, err := ListByStatus(ctx, store, entities.ReportStatusUnseen)
	require.NoError(t, err)
	require.Equal(t, []int64{ids[0], ids[2]}, unseen)

	seen, err := ListByStatus(ctx, store, entities.ReportStatusSeen)
	require.NoError(t, err)
	require.Equal(t, []int64{ids[1]}, seen)

	removed, err := ListByStatus(ctx, store, entities.ReportStatusRemoved)
	require.NoError(t, err)
	require.Equal(t, []int64{ids[3]}, removed)
}

func TestNavigate(t *testing.T) {
	ids := []int64{5, 9, 12}

	tests := []struct {
		name    string
		current int64
		dir     Direction
		want    int64
		wantErr error
	}{
		{name: "previous from middle", current: 9, dir: Previous, want: 5},
		{name: "next from middle", current: 9, dir: Next, want: 12},
		{name: "previous at first", current: 5, dir: Previous, wantErr: domainerrors.ErrAlreadyFirst},
		{name: "next at last", current: 12, dir: Next, wantErr: domainerrors.ErrAlreadyLast},
		{name: "stale cursor previous", current: 7, dir: Previous, wantErr: domainerrors.ErrStaleCursor},
		{name: "stale cursor next", current: 7, dir: Next, wantErr: domainerrors.ErrStaleCursor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Navigate(ids, tt.current, tt.dir)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNavigate_EmptyList(t *testing.T) {
	_, err := Navigate(nil, 1, Next)
	require.ErrorIs(t, err, domainerrors.ErrStaleCursor)
}
