// Package query derives ordered report listings from the store and provides
// positional navigation for the report viewer.
package query

import (
	"context"

	"github.com/yourusername/anticovid-bot/internal/domain/report/deps"
	"github.com/yourusername/anticovid-bot/internal/domain/report/entities"
	domainerrors "github.com/yourusername/anticovid-bot/internal/domain/report/errors"
)

// Direction of a viewer navigation step
type Direction int

const (
	Previous Direction = iota
	Next
)

// ListByStatus returns ids of all reports currently in the given status, in
// creation order. The listing is recomputed from the store on every call:
// one GetReport per id, O(n) store reads. Fine at this store's scale.
func ListByStatus(ctx context.Context, store deps.Store, status entities.ReportStatus) ([]int64, error) {
	ids, err := store.ListReportIDs(ctx)
	if err != nil {
		return nil, err
	}

	var filtered []int64
	for _, id := range ids {
		report, err := store.GetReport(ctx, id)
		if err != nil {
			return nil, err
		}
		if report.Status == status {
			filtered = append(filtered, id)
		}
	}
	return filtered, nil
}

// Navigate finds current in the filtered listing and returns its neighbour
// in the given direction. Returns ErrStaleCursor if current is not in the
// listing anymore (another operator changed its status), ErrAlreadyFirst or
// ErrAlreadyLast when stepping past either end.
func Navigate(ids []int64, current int64, dir Direction) (int64, error) {
	pos := -1
	for i, id := range ids {
		if id == current {
			pos = i
			break
		}
	}
	if pos < 0 {
		return 0, domainerrors.ErrStaleCursor
	}

	switch dir {
	case Previous:
		if pos == 0 {
			return 0, domainerrors.ErrAlreadyFirst
		}
		return ids[pos-1], nil
	default:
		if pos == len(ids)-1 {
			return 0, domainerrors.ErrAlreadyLast
		}
		return ids[pos+1], nil
	}
}
