// Package deps contains interface definitions for the report domain dependencies
package deps

import (
	"context"

	"github.com/yourusername/anticovid-bot/internal/domain/report/entities"
)

// Store is the persisted record store for reports and subscriber ids.
// Implementations must serialize concurrent readers and writers: every
// mutation is durably persisted before the call returns, and two concurrent
// AddReport calls must never produce the same id.
type Store interface {
	// AddReport persists a new report with status unseen and the current
	// timestamp, and returns its id. Ids start at 1 and grow by 1, never reused.
	AddReport(ctx context.Context, reportType entities.ReportType, message string) (int64, error)

	// GetReport returns a report by id. Returns ErrReportNotFound if no such
	// id was ever created. Removed reports are still returned.
	GetReport(ctx context.Context, id int64) (*entities.Report, error)

	// SetStatus overwrites the status of an existing report, preserving all
	// other fields. Returns ErrReportNotFound if the id is unknown.
	SetStatus(ctx context.Context, id int64, status entities.ReportStatus) error

	// ListReportIDs returns ids of all reports ever created, in creation order.
	ListReportIDs(ctx context.Context) ([]int64, error)

	// ListSubscribers returns the subscriber set sorted ascending.
	// A store with no subscribers yet returns an empty slice, not an error.
	ListSubscribers(ctx context.Context) ([]int64, error)

	// Subscribe adds a user to the subscriber set. Idempotent.
	Subscribe(ctx context.Context, userID int64) error

	// Unsubscribe removes a user from the subscriber set. Idempotent.
	Unsubscribe(ctx context.Context, userID int64) error

	// IsSubscribed reports subscriber set membership.
	IsSubscribed(ctx context.Context, userID int64) (bool, error)
}
