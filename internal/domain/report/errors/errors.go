// Package errors contains domain-specific errors for the report domain
package errors

import (
	pkgerrors "github.com/yourusername/anticovid-bot/pkg/errors"
)

// Domain errors for report and moderation operations
var (
	ErrReportNotFound  = pkgerrors.NewNotFoundError("report not found")
	ErrStaleCursor     = pkgerrors.NewStaleCursorError("report is no longer in the viewed listing")
	ErrAlreadyFirst    = pkgerrors.NewValidationError("already at the first report")
	ErrAlreadyLast     = pkgerrors.NewValidationError("already at the last report")
	ErrNotAdmin        = pkgerrors.NewPermissionError("user is not an admin")
	ErrEmptyDraft      = pkgerrors.NewValidationError("report draft is missing")
	ErrStorageFailure  = pkgerrors.NewInternalError("storage operation failed")
	ErrDeliveryFailed  = pkgerrors.NewInternalError("message delivery failed")
	ErrUnknownStatus   = pkgerrors.NewValidationError("unknown report status")
	ErrInvalidReportID = pkgerrors.NewValidationError("invalid report id")
)
