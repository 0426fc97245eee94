package conversation

import (
	"context"
	"time"

	"github.com/yourusername/anticovid-bot/internal/domain/report/entities"
)

// State is the current step of a user's conversation flow
type State int

const (
	// citizen flow
	StateSelectService State = iota
	StateCheckSymptoms
	StateSelectReportType
	StateWriteReport
	StateConfirmReport

	// admin flow
	StateAdminSelect
	StateSubmitPost
	StateConfirmSubmitting
	StateReportViewer
)

// Session holds the per-user conversation state and transient working data.
// It is owned by that user's serialized event stream; no locking is needed
// beyond the per-user dispatch. All fields are ephemeral: a process restart
// loses them, which is acceptable.
type Session struct {
	UserID int64
	State  State

	// citizen report draft
	draftType    entities.ReportType
	hasDraftType bool
	draftText    string
	hasDraftText bool

	// admin news post draft
	draftPost *entities.NewsPost

	// report viewer cursor
	viewStatus   entities.ReportStatus
	viewReportID int64

	lastActivity time.Time
}

func newSession(userID int64) *Session {
	return &Session{
		UserID:       userID,
		State:        StateSelectService,
		lastActivity: time.Now(),
	}
}

// reset returns the session to the citizen entry point, discarding any
// working data
func (s *Session) reset() {
	s.State = StateSelectService
	s.clearReportDraft()
	s.draftPost = nil
	s.viewReportID = 0
}

func (s *Session) clearReportDraft() {
	s.draftType = 0
	s.hasDraftType = false
	s.draftText = ""
	s.hasDraftText = false
}

// Event is one inbound user interaction dispatched to the engine
type Event struct {
	UserID int64
	Lang   string
	Action Action
	Text   string
	Items  []entities.ContentItem
}

// Outbound is one message the engine asks the delivery layer to send.
// Key and Args are rendered against the recipient's language catalog;
// Keyboard rows carry symbolic actions the delivery layer turns into
// localized captions.
type Outbound struct {
	ChatID         int64
	Lang           string
	Key            string
	Args           []any
	Keyboard       [][]Action
	RemoveKeyboard bool
}

// Sender delivers rendered outbound messages. Implemented by the Telegram
// delivery layer.
type Sender interface {
	Send(ctx context.Context, out Outbound) error
}

// BroadcastFunc schedules a broadcast of the publication queue without
// blocking the caller
type BroadcastFunc func()
