// Package conversation contains the per-user conversation state machine
// driving report submission and admin moderation.
package conversation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yourusername/anticovid-bot/internal/domain/publish"
	"github.com/yourusername/anticovid-bot/internal/domain/report/deps"
	"github.com/yourusername/anticovid-bot/internal/domain/report/entities"
	domainerrors "github.com/yourusername/anticovid-bot/internal/domain/report/errors"
	"github.com/yourusername/anticovid-bot/internal/domain/report/query"
)

// Engine applies conversation transitions. It owns the per-user sessions and
// delegates all persistence to the report store and the publication queue;
// it never talks to the transport itself.
type Engine struct {
	store     deps.Store
	queue     *publish.Queue
	broadcast BroadcastFunc
	admins    map[int64]struct{}
	logger    zerolog.Logger

	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewEngine creates a conversation engine. adminIDs is the externally
// supplied allow-list for the admin flow; broadcast is invoked after a news
// post is confirmed.
func NewEngine(store deps.Store, queue *publish.Queue, adminIDs []int64, broadcast BroadcastFunc, logger zerolog.Logger) *Engine {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &Engine{
		store:     store,
		queue:     queue,
		broadcast: broadcast,
		admins:    admins,
		logger:    logger,
		sessions:  make(map[int64]*Session),
	}
}

// Handle applies one event to the user's session and returns the messages to
// send. Events for the same user must be handed in sequentially (the
// dispatcher guarantees this); Handle itself only blocks on store calls.
func (e *Engine) Handle(ctx context.Context, ev Event) []Outbound {
	if ev.Action == ActionInfo {
		return []Outbound{e.reply(ev, KeyInfo)}
	}
	if ev.Action == ActionAdmin {
		return e.handleAdminEntry(ctx, ev)
	}

	sess := e.session(ev.UserID)
	sess.lastActivity = time.Now()

	if ev.Action == ActionStart {
		sess.reset()
		return []Outbound{e.withKeyboard(e.reply(ev, KeyStart), e.startKeyboard(ctx, ev.UserID))}
	}

	switch sess.State {
	case StateSelectService:
		return e.handleSelectService(ctx, ev, sess)
	case StateCheckSymptoms:
		return e.handleCheckSymptoms(ctx, ev, sess)
	case StateSelectReportType:
		return e.handleSelectReportType(ev, sess)
	case StateWriteReport:
		return e.handleWriteReport(ctx, ev, sess)
	case StateConfirmReport:
		return e.handleConfirmReport(ctx, ev, sess)
	case StateAdminSelect:
		return e.handleAdminSelect(ctx, ev, sess)
	case StateSubmitPost:
		return e.handleSubmitPost(ev, sess)
	case StateConfirmSubmitting:
		return e.handleConfirmSubmitting(ev, sess)
	case StateReportViewer:
		return e.handleReportViewer(ctx, ev, sess)
	default:
		e.logger.Error().Int64("user_id", ev.UserID).Int("state", int(sess.State)).Msg("Unknown conversation state, resetting")
		sess.reset()
		return []Outbound{e.withKeyboard(e.reply(ev, KeyStart), e.startKeyboard(ctx, ev.UserID))}
	}
}

// Evict drops the session of an idle user. Called by the dispatcher when the
// user's worker expires.
func (e *Engine) Evict(userID int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.sessions[userID]; ok {
		delete(e.sessions, userID)
		e.logger.Debug().Int64("user_id", userID).Msg("Idle session evicted")
	}
}

// SessionCount returns the number of live sessions
func (e *Engine) SessionCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.sessions)
}

func (e *Engine) session(userID int64) *Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	sess, ok := e.sessions[userID]
	if !ok {
		sess = newSession(userID)
		e.sessions[userID] = sess
	}
	return sess
}

func (e *Engine) hasSession(userID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.sessions[userID]
	return ok
}

func (e *Engine) isAdmin(userID int64) bool {
	_, ok := e.admins[userID]
	return ok
}

// --- citizen flow ---

func (e *Engine) handleSelectService(ctx context.Context, ev Event, sess *Session) []Outbound {
	switch ev.Action {
	case ActionBasicProtection:
		return []Outbound{e.reply(ev, KeyBasicProtection)}

	case ActionSubscribe:
		if err := e.store.Subscribe(ctx, ev.UserID); err != nil {
			return e.storageError(ev, err)
		}
		e.logger.Info().Int64("user_id", ev.UserID).Msg("User subscribed to the news")
		return []Outbound{e.withKeyboard(e.reply(ev, KeySubscribeSuccess), e.startKeyboard(ctx, ev.UserID))}

	case ActionUnsubscribe:
		if err := e.store.Unsubscribe(ctx, ev.UserID); err != nil {
			return e.storageError(ev, err)
		}
		e.logger.Info().Int64("user_id", ev.UserID).Msg("User unsubscribed from the news")
		return []Outbound{e.withKeyboard(e.reply(ev, KeyUnsubscribeSuccess), e.startKeyboard(ctx, ev.UserID))}

	case ActionCheckSymptoms:
		sess.State = StateCheckSymptoms
		return []Outbound{e.withKeyboard(e.reply(ev, KeyBasicSymptoms), confirmKeyboard())}

	case ActionWriteReport:
		sess.State = StateSelectReportType
		return []Outbound{e.withKeyboard(e.reply(ev, KeySelectReportType), reportTypeKeyboard())}

	default:
		// the user's language may have changed, so the keyboard is sent again
		return []Outbound{e.withKeyboard(e.reply(ev, KeyUnknownSelection), e.startKeyboard(ctx, ev.UserID))}
	}
}

func (e *Engine) handleCheckSymptoms(ctx context.Context, ev Event, sess *Session) []Outbound {
	sess.State = StateSelectService
	key := KeyNoWarning
	if ev.Action == ActionConfirm {
		key = KeyWarning
	}
	return []Outbound{e.withKeyboard(e.reply(ev, key), e.startKeyboard(ctx, ev.UserID))}
}

func (e *Engine) handleSelectReportType(ev Event, sess *Session) []Outbound {
	sess.draftType = entities.ReportTypeOther
	if ev.Action == ActionReportOverprice {
		sess.draftType = entities.ReportTypeShopOverprice
	}
	sess.hasDraftType = true
	sess.State = StateWriteReport

	out := e.reply(ev, KeyWriteYourReport)
	out.RemoveKeyboard = true
	return []Outbound{out}
}

func (e *Engine) handleWriteReport(ctx context.Context, ev Event, sess *Session) []Outbound {
	if ev.Action == ActionCancel {
		sess.clearReportDraft()
		sess.State = StateSelectService
		return []Outbound{e.withKeyboard(e.reply(ev, KeyReportingCancelled), e.startKeyboard(ctx, ev.UserID))}
	}

	sess.draftText = ev.Text
	sess.hasDraftText = true
	sess.State = StateConfirmReport
	return []Outbound{e.withKeyboard(e.reply(ev, KeyConfirmSend, ev.Text), confirmKeyboard())}
}

func (e *Engine) handleConfirmReport(ctx context.Context, ev Event, sess *Session) []Outbound {
	if !sess.hasDraftType || !sess.hasDraftText {
		// working data lost, e.g. the engine restarted mid-flow
		e.logger.Warn().Int64("user_id", ev.UserID).Msg("Report draft missing at confirmation, restarting flow")
		sess.reset()
		return []Outbound{
			e.reply(ev, KeyUnknownError),
			e.withKeyboard(e.reply(ev, KeyStart), e.startKeyboard(ctx, ev.UserID)),
		}
	}

	defer sess.clearReportDraft()
	sess.State = StateSelectService

	if ev.Action != ActionConfirm {
		return []Outbound{e.withKeyboard(e.reply(ev, KeyReportingCancelled), e.startKeyboard(ctx, ev.UserID))}
	}

	id, err := e.store.AddReport(ctx, sess.draftType, sess.draftText)
	if err != nil {
		return e.storageError(ev, err)
	}
	e.logger.Info().Int64("report_id", id).Msg("A user wrote a report")
	return []Outbound{e.withKeyboard(e.reply(ev, KeyThankYou), e.startKeyboard(ctx, ev.UserID))}
}

// --- admin flow ---

func (e *Engine) handleAdminEntry(ctx context.Context, ev Event) []Outbound {
	if !e.isAdmin(ev.UserID) {
		// denied callers get no admin session, and an existing citizen
		// session is left untouched
		e.logger.Warn().Int64("user_id", ev.UserID).Msg("Admin panel access denied")
		return []Outbound{e.reply(ev, KeyAdminPrivError)}
	}

	sess := e.session(ev.UserID)
	sess.reset()
	sess.State = StateAdminSelect
	sess.lastActivity = time.Now()
	return []Outbound{e.withKeyboard(e.reply(ev, KeyAdminPanelStart), adminKeyboard())}
}

func (e *Engine) handleAdminSelect(ctx context.Context, ev Event, sess *Session) []Outbound {
	switch ev.Action {
	case ActionSendNews:
		sess.draftPost = &entities.NewsPost{}
		sess.State = StateSubmitPost
		out := e.reply(ev, KeySubmitNewsIntro)
		out.RemoveKeyboard = true
		return []Outbound{out}

	case ActionViewUnseen, ActionViewSeen:
		status := entities.ReportStatusUnseen
		if ev.Action == ActionViewSeen {
			status = entities.ReportStatusSeen
		}
		ids, err := query.ListByStatus(ctx, e.store, status)
		if err != nil {
			return e.storageError(ev, err)
		}
		if len(ids) == 0 {
			return []Outbound{e.reply(ev, KeyNoReportsOfType)}
		}
		sess.viewStatus = status
		sess.viewReportID = ids[len(ids)-1]
		sess.State = StateReportViewer
		return e.renderReport(ctx, ev, sess)

	default:
		return []Outbound{e.withKeyboard(e.reply(ev, KeyUnknownSelection), adminKeyboard())}
	}
}

func (e *Engine) handleSubmitPost(ev Event, sess *Session) []Outbound {
	switch ev.Action {
	case ActionFinish:
		sess.State = StateConfirmSubmitting
		return []Outbound{e.reply(ev, KeySubmitNewsConfirm)}

	case ActionCancel:
		sess.draftPost = nil
		sess.State = StateAdminSelect
		return []Outbound{e.withKeyboard(e.reply(ev, KeyReportingCancelled), adminKeyboard())}

	default:
		if sess.draftPost == nil {
			sess.draftPost = &entities.NewsPost{}
		}
		if ev.Text != "" {
			sess.draftPost.Append(entities.ContentItem{Kind: entities.ContentKindText, Payload: ev.Text})
		}
		for _, item := range ev.Items {
			sess.draftPost.Append(item)
		}
		return []Outbound{e.reply(ev, KeySubmitNewsAppended)}
	}
}

func (e *Engine) handleConfirmSubmitting(ev Event, sess *Session) []Outbound {
	switch ev.Action {
	case ActionConfirm:
		post := sess.draftPost
		sess.draftPost = nil
		sess.State = StateAdminSelect
		if post.Empty() {
			e.logger.Warn().Int64("user_id", ev.UserID).Msg("News post draft missing at confirmation")
			return []Outbound{e.withKeyboard(e.reply(ev, KeyUnknownError), adminKeyboard())}
		}
		e.queue.Enqueue(post)
		if e.broadcast != nil {
			e.broadcast()
		}
		e.logger.Info().Int64("user_id", ev.UserID).Msg("A new post was submitted for publication")
		return []Outbound{e.withKeyboard(e.reply(ev, KeySubmitSuccess), adminKeyboard())}

	case ActionCancel:
		sess.draftPost = nil
		sess.State = StateAdminSelect
		return []Outbound{e.withKeyboard(e.reply(ev, KeyReportingCancelled), adminKeyboard())}

	default:
		return []Outbound{e.reply(ev, KeySubmitNewsConfirm)}
	}
}

func (e *Engine) handleReportViewer(ctx context.Context, ev Event, sess *Session) []Outbound {
	switch ev.Action {
	case ActionPrevious, ActionNext:
		return e.navigate(ctx, ev, sess)

	case ActionMarkSeen:
		if sess.viewStatus == entities.ReportStatusSeen {
			return nil
		}
		return e.mark(ctx, ev, sess, entities.ReportStatusSeen)

	case ActionMarkUnseen:
		if sess.viewStatus == entities.ReportStatusUnseen {
			return nil
		}
		return e.mark(ctx, ev, sess, entities.ReportStatusUnseen)

	case ActionRemoveReport:
		return e.mark(ctx, ev, sess, entities.ReportStatusRemoved)

	case ActionQuitViewer:
		return e.quitViewer(ev, sess, KeyViewingQuit)

	default:
		return e.renderReport(ctx, ev, sess)
	}
}

func (e *Engine) navigate(ctx context.Context, ev Event, sess *Session) []Outbound {
	ids, err := query.ListByStatus(ctx, e.store, sess.viewStatus)
	if err != nil {
		return e.storageError(ev, err)
	}

	dir := query.Next
	if ev.Action == ActionPrevious {
		dir = query.Previous
	}

	next, err := query.Navigate(ids, sess.viewReportID, dir)
	switch {
	case errors.Is(err, domainerrors.ErrStaleCursor):
		// another operator re-classified the viewed report; re-enter the
		// listing flow instead of guessing a position
		return e.quitViewer(ev, sess, KeyUnknownError)
	case errors.Is(err, domainerrors.ErrAlreadyFirst):
		return []Outbound{e.reply(ev, KeyAlreadyFirst)}
	case errors.Is(err, domainerrors.ErrAlreadyLast):
		return []Outbound{e.reply(ev, KeyAlreadyLast)}
	case err != nil:
		return e.storageError(ev, err)
	}

	sess.viewReportID = next
	return e.renderReport(ctx, ev, sess)
}

func (e *Engine) mark(ctx context.Context, ev Event, sess *Session, status entities.ReportStatus) []Outbound {
	err := e.store.SetStatus(ctx, sess.viewReportID, status)
	switch {
	case errors.Is(err, domainerrors.ErrReportNotFound):
		return []Outbound{e.reply(ev, KeyReportRemoved)}
	case err != nil:
		return e.storageError(ev, err)
	}
	// the cursor stays on the report so the operator sees the result; the
	// next navigation step resolves the now-stale cursor via the listing
	return e.renderReport(ctx, ev, sess)
}

func (e *Engine) quitViewer(ev Event, sess *Session, key string) []Outbound {
	sess.viewReportID = 0
	sess.State = StateAdminSelect
	return []Outbound{e.withKeyboard(e.reply(ev, key), adminKeyboard())}
}

func (e *Engine) renderReport(ctx context.Context, ev Event, sess *Session) []Outbound {
	report, err := e.store.GetReport(ctx, sess.viewReportID)
	switch {
	case errors.Is(err, domainerrors.ErrReportNotFound):
		return []Outbound{e.reply(ev, KeyReportRemoved)}
	case err != nil:
		return e.storageError(ev, err)
	}

	out := e.reply(ev, KeyReportHeader, report.ID, report.Type.String(), report.Message)
	out.Keyboard = viewerKeyboard(report.Status)
	return []Outbound{out}
}

// --- keyboards ---

func (e *Engine) startKeyboard(ctx context.Context, userID int64) [][]Action {
	subAction := ActionSubscribe
	subscribed, err := e.store.IsSubscribed(ctx, userID)
	if err != nil {
		e.logger.Error().Int64("user_id", userID).Err(err).Msg("Failed to read subscription state for keyboard")
	} else if subscribed {
		subAction = ActionUnsubscribe
	}
	return [][]Action{
		{ActionBasicProtection},
		{subAction},
		{ActionCheckSymptoms},
		{ActionWriteReport},
	}
}

func confirmKeyboard() [][]Action {
	return [][]Action{{ActionConfirm, ActionDecline}}
}

func reportTypeKeyboard() [][]Action {
	return [][]Action{{ActionReportOverprice}, {ActionReportOther}}
}

func adminKeyboard() [][]Action {
	return [][]Action{{ActionSendNews}, {ActionViewUnseen}, {ActionViewSeen}}
}

func viewerKeyboard(status entities.ReportStatus) [][]Action {
	markAction := ActionMarkSeen
	if status != entities.ReportStatusUnseen {
		markAction = ActionMarkUnseen
	}
	return [][]Action{{ActionPrevious, markAction, ActionRemoveReport, ActionQuitViewer, ActionNext}}
}

// --- helpers ---

func (e *Engine) reply(ev Event, key string, args ...any) Outbound {
	return Outbound{
		ChatID: ev.UserID,
		Lang:   ev.Lang,
		Key:    key,
		Args:   args,
	}
}

func (e *Engine) withKeyboard(out Outbound, keyboard [][]Action) Outbound {
	out.Keyboard = keyboard
	return out
}

func (e *Engine) storageError(ev Event, err error) []Outbound {
	e.logger.Error().Int64("user_id", ev.UserID).Err(err).Msg("Storage operation failed")
	return []Outbound{e.reply(ev, KeyUnknownError)}
}
