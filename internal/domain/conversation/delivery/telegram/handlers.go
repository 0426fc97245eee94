// Package telegram contains Telegram delivery handlers
package telegram

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/yourusername/anticovid-bot/internal/domain/conversation"
	"github.com/yourusername/anticovid-bot/internal/domain/report/entities"
	"github.com/yourusername/anticovid-bot/internal/infrastructure/i18n"
)

// Handlers turns Telegram updates into conversation events
type Handlers struct {
	dispatcher *conversation.Dispatcher
	catalog    *i18n.Catalog
	logger     zerolog.Logger
}

// NewHandlers creates new Telegram handlers
func NewHandlers(dispatcher *conversation.Dispatcher, catalog *i18n.Catalog, logger zerolog.Logger) *Handlers {
	return &Handlers{
		dispatcher: dispatcher,
		catalog:    catalog,
		logger:     logger,
	}
}

// HandleStart handles /start command
func (h *Handlers) HandleStart(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.dispatchCommand(update, conversation.ActionStart)
}

// HandleInfo handles /info command
func (h *Handlers) HandleInfo(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.dispatchCommand(update, conversation.ActionInfo)
}

// HandleAdmin handles /admin command
func (h *Handlers) HandleAdmin(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.dispatchCommand(update, conversation.ActionAdmin)
}

// HandleFinish handles /finish command, closing a news post draft
func (h *Handlers) HandleFinish(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.dispatchCommand(update, conversation.ActionFinish)
}

// HandleConfirm handles /confirm command, an alternative to the ✅ button
func (h *Handlers) HandleConfirm(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.dispatchCommand(update, conversation.ActionConfirm)
}

// HandleCancel handles /cancel command
func (h *Handlers) HandleCancel(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.dispatchCommand(update, conversation.ActionCancel)
}

// HandleDefault handles every non-command update: pressed reply-keyboard
// buttons, free text and media attachments
func (h *Handlers) HandleDefault(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	ev := conversation.Event{
		UserID: msg.From.ID,
		Lang:   msg.From.LanguageCode,
	}

	if msg.Text != "" {
		ev.Action = resolveAction(h.catalog, msg.Text)
		if ev.Action == conversation.ActionNone {
			ev.Text = msg.Text
		}
	}

	if len(msg.Photo) > 0 {
		// the last size is the largest one
		fileID := msg.Photo[len(msg.Photo)-1].FileID
		ev.Items = append(ev.Items, entities.ContentItem{Kind: entities.ContentKindPhoto, Payload: fileID})
	}
	if msg.Video != nil {
		ev.Items = append(ev.Items, entities.ContentItem{Kind: entities.ContentKindVideo, Payload: msg.Video.FileID})
	}
	if msg.Caption != "" && len(ev.Items) > 0 {
		ev.Items = append(ev.Items, entities.ContentItem{Kind: entities.ContentKindText, Payload: msg.Caption})
	}

	if ev.Action == conversation.ActionNone && ev.Text == "" && len(ev.Items) == 0 {
		return
	}

	h.dispatcher.Dispatch(ev)
}

func (h *Handlers) dispatchCommand(update *models.Update, action conversation.Action) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	h.logger.Debug().Int64("user_id", msg.From.ID).Str("action", string(action)).Msg("Command received")

	h.dispatcher.Dispatch(conversation.Event{
		UserID: msg.From.ID,
		Lang:   msg.From.LanguageCode,
		Action: action,
	})
}
