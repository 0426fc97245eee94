package telegram

import (
	"context"
	"fmt"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/yourusername/anticovid-bot/internal/domain/conversation"
	"github.com/yourusername/anticovid-bot/internal/domain/report/entities"
	"github.com/yourusername/anticovid-bot/internal/infrastructure/i18n"
)

// RequestTimeout bounds every single Telegram API call
const RequestTimeout = 30 * time.Second

// Sender renders outbound messages against the language catalog and delivers
// them through the Telegram API
type Sender struct {
	bot     *tgbot.Bot
	catalog *i18n.Catalog
	logger  zerolog.Logger
}

var _ conversation.Sender = (*Sender)(nil)

// NewSender creates a Telegram sender
func NewSender(bot *tgbot.Bot, catalog *i18n.Catalog, logger zerolog.Logger) *Sender {
	return &Sender{
		bot:     bot,
		catalog: catalog,
		logger:  logger,
	}
}

// Send renders and sends one outbound message
func (s *Sender) Send(ctx context.Context, out conversation.Outbound) error {
	params := &tgbot.SendMessageParams{
		ChatID: out.ChatID,
		Text:   s.catalog.Format(out.Lang, out.Key, out.Args...),
	}
	switch {
	case len(out.Keyboard) > 0:
		params.ReplyMarkup = s.replyKeyboard(out.Lang, out.Keyboard)
	case out.RemoveKeyboard:
		params.ReplyMarkup = &models.ReplyKeyboardRemove{RemoveKeyboard: true}
	}

	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	if _, err := s.bot.SendMessage(msgCtx, params); err != nil {
		return fmt.Errorf("failed to send message to chat %d: %w", out.ChatID, err)
	}
	return nil
}

// DeliverItem sends one broadcast content item to one recipient. Matches the
// publication queue's delivery function signature.
func (s *Sender) DeliverItem(ctx context.Context, recipient int64, item entities.ContentItem) error {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	var err error
	switch item.Kind {
	case entities.ContentKindPhoto:
		_, err = s.bot.SendPhoto(msgCtx, &tgbot.SendPhotoParams{
			ChatID: recipient,
			Photo:  &models.InputFileString{Data: item.Payload},
		})
	case entities.ContentKindVideo:
		_, err = s.bot.SendVideo(msgCtx, &tgbot.SendVideoParams{
			ChatID: recipient,
			Video:  &models.InputFileString{Data: item.Payload},
		})
	default:
		_, err = s.bot.SendMessage(msgCtx, &tgbot.SendMessageParams{
			ChatID: recipient,
			Text:   item.Payload,
		})
	}
	if err != nil {
		return fmt.Errorf("failed to deliver %s to chat %d: %w", item.Kind, recipient, err)
	}
	return nil
}

func (s *Sender) replyKeyboard(lang string, rows [][]conversation.Action) *models.ReplyKeyboardMarkup {
	keyboard := make([][]models.KeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]models.KeyboardButton, 0, len(row))
		for _, action := range row {
			buttons = append(buttons, models.KeyboardButton{Text: captionFor(s.catalog, lang, action)})
		}
		keyboard = append(keyboard, buttons)
	}
	return &models.ReplyKeyboardMarkup{
		Keyboard:       keyboard,
		ResizeKeyboard: true,
	}
}
