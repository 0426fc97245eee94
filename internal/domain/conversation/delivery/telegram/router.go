// Package telegram contains Telegram delivery layer
package telegram

import (
	tgbot "github.com/go-telegram/bot"
	"github.com/rs/zerolog"
)

// Router registers Telegram bot handlers
type Router struct {
	handlers *Handlers
	logger   zerolog.Logger
}

// NewRouter creates new Telegram router
func NewRouter(handlers *Handlers, logger zerolog.Logger) *Router {
	return &Router{
		handlers: handlers,
		logger:   logger,
	}
}

// RegisterRoutes registers all command handlers on the bot. Non-command
// messages reach HandleDefault, installed as the bot's default handler.
func (r *Router) RegisterRoutes(bot *tgbot.Bot) {
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypeExact, r.handlers.HandleStart)
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/info", tgbot.MatchTypeExact, r.handlers.HandleInfo)
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/admin", tgbot.MatchTypeExact, r.handlers.HandleAdmin)
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/finish", tgbot.MatchTypeExact, r.handlers.HandleFinish)
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/confirm", tgbot.MatchTypeExact, r.handlers.HandleConfirm)
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/cancel", tgbot.MatchTypeExact, r.handlers.HandleCancel)

	r.logger.Info().Msg("All Telegram command handlers registered successfully")
}
