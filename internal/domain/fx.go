// Package domain assembles the report store, publication queue, conversation
// engine and delivery layers
package domain

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/yourusername/anticovid-bot/config"
	"github.com/yourusername/anticovid-bot/internal/domain/conversation"
	telegramDelivery "github.com/yourusername/anticovid-bot/internal/domain/conversation/delivery/telegram"
	"github.com/yourusername/anticovid-bot/internal/domain/publish"
	httpDelivery "github.com/yourusername/anticovid-bot/internal/domain/report/delivery/http"
	"github.com/yourusername/anticovid-bot/internal/domain/report/deps"
	fileRepo "github.com/yourusername/anticovid-bot/internal/domain/report/repository/file"
	postgresRepo "github.com/yourusername/anticovid-bot/internal/domain/report/repository/postgres"
	"github.com/yourusername/anticovid-bot/internal/infrastructure/database"
	"github.com/yourusername/anticovid-bot/internal/infrastructure/i18n"
	telegramInfra "github.com/yourusername/anticovid-bot/internal/infrastructure/telegram"
)

// Module provides all domain components for fx dependency injection
var Module = fx.Module("domain",
	// Report store
	fx.Provide(provideStore),

	// Publication queue
	fx.Provide(provideQueue),
	fx.Provide(publish.NewBroadcaster),

	// Conversation engine
	fx.Provide(provideEngine),
	fx.Provide(provideDispatcher),

	// Delivery - Telegram
	fx.Provide(telegramDelivery.NewHandlers),
	fx.Provide(telegramDelivery.NewRouter),
	fx.Provide(provideSender),
	fx.Provide(provideDefaultHandler),

	// Delivery - admin HTTP API
	fx.Provide(httpDelivery.NewHandlers),

	// Wire cyclic dependencies and register routes
	fx.Invoke(wireAndRegister),
	fx.Invoke(registerAdminAPI),
)

// provideStore creates the report store selected by config
func provideStore(cfg *config.StorageConfig, logger zerolog.Logger) (deps.Store, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := database.NewPostgresDB(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return postgresRepo.NewStore(db, logger)
	case "file":
		return fileRepo.NewStore(cfg.Path, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// provideQueue creates the publication queue over the store's subscriber list
func provideQueue(store deps.Store, logger zerolog.Logger) *publish.Queue {
	return publish.NewQueue(store, logger)
}

// provideEngine creates the conversation engine with the admin allow-list
func provideEngine(
	store deps.Store,
	queue *publish.Queue,
	broadcaster *publish.Broadcaster,
	cfg *config.TelegramConfig,
	logger zerolog.Logger,
) *conversation.Engine {
	return conversation.NewEngine(store, queue, cfg.AdminIDs, broadcaster.Trigger, logger)
}

// provideDispatcher creates the per-user serialized dispatcher
func provideDispatcher(engine *conversation.Engine, cfg *config.SessionConfig, logger zerolog.Logger) *conversation.Dispatcher {
	return conversation.NewDispatcher(engine, cfg.IdleTimeout, logger)
}

// provideSender creates the Telegram sender over the raw bot
func provideSender(bot *telegramInfra.Bot, catalog *i18n.Catalog, logger zerolog.Logger) *telegramDelivery.Sender {
	return telegramDelivery.NewSender(bot.Raw(), catalog, logger)
}

// provideDefaultHandler exposes the non-command update handler to the bot
// constructor
func provideDefaultHandler(handlers *telegramDelivery.Handlers) telegramInfra.DefaultHandler {
	return handlers.HandleDefault
}

// wireAndRegister resolves cyclic dependencies and registers routes
func wireAndRegister(
	lc fx.Lifecycle,
	dispatcher *conversation.Dispatcher,
	sender *telegramDelivery.Sender,
	broadcaster *publish.Broadcaster,
	router *telegramDelivery.Router,
	bot *telegramInfra.Bot,
) {
	// The dispatcher and the broadcaster both deliver through the Telegram
	// sender, which needs the bot, which needs the dispatcher's handlers.
	// Setting the sender after construction breaks the cycle.
	dispatcher.SetSender(sender)
	broadcaster.SetDeliver(sender.DeliverItem)

	router.RegisterRoutes(bot.Raw())

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			dispatcher.Stop()
			return nil
		},
	})
}

// registerAdminAPI starts the admin HTTP server when enabled
func registerAdminAPI(lc fx.Lifecycle, cfg *config.HTTPConfig, handlers *httpDelivery.Handlers, logger zerolog.Logger) {
	if !cfg.Enabled {
		logger.Info().Msg("Admin API is disabled")
		return
	}

	srv := httpDelivery.NewServer(cfg, handlers, logger)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			srv.Start()
			return nil
		},
		OnStop: srv.Stop,
	})
}
