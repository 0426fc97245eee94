// Package app contains application bootstrap
package app

import (
	"go.uber.org/fx"

	"github.com/yourusername/anticovid-bot/config"
	"github.com/yourusername/anticovid-bot/internal/domain"
	"github.com/yourusername/anticovid-bot/internal/infrastructure"
)

// CreateApp creates fx application with all modules
func CreateApp() fx.Option {
	return fx.Options(
		// Configuration
		fx.Provide(config.Out),

		// Infrastructure (logger, language catalogs, telegram bot)
		infrastructure.Module,

		// Domain (report store, publication queue, conversation engine)
		domain.Module,
	)
}
