// Package infrastructure contains infrastructure layer components
package infrastructure

import (
	"go.uber.org/fx"

	"github.com/yourusername/anticovid-bot/internal/infrastructure/i18n"
	"github.com/yourusername/anticovid-bot/internal/infrastructure/logger"
	"github.com/yourusername/anticovid-bot/internal/infrastructure/telegram"
)

// Module provides all infrastructure components for fx dependency injection
var Module = fx.Module("infrastructure",
	logger.Module,
	i18n.Module,
	telegram.Module,
)
