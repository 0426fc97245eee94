// Package i18n loads per-language message catalogs and renders message keys
package i18n

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/yourusername/anticovid-bot/config"
)

// Module provides the message catalog for fx dependency injection
var Module = fx.Module("i18n",
	fx.Provide(provideCatalog),
)

// provideCatalog loads the catalog from config
func provideCatalog(cfg *config.LanguagesConfig, logger zerolog.Logger) (*Catalog, error) {
	return Load(cfg.Dir, cfg.Default, logger)
}
