// Package i18n loads per-language message catalogs and renders message keys
package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Catalog holds the loaded message tables for every supported language.
// Immutable after Load, safe for concurrent use.
type Catalog struct {
	defaultLang string
	messages    map[string]map[string]string

	// rendered text back to its message key, across all languages, for
	// resolving pressed reply-keyboard captions
	reverse map[string]string
}

// Load reads every <lang>.json file in dir. Each file is a flat object of
// message key to text. The default language must be present.
func Load(dir, defaultLang string, logger zerolog.Logger) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read languages directory: %w", err)
	}

	c := &Catalog{
		defaultLang: defaultLang,
		messages:    make(map[string]map[string]string),
		reverse:     make(map[string]string),
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		lang := strings.TrimSuffix(name, ".json")

		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read language file %s: %w", name, err)
		}

		table := make(map[string]string)
		if err := json.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("failed to parse language file %s: %w", name, err)
		}

		c.messages[lang] = table
		for key, text := range table {
			if existing, ok := c.reverse[text]; ok && existing != key {
				logger.Warn().
					Str("lang", lang).
					Str("text", text).
					Str("key", key).
					Str("existing_key", existing).
					Msg("Duplicate caption text across message keys")
				continue
			}
			c.reverse[text] = key
		}
		logger.Info().Str("lang", lang).Int("messages", len(table)).Msg("Language catalog loaded")
	}

	if _, ok := c.messages[defaultLang]; !ok {
		return nil, fmt.Errorf("default language %q has no catalog in %s", defaultLang, dir)
	}

	return c, nil
}

// DefaultLang returns the fallback language code
func (c *Catalog) DefaultLang() string {
	return c.defaultLang
}

// Languages returns the loaded language codes
func (c *Catalog) Languages() []string {
	langs := make([]string, 0, len(c.messages))
	for lang := range c.messages {
		langs = append(langs, lang)
	}
	return langs
}

// Get returns the text for key in lang, falling back to the default language
// and finally to the key itself so a missing translation never loses the
// message entirely.
func (c *Catalog) Get(lang, key string) string {
	if table, ok := c.messages[lang]; ok {
		if text, ok := table[key]; ok {
			return text
		}
	}
	if text, ok := c.messages[c.defaultLang][key]; ok {
		return text
	}
	return key
}

// Format renders key in lang, applying fmt verbs when args are given
func (c *Catalog) Format(lang, key string, args ...any) string {
	text := c.Get(lang, key)
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}

// KeyFor resolves rendered text back to its message key, in any loaded
// language. Used to map pressed reply-keyboard captions to what they mean.
func (c *Catalog) KeyFor(text string) (string, bool) {
	key, ok := c.reverse[text]
	return key, ok
}
