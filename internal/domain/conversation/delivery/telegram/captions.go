package telegram

import (
	"github.com/yourusername/anticovid-bot/internal/domain/conversation"
	"github.com/yourusername/anticovid-bot/internal/infrastructure/i18n"
)

// Buttons whose caption is the same glyph in every language
var actionGlyphs = map[conversation.Action]string{
	conversation.ActionConfirm:  "✅",
	conversation.ActionDecline:  "❌",
	conversation.ActionPrevious: "⬅️",
	conversation.ActionNext:     "➡️",
}

// Catalog keys of the localized button captions
var actionCaptionKeys = map[conversation.Action]string{
	conversation.ActionBasicProtection: "BUTTON_BASIC_PROTECTION",
	conversation.ActionSubscribe:       "BUTTON_SUBSCRIBE_FOR_THE_NEWS",
	conversation.ActionUnsubscribe:     "BUTTON_UNSUBSCRIBE",
	conversation.ActionCheckSymptoms:   "BUTTON_CHECK_SYMPTOMS",
	conversation.ActionWriteReport:     "BUTTON_WRITE_REPORT",
	conversation.ActionReportOverprice: "TYPE_OVERPRICE",
	conversation.ActionReportOther:     "TYPE_OTHER",
	conversation.ActionSendNews:        "BUTTON_SEND_NEWS",
	conversation.ActionViewUnseen:      "BUTTON_UNSEEN",
	conversation.ActionViewSeen:        "BUTTON_SEEN",
	conversation.ActionMarkSeen:        "MARK_SEEN",
	conversation.ActionMarkUnseen:      "MARK_UNSEEN",
	conversation.ActionRemoveReport:    "REMOVE_REPORT",
	conversation.ActionQuitViewer:      "QUIT_VIEWING",
}

var (
	glyphActions      map[string]conversation.Action
	captionKeyActions map[string]conversation.Action
)

func init() {
	glyphActions = make(map[string]conversation.Action, len(actionGlyphs))
	for action, glyph := range actionGlyphs {
		glyphActions[glyph] = action
	}
	captionKeyActions = make(map[string]conversation.Action, len(actionCaptionKeys))
	for action, key := range actionCaptionKeys {
		captionKeyActions[key] = action
	}
}

// captionFor renders the button caption of an action in the user's language
func captionFor(catalog *i18n.Catalog, lang string, action conversation.Action) string {
	if glyph, ok := actionGlyphs[action]; ok {
		return glyph
	}
	if key, ok := actionCaptionKeys[action]; ok {
		return catalog.Get(lang, key)
	}
	return string(action)
}

// resolveAction maps pressed button text back to its action. Captions are
// matched across all loaded languages, since the user may have switched
// client language after the keyboard was sent. Free text resolves to
// ActionNone.
func resolveAction(catalog *i18n.Catalog, text string) conversation.Action {
	if action, ok := glyphActions[text]; ok {
		return action
	}
	if key, ok := catalog.KeyFor(text); ok {
		if action, ok := captionKeyActions[key]; ok {
			return action
		}
	}
	return conversation.ActionNone
}
