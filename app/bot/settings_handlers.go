package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/rbhz/global-dictionary/app/ui"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

const (
	settingLanguage = "lang"
	languagesPerRow = 3
)

// ListSettingsHandler handles /settings command
type ListSettingsHandler struct {
	neverPassthorugh
}

// Match returns true if update is /settings command
func (h ListSettingsHandler) Match(u tgbotapi.Update) bool {
	return u.Message != nil && u.Message.Command() == "settings"
}

// Handle sends settings list keyboard
func (h ListSettingsHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	msg := tgbotapi.NewMessage(u.Message.Chat.ID, "Choose what do you want to change:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Translation language", fmt.Sprintf("%v|%v", callbackIDSettings, settingLanguage)),
		),
	)
	_, _ = b.Send(msg)
}

// SendLanguagesHandler sends available translation languages
type SendLanguagesHandler struct {
	neverPassthorugh
}

// Match returns true if update is language settings callback or /language command
func (h SendLanguagesHandler) Match(u tgbotapi.Update) bool {
	if u.Message != nil {
		return u.Message.Command() == "language"
	}
	return u.CallbackQuery != nil &&
		u.CallbackQuery.Data == fmt.Sprintf("%v|%v", callbackIDSettings, settingLanguage)
}

// Handle sends languages keyboard
func (h SendLanguagesHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	user, ok := contextUser(ctx)
	if !ok {
		return
	}
	current := user.Language
	if l, ok := ui.LanguageByCode(user.Language); ok {
		current = l.Name
	}
	chatID := int64(user.ID)
	if u.Message != nil {
		chatID = u.Message.Chat.ID
	}
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Current language: %v\nPick translation language:", current))
	msg.ReplyMarkup = languagesKeyboard()
	_, _ = b.Send(msg)
}

func languagesKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(ui.Languages); i += languagesPerRow {
		end := i + languagesPerRow
		if end > len(ui.Languages) {
			end = len(ui.Languages)
		}
		row := make([]tgbotapi.InlineKeyboardButton, 0, languagesPerRow)
		for _, l := range ui.Languages[i:end] {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(
				l.Name, fmt.Sprintf("%v|%v|%v", callbackIDSettings, settingLanguage, l.Code),
			))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// SetLanguageHandler saves translation language to user config
type SetLanguageHandler struct {
	neverPassthorugh
}

// Match returns true if update is language settings callback with picked language
func (h SetLanguageHandler) Match(u tgbotapi.Update) bool {
	return u.CallbackQuery != nil &&
		strings.HasPrefix(u.CallbackQuery.Data, fmt.Sprintf("%v|%v|", callbackIDSettings, settingLanguage))
}

// Handle saves language to user config
func (h SetLanguageHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	user, ok := contextUser(ctx)
	if !ok {
		return
	}
	code := strings.Split(u.CallbackQuery.Data, "|")[2]
	language, ok := ui.LanguageByCode(code)
	if !ok {
		log.Error().Str("language", code).Msg("invalid language")
		_, _ = b.SendCallback(tgbotapi.NewCallback(u.CallbackQuery.ID, "Unknown language"))
		return
	}
	user.Language = language.Code
	if err := b.DB().SaveUser(user); err != nil {
		log.Error().Err(err).Msg("failed to save user")
		return
	}
	_, _ = b.SendCallback(tgbotapi.NewCallback(u.CallbackQuery.ID, "Language set: "+language.Name))
}
