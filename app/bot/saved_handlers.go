package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/rbhz/global-dictionary/app/db"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

func saveCallbackData(word string) string {
	return fmt.Sprintf("%v|%v", callbackIDSaveWord, word)
}

// SaveWordHandler handles save button callback
type SaveWordHandler struct {
	neverPassthorugh
}

// Match returns true if update is save word callback
func (h SaveWordHandler) Match(u tgbotapi.Update) bool {
	return u.CallbackQuery != nil && strings.HasPrefix(u.CallbackQuery.Data, callbackIDSaveWord+"|")
}

// Handle puts the word on top of user saved words
func (h SaveWordHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	word := strings.TrimPrefix(u.CallbackQuery.Data, callbackIDSaveWord+"|")
	userID := db.UserID(u.CallbackQuery.From.ID)
	if _, err := db.SaveWord(b.DB(), userID, word); err != nil {
		log.Error().Err(err).Str("word", word).Int64("user", int64(userID)).Msg("failed to save word")
		_, _ = b.SendCallback(tgbotapi.NewCallback(u.CallbackQuery.ID, "Error happened"))
		return
	}
	_, _ = b.SendCallback(tgbotapi.NewCallback(u.CallbackQuery.ID, "Saved"))
}

// SavedWordsHandler handles /saved command
type SavedWordsHandler struct {
	neverPassthorugh
}

// Match returns true if update is /saved command
func (h SavedWordsHandler) Match(u tgbotapi.Update) bool {
	return u.Message != nil && u.Message.Command() == "saved"
}

// Handle sends saved words list, most recent first
func (h SavedWordsHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	userID := db.UserID(u.Message.From.ID)
	words, err := b.DB().GetSavedWords(userID)
	if err != nil {
		log.Error().Err(err).Int64("user", int64(userID)).Msg("failed to get saved words")
		return
	}
	if len(words) == 0 {
		_, _ = b.Send(tgbotapi.NewMessage(u.Message.Chat.ID, "You don't have any saved words"))
		return
	}
	_, _ = b.Send(tgbotapi.NewMessage(u.Message.Chat.ID, "Saved words:\n"+strings.Join(words, "\n")))
}

// ForgetWordHandler handles /forget command
type ForgetWordHandler struct {
	neverPassthorugh
}

// Match returns true if update is /forget command
func (h ForgetWordHandler) Match(u tgbotapi.Update) bool {
	return u.Message != nil && u.Message.Command() == "forget"
}

// Handle removes the command argument from saved words
func (h ForgetWordHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	word := strings.TrimSpace(u.Message.CommandArguments())
	if word == "" {
		_, _ = b.Send(tgbotapi.NewMessage(u.Message.Chat.ID, "Usage: /forget <word>"))
		return
	}
	userID := db.UserID(u.Message.From.ID)
	if _, err := db.DeleteWord(b.DB(), userID, word); err != nil {
		log.Error().Err(err).Str("word", word).Int64("user", int64(userID)).Msg("failed to delete word")
		return
	}
	_, _ = b.Send(tgbotapi.NewMessage(u.Message.Chat.ID, fmt.Sprintf("Removed %q", word)))
}

// WordPicker picks the word of the day
type WordPicker interface {
	Random() string
}

// DailyWordHandler handles /daily command
type DailyWordHandler struct {
	words  WordPicker
	lookup WordHandler
	neverPassthorugh
}

// Match returns true if update is /daily command
func (h DailyWordHandler) Match(u tgbotapi.Update) bool {
	return u.Message != nil && u.Message.Command() == "daily"
}

// Handle looks up a random word
func (h DailyWordHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	user, ok := contextUser(ctx)
	if !ok {
		return
	}
	h.lookup.reply(ctx, b, u.Message.Chat.ID, user, h.words.Random())
}

// NewDailyWordHandler creates /daily handler sharing lookups with words handler
func NewDailyWordHandler(words WordPicker, lookup WordHandler) DailyWordHandler {
	return DailyWordHandler{words: words, lookup: lookup}
}
