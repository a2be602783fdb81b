package bot

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rbhz/global-dictionary/app/db"
	"github.com/rbhz/global-dictionary/app/ui"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// maxCallbackData is the Telegram limit for inline button data
const maxCallbackData = 64

// chatPlayer sends audio sources to a chat
type chatPlayer struct {
	bot    Bot
	chatID int64
}

func (p chatPlayer) Play(ctx context.Context, src ui.Source) error {
	var file tgbotapi.RequestFileData
	switch {
	case src.URL != "":
		file = tgbotapi.FileURL(src.URL)
	case len(src.Data) > 0:
		file = tgbotapi.FileBytes{Name: "translation.mp3", Bytes: src.Data}
	default:
		return fmt.Errorf("empty audio source")
	}
	_, err := p.bot.Send(tgbotapi.NewAudio(p.chatID, file))
	return err
}

// chatNotifier sends notices as plain messages
func chatNotifier(b Bot, chatID int64) ui.Notifier {
	return ui.NotifierFunc(func(ctx context.Context, message string) {
		_, _ = b.Send(tgbotapi.NewMessage(chatID, message))
	})
}

// WordHandler handles word requests
type WordHandler struct {
	apiURL string
	client *http.Client
	neverPassthorugh
}

// Match returns true if message is a text
func (h WordHandler) Match(u tgbotapi.Update) bool {
	return u.Message != nil && strings.TrimSpace(u.Message.Text) != "" && !u.Message.IsCommand()
}

// Handle looks the word up and sends the result to user
func (h WordHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	user, ok := contextUser(ctx)
	if !ok {
		return
	}
	h.reply(ctx, b, u.Message.Chat.ID, user, u.Message.Text)
}

// reply runs a UI session for word and sends result message with audio
func (h WordHandler) reply(ctx context.Context, b Bot, chatID int64, user db.User, word string) {
	session := ui.NewSession(h.apiURL, h.client, func(st ui.State) {
		if st.Loading {
			_, _ = b.Send(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))
		}
	})
	if user.Language != "" {
		session.SetTargetLang(user.Language)
	}
	session.SetQuery(word)
	session.Submit(ctx)

	state := session.State()
	view := ui.BuildView(state)
	if view.Result == nil {
		_, _ = b.Send(tgbotapi.NewMessage(chatID, "Sorry, "+view.Error))
		return
	}
	text, err := GetResultMessageText(view)
	if err != nil {
		log.Error().Err(err).Str("word", word).Str("session", session.ID.String()).Msg("failed to format result")
		return
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if data := saveCallbackData(view.Result.Word); len(data) <= maxCallbackData {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("⭐ Save", data)),
		)
	}
	if _, err := b.Send(msg); err != nil {
		return
	}

	audio := ui.NewAudio(h.apiURL, chatPlayer{bot: b, chatID: chatID}, chatNotifier(b, chatID))
	if view.Result.HasPrimaryAudio() {
		audio.PlayAudio(ctx, view.Result.PrimaryAudio)
	}
	if view.Result.Translation != nil {
		audio.SpeakTranslation(ctx, state.Result.Translation.Audio)
	}
	audio.Wait()
}

// NewWordHandler creates new word handler, lookups go through the API at apiURL
func NewWordHandler(apiURL string, client *http.Client) WordHandler {
	return WordHandler{apiURL: apiURL, client: client}
}
