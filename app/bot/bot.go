package bot

import (
	"context"
	"time"

	"github.com/rbhz/global-dictionary/app/db"
	"github.com/rbhz/global-dictionary/app/ui"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// updateTimeout limits a single update handling, lookups included
const updateTimeout = 30 * time.Second

type ctxKey int

// ctxUserKey holds db.User of the update sender
const ctxUserKey ctxKey = iota

type Handler interface {
	Handle(ctx context.Context, b Bot, u tgbotapi.Update)
	Passthrough(tgbotapi.Update) bool
	Match(u tgbotapi.Update) bool
}

// TelegramBot handles Telegram API intragration and updates handling
type TelegramBot struct {
	UserName string
	api      *tgbotapi.BotAPI
	db       db.Storage
	handlers []Handler
}

func (b *TelegramBot) processUpdate(ctx context.Context, u tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(ctx, updateTimeout)
	defer cancel()

	if from := sender(u); from != nil {
		user, err := loadUser(b.db, from)
		if err != nil {
			log.Error().Err(err).Int64("user", from.ID).Msg("failed to load user")
			return
		}
		ctx = context.WithValue(ctx, ctxUserKey, user)
	}
	dispatch(ctx, b, b.handlers, u)
}

// dispatch runs matching handlers until one of them stops the chain
func dispatch(ctx context.Context, b Bot, handlers []Handler, u tgbotapi.Update) {
	for _, handler := range handlers {
		if handler.Match(u) {
			handler.Handle(ctx, b, u)
			if !handler.Passthrough(u) {
				break
			}
		}
	}
}

// sender returns the user who sent the update
func sender(u tgbotapi.Update) *tgbotapi.User {
	switch {
	case u.Message != nil:
		return u.Message.From
	case u.CallbackQuery != nil:
		return u.CallbackQuery.From
	}
	return nil
}

// loadUser returns stored user, new users are saved with the default language
func loadUser(storage db.Storage, from *tgbotapi.User) (db.User, error) {
	user, err := storage.GetUser(db.UserID(from.ID))
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return db.User{}, errors.Wrap(err, "get user")
	}
	user = db.User{ID: db.UserID(from.ID), Username: from.UserName, Language: ui.DefaultTargetLanguage}
	if err := storage.SaveUser(user); err != nil {
		return db.User{}, errors.Wrap(err, "save user")
	}
	return user, nil
}

// Start handles updates until ctx is canceled
func (b *TelegramBot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			log.Info().Msg("telegram bot stopped")
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			b.processUpdate(ctx, u)
		}
	}
}

func (b *TelegramBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	message, err := b.api.Send(c)
	if err != nil {
		log.Error().Err(err).Msg("failed to send")
	}
	return message, err
}

func (b *TelegramBot) SendCallback(c tgbotapi.CallbackConfig) (*tgbotapi.APIResponse, error) {
	resp, err := b.api.Request(c)
	if err != nil {
		log.Error().Err(err).Msg("failed to answer callback")
	}
	return resp, err
}

func (b *TelegramBot) DB() db.Storage {
	return b.db
}

func NewTelegramBot(token string, db db.Storage, handlers []Handler) (*TelegramBot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize bot")
	}
	log.Info().Str("username", botAPI.Self.UserName).Msg("telegram bot initialized")
	return &TelegramBot{
		UserName: botAPI.Self.UserName,
		api:      botAPI,
		db:       db,
		handlers: handlers,
	}, nil
}
