package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rbhz/global-dictionary/app/api"
	"github.com/rbhz/global-dictionary/app/bot"
	"github.com/rbhz/global-dictionary/app/clients/dictionaryapi"
	"github.com/rbhz/global-dictionary/app/clients/gtts"
	"github.com/rbhz/global-dictionary/app/clients/mymemory"
	"github.com/rbhz/global-dictionary/app/clients/openrouter"
	"github.com/rbhz/global-dictionary/app/clients/pexels"
	"github.com/rbhz/global-dictionary/app/clients/yandexdictionary"
	"github.com/rbhz/global-dictionary/app/db"
	"github.com/rbhz/global-dictionary/app/lookup"
	"github.com/rbhz/global-dictionary/app/ui"
	"github.com/rbhz/global-dictionary/app/words"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	log "github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/sync/errgroup"
)

// clientTimeout limits outgoing provider and API requests
const clientTimeout = 30 * time.Second

type Opts struct {
	Debug  bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
	Pretty bool `long:"pretty" env:"PRETTY_LOG" description:"Human readable logs"`

	Serve  ServeCommand  `command:"serve" description:"Run dictionary API, web page and Telegram bot"`
	Lookup LookupCommand `command:"lookup" description:"Look a word up in the terminal"`
}

type ServeCommand struct {
	Port                  int    `long:"port" env:"PORT" default:"8080" description:"Port to listen on"`
	BoltDB                string `long:"boltdb" env:"BOLTDB" default:"./dict.data" description:"Path to BoltDB"`
	RedisURL              string `long:"redis" env:"REDIS_URL" description:"Redis database URL"`
	PexelsToken           string `long:"pexels-token" env:"PEXELS_API_KEY" description:"Pexels API key"`
	MyMemoryToken         string `long:"mymemory-token" env:"MYMEMORY_API_KEY" description:"MyMemory API key"`
	YandexDictionaryToken string `long:"yadict-token" env:"YANDEX_DICTIONARY_TOKEN" description:"Yandex Dictionary token"`
	OpenRouterToken       string `long:"openrouter-token" env:"OPENROUTER_API_KEY" description:"OpenRouter API key, enables the chat assistant"`
	OpenRouterModel       string `long:"openrouter-model" env:"OPENROUTER_MODEL" description:"OpenRouter model"`
	SiteURL               string `long:"site-url" env:"SITE_URL" default:"http://localhost:8080" description:"Public site URL sent to OpenRouter"`
	BotToken              string `long:"bot-token" env:"BOT_TOKEN" description:"Telegram bot token, enables the bot"`
}

type LookupCommand struct {
	API    string `long:"api" env:"API_URL" default:"http://localhost:8080" description:"Dictionary API URL"`
	Lang   string `long:"lang" short:"l" default:"hi" description:"Translation language"`
	Listen string `long:"listen" description:"Speech recognizer command, {lang} {interim} {alternatives} are substituted"`
	Speak  bool   `long:"speak" description:"Play pronunciation and translation audio"`
	Player string `long:"player" description:"Audio player command, ffplay by default"`
	Args   struct {
		Words []string `positional-arg-name:"word"`
	} `positional-args:"yes"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	setupLog(opts.Debug, opts.Pretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch parser.Active.Name {
	case "serve":
		err = serve(ctx, opts.Serve)
	case "lookup":
		err = lookupWord(ctx, opts.Lookup)
	}
	if err != nil {
		log.Error().Err(err).Str("command", parser.Active.Name).Msg("command failed")
		stop()
		os.Exit(1)
	}
}

func setupLog(debug bool, pretty bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func serve(ctx context.Context, opts ServeCommand) error {
	storage, closeStorage, err := getStorage(opts)
	if err != nil {
		return err
	}
	defer closeStorage()

	httpClient := &http.Client{Timeout: clientTimeout}
	dictionary := dictionaryapi.NewClient(httpClient)
	speech := gtts.NewClient(httpClient)
	service := lookup.NewService(
		dictionary,
		mymemory.NewClient(httpClient, opts.MyMemoryToken),
		pexels.NewClient(httpClient, opts.PexelsToken),
		speech,
	)
	if opts.YandexDictionaryToken != "" {
		service.WithWordTranslator(yandexdictionary.NewClient(httpClient, opts.YandexDictionaryToken))
	}
	deps := api.Deps{
		Lookup:     service,
		Speech:     speech,
		Storage:    storage,
		Words:      words.NewDefaultPicker(),
		Dictionary: dictionary,
	}
	if opts.OpenRouterToken != "" {
		deps.Chat = openrouter.NewClient(opts.OpenRouterToken, opts.OpenRouterModel, opts.SiteURL)
	}

	var telegramBot *bot.TelegramBot
	if opts.BotToken != "" {
		wordHandler := bot.NewWordHandler(fmt.Sprintf("http://localhost:%d", opts.Port), httpClient)
		telegramBot, err = bot.NewTelegramBot(opts.BotToken, storage, []bot.Handler{
			bot.StartHandler{},
			// Settings
			bot.ListSettingsHandler{},
			bot.SendLanguagesHandler{},
			bot.SetLanguageHandler{},
			// Saved words
			bot.SaveWordHandler{},
			bot.SavedWordsHandler{},
			bot.ForgetWordHandler{},
			bot.NewDailyWordHandler(words.NewDefaultPicker(), wordHandler),
			// Dictionary
			wordHandler,
		})
		if err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return errors.Wrap(api.NewServer(deps).Run(ctx, opts.Port), "run API server")
	})
	if telegramBot != nil {
		g.Go(func() error {
			telegramBot.Start(ctx)
			return nil
		})
	}
	return g.Wait()
}

func getStorage(opts ServeCommand) (db.Storage, func(), error) {
	if opts.RedisURL != "" {
		redisStorage, err := db.NewRedisStorage(opts.RedisURL)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to create redis client")
		}
		return redisStorage, func() {}, nil
	}
	boltDB, err := bolt.Open(opts.BoltDB, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create boltDB database")
	}
	boltStorage, err := db.NewBoltStorage(boltDB)
	if err != nil {
		_ = boltDB.Close()
		return nil, nil, errors.Wrap(err, "failed to bolt storage")
	}
	return boltStorage, func() {
		if err := boltDB.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close boltDB database")
		}
	}, nil
}

// lookupWord runs a terminal UI session: optional voice input, text output, optional playback
func lookupWord(ctx context.Context, opts LookupCommand) error {
	notifier := ui.NotifierFunc(func(ctx context.Context, message string) {
		fmt.Fprintln(os.Stderr, message)
	})
	session := ui.NewSession(opts.API, &http.Client{Timeout: clientTimeout}, nil)
	session.SetTargetLang(opts.Lang)
	session.SetQuery(strings.Join(opts.Args.Words, " "))

	speech := ui.Unavailable()
	if opts.Listen != "" {
		speech = ui.DetectSpeech(ui.Bindings{"SpeechRecognition": ui.CommandRecognizer{Argv: strings.Fields(opts.Listen)}})
		ui.NewVoice(session, speech, notifier).StartListening(ctx)
	}
	if strings.TrimSpace(session.State().Query) == "" {
		return errors.New("no word given")
	}
	session.Submit(ctx)

	state := session.State()
	view := ui.BuildView(state)
	_, view.VoiceAvailable = speech.Recognizer()
	if err := ui.RenderText(os.Stdout, view); err != nil {
		return errors.Wrap(err, "render result")
	}
	if !opts.Speak || state.Result == nil {
		return nil
	}
	audio := ui.NewAudio(opts.API, ui.CommandPlayer{Argv: strings.Fields(opts.Player)}, notifier)
	if url, ok := state.Result.PrimaryAudio(); ok {
		audio.PlayAudio(ctx, url)
	}
	if state.Result.Translation != nil {
		audio.SpeakTranslation(ctx, state.Result.Translation.Audio)
	}
	audio.Wait()
	return nil
}
