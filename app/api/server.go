package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rbhz/global-dictionary/app/clients/dictionaryapi"
	"github.com/rbhz/global-dictionary/app/clients/openrouter"
	"github.com/rbhz/global-dictionary/app/db"
	"github.com/rbhz/global-dictionary/app/lookup"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

// Searcher builds lookup results
type Searcher interface {
	Search(ctx context.Context, word string, targetLang string) lookup.Result
}

// Speech synthesizes MP3 audio
type Speech interface {
	Synthesize(ctx context.Context, text string, lang string) ([]byte, error)
}

// WordPicker picks the daily word
type WordPicker interface {
	Random() string
}

// Completer answers chat messages
type Completer interface {
	Complete(ctx context.Context, messages []openrouter.Message) (string, error)
}

// Dictionary fetches dictionary entries for chat fallback answers
type Dictionary interface {
	Get(ctx context.Context, word string) ([]dictionaryapi.WordResponse, error)
}

// Deps are the server collaborators. Chat may be nil.
type Deps struct {
	Lookup     Searcher
	Speech     Speech
	Storage    db.Storage
	Words      WordPicker
	Chat       Completer
	Dictionary Dictionary
}

type Server struct {
	router chi.Router
}

// Run serves until ctx is canceled
func (s *Server) Run(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shutdown API server")
		}
	}()
	log.Info().Int("port", port).Msg("API server started")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler returns the server router
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setJsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func NewServer(deps Deps) *Server {
	s := &Server{}
	search := searchService{lookup: deps.Lookup, speech: deps.Speech}
	saved := savedService{storage: deps.Storage}
	daily := dailyService{words: deps.Words}
	chat := chatService{completer: deps.Chat, dictionary: deps.Dictionary}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.setJsonContentType)
		r.Get("/search/{word}", search.Search)
		r.Get("/pronounce", search.Pronounce)
		r.Route("/saved", func(r chi.Router) {
			r.Get("/", saved.List)
			r.Post("/", saved.Add)
			r.Delete("/{word}", saved.Delete)
		})
		r.Get("/daily-word", daily.Get)
		r.Post("/chat", chat.Reply)
	})

	page := pageService{client: &http.Client{Transport: handlerTransport{handler: r}}}
	r.Get("/", page.Index)

	s.router = r
	return s
}

// writeJSON writes data with status, failures are only logged
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(response); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

// errorResponse is the JSON error body
type errorResponse struct {
	Error string `json:"error"`
}
