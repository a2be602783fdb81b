package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/rbhz/global-dictionary/app/lookup"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const defaultPronounceLanguage = "en"

// searchService implements lookup and pronunciation API
type searchService struct {
	lookup Searcher
	speech Speech
}

// Search returns lookup result for a word.
// Provider errors are reported in the error field with status 200.
func (s searchService) Search(w http.ResponseWriter, r *http.Request) {
	word := urlParam(r, "word")
	if strings.TrimSpace(word) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No word provided"})
		return
	}
	lang := r.URL.Query().Get("target_lang")
	if lang == "" {
		lang = lookup.DefaultTargetLanguage
	}
	result := s.lookup.Search(r.Context(), word, lang)
	if result.Error != "" {
		log.Info().Str("word", word).Str("lang", lang).Str("error", result.Error).Msg("lookup finished with error")
	}
	writeJSON(w, http.StatusOK, result)
}

// Pronounce streams synthesized MP3 of the text query parameter
func (s searchService) Pronounce(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = defaultPronounceLanguage
	}
	if text == "" {
		writeText(w, http.StatusBadRequest, "No text provided")
		return
	}
	audio, err := s.speech.Synthesize(r.Context(), text, lang)
	if err != nil {
		log.Error().Err(err).Str("text", text).Str("lang", lang).Msg("failed to synthesize audio")
		writeText(w, http.StatusInternalServerError, "Error generating audio")
		return
	}
	w.Header().Set("Content-Type", "audio/mp3")
	if _, err := w.Write(audio); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

// urlParam returns unescaped route parameter
func urlParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}
	return value
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(text)); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}
