package api

import (
	"encoding/json"
	"net/http"

	"github.com/rbhz/global-dictionary/app/db"
	"github.com/rs/zerolog/log"
)

// SaveWordRequest is the body of POST /api/saved
type SaveWordRequest struct {
	Word string `json:"word"`
}

// savedService implements saved words API of the web page user
type savedService struct {
	storage db.Storage
}

// List returns saved words, most recent first
func (s savedService) List(w http.ResponseWriter, r *http.Request) {
	words, err := s.storage.GetSavedWords(db.AnonymousUser)
	if err != nil {
		log.Error().Err(err).Msg("failed to get saved words")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, words)
}

// Add saves a word and returns the updated list
func (s savedService) Add(w http.ResponseWriter, r *http.Request) {
	var req SaveWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	words, err := db.SaveWord(s.storage, db.AnonymousUser, req.Word)
	if err != nil {
		log.Error().Err(err).Str("word", req.Word).Msg("failed to save word")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, words)
}

// Delete removes a word and returns the updated list
func (s savedService) Delete(w http.ResponseWriter, r *http.Request) {
	word := urlParam(r, "word")
	words, err := db.DeleteWord(s.storage, db.AnonymousUser, word)
	if err != nil {
		log.Error().Err(err).Str("word", word).Msg("failed to delete word")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, words)
}
