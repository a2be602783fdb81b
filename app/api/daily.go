package api

import "net/http"

// dailyService implements the word of the day API
type dailyService struct {
	words WordPicker
}

// DailyWordResponse is the body of GET /api/daily-word
type DailyWordResponse struct {
	Word string `json:"word"`
}

// Get returns a new random word on every call
func (d dailyService) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, DailyWordResponse{Word: d.words.Random()})
}
