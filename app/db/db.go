package db

import (
	"errors"
	"fmt"
	"strings"
)

// UserID is a type for users ID
type UserID int64

// AnonymousUser owns the saved words of the web UI
const AnonymousUser UserID = 0

// MaxSavedWords is the saved words list capacity
const MaxSavedWords = 50

// ErrNotFound is returned when object not found
var ErrNotFound error = errors.New("not found")

// Storage defines method provided by database interfaces
type Storage interface {
	// GetUser returns user by ID
	GetUser(UserID) (User, error)
	// SaveUser saves user to DB
	SaveUser(User) error

	// GetSavedWords returns saved words of a user, most recent first
	GetSavedWords(UserID) ([]string, error)
	// SetSavedWords replaces saved words of a user
	SetSavedWords(UserID, []string) error
}

// User holds user data
type User struct {
	ID       UserID
	Username string
	// Language is the preferred translation target
	Language string
}

// SaveWord puts word on top of the user's saved words.
// Words already saved (case-insensitively) are left where they are.
func SaveWord(s Storage, user UserID, word string) ([]string, error) {
	words, err := s.GetSavedWords(user)
	if err != nil {
		return nil, fmt.Errorf("get saved words: %w", err)
	}
	word = strings.TrimSpace(word)
	if word == "" || containsFold(words, word) {
		return words, nil
	}
	words = append([]string{word}, words...)
	if len(words) > MaxSavedWords {
		words = words[:MaxSavedWords]
	}
	if err := s.SetSavedWords(user, words); err != nil {
		return nil, fmt.Errorf("save saved words: %w", err)
	}
	return words, nil
}

// DeleteWord removes every case-insensitive match of word from saved words
func DeleteWord(s Storage, user UserID, word string) ([]string, error) {
	words, err := s.GetSavedWords(user)
	if err != nil {
		return nil, fmt.Errorf("get saved words: %w", err)
	}
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if !strings.EqualFold(w, word) {
			kept = append(kept, w)
		}
	}
	if err := s.SetSavedWords(user, kept); err != nil {
		return nil, fmt.Errorf("save saved words: %w", err)
	}
	return kept, nil
}

func containsFold(words []string, word string) bool {
	for _, w := range words {
		if strings.EqualFold(w, word) {
			return true
		}
	}
	return false
}
