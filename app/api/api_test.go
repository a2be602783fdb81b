package api

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"

	"github.com/rbhz/global-dictionary/app/clients/dictionaryapi"
	"github.com/rbhz/global-dictionary/app/clients/openrouter"
	"github.com/rbhz/global-dictionary/app/db"
	"github.com/rbhz/global-dictionary/app/lookup"
)

// fakeSearcher returns result for every word and records calls
type fakeSearcher struct {
	result lookup.Result
	mx     sync.Mutex
	words  []string
	langs  []string
}

func (s *fakeSearcher) Search(ctx context.Context, word string, targetLang string) lookup.Result {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.words = append(s.words, word)
	s.langs = append(s.langs, targetLang)
	result := s.result
	result.Word = word
	return result
}

type fakeSpeech struct {
	err error
}

func (s fakeSpeech) Synthesize(ctx context.Context, text string, lang string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("mp3:" + lang + ":" + text), nil
}

type fixedWord string

func (w fixedWord) Random() string {
	return string(w)
}

type fakeCompleter struct {
	answer   string
	err      error
	messages []openrouter.Message
}

func (c *fakeCompleter) Complete(ctx context.Context, messages []openrouter.Message) (string, error) {
	c.messages = messages
	return c.answer, c.err
}

type fakeDictionary struct {
	entries []dictionaryapi.WordResponse
	err     error
}

func (d fakeDictionary) Get(ctx context.Context, word string) ([]dictionaryapi.WordResponse, error) {
	return d.entries, d.err
}

// ErrorStorage is a dummy storage for testing storage error handling.
type ErrorStorage struct {
	*db.InMemoryStorage
}

func (d ErrorStorage) GetSavedWords(db.UserID) ([]string, error) {
	return nil, errors.New("test")
}

func (d ErrorStorage) SetSavedWords(db.UserID, []string) error {
	return errors.New("test")
}

// getTestServer returns a test server, zero deps are filled with fakes.
func getTestServer(deps Deps) (*httptest.Server, func()) {
	if deps.Lookup == nil {
		deps.Lookup = &fakeSearcher{}
	}
	if deps.Speech == nil {
		deps.Speech = fakeSpeech{}
	}
	if deps.Storage == nil {
		deps.Storage = db.NewInMemoryStorage()
	}
	if deps.Words == nil {
		deps.Words = fixedWord("lantern")
	}
	server := NewServer(deps)
	srv := httptest.NewServer(server.router)
	return srv, srv.Close
}
