// Package ui holds the dictionary front end core: session state, search
// orchestration, voice input, audio playback and result rendering.
// Hosts (web page, terminal, Telegram) drive a Session and render its State.
package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rbhz/global-dictionary/app/lookup"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultTargetLanguage is the initial translation target of a session
	DefaultTargetLanguage = "hi"
	// ErrFetchFailed is shown when the search request fails or returns garbage
	ErrFetchFailed = "Failed to fetch data from the server."
)

// State is a snapshot of a session
type State struct {
	Query      string
	TargetLang string
	Result     *lookup.Result
	Loading    bool
	Error      string
	Listening  bool
}

// RenderFunc is called with a new snapshot after every state transition
type RenderFunc func(State)

// Session owns UI state of a single user
type Session struct {
	ID uuid.UUID

	mu      sync.Mutex
	state   State
	render  RenderFunc
	baseURL string
	client  *http.Client
}

// State returns current state snapshot
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetQuery replaces query text
func (s *Session) SetQuery(query string) {
	s.update(func(st *State) { st.Query = query })
}

// SetTargetLang replaces translation target. The code is passed through verbatim.
func (s *Session) SetTargetLang(code string) {
	s.update(func(st *State) { st.TargetLang = code })
}

func (s *Session) setListening(listening bool) {
	s.mu.Lock()
	if s.state.Listening == listening {
		s.mu.Unlock()
		return
	}
	s.state.Listening = listening
	snapshot := s.state
	s.mu.Unlock()
	s.notify(snapshot)
}

// update applies fn under lock and renders the result
func (s *Session) update(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	snapshot := s.state
	s.mu.Unlock()
	s.notify(snapshot)
}

func (s *Session) notify(snapshot State) {
	if s.render != nil {
		s.render(snapshot)
	}
}

// Submit searches current query.
// Blank queries are ignored. Overlapping submits are not coordinated:
// whichever response settles last wins.
func (s *Session) Submit(ctx context.Context) {
	s.mu.Lock()
	query, lang := s.state.Query, s.state.TargetLang
	if strings.TrimSpace(query) == "" {
		s.mu.Unlock()
		return
	}
	s.state.Loading = true
	s.state.Error = ""
	s.state.Result = nil
	snapshot := s.state
	s.mu.Unlock()
	s.notify(snapshot)

	result, err := s.search(ctx, query, lang)
	s.update(func(st *State) {
		st.Loading = false
		if err != nil {
			log.Error().Err(err).Str("session", s.ID.String()).Str("query", query).Msg("search request failed")
			st.Error = ErrFetchFailed
			return
		}
		switch result.Error {
		case "":
			st.Result = &result
			st.Error = ""
		case lookup.ErrWordNotFound:
			st.Result = &result
			st.Error = result.Error
		default:
			st.Result = nil
			st.Error = result.Error
		}
	})
}

// search fetches lookup result. Body is decoded regardless of response status.
func (s *Session) search(ctx context.Context, query string, lang string) (lookup.Result, error) {
	var result lookup.Result
	endpoint := fmt.Sprintf("%s/api/search/%s?target_lang=%s", s.baseURL, url.PathEscape(query), url.QueryEscape(lang))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return result, fmt.Errorf("build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return result, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return result, fmt.Errorf("decode %v response: %w", resp.StatusCode, err)
	}
	return result, nil
}

// NewSession creates a session talking to the API at baseURL.
// httpClient may be nil, render may be nil.
func NewSession(baseURL string, httpClient *http.Client, render RenderFunc) *Session {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Session{
		ID:      uuid.New(),
		state:   State{TargetLang: DefaultTargetLanguage},
		render:  render,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
	}
}
