package dictionaryapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
)

const defaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en/"

var (
	// ErrNotFound is returned when the API has no entry for the word
	ErrNotFound = errors.New("word not found")
	// ErrUnsuccessful is returned for any other non-200 response
	ErrUnsuccessful = errors.New("unsuccessful API response")
)

// Client implements integration with DictionaryAPI
// docs: https://dictionaryapi.dev/
type Client struct {
	baseURL string
	client  *http.Client
}

// Get returns dictionary entries for an english word
func (c Client) Get(ctx context.Context, word string) (items []WordResponse, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+url.PathEscape(word), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dictionaryapi.dev: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		log.Error().
			Str("status", resp.Status).
			Str("body", string(body)).
			Msg("unsuccessful response from dictionaryapi")
		return nil, fmt.Errorf("%w %v", ErrUnsuccessful, resp.StatusCode)
	}
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return items, nil
}

// NewClient creates Client with the given HTTP client
func NewClient(httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return Client{baseURL: defaultBaseURL, client: httpClient}
}
