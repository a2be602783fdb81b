package yandexdictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

const defaultURL = "https://dictionary.yandex.net/api/v1/dicservice.json/lookup"

// ErrUnknown is returned when no translation is found
var ErrUnknown = errors.New("failed to translate text")

// Client implements integration with yandex dictionary API
// docs: https://yandex.com/dev/dictionary/doc/dg/concepts/api-overview.html
type Client struct {
	url      string
	apiToken string
	client   *http.Client
}

// Translate looks text up in the from-to dictionary
func (c Client) Translate(ctx context.Context, text string, from string, to string) (TranslationResponse, error) {
	var result TranslationResponse
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return result, fmt.Errorf("create request: %w", err)
	}
	query := req.URL.Query()
	query.Add("key", c.apiToken)
	query.Add("lang", fmt.Sprintf("%s-%s", from, to))
	query.Add("text", text)
	req.URL.RawQuery = query.Encode()
	response, err := c.client.Do(req)
	if err != nil {
		return result, fmt.Errorf("execute request: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return result, fmt.Errorf("read response body: %w", err)
	}

	if response.StatusCode != http.StatusOK {
		log.Error().
			Str("status", response.Status).
			Str("body", string(body)).
			Msg("unsuccessful response from yandex dictionary API")
		return result, fmt.Errorf("unsuccessful API response %v", response.StatusCode)
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return TranslationResponse{}, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(result.Definitions) == 0 {
		return result, ErrUnknown
	}
	return result, nil
}

// TranslateWord returns the most frequent translation of word
func (c Client) TranslateWord(ctx context.Context, word string, from string, to string) (string, error) {
	resp, err := c.Translate(ctx, word, from, to)
	if err != nil {
		return "", err
	}
	text, ok := resp.Best()
	if !ok {
		return "", ErrUnknown
	}
	return text, nil
}

// NewClient creates new client
func NewClient(httpClient *http.Client, apiToken string) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return Client{url: defaultURL, apiToken: apiToken, client: httpClient}
}
