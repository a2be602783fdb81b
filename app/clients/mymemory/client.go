package mymemory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const defaultURL = "https://api.mymemory.translated.net/get"

// batchLimit bounds concurrent requests of a single TranslateBatch call
const batchLimit = 4

var (
	// ErrUnknown is returned when the API echoes the query back untranslated
	ErrUnknown = errors.New("failed to translate query")
	// ErrQuotaFinished is returned when the daily free quota is used up
	ErrQuotaFinished = errors.New("translation quota finished")
	// ErrUnsuccessful is returned when the body reports a failed request
	ErrUnsuccessful = errors.New("unsuccessful translation")
)

// Client implements integration with mymemory translations API
// docs: https://mymemory.translated.net/doc/spec.php
type Client struct {
	url      string
	apiToken string
	client   *http.Client
}

// Translate translates q from one language to another
func (c Client) Translate(ctx context.Context, q string, from string, to string) (TranslationResponse, error) {
	var result TranslationResponse
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return result, fmt.Errorf("create request: %w", err)
	}
	query := req.URL.Query()
	query.Add("q", q)
	query.Add("langpair", fmt.Sprintf("%s|%s", from, to))
	if c.apiToken != "" {
		query.Add("key", c.apiToken)
	}
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
			Msg("unsuccessful response from mymemory translated API")
		return result, fmt.Errorf("unsuccessful API response %v", response.StatusCode)
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return TranslationResponse{}, fmt.Errorf("unmarshal response: %w", err)
	}
	if err := result.statusError(); err != nil {
		return TranslationResponse{}, err
	}
	if strings.EqualFold(result.Result.Text, q) {
		return result, ErrUnknown
	}
	return result, nil
}

// TranslateText returns only translated text of q
func (c Client) TranslateText(ctx context.Context, q string, from string, to string) (string, error) {
	resp, err := c.Translate(ctx, q, from, to)
	if err != nil {
		return "", err
	}
	return resp.Result.Text, nil
}

// TranslateBatch translates every item of qs. Result has the same length and
// order as qs; items that failed to translate are kept as is.
// Returned error is the first translation error, if any.
func (c Client) TranslateBatch(ctx context.Context, qs []string, from string, to string) ([]string, error) {
	result := make([]string, len(qs))
	errs := make([]error, len(qs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchLimit)
	for idx, q := range qs {
		idx, q := idx, q
		g.Go(func() error {
			text, err := c.TranslateText(gctx, q, from, to)
			if err != nil {
				result[idx] = q
				errs[idx] = err
				return nil
			}
			result[idx] = text
			return nil
		})
	}
	_ = g.Wait()
	for _, err := range errs {
		if err != nil && !errors.Is(err, ErrUnknown) {
			return result, err
		}
	}
	return result, nil
}

// NewClient creates mymemory client, apiToken is optional
func NewClient(httpClient *http.Client, apiToken string) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return Client{url: defaultURL, apiToken: apiToken, client: httpClient}
}
