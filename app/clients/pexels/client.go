package pexels

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
)

const defaultURL = "https://api.pexels.com/v1/search"

// Client implements integration with Pexels photo search
// docs: https://www.pexels.com/api/documentation/#photos-search
type Client struct {
	url      string
	apiToken string
	client   *http.Client
}

// Search returns up to perPage photos matching query
func (c Client) Search(ctx context.Context, query string, perPage int) (SearchResponse, error) {
	var result SearchResponse
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return result, fmt.Errorf("create request: %w", err)
	}
	q := req.URL.Query()
	q.Add("query", query)
	q.Add("per_page", strconv.Itoa(perPage))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", c.apiToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return result, fmt.Errorf("fetch pexels: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Error().
			Str("status", resp.Status).
			Str("body", string(body)).
			Msg("unsuccessful response from pexels")
		return result, fmt.Errorf("unsuccessful API response %v", resp.StatusCode)
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return SearchResponse{}, fmt.Errorf("unmarshal response: %w", err)
	}
	return result, nil
}

// MediumURLs returns medium-size links of all photos
func (r SearchResponse) MediumURLs() []string {
	urls := make([]string, 0, len(r.Photos))
	for _, p := range r.Photos {
		urls = append(urls, p.Src.Medium)
	}
	return urls
}

// NewClient creates pexels client
func NewClient(httpClient *http.Client, apiToken string) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return Client{url: defaultURL, apiToken: apiToken, client: httpClient}
}
