package openrouter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "google/gemini-2.0-flash-exp:free"
	requestTitle   = "Global Dictionary App"
	requestTimeout = 5 * time.Second
)

// ErrNoChoices is returned when a completion has no answer
var ErrNoChoices = errors.New("empty completion")

// Client implements integration with OpenRouter chat completions.
// The API is OpenAI compatible, requests go through go-openai with OpenRouter base URL.
// docs: https://openrouter.ai/docs/api-reference/chat-completion
type Client struct {
	api   *openai.Client
	model string
}

// Complete sends messages and returns the first answer
func (c Client) Complete(ctx context.Context, messages []Message) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: toChatMessages(messages),
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			log.Error().
				Int("status", apiErr.HTTPStatusCode).
				Str("message", apiErr.Message).
				Msg("unsuccessful response from openrouter")
		}
		return "", fmt.Errorf("create completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

// attributionTransport sets OpenRouter app attribution headers
type attributionTransport struct {
	base    http.RoundTripper
	referer string
}

func (t attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("X-Title", requestTitle)
	if t.referer != "" {
		req.Header.Set("HTTP-Referer", t.referer)
	}
	return t.base.RoundTrip(req)
}

// NewClient creates OpenRouter client. Requests time out after 5 seconds.
func NewClient(apiToken string, model string, referer string) Client {
	return newClient(apiToken, model, referer, http.DefaultTransport)
}

func newClient(apiToken string, model string, referer string, transport http.RoundTripper) Client {
	if model == "" {
		model = DefaultModel
	}
	config := openai.DefaultConfig(apiToken)
	config.BaseURL = defaultBaseURL
	config.HTTPClient = &http.Client{
		Timeout:   requestTimeout,
		Transport: attributionTransport{base: transport, referer: referer},
	}
	return Client{api: openai.NewClientWithConfig(config), model: model}
}
