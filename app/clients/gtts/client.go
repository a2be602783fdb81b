package gtts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

const defaultURL = "https://translate.google.com/translate_tts"

// maxChunkLen is the longest text the endpoint accepts in one request
const maxChunkLen = 100

// ErrEmptyText is returned when there is nothing to synthesize
var ErrEmptyText = errors.New("no text to speak")

// Client implements Google Translate text-to-speech integration.
// Output is MP3; long texts are split into chunks whose MP3 streams are concatenated.
type Client struct {
	url    string
	client *http.Client
}

// Synthesize returns MP3 audio of text spoken in lang
func (c Client) Synthesize(ctx context.Context, text string, lang string) ([]byte, error) {
	chunks := splitText(text, maxChunkLen)
	if len(chunks) == 0 {
		return nil, ErrEmptyText
	}
	var audio bytes.Buffer
	for idx, chunk := range chunks {
		if err := c.fetchChunk(ctx, &audio, chunk, lang, idx, len(chunks)); err != nil {
			return nil, err
		}
	}
	return audio.Bytes(), nil
}

func (c Client) fetchChunk(ctx context.Context, w io.Writer, chunk string, lang string, idx int, total int) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	q := req.URL.Query()
	q.Add("ie", "UTF-8")
	q.Add("client", "tw-ob")
	q.Add("tl", lang)
	q.Add("q", chunk)
	q.Add("idx", fmt.Sprint(idx))
	q.Add("total", fmt.Sprint(total))
	q.Add("textlen", fmt.Sprint(utf8.RuneCountInString(chunk)))
	req.URL.RawQuery = q.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch tts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error().
			Str("status", resp.Status).
			Str("lang", lang).
			Str("body", string(body)).
			Msg("unsuccessful response from tts")
		return fmt.Errorf("unsuccessful API response %v", resp.StatusCode)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	return nil
}

// splitText splits text on whitespace into chunks of at most limit runes.
// Words longer than limit are cut.
func splitText(text string, limit int) []string {
	var (
		chunks  []string
		current strings.Builder
		size    int
	)
	flush := func() {
		if size > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			size = 0
		}
	}
	for _, word := range strings.Fields(text) {
		runes := []rune(word)
		for len(runes) > limit {
			flush()
			chunks = append(chunks, string(runes[:limit]))
			runes = runes[limit:]
		}
		n := len(runes)
		if size > 0 && size+1+n > limit {
			flush()
		}
		if size > 0 {
			current.WriteByte(' ')
			size++
		}
		current.WriteString(string(runes))
		size += n
	}
	flush()
	return chunks
}

// NewClient creates text-to-speech client
func NewClient(httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return Client{url: defaultURL, client: httpClient}
}
