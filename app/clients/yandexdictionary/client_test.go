package yandexdictionary

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

const exampleResponse = `{
	"head": {},
	"def": [
		{
			"text": "time",
			"pos": "noun",
			"tr": [
				{
					"text": "время",
					"pos": "существительное",
					"syn": [
						{"text": "раз"},
						{"text": "тайм"}
					],
					"mean": [
						{"text": "timing"},
						{"text": "fold"},
						{"text": "half"}
					],
					"ex": [
						{
							"text": "prehistoric time",
							"tr": [
								{"text": "доисторическое время"}
							]
						},
						{
							"text": "hundredth time",
							"tr": [
								{"text": "сотый раз"}
							]
						},
						{
							"text": "time-slot",
							"tr": [
								{"text": "тайм-слот"}
							]
						}
					]
				}
			]
		}
	]
}`

type RoundTripFunc func(req *http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestTranslate(t *testing.T) {
	validURL := "https://dictionary.yandex.net/api/v1/dicservice.json/lookup?key=test&lang=en-ru&text=time"
	apiToken := "test"
	word := "time"
	t.Run("success", func(t *testing.T) {
		httpClient := &http.Client{
			Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, validURL, req.URL.String())
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(bytes.NewBufferString(exampleResponse)),
					Header:     make(http.Header),
				}, nil
			}),
		}
		client := Client{url: defaultURL, client: httpClient, apiToken: apiToken}
		translation, err := client.Translate(context.Background(), word, "en", "ru")

		assert.NoError(t, err)
		expected := TranslationResponse{
			Definitions: []Definition{
				{
					Text:         "time",
					PartOfSpeech: "noun",
					Translations: []Translation{
						{
							Text:         "время",
							PartOfSpeech: "существительное",
							Examples: []Example{
								{
									Text: "prehistoric time",
									Translations: []textItem{
										{Text: "доисторическое время"},
									},
								},
								{
									Text: "hundredth time",
									Translations: []textItem{
										{Text: "сотый раз"},
									},
								},
								{
									Text: "time-slot",
									Translations: []textItem{
										{Text: "тайм-слот"},
									},
								},
							},
							Synonyms: []textItem{
								{Text: "раз"},
								{Text: "тайм"},
							},
							Meanings: []textItem{
								{Text: "timing"},
								{Text: "fold"},
								{Text: "half"},
							},
						},
					},
				},
			},
		}
		assert.Equal(t, expected, translation)
	})
	t.Run("request error", func(t *testing.T) {
		httpClient := &http.Client{
			Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, validURL, req.URL.String())
				return &http.Response{}, http.ErrServerClosed
			}),
		}
		client := Client{url: defaultURL, client: httpClient, apiToken: apiToken}
		translation, err := client.Translate(context.Background(), word, "en", "ru")
		assert.ErrorIs(t, err, http.ErrServerClosed)
		assert.Equal(t, TranslationResponse{}, translation)
	})
	t.Run("invalid response", func(t *testing.T) {
		httpClient := &http.Client{
			Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, validURL, req.URL.String())
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(bytes.NewBufferString("Invalid JSON")),
					Header:     make(http.Header),
				}, nil
			}),
		}
		client := Client{url: defaultURL, client: httpClient, apiToken: apiToken}
		translation, err := client.Translate(context.Background(), word, "en", "ru")
		assert.Error(t, err)
		assert.Equal(t, TranslationResponse{}, translation)
	})
	t.Run("error status", func(t *testing.T) {
		httpClient := &http.Client{
			Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, validURL, req.URL.String())
				return &http.Response{
					StatusCode: 400,
					Body:       io.NopCloser(bytes.NewBufferString(`{"status": "ERROR"}`)),
					Header:     make(http.Header),
				}, nil
			}),
		}
		client := Client{url: defaultURL, client: httpClient, apiToken: apiToken}
		translation, err := client.Translate(context.Background(), word, "en", "ru")
		assert.Error(t, err)
		assert.Equal(t, TranslationResponse{}, translation)
	})
	t.Run("test same as input", func(t *testing.T) {
		httpClient := &http.Client{
			Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, validURL, req.URL.String())
				return &http.Response{
					StatusCode: 200,
					Body: io.NopCloser(
						bytes.NewBufferString(`{"head":{},"def":[]}`),
					),
					Header: make(http.Header),
				}, nil
			}),
		}
		client := Client{url: defaultURL, client: httpClient, apiToken: apiToken}
		_, err := client.Translate(context.Background(), word, "en", "ru")
		assert.ErrorIs(t, err, ErrUnknown)
	})
}

func TestTranslateWord(t *testing.T) {
	respond := func(body string) *http.Client {
		return &http.Client{
			Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(bytes.NewBufferString(body)),
					Header:     make(http.Header),
				}, nil
			}),
		}
	}
	t.Run("first translation", func(t *testing.T) {
		client := NewClient(respond(exampleResponse), "test")
		text, err := client.TranslateWord(context.Background(), "time", "en", "ru")
		assert.NoError(t, err)
		assert.Equal(t, "время", text)
	})
	t.Run("most frequent translation", func(t *testing.T) {
		client := NewClient(respond(`{"def":[
			{"text":"run","pos":"noun","tr":[{"text":"пробег","fr":5}]},
			{"text":"run","pos":"verb","tr":[{"text":"","fr":10},{"text":"бежать","fr":10},{"text":"бегать","fr":10}]}
		]}`), "test")
		text, err := client.TranslateWord(context.Background(), "run", "en", "ru")
		assert.NoError(t, err)
		assert.Equal(t, "бежать", text)
	})
	t.Run("no translations", func(t *testing.T) {
		client := NewClient(respond(`{"head":{},"def":[{"text":"time","pos":"noun","tr":[]}]}`), "test")
		_, err := client.TranslateWord(context.Background(), "time", "en", "ru")
		assert.ErrorIs(t, err, ErrUnknown)
	})
	t.Run("unknown word", func(t *testing.T) {
		client := NewClient(respond(`{"head":{},"def":[]}`), "test")
		_, err := client.TranslateWord(context.Background(), "time", "en", "ru")
		assert.ErrorIs(t, err, ErrUnknown)
	})
}
