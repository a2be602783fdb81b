package gtts

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type RoundTripFunc func(req *http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestSynthesize(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := NewClient(&http.Client{
			Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				q := req.URL.Query()
				assert.Equal(t, "translate.google.com", req.URL.Host)
				assert.Equal(t, "hi", q.Get("tl"))
				assert.Equal(t, "नमस्ते", q.Get("q"))
				assert.Equal(t, "tw-ob", q.Get("client"))
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(bytes.NewBufferString("MP3DATA")),
					Header:     make(http.Header),
				}, nil
			}),
		})
		audio, err := client.Synthesize(context.TODO(), "नमस्ते", "hi")
		require.NoError(t, err)
		assert.Equal(t, []byte("MP3DATA"), audio)
	})
	t.Run("chunks concatenated", func(t *testing.T) {
		var calls []string
		client := NewClient(&http.Client{
			Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				calls = append(calls, req.URL.Query().Get("idx"))
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(bytes.NewBufferString("[" + req.URL.Query().Get("idx") + "]")),
					Header:     make(http.Header),
				}, nil
			}),
		})
		text := strings.Repeat("word ", 30)
		audio, err := client.Synthesize(context.TODO(), text, "en")
		require.NoError(t, err)
		assert.Equal(t, []string{"0", "1"}, calls)
		assert.Equal(t, "[0][1]", string(audio))
	})
	t.Run("empty text", func(t *testing.T) {
		client := NewClient(nil)
		_, err := client.Synthesize(context.TODO(), "  ", "en")
		assert.ErrorIs(t, err, ErrEmptyText)
	})
	t.Run("error status", func(t *testing.T) {
		client := NewClient(&http.Client{
			Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: 400,
					Body:       io.NopCloser(bytes.NewBufferString("bad lang")),
					Header:     make(http.Header),
				}, nil
			}),
		})
		audio, err := client.Synthesize(context.TODO(), "hello", "xx")
		assert.Error(t, err)
		assert.Nil(t, audio)
	})
	t.Run("request error", func(t *testing.T) {
		client := NewClient(&http.Client{
			Transport: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				return nil, http.ErrServerClosed
			}),
		})
		_, err := client.Synthesize(context.TODO(), "hello", "en")
		assert.ErrorIs(t, err, http.ErrServerClosed)
	})
}

func TestSplitText(t *testing.T) {
	assert.Nil(t, splitText("", 10))
	assert.Equal(t, []string{"one two", "three"}, splitText("one  two three", 7))
	assert.Equal(t, []string{"abcde", "fgh", "ij"}, splitText("abcdefgh ij", 5))
	assert.Equal(t, []string{"ab"}, splitText("ab", 100))
}
