package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/rbhz/global-dictionary/app/clients/dictionaryapi"
	"github.com/rbhz/global-dictionary/app/clients/openrouter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getChatEntry() dictionaryapi.WordResponse {
	return dictionaryapi.WordResponse{
		Word: "happy",
		Meanings: []dictionaryapi.Meaning{
			{
				PartOfSpeech: "adjective",
				Definitions: []dictionaryapi.Definition{
					{Definition: "Feeling pleasure.", Synonyms: []string{"glad", "joyful", "glad"}},
					{Definition: "Fortunate.", Synonyms: []string{"lucky", "fortunate", "content", "merry"}},
				},
			},
		},
	}
}

func TestChat(t *testing.T) {
	const path = "/api/chat"
	ask := func(t *testing.T, deps Deps, message string) (int, string) {
		ts, cancel := getTestServer(deps)
		defer cancel()
		r, body := doRequest(t, http.MethodPost, ts.URL+path, fmt.Sprintf(`{"message":%q}`, message))
		var resp ChatResponse
		require.NoError(t, json.Unmarshal([]byte(body), &resp))
		return r.StatusCode, resp.Response
	}
	t.Run("empty message", func(t *testing.T) {
		completer := &fakeCompleter{answer: "should not be asked"}
		status, answer := ask(t, Deps{Chat: completer}, "   ")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, chatEmptyMessage, answer)
		assert.Nil(t, completer.messages)
	})
	t.Run("completion", func(t *testing.T) {
		completer := &fakeCompleter{answer: "Serendipity means a happy accident."}
		status, answer := ask(t, Deps{Chat: completer}, "What is serendipity?")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Serendipity means a happy accident.", answer)
		assert.Equal(t, []openrouter.Message{
			{Role: "system", Content: chatSystemPrompt},
			{Role: "user", Content: "What is serendipity?"},
		}, completer.messages)
	})
	t.Run("fallback definition", func(t *testing.T) {
		deps := Deps{
			Chat:       &fakeCompleter{err: errors.New("timeout")},
			Dictionary: fakeDictionary{entries: []dictionaryapi.WordResponse{getChatEntry()}},
		}
		_, answer := ask(t, deps, "Define happy.")
		assert.Equal(t, "Fallback Definition: Feeling pleasure.", answer)
	})
	t.Run("fallback synonyms", func(t *testing.T) {
		deps := Deps{Dictionary: fakeDictionary{entries: []dictionaryapi.WordResponse{getChatEntry()}}}
		_, answer := ask(t, deps, "synonyms for happy?")
		assert.Equal(t, "Fallback Synonyms: glad, joyful, lucky, fortunate, content", answer)
	})
	t.Run("fallback without synonyms", func(t *testing.T) {
		entry := getChatEntry()
		for i := range entry.Meanings[0].Definitions {
			entry.Meanings[0].Definitions[i].Synonyms = nil
		}
		deps := Deps{Dictionary: fakeDictionary{entries: []dictionaryapi.WordResponse{entry}}}
		_, answer := ask(t, deps, "any synonym of happy")
		assert.Equal(t, "No synonyms found for 'happy'.", answer)
	})
	t.Run("fallback unknown word", func(t *testing.T) {
		deps := Deps{Dictionary: fakeDictionary{err: dictionaryapi.ErrNotFound}}
		_, answer := ask(t, deps, "what is qwzx")
		assert.Equal(t, chatFallbackMessage, answer)
	})
	t.Run("fallback other question", func(t *testing.T) {
		deps := Deps{
			Chat:       &fakeCompleter{},
			Dictionary: fakeDictionary{entries: []dictionaryapi.WordResponse{getChatEntry()}},
		}
		_, answer := ask(t, deps, "translate happy")
		assert.Equal(t, chatFallbackMessage, answer)
	})
	t.Run("invalid json", func(t *testing.T) {
		ts, cancel := getTestServer(Deps{})
		defer cancel()
		r, _ := doRequest(t, http.MethodPost, ts.URL+path, `NOT JSON`)
		assert.Equal(t, http.StatusBadRequest, r.StatusCode)
	})
}

func TestDailyWord(t *testing.T) {
	ts, cancel := getTestServer(Deps{Words: fixedWord("meadow")})
	defer cancel()
	r, body := doRequest(t, http.MethodGet, ts.URL+"/api/daily-word", "")
	assert.Equal(t, http.StatusOK, r.StatusCode)
	assert.Equal(t, `{"word":"meadow"}`, body)
}
