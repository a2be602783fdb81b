package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rbhz/global-dictionary/app/clients/dictionaryapi"
	"github.com/rbhz/global-dictionary/app/clients/openrouter"
	"github.com/rs/zerolog/log"
)

const (
	chatSystemPrompt = "You are a helpful dictionary assistant. " +
		"Answer questions about word definitions, synonyms, translations, and grammar concisely and helpful."
	chatEmptyMessage    = "Please say something!"
	chatFallbackMessage = "I'm having trouble connecting to my brain. Please try searching in the main search bar."
	chatMaxSynonyms     = 5
)

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the answer of the assistant
type ChatResponse struct {
	Response string `json:"response"`
}

// chatService answers dictionary questions with the LLM and falls back to plain lookups
type chatService struct {
	completer  Completer
	dictionary Dictionary
}

// Reply answers a chat message
func (c chatService) Reply(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	writeJSON(w, http.StatusOK, ChatResponse{Response: c.answer(r.Context(), req.Message)})
}

func (c chatService) answer(ctx context.Context, message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return chatEmptyMessage
	}
	if c.completer != nil {
		answer, err := c.completer.Complete(ctx, []openrouter.Message{
			{Role: "system", Content: chatSystemPrompt},
			{Role: "user", Content: message},
		})
		if err == nil && answer != "" {
			return answer
		}
		log.Warn().Err(err).Msg("chat completion failed, using fallback")
	}
	return c.fallback(ctx, message)
}

// fallback answers "define"/"meaning"/"what is" and "synonym" questions about the last word of message
func (c chatService) fallback(ctx context.Context, message string) string {
	if c.dictionary == nil {
		return chatFallbackMessage
	}
	lower := strings.ToLower(message)
	words := strings.Fields(strings.NewReplacer("?", "", ".", "").Replace(lower))
	if len(words) == 0 {
		return chatFallbackMessage
	}
	target := words[len(words)-1]

	switch {
	case strings.Contains(lower, "define"), strings.Contains(lower, "meaning"), strings.Contains(lower, "what is"):
		entries, err := c.dictionary.Get(ctx, target)
		if err != nil {
			logFallbackError(err, target)
			return chatFallbackMessage
		}
		if definition, ok := firstDefinition(entries); ok {
			return fmt.Sprintf("Fallback Definition: %s", definition)
		}
	case strings.Contains(lower, "synonym"):
		entries, err := c.dictionary.Get(ctx, target)
		if err != nil {
			logFallbackError(err, target)
			return chatFallbackMessage
		}
		if len(entries) == 0 {
			return chatFallbackMessage
		}
		synonyms := definitionSynonyms(entries[0], chatMaxSynonyms)
		if len(synonyms) == 0 {
			return fmt.Sprintf("No synonyms found for '%s'.", target)
		}
		return fmt.Sprintf("Fallback Synonyms: %s", strings.Join(synonyms, ", "))
	}
	return chatFallbackMessage
}

func firstDefinition(entries []dictionaryapi.WordResponse) (string, bool) {
	for _, e := range entries {
		for _, m := range e.Meanings {
			if len(m.Definitions) > 0 {
				return m.Definitions[0].Definition, true
			}
		}
	}
	return "", false
}

// definitionSynonyms returns up to limit distinct definition level synonyms
func definitionSynonyms(entry dictionaryapi.WordResponse, limit int) []string {
	seen := map[string]struct{}{}
	var result []string
	for _, m := range entry.Meanings {
		for _, d := range m.Definitions {
			for _, s := range d.Synonyms {
				if _, ok := seen[s]; ok || s == "" {
					continue
				}
				seen[s] = struct{}{}
				result = append(result, s)
				if len(result) == limit {
					return result
				}
			}
		}
	}
	return result
}

func logFallbackError(err error, word string) {
	if errors.Is(err, dictionaryapi.ErrNotFound) {
		return
	}
	log.Error().Err(err).Str("word", word).Msg("chat fallback lookup failed")
}
