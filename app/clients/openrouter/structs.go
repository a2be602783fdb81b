package openrouter

import openai "github.com/sashabaranov/go-openai"

// Message is a single chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func toChatMessages(messages []Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		result = append(result, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return result
}
