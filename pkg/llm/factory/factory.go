package factory

import (
	"fmt"

	"socratic-notes-be/pkg/llm"
	"socratic-notes-be/pkg/llm/gemini"
	"socratic-notes-be/pkg/llm/huggingface"
	"socratic-notes-be/pkg/llm/ollama"
	"socratic-notes-be/pkg/llm/openai"
)

// Keys holds the provider credentials loaded from config.
type Keys struct {
	Gemini      string
	OpenAI      string
	HuggingFace string
}

func NewLLMProvider(providerType, modelName, ollamaBaseURL string, keys Keys) (llm.Provider, error) {
	switch providerType {
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	case "gemini":
		return gemini.NewGeminiProvider(keys.Gemini, modelName), nil
	case "openai":
		return openai.NewOpenAIProvider(keys.OpenAI, modelName), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(keys.HuggingFace, "", modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
