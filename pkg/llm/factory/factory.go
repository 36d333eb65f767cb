package factory

import (
	"fmt"

	"student-coach-be/pkg/llm"
	"student-coach-be/pkg/llm/ollama"
	"student-coach-be/pkg/llm/openai"
)

// NewLLMProvider builds the configured chat backend. OpenAI is the
// production path; ollama serves local development without an API key.
func NewLLMProvider(providerType, modelName, apiKey, baseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewOpenAIProvider(apiKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
