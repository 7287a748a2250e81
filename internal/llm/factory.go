package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Provider represents the LLM provider type
type Provider string

const (
	ProviderHuggingFace Provider = "huggingface"
	ProviderClaude      Provider = "claude"
	ProviderOpenAI      Provider = "openai"
	ProviderGemini      Provider = "gemini"
)

// Settings selects and configures one provider.
type Settings struct {
	Provider Provider
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// New creates the Completer for s. It returns ErrUnavailable when no API key is set,
// which callers treat as "AI mode not offered".
func New(ctx context.Context, s Settings) (Completer, error) {
	if s.APIKey == "" {
		return nil, ErrUnavailable
	}
	if s.Timeout <= 0 {
		s.Timeout = 30 * time.Second
	}

	switch Provider(strings.ToLower(string(s.Provider))) {
	case ProviderHuggingFace, "":
		return NewHuggingFace(s.APIKey, s.Model, s.BaseURL, s.Timeout), nil
	case ProviderClaude:
		return NewClaude(s.APIKey, s.Model, s.BaseURL, s.Timeout), nil
	case ProviderOpenAI:
		return NewOpenAI(s.APIKey, s.Model, s.BaseURL, s.Timeout), nil
	case ProviderGemini:
		g, err := NewGemini(ctx, s.APIKey, s.Model)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: huggingface, claude, openai, gemini)", s.Provider)
	}
}

// AvailableProviders lists the providers New understands.
func AvailableProviders() []Provider {
	return []Provider{ProviderHuggingFace, ProviderClaude, ProviderOpenAI, ProviderGemini}
}
