// Package llm provides text-completion clients for the hosted models that write
// underwriting narratives. Callers see only the Completer interface, so any provider
// can be substituted without touching prompt or fallback logic.
package llm

import (
	"context"
	"errors"
	"io"
	"strings"
)

var (
	// ErrUnavailable means no provider credential is configured.
	ErrUnavailable = errors.New("llm: no provider configured")
	// ErrEmptyResponse means the provider answered successfully but with no text.
	ErrEmptyResponse = errors.New("llm: empty response")
)

// Completer sends one prompt and returns the model's completion.
// Implementations must be safe for concurrent use.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Close releases the resources held by c, if it holds any.
func Close(c Completer) error {
	if cl, ok := c.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string, maxTokens int) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return f(ctx, prompt, maxTokens)
}

func nonEmpty(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
