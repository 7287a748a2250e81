package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultHuggingFaceModel = "mistralai/Mixtral-8x7B-Instruct-v0.1"
	huggingFaceBaseURL      = "https://api-inference.huggingface.co/models/"
)

// HuggingFace calls the hosted inference API for a text-generation model.
type HuggingFace struct {
	apiKey string
	url    string
	client *http.Client
}

func NewHuggingFace(apiKey, model, baseURL string, timeout time.Duration) *HuggingFace {
	if model == "" {
		model = DefaultHuggingFaceModel
	}
	if baseURL == "" {
		baseURL = huggingFaceBaseURL
	}
	return &HuggingFace{
		apiKey: apiKey,
		url:    baseURL + model,
		client: &http.Client{Timeout: timeout},
	}
}

func (h *HuggingFace) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	body := map[string]interface{}{
		"inputs": prompt,
		"parameters": map[string]interface{}{
			"max_new_tokens":   maxTokens,
			"temperature":      0.7,
			"top_p":            0.95,
			"return_full_text": false,
		},
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", h.url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.apiKey)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("huggingface API error (status %d): %s", resp.StatusCode, string(respBytes))
	}

	var generations []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(respBytes, &generations); err != nil {
		return "", fmt.Errorf("huggingface: decode response: %w", err)
	}
	if len(generations) == 0 {
		return "", ErrEmptyResponse
	}
	return nonEmpty(generations[0].GeneratedText)
}
