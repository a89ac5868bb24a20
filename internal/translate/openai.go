package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const translatePrompt = `Translate the following stock market news text to Hindi. Keep stock symbols, numbers, percentages and exchange names unchanged. Return ONLY the translated text, no commentary.

%s`

// OpenAIClient translates text through an OpenAI-compatible chat completions
// endpoint.
type OpenAIClient struct {
	client  *http.Client
	model   string
	apiKey  string
	baseURL string
}

type OpenAIConfig struct {
	Model   string
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

func LoadOpenAIConfig() (*OpenAIConfig, bool) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, false
	}
	cfg := &OpenAIConfig{
		Model:   os.Getenv("OPENAI_MODEL"),
		APIKey:  apiKey,
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
		Timeout: 30 * time.Second,
	}
	return cfg, true
}

func NewOpenAIClient(cfg *OpenAIConfig) *OpenAIClient {
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIClient{
		client:  &http.Client{Timeout: timeout},
		model:   model,
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
	}
}

func (c *OpenAIClient) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	body := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "user", "content": fmt.Sprintf(translatePrompt, text)},
		},
		"temperature": 0,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation request returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode translation response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("translation response had no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
