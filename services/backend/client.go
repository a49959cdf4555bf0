package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/upb/llm-router/models"
)

// CallError is a per-attempt backend failure: a non-2xx status or a
// transport error. The fallback chain treats every CallError as retryable.
type CallError struct {
	ModelID    string
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *CallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("backend call to %s failed: %s: %v", e.ModelID, e.Message, e.Cause)
	}
	return fmt.Sprintf("backend call to %s failed: %s", e.ModelID, e.Message)
}

// Unwrap exposes the underlying transport error, if any.
func (e *CallError) Unwrap() error {
	return e.Cause
}

// Config holds request defaults for the backend adapter.
type Config struct {
	// Timeout bounds each individual attempt.
	Timeout time.Duration

	// Temperature sent with every completion request.
	Temperature float64

	// MaxTokens sent with every completion request.
	MaxTokens int

	// Headers are added to every request.
	Headers map[string]string
}

// DefaultConfig returns the adapter defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:     30 * time.Second,
		Temperature: 0.7,
		MaxTokens:   1024,
	}
}

// Client performs chat completion calls against a model's endpoint.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a backend client.
func NewClient(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

type chatRequest struct {
	Messages    []models.Message `json:"messages"`
	Temperature float64          `json:"temperature"`
	MaxTokens   int              `json:"max_tokens"`
}

// ChatResponse is the wire response from a model backend.
type ChatResponse struct {
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

// Choice is a single completion choice.
type Choice struct {
	Message models.Message `json:"message"`
}

// Usage carries the backend's reported token counts.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// Content returns the first choice's message content, or empty when the
// backend returned no choices.
func (r *ChatResponse) Content() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// TotalTokens returns the reported token total, or zero when the backend
// omitted usage.
func (r *ChatResponse) TotalTokens() int {
	if r.Usage == nil {
		return 0
	}
	return r.Usage.PromptTokens + r.Usage.CompletionTokens
}

// ChatCompletion POSTs a completion request to the model's endpoint.
func (c *Client) ChatCompletion(ctx context.Context, model *models.ModelDescriptor, messages []models.Message) (*ChatResponse, error) {
	body, err := json.Marshal(chatRequest{
		Messages:    messages,
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
	})
	if err != nil {
		return nil, &CallError{ModelID: model.ID, Message: "failed to marshal request", Cause: err}
	}

	url := model.Endpoint + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &CallError{ModelID: model.ID, Message: "failed to create request", Cause: err}
	}

	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &CallError{ModelID: model.ID, Message: "http request failed", Cause: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &CallError{ModelID: model.ID, StatusCode: httpResp.StatusCode, Message: "failed to read response", Cause: err}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, &CallError{
			ModelID:    model.ID,
			StatusCode: httpResp.StatusCode,
			Message:    fmt.Sprintf("unexpected status %d: %s", httpResp.StatusCode, truncate(respBody, 200)),
		}
	}

	var resp ChatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, &CallError{ModelID: model.ID, StatusCode: httpResp.StatusCode, Message: "failed to unmarshal response", Cause: err}
	}

	return &resp, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
