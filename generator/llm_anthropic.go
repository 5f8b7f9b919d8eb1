package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultAnthropicModel matches the model the web app was built against.
const DefaultAnthropicModel = "claude-3-5-sonnet-20241022"

// AnthropicLLM implements LLMClient using the official anthropic-sdk-go (Messages API).
type AnthropicLLM struct {
	Model  string
	client anthropic.Client
}

type anthropicErrorBody struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewAnthropicLLMFromConfig builds the client; httpClient may be nil.
func NewAnthropicLLMFromConfig(cfg *LLMSettings, httpClient *http.Client) (*AnthropicLLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	model := cfg.Model
	if model == "" {
		model = DefaultAnthropicModel
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// 单次调用，不做 SDK 内置重试；重试策略由 Agent 决定。
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return &AnthropicLLM{Model: model, client: anthropic.NewClient(opts...)}, nil
}

func (a *AnthropicLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	maxTokens := prompt.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.Model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.Text)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", anthropicProviderError(apiErr.StatusCode, apiErr.RawJSON())
		}
		return "", err
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyContent
	}
	return sb.String(), nil
}

// anthropicProviderError keeps the provider message from a JSON error body.
// Anything else is reduced to the HTTP status text.
func anthropicProviderError(status int, raw string) *ProviderError {
	pe := &ProviderError{StatusCode: status}
	var body anthropicErrorBody
	if json.Unmarshal([]byte(raw), &body) == nil && body.Error.Message != "" {
		pe.Type = body.Error.Type
		pe.Message = body.Error.Message
		return pe
	}
	pe.Message = fmt.Sprintf("upstream returned %d %s", status, http.StatusText(status))
	return pe
}
