package generator

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyTopic is returned when the request has no topic.
	ErrEmptyTopic = errors.New("topic is required")

	// ErrGenerationFailed marks every failure of the model round trip.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrEmptyContent is returned when the model answers without any text.
	ErrEmptyContent = errors.New("model returned empty content")

	// ErrMissingAPIKey is returned when a provider is built without a credential.
	ErrMissingAPIKey = errors.New("missing api key")
)

const (
	// TopicRequiredMessage is shown for ErrEmptyTopic.
	TopicRequiredMessage = "Topic is required"
	// GenericFailureMessage is shown when a failure carries no usable message.
	GenericFailureMessage = "Failed to generate blog post"
)

// GenerationError wraps a failed model call with the provider that produced it.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Provider != "" {
		return e.Provider + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrGenerationFailed) match any GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// ProviderError carries the message a provider put in its error payload.
type ProviderError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *ProviderError) Error() string {
	var sb strings.Builder
	sb.WriteString("provider error")
	if e.Type != "" {
		sb.WriteString(" (" + e.Type + ")")
	}
	if e.Message != "" {
		sb.WriteString(": " + e.Message)
	}
	return sb.String()
}

// UserMessage 返回给前端的错误文案：优先使用服务商消息，否则给出通用提示。
// Transport and timeout details stay in the logs.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrEmptyTopic) {
		return TopicRequiredMessage
	}
	var pe *ProviderError
	if errors.As(err, &pe) && strings.TrimSpace(pe.Message) != "" {
		return pe.Message
	}
	return GenericFailureMessage
}
