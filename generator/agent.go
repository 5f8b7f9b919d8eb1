package generator

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
)

// Agent 负责校验请求、构造提示词、调用模型并统计指标。
// It holds only settings fixed at construction and is safe for concurrent use.
type Agent struct {
	llm       LLMClient
	provider  string
	maxTokens int
	retry     RetryPolicy
	logger    *log.Logger
}

// AgentOption customises an Agent.
type AgentOption func(*Agent)

// WithProvider names the provider in errors and logs.
func WithProvider(name string) AgentOption {
	return func(a *Agent) { a.provider = name }
}

// WithMaxTokens overrides DefaultMaxTokens.
func WithMaxTokens(n int) AgentOption {
	return func(a *Agent) {
		if n > 0 {
			a.maxTokens = n
		}
	}
}

// WithRetry sets the retry policy for the model call.
func WithRetry(p RetryPolicy) AgentOption {
	return func(a *Agent) { a.retry = p }
}

// WithLogger sets the logger used for generation logs; nil disables them.
func WithLogger(l *log.Logger) AgentOption {
	return func(a *Agent) { a.logger = l }
}

func NewAgent(llm LLMClient, opts ...AgentOption) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	a := &Agent{
		llm:       llm,
		maxTokens: DefaultMaxTokens,
		retry:     SingleAttempt(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Generate 完成一次请求：校验 -> 提示词 -> 模型 -> 后处理 -> 指标。
// A validation failure returns ErrEmptyTopic without calling the model. Any
// other failure is a *GenerationError and yields no content.
func (a *Agent) Generate(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	req = req.Normalized()

	prompt := BuildPrompt(req)
	prompt.MaxTokens = a.maxTokens

	id := uuid.NewString()
	start := time.Now()
	a.logf("[generate] id=%s provider=%s topic=%q tone=%s words=%d keywords=%d", id, a.provider, req.Topic, req.Tone, req.WordCount, len(req.Keywords))

	raw, err := Retry(ctx, a.retry, func() (string, error) {
		return a.llm.Complete(ctx, prompt)
	})
	if err != nil {
		a.logf("[generate] id=%s failed after %s: %v", id, time.Since(start), err)
		return Result{}, &GenerationError{Provider: a.provider, Err: err}
	}

	content, err := PostProcess(raw)
	if err != nil {
		a.logf("[generate] id=%s unusable output: %v", id, err)
		return Result{}, &GenerationError{Provider: a.provider, Err: err}
	}

	metrics := Analyze(content, req.Keywords)
	a.logf("[generate] id=%s done in %s words=%d keywords_used=%d/%d", id, time.Since(start), metrics.WordCount, metrics.KeywordsUsed, len(req.Keywords))

	return Result{ID: id, Content: content, Metrics: metrics}, nil
}

func (a *Agent) logf(format string, args ...interface{}) {
	if a.logger == nil {
		return
	}
	a.logger.Printf(format, args...)
}
