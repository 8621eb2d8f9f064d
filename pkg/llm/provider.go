package llm

import (
	"context"
)

// Message is one chat turn in a provider-agnostic format.
type Message struct {
	Role    string // "system", "user", "assistant"
	Content string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature   float64
	TopP          float64
	MaxTokens     int
	StopSequences []string
	Model         string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithTopP(topP float64) Option {
	return func(o *Options) {
		o.TopP = topP
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

func WithStopSequences(stop ...string) Option {
	return func(o *Options) {
		o.StopSequences = stop
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Usage reports token accounting when the backend provides it.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Result is the outcome of one generation call. Ordinary failures — auth,
// rate limit, timeout, network — come back as Success=false with a readable
// Error, never as a panic and never as a Go error from the provider.
type Result struct {
	Success bool
	Content string
	Error   string
	Usage   *Usage
}

func Succeed(content string, usage *Usage) *Result {
	return &Result{Success: true, Content: content, Usage: usage}
}

func Fail(message string) *Result {
	return &Result{Success: false, Error: message}
}

// Provider defines the contract for any LLM backend.
type Provider interface {
	// Generate sends a chat history to the model.
	Generate(ctx context.Context, messages []Message, options ...Option) *Result

	// SimpleGenerate wraps a user prompt (plus optional system prompt) into
	// a chat call.
	SimpleGenerate(ctx context.Context, userPrompt, systemPrompt string, options ...Option) *Result

	// IsAvailable reports configuration readiness (credentials present)
	// without making a network call.
	IsAvailable() bool
}

// SimpleMessages builds the two-message form used by SimpleGenerate.
func SimpleMessages(userPrompt, systemPrompt string) []Message {
	messages := make([]Message, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, Message{Role: RoleSystem, Content: systemPrompt})
	}
	return append(messages, Message{Role: RoleUser, Content: userPrompt})
}

// ApplyOptions folds functional options over provider defaults.
func ApplyOptions(defaults Options, options []Option) *Options {
	opts := defaults
	for _, o := range options {
		o(&opts)
	}
	return &opts
}
