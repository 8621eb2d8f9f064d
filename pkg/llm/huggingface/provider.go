package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"socratic-notes-be/pkg/llm"
)

// HuggingFaceProvider talks to the HF inference router, which speaks the
// OpenAI chat-completions wire format.
type HuggingFaceProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ llm.Provider = &HuggingFaceProvider{}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	TopP        float64       `json:"top_p,omitempty"`
	Stop        []string      `json:"stop,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewHuggingFaceProvider(apiKey, baseURL, model string) *HuggingFaceProvider {
	if baseURL == "" {
		baseURL = "https://router.huggingface.co/v1" // Default Router URL
	}
	return &HuggingFaceProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *HuggingFaceProvider) Generate(ctx context.Context, messages []llm.Message, options ...llm.Option) *llm.Result {
	opts := llm.ApplyOptions(llm.Options{Model: p.model, MaxTokens: 500}, options)

	reqBody := chatRequest{
		Model:       opts.Model,
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
		Stop:        opts.StopSequences,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return llm.Fail(fmt.Sprintf("marshal request: %v", err))
	}

	url := fmt.Sprintf("%s/chat/completions", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return llm.Fail(fmt.Sprintf("create request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return llm.Fail(fmt.Sprintf("huggingface request failed: %v", err))
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return llm.Fail(fmt.Sprintf("huggingface api error (status %d): %s", resp.StatusCode, string(bodyBytes)))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return llm.Fail(fmt.Sprintf("decode response: %v", err))
	}
	if chatResp.Error != nil {
		return llm.Fail(fmt.Sprintf("huggingface api returned error: %s", chatResp.Error.Message))
	}
	if len(chatResp.Choices) == 0 {
		return llm.Fail("empty choices from huggingface api")
	}

	var usage *llm.Usage
	if chatResp.Usage != nil {
		usage = &llm.Usage{
			InputTokens:  chatResp.Usage.PromptTokens,
			OutputTokens: chatResp.Usage.CompletionTokens,
			TotalTokens:  chatResp.Usage.TotalTokens,
		}
	}

	return llm.Succeed(chatResp.Choices[0].Message.Content, usage)
}

func (p *HuggingFaceProvider) SimpleGenerate(ctx context.Context, userPrompt, systemPrompt string, options ...llm.Option) *llm.Result {
	return p.Generate(ctx, llm.SimpleMessages(userPrompt, systemPrompt), options...)
}

func (p *HuggingFaceProvider) IsAvailable() bool {
	return p.apiKey != ""
}
