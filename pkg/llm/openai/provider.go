package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"socratic-notes-be/pkg/llm"
)

type OpenAIProvider struct {
	apiKey    string
	modelName string
	client    openai.Client
}

var _ llm.Provider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, modelName string) *OpenAIProvider {
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}
	return &OpenAIProvider{
		apiKey:    apiKey,
		modelName: modelName,
		client:    openai.NewClient(option.WithAPIKey(apiKey)),
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, messages []llm.Message, options ...llm.Option) *llm.Result {
	opts := llm.ApplyOptions(llm.Options{}, options)

	oaiMessages := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case llm.RoleSystem:
			oaiMessages = append(oaiMessages, openai.SystemMessage(msg.Content))
		case llm.RoleAssistant:
			oaiMessages = append(oaiMessages, openai.AssistantMessage(msg.Content))
		default:
			oaiMessages = append(oaiMessages, openai.UserMessage(msg.Content))
		}
	}

	model := p.modelName
	if opts.Model != "" {
		model = opts.Model
	}

	params := openai.ChatCompletionNewParams{
		Messages: oaiMessages,
		Model:    openai.ChatModel(model),
	}
	if opts.Temperature > 0 {
		params.Temperature = openai.Float(opts.Temperature)
	}
	if opts.TopP > 0 {
		params.TopP = openai.Float(opts.TopP)
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}
	if len(opts.StopSequences) > 0 {
		params.Stop = openai.ChatCompletionNewParamsStopUnion{
			OfStringArray: opts.StopSequences,
		}
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return llm.Fail(fmt.Sprintf("openai request failed: %v", err))
	}
	if len(completion.Choices) == 0 {
		return llm.Fail("openai returned no choices")
	}

	return llm.Succeed(completion.Choices[0].Message.Content, &llm.Usage{
		InputTokens:  int(completion.Usage.PromptTokens),
		OutputTokens: int(completion.Usage.CompletionTokens),
		TotalTokens:  int(completion.Usage.TotalTokens),
	})
}

func (p *OpenAIProvider) SimpleGenerate(ctx context.Context, userPrompt, systemPrompt string, options ...llm.Option) *llm.Result {
	return p.Generate(ctx, llm.SimpleMessages(userPrompt, systemPrompt), options...)
}

func (p *OpenAIProvider) IsAvailable() bool {
	return p.apiKey != ""
}
