package gemini

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

const defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"

type GeminiProvider struct {
	APIKey    string
	ModelName string
	Endpoint  string
	Client    *http.Client
}

var _ llm.Provider = &GeminiProvider{}

func NewGeminiProvider(apiKey, modelName string) *GeminiProvider {
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &GeminiProvider{
		APIKey:    apiKey,
		ModelName: modelName,
		Endpoint:  defaultEndpoint,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Gemini wire format) ---

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	TopP            *float64 `json:"topP,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
	StopSequences   []string `json:"stopSequences,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

func (g *GeminiProvider) Generate(ctx context.Context, messages []llm.Message, options ...llm.Option) *llm.Result {
	opts := llm.ApplyOptions(llm.Options{}, options)

	payload := geminiRequest{}
	for _, msg := range messages {
		switch msg.Role {
		case llm.RoleSystem:
			// Gemini takes system text out of band
			payload.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: msg.Content}}}
		case llm.RoleAssistant:
			payload.Contents = append(payload.Contents, geminiContent{
				Parts: []geminiPart{{Text: msg.Content}},
				Role:  "model",
			})
		default:
			payload.Contents = append(payload.Contents, geminiContent{
				Parts: []geminiPart{{Text: msg.Content}},
				Role:  "user",
			})
		}
	}

	genCfg := &geminiGenerationConfig{
		MaxOutputTokens: opts.MaxTokens,
		StopSequences:   opts.StopSequences,
	}
	if opts.Temperature > 0 {
		genCfg.Temperature = &opts.Temperature
	}
	if opts.TopP > 0 {
		genCfg.TopP = &opts.TopP
	}
	payload.GenerationConfig = genCfg

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return llm.Fail(fmt.Sprintf("marshal request: %v", err))
	}

	model := g.ModelName
	if opts.Model != "" {
		model = opts.Model
	}
	url := fmt.Sprintf("%s/%s:generateContent", g.Endpoint, model)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return llm.Fail(fmt.Sprintf("create request: %v", err))
	}
	req.Header.Set("x-goog-api-key", g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := g.Client.Do(req)
	if err != nil {
		return llm.Fail(fmt.Sprintf("gemini request failed: %v", err))
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return llm.Fail(fmt.Sprintf("read response: %v", err))
	}

	if res.StatusCode != http.StatusOK {
		return llm.Fail(fmt.Sprintf("gemini error: status %d, body: %s", res.StatusCode, string(resBody)))
	}

	var geminiRes geminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return llm.Fail(fmt.Sprintf("unmarshal response: %v", err))
	}
	if len(geminiRes.Candidates) == 0 || len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return llm.Fail("gemini returned no candidates")
	}

	var usage *llm.Usage
	if geminiRes.UsageMetadata != nil {
		usage = &llm.Usage{
			InputTokens:  geminiRes.UsageMetadata.PromptTokenCount,
			OutputTokens: geminiRes.UsageMetadata.CandidatesTokenCount,
			TotalTokens:  geminiRes.UsageMetadata.TotalTokenCount,
		}
	}

	return llm.Succeed(geminiRes.Candidates[0].Content.Parts[0].Text, usage)
}

func (g *GeminiProvider) SimpleGenerate(ctx context.Context, userPrompt, systemPrompt string, options ...llm.Option) *llm.Result {
	return g.Generate(ctx, llm.SimpleMessages(userPrompt, systemPrompt), options...)
}

func (g *GeminiProvider) IsAvailable() bool {
	return g.APIKey != ""
}
