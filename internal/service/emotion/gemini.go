package emotion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/zhouzirui/support-line/internal/config"
)

type geminiModel struct {
	client *genai.Client
	model  string
}

// NewGeminiLoader 返回基于 Gemini API 的后端。
func NewGeminiLoader(cfg config.GeminiConfig) Loader {
	return func(ctx context.Context) (Model, error) {
		if cfg.APIKey == "" {
			return nil, errors.New("missing GEMINI_API_KEY")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return &geminiModel{client: client, model: cfg.Model}, nil
	}
}

func (m *geminiModel) Classify(ctx context.Context, text string) (Prediction, error) {
	contents := []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(classifierSystemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		Temperature:       genai.Ptr(float32(0)),
	}

	response, err := m.client.Models.GenerateContent(ctx, m.model, contents, cfg)
	if err != nil {
		return Prediction{}, fmt.Errorf("gemini generate content: %w", err)
	}
	return parseClassifierOutput(geminiText(response))
}

func (m *geminiModel) ConcurrencySafe() bool { return true }

func geminiText(response *genai.GenerateContentResponse) string {
	if response == nil || len(response.Candidates) == 0 {
		return ""
	}
	content := response.Candidates[0].Content
	if content == nil {
		return ""
	}
	var builder strings.Builder
	for _, part := range content.Parts {
		if part != nil && part.Text != "" {
			builder.WriteString(part.Text)
		}
	}
	return builder.String()
}
