package emotion

import (
	"encoding/json"
	"fmt"
	"strings"
)

// classifierPayload 是大模型后端约定输出的 JSON 结构。
type classifierPayload struct {
	Label string  `json:"label" jsonschema:"required,description=one go_emotions label"`
	Score float64 `json:"score" jsonschema:"required,description=confidence between 0 and 1"`
}

// parseClassifierOutput 解析大模型返回的 JSON，容忍前后多余文本。
func parseClassifierOutput(content string) (Prediction, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return Prediction{}, fmt.Errorf("missing json object")
	}

	var payload classifierPayload
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &payload); err != nil {
		return Prediction{}, err
	}
	return Prediction{Label: payload.Label, Score: payload.Score}, nil
}

// goEmotionsLabels 是 go_emotions 数据集的 28 个标签。
var goEmotionsLabels = []string{
	"admiration", "amusement", "anger", "annoyance", "approval", "caring", "confusion",
	"curiosity", "desire", "disappointment", "disapproval", "disgust", "embarrassment",
	"excitement", "fear", "gratitude", "grief", "joy", "love", "nervousness", "optimism",
	"pride", "realization", "relief", "remorse", "sadness", "surprise", "neutral",
}

// classifierSystemPrompt 不能包含花括号，FString 模板会把它们当作占位符。
var classifierSystemPrompt = "You are an emotion classifier for a mental health support line. " +
	"Read the user's message and choose the single most likely emotion from this list: " +
	strings.Join(goEmotionsLabels, ", ") + ". " +
	"Reply with only a JSON object with two fields: label (one of the listed emotions, lower case) " +
	"and score (your confidence as a number between 0 and 1). Do not add any other text."
