package emotion

import (
	"context"

	analysis "github.com/zhouzirui/support-line/internal/analysis/emotion"
)

// lexiconModel 使用本地关键词词典分类，无需网络与凭证。
type lexiconModel struct{}

func (lexiconModel) Classify(_ context.Context, text string) (Prediction, error) {
	decision := analysis.Analyze(text)
	return Prediction{Label: string(decision.Emotion), Score: decision.Score}, nil
}

func (lexiconModel) ConcurrencySafe() bool { return true }

// NewLexiconLoader 返回总能成功加载的本地词典后端。
func NewLexiconLoader() Loader {
	return func(context.Context) (Model, error) {
		return lexiconModel{}, nil
	}
}
