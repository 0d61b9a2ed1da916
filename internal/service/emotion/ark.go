package emotion

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/zhouzirui/support-line/internal/config"
)

// chainModel 通过 eino 链（提示模板 -> 聊天模型）完成分类。
type chainModel struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewArkLoader 返回基于火山方舟聊天模型的后端。
func NewArkLoader(cfg config.ArkConfig) Loader {
	return func(ctx context.Context) (Model, error) {
		chatModel, err := cfg.NewChatModel(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create ark chat model: %w", err)
		}
		return newChainModel(ctx, chatModel)
	}
}

func newChainModel(ctx context.Context, chatModel model.ChatModel) (*chainModel, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(classifierSystemPrompt),
		schema.UserMessage("{text}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile emotion classifier chain: %w", err)
	}
	return &chainModel{chain: runnable}, nil
}

func (c *chainModel) Classify(ctx context.Context, text string) (Prediction, error) {
	msg, err := c.chain.Invoke(ctx, map[string]any{"text": text})
	if err != nil {
		return Prediction{}, fmt.Errorf("classifier chain invoke: %w", err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return Prediction{}, fmt.Errorf("classifier chain returned empty content")
	}
	return parseClassifierOutput(msg.Content)
}

func (c *chainModel) ConcurrencySafe() bool { return true }
