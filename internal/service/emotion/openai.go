package emotion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/zhouzirui/support-line/internal/config"
)

var classifierSchema = generateSchema[classifierPayload]()

type openAIModel struct {
	client *openai.Client
	model  string
}

// NewOpenAILoader 返回基于 OpenAI Responses API 的后端，输出受严格 JSON Schema 约束。
func NewOpenAILoader(cfg config.OpenAIConfig) Loader {
	return func(context.Context) (Model, error) {
		if cfg.APIKey == "" {
			return nil, errors.New("missing OPENAI_API_KEY")
		}
		if cfg.Model == "" {
			return nil, errors.New("missing OPENAI_MODEL")
		}
		opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}
		client := openai.NewClient(opts...)
		return &openAIModel{client: &client, model: cfg.Model}, nil
	}
}

func (m *openAIModel) Classify(ctx context.Context, text string) (Prediction, error) {
	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "EmotionLabel",
			Schema:      classifierSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Emotion label JSON"),
			Type:        "json_schema",
		},
	}

	input := []responses.ResponseInputItemUnionParam{
		responses.ResponseInputItemParamOfMessage(text, responses.EasyInputMessageRoleUser),
	}
	params := responses.ResponseNewParams{
		Model:           m.model,
		MaxOutputTokens: openai.Int(100),
		Instructions:    openai.String(classifierSystemPrompt),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: input,
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := m.client.Responses.New(ctx, params)
	if err != nil {
		return Prediction{}, fmt.Errorf("openai responses call: %w", err)
	}
	return parseClassifierOutput(resp.OutputText())
}

func (m *openAIModel) ConcurrencySafe() bool { return true }

func generateSchema[T any]() map[string]interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)
	b, err := schema.MarshalJSON()
	if err != nil {
		panic(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	// strict 模式要求显式关闭额外字段。
	m["additionalProperties"] = false
	return m
}
