package emotion

import "github.com/zhouzirui/support-line/internal/config"

// NewLoader 按配置选择后端，返回实际使用的后端名称与加载函数。
func NewLoader(cfg config.ClassifierConfig) (config.Provider, Loader) {
	provider := cfg.Resolve()
	switch provider {
	case config.ProviderArk:
		return provider, NewArkLoader(cfg.Ark)
	case config.ProviderOpenAI:
		return provider, NewOpenAILoader(cfg.OpenAI)
	case config.ProviderGemini:
		return provider, NewGeminiLoader(cfg.Gemini)
	default:
		return config.ProviderLexicon, NewLexiconLoader()
	}
}
