package config

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config 聚合接收端服务的配置项。
type Config struct {
	Server     ServerConfig
	Classifier ClassifierConfig
	Log        LogConfig
	Metrics    MetricsConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	classifier, err := loadClassifierConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:     server,
		Classifier: classifier,
		Log:        logCfg,
		Metrics:    MetricsConfig{Namespace: getEnvOrDefault("METRICS_NAMESPACE", "support_line")},
	}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Host string
	Port string
	Addr string
}

// PublicURL 返回仪表盘上展示的求助接口地址。
func (c ServerConfig) PublicURL() string {
	return "http://" + net.JoinHostPort(c.Host, c.Port) + "/api/support"
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	host := getEnvOrDefault("SUPPORT_HOST", "localhost")
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "5000"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":5000" 或 "127.0.0.1:5000"。
		h, p, err := net.SplitHostPort(port)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("invalid PORT value %q: %w", port, err)
		}
		if h == "" {
			h = host
		}
		host, port = h, p
	}

	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}
	if strings.Contains(host, " ") {
		return ServerConfig{}, fmt.Errorf("invalid SUPPORT_HOST value: %q", host)
	}

	return ServerConfig{Host: host, Port: port, Addr: net.JoinHostPort(host, port)}, nil
}

// Provider 选择情绪分类的后端。
type Provider string

const (
	ProviderAuto    Provider = "auto"
	ProviderArk     Provider = "ark"
	ProviderOpenAI  Provider = "openai"
	ProviderGemini  Provider = "gemini"
	ProviderLexicon Provider = "lexicon"
)

// ClassifierConfig 描述情绪分类后端的配置。
type ClassifierConfig struct {
	Provider Provider
	Ark      ArkConfig
	OpenAI   OpenAIConfig
	Gemini   GeminiConfig
}

// Resolve 在 auto 模式下选择第一个具备凭证的后端，否则退回本地词典。
func (c ClassifierConfig) Resolve() Provider {
	if c.Provider != ProviderAuto && c.Provider != "" {
		return c.Provider
	}
	switch {
	case c.Ark.Enabled():
		return ProviderArk
	case c.OpenAI.Enabled():
		return ProviderOpenAI
	case c.Gemini.Enabled():
		return ProviderGemini
	default:
		return ProviderLexicon
	}
}

// ArkConfig 描述火山方舟大模型配置。
type ArkConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
}

// Enabled 表示是否提供了必需的密钥。
func (c ArkConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel 使用配置创建一个模型实例。
func (c ArkConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials or model missing: set ARK_API_KEY + ARK_MODEL or an AK/SK pair")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		Temperature: temperature,
	}

	return ark.NewChatModel(ctx, cfg)
}

// OpenAIConfig 描述 OpenAI Responses API 配置。
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

func (c OpenAIConfig) Enabled() bool {
	return c.APIKey != ""
}

// GeminiConfig 描述 Gemini API 配置。
type GeminiConfig struct {
	APIKey string
	Model  string
}

func (c GeminiConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadClassifierConfig() (ClassifierConfig, error) {
	provider := Provider(strings.ToLower(getEnvOrDefault("CLASSIFIER_PROVIDER", string(ProviderAuto))))
	switch provider {
	case ProviderAuto, ProviderArk, ProviderOpenAI, ProviderGemini, ProviderLexicon:
	default:
		return ClassifierConfig{}, fmt.Errorf("invalid CLASSIFIER_PROVIDER: %q (expected auto|ark|openai|gemini|lexicon)", provider)
	}

	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return ClassifierConfig{}, err
	}

	return ClassifierConfig{
		Provider: provider,
		Ark: ArkConfig{
			APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
			AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
			SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
			Model:       strings.TrimSpace(os.Getenv("ARK_MODEL")),
			BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
			Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
			Temperature: temperature,
		},
		OpenAI: OpenAIConfig{
			APIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			Model:   getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		},
		Gemini: GeminiConfig{
			APIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
			Model:  getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		},
	}, nil
}

// LogConfig 描述日志输出配置。
type LogConfig struct {
	Level       string
	Development bool
}

func loadLogConfig() (LogConfig, error) {
	development, err := parseBoolEnv("LOG_DEVELOPMENT", false)
	if err != nil {
		return LogConfig{}, err
	}
	return LogConfig{
		Level:       getEnvOrDefault("LOG_LEVEL", "info"),
		Development: development,
	}, nil
}

// MetricsConfig 描述 Prometheus 指标配置。
type MetricsConfig struct {
	Namespace string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
