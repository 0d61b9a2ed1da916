package config

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SUPPORT_HOST", "PORT", "CLASSIFIER_PROVIDER",
		"ARK_API_KEY", "ARK_ACCESS_KEY", "ARK_SECRET_KEY", "ARK_MODEL", "ARK_TEMPERATURE",
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
		"GEMINI_API_KEY", "GEMINI_MODEL",
		"LOG_LEVEL", "LOG_DEVELOPMENT", "METRICS_NAMESPACE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != "localhost:5000" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.Server.PublicURL() != "http://localhost:5000/api/support" {
		t.Fatalf("unexpected public url: %s", cfg.Server.PublicURL())
	}
	if cfg.Classifier.Provider != ProviderAuto {
		t.Fatalf("unexpected provider: %s", cfg.Classifier.Provider)
	}
	if cfg.Classifier.Resolve() != ProviderLexicon {
		t.Fatalf("expected lexicon without credentials, got %s", cfg.Classifier.Resolve())
	}
	if cfg.Log.Level != "info" || cfg.Log.Development {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
	if cfg.Metrics.Namespace != "support_line" {
		t.Fatalf("unexpected metrics namespace: %s", cfg.Metrics.Namespace)
	}
}

func TestLoadServerAddrForms(t *testing.T) {
	cases := []struct {
		host string
		port string
		want string
	}{
		{"", "8080", "localhost:8080"},
		{"0.0.0.0", "5001", "0.0.0.0:5001"},
		{"", ":6000", "localhost:6000"},
		{"", "127.0.0.1:7000", "127.0.0.1:7000"},
	}
	for _, tc := range cases {
		clearEnv(t)
		t.Setenv("SUPPORT_HOST", tc.host)
		t.Setenv("PORT", tc.port)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load(%q, %q) err: %v", tc.host, tc.port, err)
		}
		if cfg.Server.Addr != tc.want {
			t.Fatalf("Load(%q, %q) addr = %s, want %s", tc.host, tc.port, cfg.Server.Addr, tc.want)
		}
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":                "not-a-port",
		"CLASSIFIER_PROVIDER": "bert",
		"ARK_TEMPERATURE":     "warm",
		"LOG_DEVELOPMENT":     "sometimes",
	}
	for key, value := range cases {
		clearEnv(t)
		t.Setenv(key, value)
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for %s=%q", key, value)
		}
	}
}

func TestResolveAutoPrefersArkThenOpenAIThenGemini(t *testing.T) {
	cfg := ClassifierConfig{Provider: ProviderAuto}
	cfg.Gemini.APIKey = "g"
	if got := cfg.Resolve(); got != ProviderGemini {
		t.Fatalf("expected gemini, got %s", got)
	}
	cfg.OpenAI.APIKey = "o"
	if got := cfg.Resolve(); got != ProviderOpenAI {
		t.Fatalf("expected openai, got %s", got)
	}
	cfg.Ark = ArkConfig{APIKey: "a", Model: "doubao"}
	if got := cfg.Resolve(); got != ProviderArk {
		t.Fatalf("expected ark, got %s", got)
	}

	explicit := ClassifierConfig{Provider: ProviderLexicon, Ark: cfg.Ark}
	if got := explicit.Resolve(); got != ProviderLexicon {
		t.Fatalf("explicit provider must win, got %s", got)
	}
}

func TestArkNewChatModelRequiresCredentials(t *testing.T) {
	if _, err := (ArkConfig{}).NewChatModel(t.Context()); err == nil {
		t.Fatal("expected error without ark credentials")
	}
}
