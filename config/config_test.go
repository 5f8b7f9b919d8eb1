package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"server_addr": ":9000",
		"generate_timeout": "90s",
		"llm": {"provider": "OpenAI", "model": "gpt-4o", "api_key": "sk-file", "max_tokens": 2048, "timeout": 30,
			"retry": {"max_attempts": 3, "initial_delay": "1s"}}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.ServerAddr != ":9000" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr)
	}
	if cfg.GenerateTimeout.Std() != 90*time.Second {
		t.Errorf("GenerateTimeout = %s", cfg.GenerateTimeout)
	}
	if cfg.LLM.Provider != "openai" {
		t.Errorf("Provider = %q, want lower-cased openai", cfg.LLM.Provider)
	}
	if cfg.LLM.APIKey != "sk-file" || cfg.LLM.MaxTokens != 2048 {
		t.Errorf("unexpected llm config: %+v", cfg.LLM)
	}
	if cfg.LLM.Timeout.Std() != 30*time.Second {
		t.Errorf("Timeout = %s, want 30s from bare number", cfg.LLM.Timeout)
	}
	if cfg.LLM.Retry.MaxAttempts != 3 || cfg.LLM.Retry.InitialDelay.Std() != time.Second {
		t.Errorf("unexpected retry config: %+v", cfg.LLM.Retry)
	}
	if cfg.LLM.Retry.MaxDelay.Std() != 30*time.Second {
		t.Errorf("MaxDelay default = %s", cfg.LLM.Retry.MaxDelay)
	}
	if cfg.LLM.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("APIKeyEnv = %q", cfg.LLM.APIKeyEnv)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
server_addr: ":7000"
llm:
  provider: deepseek
  model: deepseek-chat
  base_url: https://api.deepseek.com/v1
  timeout: 45s
`)
	t.Setenv("DEEPSEEK_API_KEY", "ds-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.ServerAddr != ":7000" || cfg.LLM.Provider != "deepseek" || cfg.LLM.BaseURL != "https://api.deepseek.com/v1" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.LLM.Timeout.Std() != 45*time.Second {
		t.Errorf("Timeout = %s", cfg.LLM.Timeout)
	}
	if cfg.LLM.APIKey != "ds-env" {
		t.Errorf("APIKey = %q, want value of DEEPSEEK_API_KEY", cfg.LLM.APIKey)
	}
}

func TestLoadDefaultsWhenDefaultFileMissing(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.ServerAddr != ":8080" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr)
	}
	if cfg.LLM.Provider != "anthropic" || cfg.LLM.APIKey != "sk-ant" {
		t.Errorf("unexpected llm config: %+v", cfg.LLM)
	}
	if cfg.GenerateTimeout.Std() != 3*time.Minute {
		t.Errorf("GenerateTimeout = %s", cfg.GenerateTimeout)
	}
	if cfg.LLM.Retry.MaxAttempts != 1 {
		t.Errorf("MaxAttempts = %d, want 1", cfg.LLM.Retry.MaxAttempts)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil || !strings.Contains(err.Error(), "read config file") {
		t.Fatalf("error = %v", err)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "config.json", `{"llm": {"provider": "anthropic", "model": "from-file", "api_key": "file-key"}}`)
	t.Setenv("LLM_MODEL", "from-env")
	t.Setenv("LLM_API_KEY", "env-key")
	t.Setenv("LLM_RETRY_MAX_ATTEMPTS", "4")
	t.Setenv("GENERATE_TIMEOUT", "10s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.LLM.Model != "from-env" || cfg.LLM.APIKey != "env-key" {
		t.Errorf("env not applied: %+v", cfg.LLM)
	}
	if cfg.LLM.Retry.MaxAttempts != 4 {
		t.Errorf("MaxAttempts = %d", cfg.LLM.Retry.MaxAttempts)
	}
	if cfg.GenerateTimeout.Std() != 10*time.Second {
		t.Errorf("GenerateTimeout = %s", cfg.GenerateTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		llm     LLMConfig
		wantErr string
	}{
		{"anthropic", LLMConfig{Provider: "anthropic"}, ""},
		{"mock", LLMConfig{Provider: "mock"}, ""},
		{"deepseek without base url", LLMConfig{Provider: "deepseek"}, "requires base_url"},
		{"unknown", LLMConfig{Provider: "cohere"}, "not supported"},
		{"negative max tokens", LLMConfig{Provider: "openai", MaxTokens: -1}, "max_tokens"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{LLM: tt.llm}
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDurationJSON(t *testing.T) {
	var v struct {
		D Duration `json:"d"`
	}
	if err := json.Unmarshal([]byte(`{"d":"1m30s"}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.D.Std() != 90*time.Second {
		t.Errorf("D = %s", v.D)
	}
	if err := json.Unmarshal([]byte(`{"d":"soon"}`), &v); err == nil {
		t.Error("expected error for invalid duration")
	}
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"d":"1m30s"}` {
		t.Errorf("Marshal = %s", out)
	}
}

func TestGenerateTimeoutExplicitZero(t *testing.T) {
	path := writeFile(t, "config.json", `{"generate_timeout": "0s", "llm": {"provider": "mock"}}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.GenerateTimeout != 0 {
		t.Errorf("GenerateTimeout = %s, want 0 (disabled)", cfg.GenerateTimeout)
	}
}

func TestGenerateTimeoutZeroFromEnv(t *testing.T) {
	path := writeFile(t, "config.json", `{"generate_timeout": "1m", "llm": {"provider": "mock"}}`)
	t.Setenv("GENERATE_TIMEOUT", "0")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.GenerateTimeout != 0 {
		t.Errorf("GenerateTimeout = %s, want 0 (disabled)", cfg.GenerateTimeout)
	}
}

func TestGenerateTimeoutDefaultWhenUnset(t *testing.T) {
	path := writeFile(t, "config.yaml", "llm:\n  provider: mock\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.GenerateTimeout != DefaultGenerateTimeout {
		t.Errorf("GenerateTimeout = %s, want %s", cfg.GenerateTimeout, DefaultGenerateTimeout)
	}
}
