package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no -config flag is given; it may be absent.
const DefaultPath = "config/config.json"

// DefaultGenerateTimeout applies when generate_timeout is not set at all.
const DefaultGenerateTimeout = Duration(3 * time.Minute)

// Config holds server and model settings.
type Config struct {
	ServerAddr      string    `json:"server_addr,omitempty" yaml:"server_addr" envconfig:"SERVER_ADDR"`
	GenerateTimeout Duration  `json:"generate_timeout,omitempty" yaml:"generate_timeout" envconfig:"GENERATE_TIMEOUT"`
	LLM             LLMConfig `json:"llm" yaml:"llm"`
}

// LLMConfig 模型配置。APIKey 为空时从 APIKeyEnv 指定的环境变量读取。
type LLMConfig struct {
	Provider  string      `json:"provider,omitempty" yaml:"provider" envconfig:"LLM_PROVIDER"`
	Model     string      `json:"model,omitempty" yaml:"model" envconfig:"LLM_MODEL"`
	APIKey    string      `json:"api_key,omitempty" yaml:"api_key" envconfig:"LLM_API_KEY"`
	APIKeyEnv string      `json:"api_key_env,omitempty" yaml:"api_key_env" envconfig:"LLM_API_KEY_ENV"`
	BaseURL   string      `json:"base_url,omitempty" yaml:"base_url" envconfig:"LLM_BASE_URL"`
	MaxTokens int         `json:"max_tokens,omitempty" yaml:"max_tokens" envconfig:"LLM_MAX_TOKENS"`
	Timeout   Duration    `json:"timeout,omitempty" yaml:"timeout" envconfig:"LLM_TIMEOUT"`
	Retry     RetryConfig `json:"retry" yaml:"retry"`
}

// RetryConfig is an opt-in policy; MaxAttempts 1 means a single call.
type RetryConfig struct {
	MaxAttempts  int      `json:"max_attempts,omitempty" yaml:"max_attempts" envconfig:"LLM_RETRY_MAX_ATTEMPTS"`
	InitialDelay Duration `json:"initial_delay,omitempty" yaml:"initial_delay" envconfig:"LLM_RETRY_INITIAL_DELAY"`
	MaxDelay     Duration `json:"max_delay,omitempty" yaml:"max_delay" envconfig:"LLM_RETRY_MAX_DELAY"`
}

var defaultKeyEnv = map[string]string{
	"anthropic": "ANTHROPIC_API_KEY",
	"openai":    "OPENAI_API_KEY",
	"deepseek":  "DEEPSEEK_API_KEY",
}

// Load reads the config file (JSON, or YAML for .yaml/.yml), applies
// environment overrides and fills defaults. A missing DefaultPath is fine.
func Load(path string) (Config, error) {
	// 默认值先于文件和环境变量写入，显式的 0 可以关闭超时。
	cfg := Config{GenerateTimeout: DefaultGenerateTimeout}
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(path, data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
	default:
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	// 环境变量覆盖文件中的值
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}

	cfg.setDefaults()
	if cfg.LLM.APIKey == "" && cfg.LLM.APIKeyEnv != "" {
		cfg.LLM.APIKey = os.Getenv(cfg.LLM.APIKeyEnv)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		return json.Unmarshal(data, cfg)
	}
}

func (c *Config) setDefaults() {
	if c.ServerAddr == "" {
		c.ServerAddr = ":8080"
	}
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.Provider == "" {
		c.LLM.Provider = "anthropic"
	}
	if c.LLM.APIKeyEnv == "" {
		c.LLM.APIKeyEnv = defaultKeyEnv[c.LLM.Provider]
	}
	if c.LLM.Retry.MaxAttempts <= 0 {
		c.LLM.Retry.MaxAttempts = 1
	}
	if c.LLM.Retry.InitialDelay == 0 {
		c.LLM.Retry.InitialDelay = Duration(2 * time.Second)
	}
	if c.LLM.Retry.MaxDelay == 0 {
		c.LLM.Retry.MaxDelay = Duration(30 * time.Second)
	}
}

// Validate checks provider-specific requirements.
// The API key is checked when the client is built, so mock needs none.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "anthropic", "openai", "mock":
	case "deepseek":
		// DeepSeek 提供 OpenAI 兼容接口，需填写 base_url（例如官方/网关地址）。
		if c.LLM.BaseURL == "" {
			return fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
	default:
		return fmt.Errorf("llm provider %s not supported", c.LLM.Provider)
	}
	if c.LLM.MaxTokens < 0 {
		return fmt.Errorf("llm.max_tokens must not be negative")
	}
	return nil
}
