package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/promptcheck/internal/evaluation"
	"github.com/abhisek/promptcheck/internal/llm"
)

// Config holds runtime configuration for every entry point.
type Config struct {
	Port            string
	GinMode         string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	// RequestTimeout bounds one evaluation including the upstream call.
	// Zero means no limit beyond the caller's own.
	RequestTimeout time.Duration

	LLM        llm.Config
	Evaluation evaluation.Config
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// Load reads configuration from environment variables and an optional
// .env file in the working directory. A missing API key is not an error
// here; requests report it instead.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	llmDefaults := llm.DefaultConfig()
	evalDefaults := evaluation.DefaultConfig()

	v.SetDefault("port", "3000")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("request_timeout", "0s")
	v.SetDefault("llm_provider", llmDefaults.Provider)
	v.SetDefault("anthropic_model", llmDefaults.Anthropic.Model)
	v.SetDefault("openai_model", llmDefaults.OpenAI.Model)
	v.SetDefault("openrouter_model", llmDefaults.OpenRouter.Model)
	v.SetDefault("gemini_model", llmDefaults.Gemini.Model)
	v.SetDefault("eval_max_tokens", evalDefaults.MaxTokens)
	v.SetDefault("eval_temperature", evalDefaults.Temperature)

	shutdown, err := parseDuration(v, "shutdown_timeout")
	if err != nil {
		return Config{}, err
	}
	requestTimeout, err := parseDuration(v, "request_timeout")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:            v.GetString("port"),
		GinMode:         v.GetString("gin_mode"),
		LogLevel:        strings.ToLower(v.GetString("log_level")),
		LogFormat:       strings.ToLower(v.GetString("log_format")),
		ShutdownTimeout: shutdown,
		RequestTimeout:  requestTimeout,
		LLM: llm.Config{
			Provider: strings.ToLower(v.GetString("llm_provider")),
			Anthropic: llm.AnthropicConfig{
				APIKey:  v.GetString("anthropic_api_key"),
				Model:   v.GetString("anthropic_model"),
				BaseURL: v.GetString("anthropic_base_url"),
			},
			OpenAI: llm.OpenAIConfig{
				APIKey:  v.GetString("openai_api_key"),
				Model:   v.GetString("openai_model"),
				BaseURL: v.GetString("openai_base_url"),
			},
			OpenRouter: llm.OpenRouterConfig{
				APIKey:  v.GetString("openrouter_api_key"),
				Model:   v.GetString("openrouter_model"),
				BaseURL: v.GetString("openrouter_base_url"),
			},
			Gemini: llm.GeminiConfig{
				APIKey: v.GetString("gemini_api_key"),
				Model:  v.GetString("gemini_model"),
			},
		},
		Evaluation: evaluation.Config{
			MaxTokens:   v.GetInt("eval_max_tokens"),
			Temperature: v.GetFloat64("eval_temperature"),
		},
	}

	// An empty ANTHROPIC_MODEL falls back to the default model.
	if cfg.LLM.Anthropic.Model == "" {
		cfg.LLM.Anthropic.Model = llmDefaults.Anthropic.Model
	}
	if cfg.Evaluation.MaxTokens <= 0 {
		return Config{}, fmt.Errorf("EVAL_MAX_TOKENS must be positive, got %d", cfg.Evaluation.MaxTokens)
	}
	if cfg.Evaluation.Temperature < 0 || cfg.Evaluation.Temperature > 1 {
		return Config{}, fmt.Errorf("EVAL_TEMPERATURE must be within [0, 1], got %g", cfg.Evaluation.Temperature)
	}
	switch cfg.LLM.Provider {
	case llm.ProviderAnthropic, llm.ProviderOpenAI, llm.ProviderGemini, llm.ProviderOpenRouter:
	default:
		return Config{}, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLM.Provider)
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" || raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", strings.ToUpper(key), err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", strings.ToUpper(key))
	}
	return d, nil
}
