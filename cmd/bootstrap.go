package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/promptcheck/internal/api"
	"github.com/abhisek/promptcheck/internal/config"
	"github.com/abhisek/promptcheck/internal/evaluation"
	"github.com/abhisek/promptcheck/internal/llm"
)

// deps bundles what every entry point builds from configuration.
type deps struct {
	cfg     config.Config
	logger  zerolog.Logger
	handler *api.Handler
}

// bootstrap loads configuration once and wires provider, evaluator and
// handler. A missing API key is not fatal: the endpoint still answers and
// reports the missing variable per request.
func bootstrap(ctx context.Context, logOut io.Writer) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(cfg, logOut)
	if err != nil {
		return nil, err
	}

	var provider llm.Provider
	if cfg.LLM.HasCredential() {
		provider, err = llm.NewProvider(ctx, cfg.LLM, logger)
		if err != nil {
			return nil, fmt.Errorf("create LLM provider: %w", err)
		}
	} else {
		logger.Warn().
			Str("provider", cfg.LLM.Provider).
			Str("missing", cfg.LLM.KeyEnv()).
			Msg("LLM provider not configured, evaluations will fail until the key is set")
	}

	evaluator := evaluation.NewEvaluator(provider, cfg.Evaluation, logger)
	return &deps{
		cfg:     cfg,
		logger:  logger,
		handler: api.NewHandler(evaluator, cfg.LLM, logger),
	}, nil
}

func newLogger(cfg config.Config, out io.Writer) (zerolog.Logger, error) {
	if out == nil {
		out = os.Stderr
	}

	level := zerolog.InfoLevel
	if cfg.LogLevel != "" {
		parsed, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
		}
		level = parsed
	}

	if cfg.LogFormat == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
