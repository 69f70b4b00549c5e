package main

import (
	"log/slog"
	"time"

	"caselaw/internal/config"
	"caselaw/internal/courtlistener"
	"caselaw/internal/logging"
	"caselaw/internal/research"
)

// buildLogger creates the process logger from config plus flag override.
func buildLogger(cfg *config.Config) *slog.Logger {
	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	return logging.New(cfg.Logging.Format, level)
}

// buildEngine wires config into an upstream client and research engine.
func buildEngine(cfg *config.Config, logger *slog.Logger) (*research.Engine, error) {
	var retry courtlistener.RetryPolicy = courtlistener.NoRetry{}
	if cfg.Upstream.RetryAttempts > 1 {
		retry = courtlistener.FixedBackoff{
			MaxAttempts: cfg.Upstream.RetryAttempts,
			Delay:       time.Duration(cfg.Upstream.RetryDelayMs) * time.Millisecond,
		}
	}

	client := courtlistener.NewClient(courtlistener.Options{
		BaseURL:           cfg.Upstream.BaseURL,
		Token:             config.Token(),
		Timeout:           time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second,
		RequestsPerSecond: cfg.Upstream.RequestsPerSecond,
		Burst:             cfg.Upstream.Burst,
		Retry:             retry,
		Logger:            logger,
	})
	return research.NewEngine(client, logger), nil
}
