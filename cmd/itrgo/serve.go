package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/itrgo/internal/advisor"
	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the advisory HTTP API",
	Long: `Serves the extraction, recommendation and tax calculation endpoints.
Configuration comes from the environment (PORT, GEMINI_API_KEY, CORS_ORIGINS,
REDIS_ADDR, ...); outside production a .env file is read first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadServerConfig()
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}

		logger, err := newLogger(cfg.LogLevel, cfg.IsProduction())
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		adv, cleanup := buildServerAdvisor(ctx, cfg, logger)
		defer cleanup()

		engine := calculation.NewCalculationEngine()
		engine.SetLogger(logger.Sugar())

		return server.New(cfg, adv, engine, logger).Run(ctx)
	},
}

// buildServerAdvisor wires the generator and cache. A missing API key or
// generator error leaves the generation endpoints answering 500.
func buildServerAdvisor(ctx context.Context, cfg *config.ServerConfig, logger *zap.Logger) (*advisor.Advisor, func()) {
	cache := newCache(cfg, logger)
	cleanup := func() { _ = cache.Close() }

	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY is not set, generation endpoints are disabled")
		return advisor.NewAdvisor(nil, cache, logger), cleanup
	}
	gen, err := newGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Error("failed to create text generator", zap.Error(err))
		return advisor.NewAdvisor(nil, cache, logger), cleanup
	}
	return advisor.NewAdvisor(gen, cache, logger), cleanup
}

func init() {
	serveCmd.Flags().String("port", "", "Listen port (overrides PORT)")
}
