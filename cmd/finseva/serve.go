package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/finseva/finseva/internal/assistant"
	"github.com/finseva/finseva/internal/calculation"
	"github.com/finseva/finseva/internal/compare"
	"github.com/finseva/finseva/internal/config"
	"github.com/finseva/finseva/internal/domain"
	"github.com/finseva/finseva/internal/httpapi"
	"github.com/finseva/finseva/internal/identity"
	"github.com/finseva/finseva/internal/knowledge"
	"github.com/finseva/finseva/internal/logging"
	"github.com/finseva/finseva/internal/news"
	"github.com/finseva/finseva/internal/repository"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the FinSeva HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			rules, err := loadRules(cfg)
			if err != nil {
				return err
			}
			if err := config.ValidateTaxRules(rules); err != nil {
				return err
			}

			logger, err := logging.New(cfg.Log.Level)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			deps, cleanup, err := buildDeps(ctx, cfg, rules, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			return runServer(ctx, cfg.Server, httpapi.NewServer(deps).Router(), logger)
		},
	}
}

// buildDeps wires the API's services from config. Optional integrations are
// skipped with a warning when their settings are missing.
func buildDeps(ctx context.Context, cfg *config.AppConfig, rules domain.TaxRules, logger *zap.Logger) (httpapi.Deps, func(), error) {
	sugar := logging.NewSugared(logger)
	cleanup := func() {}

	deps := httpapi.Deps{
		Comparator: compare.NewRegimeComparator(calculation.NewRegimeTaxCalculator(rules)),
		Verifier:   identity.NewVerifier(cfg.Auth.JWTSecret),
		Logger:     logger,
		Getenv:     os.Getenv,
	}

	if cfg.Auth.JWTSecret == "" {
		logger.Warn("JWT secret not set; /api/v1/me routes will answer 503")
	}

	if cfg.Redis.Addr != "" {
		store := repository.NewProfileStoreRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			_ = store.Close()
			return httpapi.Deps{}, cleanup, fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		deps.Profiles = store
		cleanup = func() { _ = store.Close() }
		logger.Info("profile store ready", zap.String("backend", "redis"), zap.String("addr", cfg.Redis.Addr))
	} else {
		deps.Profiles = repository.NewProfileStoreMemory()
		logger.Info("profile store ready", zap.String("backend", "memory"))
	}

	if cfg.Assistant.APIKey != "" {
		embedder, err := assistant.NewGenAIEmbedder(ctx, cfg.Assistant.APIKey, cfg.Assistant.EmbeddingModel)
		if err != nil {
			return httpapi.Deps{}, cleanup, fmt.Errorf("create embedder: %w", err)
		}
		backend, err := assistant.NewGenAIBackend(ctx, cfg.Assistant.APIKey, cfg.Assistant.Model)
		if err != nil {
			return httpapi.Deps{}, cleanup, fmt.Errorf("create chat backend: %w", err)
		}

		threshold, _ := cfg.Assistant.MatchThreshold.Float64()
		index := knowledge.NewMemoryIndex(embedder)
		deps.Index = index
		deps.Assistant = assistant.NewService(backend, index, knowledge.SearchOptions{
			MatchThreshold: threshold,
			MatchCount:     cfg.Assistant.MatchCount,
		}, sugar)
		logger.Info("assistant ready", zap.String("model", cfg.Assistant.Model), zap.String("embedding_model", cfg.Assistant.EmbeddingModel))
	} else {
		logger.Warn("GEMINI_API_KEY not set; assistant and knowledge routes disabled")
	}

	if cfg.News.FeedURL != "" {
		deps.News = news.NewFetcher(cfg.News.FeedURL, cfg.News.Limit, &http.Client{Timeout: 10 * time.Second}, sugar)
	}

	return deps, cleanup, nil
}

func runServer(ctx context.Context, cfg config.ServerConfig, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
