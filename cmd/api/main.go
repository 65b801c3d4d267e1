package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkout-platform/internal/audit"
	"checkout-platform/internal/auth"
	"checkout-platform/internal/config"
	"checkout-platform/internal/decision"
	"checkout-platform/internal/httpapi"
	"checkout-platform/internal/risk"
	"checkout-platform/pkg/logger"
	"checkout-platform/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// Risk scoring: model-backed when configured, deterministic static
	// provider otherwise. The guard owns timeout + fallback.
	var provider risk.Provider
	if cfg.Risk.ModelURL != "" {
		provider = &risk.HTTPProvider{URL: cfg.Risk.ModelURL}
	} else {
		score := cfg.Risk.StaticScore
		if score == 0 {
			score = risk.DefaultFallbackScore
		}
		provider = risk.StaticProvider{Value: score}
	}
	guard := risk.NewGuard(provider, cfg.Risk.Timeout, cfg.Risk.ModelVersion)
	if cfg.Risk.CacheTTL > 0 {
		guard.Cache = risk.NewCache(rdb, cfg.Risk.CacheTTL)
	}

	engine := decision.NewEngine(decision.NewRegistry(), guard)

	auditRepo := audit.NewMemoryRepo()
	auditSvc := audit.NewService(auditRepo)

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	h := httpapi.Handlers{
		Auth:     authManager,
		Engine:   engine,
		Audit:    auditSvc,
		AuditLog: auditRepo,
	}
	registerRoutes(r,
		auth.RequireAccessToken(authManager),
		httpapi.DecisionConcurrencyCap(rdb, cfg.Decision.ConcurrencyLimit),
		h,
	)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
