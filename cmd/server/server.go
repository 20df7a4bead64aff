package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/nutrio/server/internal/auth"
	"codeberg.org/nutrio/server/internal/config"
	"codeberg.org/nutrio/server/internal/gemini"
	"codeberg.org/nutrio/server/internal/quota"
	"codeberg.org/nutrio/server/nutrio/subscriptions"
	"codeberg.org/nutrio/server/nutrio/usagelog"
)

// the upstream AI call is the slowest dependency; everything else in a
// request finishes in milliseconds
const geminiTimeout = 45 * time.Second

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.SupabaseConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// configure connection pool for supabase free tier pooler compatibility
	// free tier has ~10-15 pooler connections, so keep our pool small
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// CRITICAL: use simple protocol for supabase pooler (PgBouncer) compatibility
	// pgBouncer in transaction mode doesn't support prepared statements,
	// which causes connections to hang on subsequent queries
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	subsRepo := subscriptions.NewRepository(db)
	usageRepo := usagelog.NewRepository(db)

	budgets := quota.DefaultBudgets()
	enforcer := quota.NewEnforcer(subsRepo, usageRepo, budgets)

	geminiClient := gemini.NewClient(gemini.Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		Timeout: geminiTimeout,
	})

	verifier, err := auth.NewVerifier(cfg.JWTSecret)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create token verifier: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	server := &Server{
		db:        db,
		config:    cfg,
		subsRepo:  subsRepo,
		usageRepo: usageRepo,
		enforcer:  enforcer,
		budgets:   budgets,
		gemini:    geminiClient,
		verifier:  verifier,
		router:    router,
	}

	RegisterRoutes(router, server)

	return server, nil
}
