package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/nutrio/server/internal/auth"
	"codeberg.org/nutrio/server/internal/config"
	"codeberg.org/nutrio/server/internal/gemini"
	"codeberg.org/nutrio/server/internal/quota"
	"codeberg.org/nutrio/server/nutrio/subscriptions"
	"codeberg.org/nutrio/server/nutrio/usagelog"
)

// holds all dependencies and state for the gateway server
type Server struct {
	db        *pgxpool.Pool
	config    *config.Config
	subsRepo  *subscriptions.Repository
	usageRepo *usagelog.Repository
	enforcer  *quota.Enforcer
	budgets   quota.Budgets
	gemini    *gemini.Client
	verifier  *auth.Verifier
	router    *gin.Engine
}
