// Command quotactl prints a user's subscription tier and AI usage.
// Support tooling: answers "why is this user rate-limited" without
// touching the database by hand.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"codeberg.org/nutrio/server/internal/logger"
	"codeberg.org/nutrio/server/internal/quota"
	"codeberg.org/nutrio/server/nutrio/subscriptions"
	"codeberg.org/nutrio/server/nutrio/usagelog"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	overBudgetStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203"))
)

func main() {
	userID := flag.String("user", "", "user id to inspect (required)")
	flag.Parse()

	if *userID == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		_ = err // production environments may not have .env file
	}

	connString := os.Getenv("SUPABASE_CONNECTION_STRING")
	if connString == "" {
		logger.Fatal("SUPABASE_CONNECTION_STRING environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		logger.FatalErr(err, "failed to parse database config")
	}

	poolConfig.MaxConns = 2
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.FatalErr(err, "failed to connect to database")
	}

	defer db.Close()

	subsRepo := subscriptions.NewRepository(db)
	usageRepo := usagelog.NewRepository(db)
	budgets := quota.DefaultBudgets()

	tier, err := subsRepo.TierFor(ctx, *userID)
	if err != nil {
		logger.FatalErr(err, "failed to fetch tier", "user_id", *userID)
	}

	year, month, day := time.Now().UTC().Date()
	startOfToday := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	today, err := usageRepo.CountSince(ctx, *userID, startOfToday)
	if err != nil {
		logger.FatalErr(err, "failed to count usage", "user_id", *userID)
	}

	history, err := usageRepo.DailyHistory(ctx, *userID)
	if err != nil {
		logger.FatalErr(err, "failed to fetch usage history", "user_id", *userID)
	}

	limit := budgets.For(tier)

	fmt.Println(titleStyle.Render("Nutrio usage report"))
	printRow("User", *userID)
	printRow("Tier", string(tier))

	if limit == quota.Unlimited {
		printRow("Limit", "unlimited")
		printRow("Today", fmt.Sprintf("%d", today))
	} else {
		printRow("Limit", fmt.Sprintf("%d/day", limit))

		todayLine := fmt.Sprintf("%d", today)
		if today >= limit {
			todayLine = overBudgetStyle.Render(fmt.Sprintf("%d (over budget)", today))
		}
		printRow("Today", todayLine)
	}

	if len(history) > 0 {
		fmt.Println()
		fmt.Println(titleStyle.Render("Last 30 days"))
		for _, du := range history {
			printRow(du.Date, fmt.Sprintf("%d", du.Count))
		}
	}
}

func printRow(label, value string) {
	fmt.Println(labelStyle.Render(label) + valueStyle.Render(value))
}
