package usagelog

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// handles usage-log database operations.
// The table is append-only from the gateway's perspective: one row per
// successfully completed upstream call, never updated, never deleted.
type Repository struct {
	db *pgxpool.Pool
}

// one day's worth of recorded calls, for the usage history endpoint
type DailyUsage struct {
	Date  string `json:"date"`  // format: "2006-01-02"
	Count int    `json:"count"` // number of AI requests
}
