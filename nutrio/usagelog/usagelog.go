package usagelog

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new usage-log repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// counts a user's usage entries created at or after the given instant.
// The quota window is computed by the caller; created_at is server-assigned.
func (r *Repository) CountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int

	err := r.db.QueryRow(ctx, queryCountSince, userID, since).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// appends one usage entry for the user
func (r *Repository) Record(ctx context.Context, userID string, tokensUsed int) error {
	_, err := r.db.Exec(ctx, queryInsertUsage, userID, tokensUsed)
	return err
}

// returns the per-day call counts for the last 30 days, newest first
func (r *Repository) DailyHistory(ctx context.Context, userID string) ([]DailyUsage, error) {
	rows, err := r.db.Query(ctx, queryDailyHistory, userID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	history := []DailyUsage{}

	for rows.Next() {
		var du DailyUsage
		if err := rows.Scan(&du.Date, &du.Count); err != nil {
			continue
		}

		history = append(history, du)
	}

	return history, rows.Err()
}
