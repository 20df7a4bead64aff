package subscriptions

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/nutrio/server/internal/quota"
)

// creates a new subscription repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// resolves a user to their subscription tier.
// A user with no subscription row is on the free tier, not an error.
func (r *Repository) TierFor(ctx context.Context, userID string) (quota.Tier, error) {
	var tier string

	err := r.db.QueryRow(ctx, queryTierForUser, userID).Scan(&tier)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return quota.TierFree, nil
		}

		return "", err
	}

	return quota.Tier(tier), nil
}
