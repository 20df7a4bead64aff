package subscriptions

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// handles subscription database operations.
// The gateway only ever reads this table; it is owned by the billing flow.
type Repository struct {
	db *pgxpool.Pool
}
