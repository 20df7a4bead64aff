package usagelog

const (
	queryCountSince = `
		SELECT COUNT(*)
		FROM usage_logs
		WHERE user_id = $1
		AND created_at >= $2
	`

	queryInsertUsage = `
		INSERT INTO usage_logs (user_id, tokens_used)
		VALUES ($1, $2)
	`

	queryDailyHistory = `
		SELECT DATE(created_at) AS date, COUNT(*) AS count
		FROM usage_logs
		WHERE user_id = $1
		AND created_at >= CURRENT_DATE - INTERVAL '30 days'
		GROUP BY DATE(created_at)
		ORDER BY date DESC
	`
)
