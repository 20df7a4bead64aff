package subscriptions

const (
	queryTierForUser = `
		SELECT tier
		FROM user_subscriptions
		WHERE user_id = $1
	`
)
