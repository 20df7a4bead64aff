package config

// holds all runtime configuration for the gateway
type Config struct {
	SupabaseConnString string
	JWTSecret          string
	GeminiAPIKey       string
	GeminiModel        string
	GeminiBaseURL      string
	Environment        string
	Port               string

	// additional allowed CORS origins on top of the built-in lists
	ExtraOrigins []string
}

// reports whether the gateway is running in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
