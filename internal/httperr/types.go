package httperr

// represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`             // user-facing message
	Details string `json:"details,omitempty"` // optional field-level detail (sanitized in production)
}

// is the 429 body the mobile app uses to render upgrade/limit-reached UI
type QuotaExceededResponse struct {
	Error string `json:"error"`
	Limit int    `json:"limit"`
	Used  int    `json:"used"`
	Tier  string `json:"tier"`
}
