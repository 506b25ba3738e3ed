package model

// Summary is the optional LLM digest of a compound record.
// It never changes any other column.
type Summary struct {
	Enabled        bool     `json:"enabled"`
	Provider       string   `json:"provider,omitempty"`
	Model          string   `json:"model,omitempty"`
	Text           string   `json:"text,omitempty"`
	CitedURLs      []string `json:"cited_urls,omitempty"`
	StrictEvidence bool     `json:"strict_evidence"`
	TokensUsed     int      `json:"tokens_used,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
}
