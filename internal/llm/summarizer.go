package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/compoundscan/internal/model"
)

// Summarizer produces the optional Summary column.
// Failures become warnings on the returned Summary, never run errors.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer builds a summarizer; an empty provider yields a disabled one
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Summarizer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// ProviderName returns the configured provider, or ""
func (s *Summarizer) ProviderName() string {
	if !s.IsEnabled() {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary summarizes record. It returns nil when disabled.
func (s *Summarizer) GenerateSummary(ctx context.Context, record model.Record, evidenceURLs []string) (*model.Summary, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	summary := &model.Summary{
		Provider:       s.provider.Name(),
		StrictEvidence: s.config.StrictEvidence,
	}

	if !s.provider.IsAvailable(ctx) {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("provider %s not available", s.provider.Name()))
		return summary, nil
	}
	summary.Enabled = true

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Record:       record,
		EvidenceURLs: evidenceURLs,
		Model:        s.config.Model,
		MaxTokens:    s.config.MaxTokens,
	})
	if err != nil {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("summary generation failed: %v", err))
		return summary, nil
	}

	summary.Model = resp.Model
	summary.Text = resp.Summary
	summary.CitedURLs = resp.CitedURLs
	summary.TokensUsed = resp.TokensUsed
	return summary, nil
}
