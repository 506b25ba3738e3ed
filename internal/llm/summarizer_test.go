package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ppiankov/compoundscan/internal/model"
)

// MockProvider implements the Provider interface for testing
type MockProvider struct {
	name      string
	available bool
	response  *SummarizeResponse
	err       error
	lastReq   SummarizeRequest
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *MockProvider) IsAvailable(ctx context.Context) bool {
	return m.available
}

func TestNewSummarizer_DisabledProvider(t *testing.T) {
	summarizer, err := NewSummarizer(Config{Provider: ""})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if summarizer.IsEnabled() {
		t.Error("Expected summarizer to be disabled")
	}
	if summarizer.ProviderName() != "" {
		t.Error("Expected empty provider name when disabled")
	}
}

func TestNewSummarizer_UnknownProvider(t *testing.T) {
	if _, err := NewSummarizer(Config{Provider: "bard"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestSummarizer_GenerateSummary_Disabled(t *testing.T) {
	summarizer := &Summarizer{}

	summary, err := summarizer.GenerateSummary(context.Background(), testRecord(), nil)
	if err != nil {
		t.Errorf("Expected no error when disabled, got %v", err)
	}
	if summary != nil {
		t.Error("Expected nil summary when provider disabled")
	}
}

func TestSummarizer_GenerateSummary_NilReceiver(t *testing.T) {
	var summarizer *Summarizer
	if summarizer.IsEnabled() {
		t.Error("Expected nil summarizer to be disabled")
	}
	summary, err := summarizer.GenerateSummary(context.Background(), testRecord(), nil)
	if err != nil || summary != nil {
		t.Errorf("Expected nil, nil from nil summarizer, got %v, %v", summary, err)
	}
}

func TestSummarizer_GenerateSummary_ProviderUnavailable(t *testing.T) {
	summarizer := &Summarizer{
		provider: &MockProvider{name: "test-provider", available: false},
		config:   Config{StrictEvidence: true},
	}

	summary, err := summarizer.GenerateSummary(context.Background(), testRecord(), nil)
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if summary == nil {
		t.Fatal("Expected summary object with warnings")
	}
	if summary.Enabled {
		t.Error("Expected summary to be marked as disabled")
	}
	if len(summary.Warnings) == 0 || !strings.Contains(summary.Warnings[0], "not available") {
		t.Errorf("Expected unavailability warning, got %v", summary.Warnings)
	}
}

func TestSummarizer_GenerateSummary_Success(t *testing.T) {
	mock := &MockProvider{
		name:      "test-provider",
		available: true,
		response: &SummarizeResponse{
			Summary:    "Aspirin is a small aromatic acid.",
			CitedURLs:  []string{},
			Model:      "test-model",
			TokensUsed: 42,
		},
	}
	summarizer := &Summarizer{
		provider: mock,
		config:   Config{StrictEvidence: true, MaxTokens: 200},
	}

	evidence := []string{"https://example.com/1"}
	summary, err := summarizer.GenerateSummary(context.Background(), testRecord(), evidence)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !summary.Enabled {
		t.Error("Expected summary to be enabled")
	}
	if summary.Provider != "test-provider" {
		t.Errorf("Expected provider 'test-provider', got '%s'", summary.Provider)
	}
	if summary.Model != "test-model" {
		t.Errorf("Expected model 'test-model', got '%s'", summary.Model)
	}
	if !summary.StrictEvidence {
		t.Error("Expected strict evidence to be recorded")
	}
	if summary.Text != "Aspirin is a small aromatic acid." {
		t.Errorf("Unexpected summary text: %q", summary.Text)
	}
	if summary.TokensUsed != 42 {
		t.Errorf("Expected 42 tokens, got %d", summary.TokensUsed)
	}
	if len(summary.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", summary.Warnings)
	}
	if mock.lastReq.MaxTokens != 200 || len(mock.lastReq.EvidenceURLs) != 1 {
		t.Errorf("Unexpected request passed to provider: %+v", mock.lastReq)
	}
}

func TestSummarizer_GenerateSummary_ProviderError(t *testing.T) {
	summarizer := &Summarizer{
		provider: &MockProvider{name: "test-provider", available: true, err: errors.New("API timeout")},
		config:   Config{StrictEvidence: true},
	}

	summary, err := summarizer.GenerateSummary(context.Background(), testRecord(), nil)
	if err != nil {
		t.Fatalf("Expected no error (errors become warnings), got %v", err)
	}
	if !summary.Enabled {
		t.Error("Expected summary to be enabled")
	}
	if summary.Text != "" {
		t.Errorf("Expected empty text, got %q", summary.Text)
	}
	if len(summary.Warnings) == 0 || !strings.Contains(summary.Warnings[0], "API timeout") {
		t.Errorf("Expected warning to mention error: %v", summary.Warnings)
	}
}

func TestBuildPrompt_BasicStructure(t *testing.T) {
	record := testRecord()
	record.Add(model.ColBioAssay, "[\n  {\"AID\": \"1\"}\n]")

	prompt := BuildPrompt(record, []string{"https://example.com/1", "https://example.com/2"})

	for _, want := range []string{
		"Compound Name: aspirin",
		"Molecular Formula: C9H8O4",
		"Chemical Vendors: Acros Organics; Sigma-Aldrich",
		"https://example.com/1",
		"https://example.com/2",
		"MUST ONLY cite URLs",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
	if strings.Contains(prompt, "AID") {
		t.Error("Expected BioAssay JSON to be left out of the prompt")
	}
}

func TestBuildPrompt_NoEvidence(t *testing.T) {
	prompt := BuildPrompt(model.Record{}, nil)
	if !strings.Contains(prompt, "(No URLs available)") {
		t.Error("Expected prompt to note missing URLs")
	}
}

func TestBuildPrompt_ManyURLs(t *testing.T) {
	urls := make([]string, 25)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://example.com/%d", i)
	}

	prompt := BuildPrompt(testRecord(), urls)
	if !strings.Contains(prompt, "... and 5 more URLs") {
		t.Error("Expected prompt to truncate URL list")
	}
	if strings.Contains(prompt, "https://example.com/24") {
		t.Error("Expected URLs past the limit to be omitted")
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config.Provider != "" {
		t.Errorf("Expected empty provider by default, got %s", config.Provider)
	}
	if !config.StrictEvidence {
		t.Error("Expected StrictEvidence to be true by default")
	}
	if config.Timeout != 30 {
		t.Errorf("Expected default timeout 30, got %d", config.Timeout)
	}
}

func TestConfigFromModel(t *testing.T) {
	cfg := ConfigFromModel(
		model.LLMConfig{Provider: "ollama", Model: "llama3.1", Timeout: 10, StrictEvidence: true},
		model.HTTPConfig{HTTPProxy: "http://proxy:3128"},
	)
	if cfg.Provider != "ollama" || cfg.Model != "llama3.1" || cfg.Timeout != 10 || !cfg.StrictEvidence {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if cfg.HTTPProxy != "http://proxy:3128" {
		t.Errorf("Expected proxy to carry over, got %q", cfg.HTTPProxy)
	}
}

func TestSummarizer_ProviderName(t *testing.T) {
	summarizer := &Summarizer{provider: &MockProvider{name: "ollama"}}
	if summarizer.ProviderName() != "ollama" {
		t.Errorf("Expected provider name ollama, got %s", summarizer.ProviderName())
	}
}
