package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/compoundscan/internal/model"
	"github.com/ppiankov/compoundscan/internal/textutil"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize describes a compound record, citing only allowed URLs
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Record is the merged compound row
	Record model.Record

	// EvidenceURLs is the allowlist of URLs the summary may cite
	EvidenceURLs []string

	// Prompt overrides the built prompt when set
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	Summary    string
	CitedURLs  []string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	Model   string
	APIKey  string
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// StrictEvidence rejects summaries that cite URLs outside the allowlist
	StrictEvidence bool

	MaxTokens int

	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:       "",
		Timeout:        30,
		StrictEvidence: true,
		MaxTokens:      600,
	}
}

const systemPrompt = "You are a careful assistant that summarizes PubChem compound records using only the data and links provided."

// promptColumns are the record columns worth showing to the model; the large
// JSON columns are represented by their links instead
var promptColumns = []string{
	model.ColCompoundName,
	model.ColCID,
	model.ColIUPACName,
	model.ColMolecularFormula,
	model.ColMolecularWeight,
	model.ColCanonicalSMILES,
	model.ColXLogP,
	model.ColTPSA,
	model.ColHBondDonors,
	model.ColHBondAcceptors,
	model.ColChEMBLID,
	model.ColVendors,
}

// BuildPrompt constructs the summarization prompt for a compound record
func BuildPrompt(record model.Record, evidenceURLs []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Summarize this PubChem compound record for a chemist. Describe only what the record contains.

RULES:
1. You MUST ONLY cite URLs from this allowed list:
%s

2. DO NOT cite any other source or add facts that are not in the record.
3. If a category has no data, say so instead of guessing.

Record:
`, joinURLs(evidenceURLs))

	for _, col := range promptColumns {
		value, ok := record.Get(col)
		if !ok || value == "" {
			continue
		}
		// Upstream text may carry inline markup and line breaks; the prompt wants one plain line
		fmt.Fprintf(&b, "- %s: %s\n", col, truncate(textutil.StripMarkup(value), 300))
	}

	b.WriteString("\nProvide a 3-4 sentence summary of identity, drug-likeness and available research coverage.")
	return b.String()
}

func joinURLs(urls []string) string {
	if len(urls) == 0 {
		return "(No URLs available)"
	}
	var b strings.Builder
	for i, url := range urls {
		if i >= 20 { // token budget
			fmt.Fprintf(&b, "\n... and %d more URLs", len(urls)-20)
			break
		}
		fmt.Fprintf(&b, "\n- %s", url)
	}
	return b.String()
}

// truncate keeps the first n runes of s
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
