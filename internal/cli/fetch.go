package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/compoundscan/internal/cache"
	"github.com/ppiankov/compoundscan/internal/llm"
	"github.com/ppiankov/compoundscan/internal/logging"
	"github.com/ppiankov/compoundscan/internal/model"
	"github.com/ppiankov/compoundscan/internal/pipeline"
	"github.com/ppiankov/compoundscan/internal/pubchem"
	"github.com/ppiankov/compoundscan/internal/sink"
	"github.com/ppiankov/compoundscan/internal/worker"
)

var (
	concurrency  int
	retries      int
	timeout      time.Duration
	outputDir    string
	sqlitePath   string
	baseURL      string
	assayLimit   int
	noCache      bool
	noPreview    bool
	insecureTLS  bool
	httpProxy    string
	httpsProxy   string
	llmProvider  string
	llmModel     string
	previewWidth int
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <name>",
	Short: "Fetch every data category for one compound and write its CSV row",
	Long: `Fetch resolves a compound name to a PubChem CID and then collects:
- Chemical vendors
- Protein-bound 3D structures
- Bioassay summary (first rows only, see --assay-limit)
- Patents and depositor-supplied patents
- Literature links

The merged record is written to <output>/<cid>compound_details.csv.

Example:
  compoundscan fetch aspirin
  compoundscan fetch "acetylsalicylic acid" --concurrency 6 --retries 2
  compoundscan fetch caffeine --sqlite compounds.db --llm-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	addRunFlags(fetchCmd)
	fetchCmd.Flags().BoolVar(&noPreview, "no-preview", false, "do not print the record preview table")
	fetchCmd.Flags().IntVar(&previewWidth, "preview-width", 60, "max characters per preview cell")
}

// addRunFlags registers the flags shared by fetch and batch
func addRunFlags(cmd *cobra.Command) {
	// Output flags
	cmd.Flags().StringVar(&outputDir, "output", "Output", "directory for CSV files")
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "also upsert records into this SQLite database")
	cmd.Flags().IntVar(&assayLimit, "assay-limit", 8, "bioassay rows kept in the record (0 = all)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "category fetches in flight per compound (1 = sequential)")

	// HTTP flags
	cmd.Flags().StringVar(&baseURL, "base-url", model.DefaultBaseURL, "PubChem REST base URL")
	cmd.Flags().IntVar(&retries, "retries", 0, "retries for 429, 5xx and connection errors")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "timeout for each PubChem request")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	cmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification")
	cmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	cmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// LLM flags
	cmd.Flags().StringVar(&llmProvider, "llm-provider", "", "add a Summary column using this provider (openai, ollama)")
	cmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

// applyFlags overrides config values with flags the user actually set
func applyFlags(cmd *cobra.Command, cfg *model.Config) error {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.Dir = outputDir
	}
	if flags.Changed("sqlite") {
		cfg.Output.SQLitePath = sqlitePath
	}
	if flags.Changed("assay-limit") {
		cfg.Output.AssayLimit = assayLimit
	}
	if flags.Changed("base-url") {
		cfg.PubChem.BaseURL = baseURL
	}
	if flags.Changed("retries") {
		cfg.HTTP.MaxRetries = retries
	}
	if flags.Changed("timeout") {
		cfg.HTTP.RequestTimeout = timeout
	}
	if flags.Changed("insecure") {
		cfg.HTTP.InsecureTLS = insecureTLS
	}
	if flags.Changed("http-proxy") {
		cfg.HTTP.HTTPProxy = httpProxy
	}
	if flags.Changed("https-proxy") {
		cfg.HTTP.HTTPSProxy = httpsProxy
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency.Extractors = concurrency
	}
	if noPreview {
		cfg.Output.Preview = false
	}
	if flags.Changed("llm-provider") {
		cfg.LLM.Provider = llmProvider
	}
	if flags.Changed("llm-model") {
		cfg.LLM.Model = llmModel
	}

	// Get API key from environment
	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		if cfg.LLM.Model == "" {
			cfg.LLM.Model = "gpt-4o-mini"
		}
	case "ollama":
		if base := os.Getenv("OLLAMA_BASE_URL"); base != "" && cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = base
		}
	}
	return nil
}

// app holds what a command needs to run compounds
type app struct {
	cfg      *model.Config
	logger   *logging.Logger
	pipeline *pipeline.Pipeline
	closers  []func() error
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
}

// newApp wires the fetcher, client, sinks and summarizer for cfg
func newApp(cfg *model.Config) (*app, error) {
	logger := newLogger(cfg)
	a := &app{cfg: cfg, logger: logger}

	limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	fetcher := pubchem.NewFetcher(cfg.HTTP, cache.FromConfig(cfg.Cache), limiter, logger)
	client := pubchem.NewClient(cfg.PubChem.BaseURL, fetcher, logger)

	sinks := []pipeline.Sink{sink.NewCSVSink(cfg.Output.Dir)}
	if cfg.Output.SQLitePath != "" {
		db, err := sink.OpenSQLite(cfg.Output.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		sinks = append(sinks, db)
	}

	a.pipeline = pipeline.New(client, sinks, logger, pipeline.Options{
		Concurrency: cfg.Concurrency.Extractors,
		AssayLimit:  cfg.Output.AssayLimit,
	})

	summarizer, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("create summarizer: %w", err)
	}
	if summarizer.IsEnabled() {
		a.pipeline.WithSummarizer(summarizer)
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", summarizer.ProviderName(), cfg.LLM.Model)
		}
	}

	return a, nil
}

// Run processes one compound. Requests carry their own timeout, so a slow
// category degrades to empty instead of failing the run.
func (a *app) Run(ctx context.Context, name string) (*pipeline.RunResult, error) {
	return a.pipeline.Run(ctx, name)
}

func runFetch(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Fetching: %s\n", name)
		fmt.Fprintf(os.Stderr, "Request timeout: %v\n", cfg.HTTP.RequestTimeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	res, err := a.Run(ctx, name)
	renderer := pipeline.NewRenderer(os.Stdout, previewWidth)
	if err != nil {
		renderer.RenderCategories(res)
		return fmt.Errorf("fetch failed: %w", err)
	}

	for _, artifact := range res.Artifacts {
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", artifact)
	}
	if n := res.Degraded(); n > 0 {
		fmt.Fprintf(os.Stderr, "⚠ %d of %d categories fell back to empty values\n", n, len(res.Categories))
	}

	if cfg.Output.Preview {
		renderer.RenderPreview(res.Record)
	}
	if cfg.Output.Verbose {
		renderer.RenderCategories(res)
	}
	if res.Summary != nil {
		for _, w := range res.Summary.Warnings {
			fmt.Fprintf(os.Stderr, "⚠ summary: %s\n", w)
		}
	}
	return nil
}
