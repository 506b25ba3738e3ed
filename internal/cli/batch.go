package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/compoundscan/internal/pipeline"
	"github.com/ppiankov/compoundscan/internal/worker"
)

var (
	workers      int
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Fetch many compounds from a file of names",
	Long: `Batch runs fetch for every compound name in a file:
- One name per line; blank lines and # comments are skipped
- Repeated names (ignoring case) run once
- Compounds are processed in parallel by --workers
- Each compound is an independent run with its own CSV file

Example:
  compoundscan batch names.txt
  compoundscan batch names.txt --workers 4 --output ./csv
  compoundscan batch names.txt --sqlite compounds.db --batch-timeout 30m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	addRunFlags(batchCmd)

	batchCmd.Flags().IntVar(&workers, "workers", 2, "compounds processed in parallel")
	batchCmd.Flags().DurationVar(&batchTimeout, "batch-timeout", time.Hour, "total timeout for the batch")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Concurrency.BatchWorkers = workers
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.BatchWorkers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", cfg.Output.Dir)
	if cfg.Output.SQLitePath != "" {
		fmt.Fprintf(os.Stderr, "  SQLite:       %s\n", cfg.Output.SQLitePath)
	}
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	processor := worker.NewBatchProcessor[*pipeline.RunResult](a, cfg.Concurrency.BatchWorkers)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	rows := make([]pipeline.BatchRow, 0, len(results))
	for _, result := range results {
		rows = append(rows, pipeline.BatchRow{
			Name:   result.Name,
			Result: result.Value,
			Err:    result.Error,
		})
		if result.Error != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Name, result.Error)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s (CID %d)\n", result.Name, result.Value.CID)
	}

	failed := pipeline.NewRenderer(os.Stdout, 0).RenderBatch(rows)
	if failed > 0 {
		return fmt.Errorf("%d of %d compounds failed", failed, len(results))
	}
	return nil
}
