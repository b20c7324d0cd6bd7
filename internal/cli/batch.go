package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"veracity/internal/model"
	"veracity/internal/worker"
)

var (
	batchConcurrency int
	batchOutput      string
	batchTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple claims from a file in parallel",
	Long: `Batch verifies claims concurrently:
- Read claims from input file (one per line, # comments skipped)
- Process claims in parallel with configurable worker count
- Print a per-claim verdict summary
- Optionally write full responses as JSON Lines

Example:
  veracity batch claims.txt
  veracity batch claims.txt --concurrency 8 --output results.jsonl
  veracity batch claims.txt --timeout 30m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "number of concurrent workers")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "write full responses as JSON Lines to this file")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 15*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&checkNoCache, "no-cache", false, "disable cache (force fresh research)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	if checkNoCache {
		cfg.Cache.Enabled = false
	}
	if batchConcurrency <= 0 {
		batchConcurrency = cfg.Concurrency.BatchWorkers
	}

	p, writer, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	if writer != nil {
		defer func() { _ = writer.Close() }()
	}

	claims, err := worker.ReadClaimsFromFile(file)
	if err != nil {
		return fmt.Errorf("read claims: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Verifying %d claims with %d workers...\n\n", len(claims), batchConcurrency)

	processor := worker.NewBatchProcessor(p, batchConcurrency)
	results := processor.ProcessClaims(ctx, claims)

	var out *os.File
	if batchOutput != "" {
		out, err = os.Create(batchOutput)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() { _ = out.Close() }()
	}

	counts := map[model.Status]int{}
	failures := 0

	for _, result := range results {
		if result.Error != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Claim, result.Error)
			continue
		}

		counts[result.Response.Status]++
		fmt.Printf("[%s] %s\n", result.Response.Status, result.Claim)

		if out != nil {
			line, err := json.Marshal(result.Response)
			if err != nil {
				fmt.Fprintf(os.Stderr, "✗ %s: encode response: %v\n", result.Claim, err)
				continue
			}
			fmt.Fprintf(out, "%s\n", line)
		}
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d true, %d false, %d unverified, %d rejected, %d failed\n",
		counts[model.StatusTrue], counts[model.StatusFalse],
		counts[model.StatusUnverified], counts[model.StatusRejected], failures)

	if batchOutput != "" {
		fmt.Fprintf(os.Stderr, "Full responses written to %s\n", batchOutput)
	}
	return nil
}
