package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"veracity/internal/store"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently verified claims",
	Long: `History lists the most recent verification runs recorded in the
local check database, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if !cfg.Store.Enabled {
			return fmt.Errorf("check history is disabled in configuration")
		}

		writer, err := store.Open(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("open check history: %w", err)
		}
		defer func() { _ = writer.Close() }()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		records, err := writer.Recent(ctx, historyLimit)
		if err != nil {
			return fmt.Errorf("read check history: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No checks recorded yet.")
			return nil
		}

		for _, rec := range records {
			fmt.Printf("%s  [%s]  %s\n",
				rec.CreatedAt.Local().Format("2006-01-02 15:04"),
				rec.Status,
				firstLine(rec.ClaimText))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of records to show")
}
