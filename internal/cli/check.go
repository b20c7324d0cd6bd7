package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"veracity/internal/model"
)

var (
	checkURL     string
	checkMedia   string
	checkJSON    bool
	checkNoCache bool
	checkTimeout time.Duration
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [claim text]",
	Short: "Verify a single claim",
	Long: `Check verifies one claim and prints the verdict.

The claim can be plain text, a URL to an article (--url), or a media
file (--media). Text arguments alongside --media are treated as
additional context for the extracted content.

Example:
  veracity check "The Eiffel Tower is 330 meters tall"
  veracity check --url https://example.com/article
  veracity check --media screenshot.png "seen on social media"
  veracity check "Coffee cures cancer" --json`,
	Args: cobra.ArbitraryArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkURL, "url", "", "verify the main claim of an article URL")
	checkCmd.Flags().StringVar(&checkMedia, "media", "", "verify claims extracted from a media file (image, video, audio)")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print the full response as JSON")
	checkCmd.Flags().BoolVar(&checkNoCache, "no-cache", false, "disable cache (force fresh research)")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 6*time.Minute, "overall check timeout (covers media processing)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	input := model.RawInput{
		Text: strings.TrimSpace(strings.Join(args, " ")),
		URL:  checkURL,
	}

	if input.Text == "" && input.URL == "" && checkMedia == "" {
		return fmt.Errorf("nothing to check: provide claim text, --url, or --media")
	}
	if checkURL != "" && checkMedia != "" {
		return fmt.Errorf("--url and --media are mutually exclusive")
	}

	if checkMedia != "" {
		asset, err := loadMediaAsset(checkMedia)
		if err != nil {
			return err
		}
		input.Media = asset
	}

	cfg := loadConfig()
	if checkNoCache {
		cfg.Cache.Enabled = false
	}

	p, writer, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	if writer != nil {
		defer func() { _ = writer.Close() }()
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	resp, err := p.Check(ctx, input)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if checkJSON {
		return renderJSON(os.Stdout, resp)
	}
	renderText(os.Stdout, resp)
	return nil
}

// loadMediaAsset reads a media file and classifies it by extension
func loadMediaAsset(path string) (*model.MediaAsset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read media file: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	kind, ok := model.KindFromContentType(contentType)
	if !ok {
		return nil, fmt.Errorf("unsupported media file %q: cannot determine image/video/audio type from extension", path)
	}

	return &model.MediaAsset{
		Kind:        kind,
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	}, nil
}
