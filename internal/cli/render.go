package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"veracity/internal/model"
)

// renderJSON writes the full response as indented JSON
func renderJSON(w io.Writer, resp *model.CheckResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// renderText writes a human-readable verdict report
func renderText(w io.Writer, resp *model.CheckResponse) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Claim:   %s\n", firstLine(resp.ClaimText))
	fmt.Fprintf(w, "Status:  %s\n", resp.Status)
	fmt.Fprintf(w, "\n%s\n", resp.Explanation)

	if len(resp.Sources) > 0 {
		fmt.Fprintf(w, "\nSources:\n")
		for _, src := range resp.Sources {
			fmt.Fprintf(w, "  - %s\n", src)
		}
	}

	if resp.ExtractedText != "" {
		fmt.Fprintf(w, "\nExtracted from %s (%s):\n  %s\n",
			resp.MediaFilename, resp.MediaType, firstLine(resp.ExtractedText))
	}
	if resp.ArticleTitle != "" {
		fmt.Fprintf(w, "\nArticle: %s (%s)\n", resp.ArticleTitle, resp.ArticleSource)
	}

	if resp.Discovery != nil && resp.Discovery.HasRelevantPosts {
		fmt.Fprintf(w, "\nDiscussion: %s\n", resp.Discovery.AnalysisNote)
	}

	for _, note := range resp.Notes {
		fmt.Fprintf(w, "\nNote: %s\n", note)
	}

	if resp.Cached {
		fmt.Fprintf(w, "\n(%s)\n", resp.CacheNote)
	}
	fmt.Fprintf(w, "\n")
}

// firstLine collapses multi-line text for single-line display
func firstLine(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx] + " ..."
	}
	return text
}
