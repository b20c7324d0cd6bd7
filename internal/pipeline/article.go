package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"veracity/internal/llm"
	"veracity/internal/model"
	"veracity/internal/util"
	"veracity/internal/worker"
)

// Article is the distilled content of a URL input
type Article struct {
	URL       string
	Title     string
	Source    string
	Text      string
	MainClaim string
}

// ArticleFetcher extracts article content from URL inputs: fetch
// (robots-checked, redirect-capped, size-capped), parse, then identify
// the main factual claim. The claim identification uses the completion
// client when available and falls back to the article title.
type ArticleFetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	client     llm.Client
}

// NewArticleFetcher creates a fetcher. client may be nil; main-claim
// identification then falls back to the article title.
func NewArticleFetcher(cfg model.HTTPConfig, client llm.Client) *ArticleFetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
	}

	return &ArticleFetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		limiter:   worker.NewLimiter(cfg.RequestsPerSecond, cfg.Burst),
		client:    client,
	}
}

// Extract fetches the URL and distills it into an Article
func (f *ArticleFetcher) Extract(ctx context.Context, rawURL string) (*Article, error) {
	rawURL = withScheme(rawURL)

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("invalid URL: %q", rawURL)
	}

	if !f.robots.IsAllowed(ctx, rawURL) {
		return nil, fmt.Errorf("fetch disallowed by robots.txt: %s", rawURL)
	}
	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	finalURL := resp.Request.URL.String()
	title, text := parseArticle(string(body))
	source := strings.TrimPrefix(strings.ToLower(resp.Request.URL.Host), "www.")

	article := &Article{
		URL:    finalURL,
		Title:  title,
		Source: source,
		Text:   text,
	}
	article.MainClaim = f.identifyMainClaim(ctx, article)
	return article, nil
}

// identifyMainClaim asks the completion service to pull the central
// factual claim out of the article, falling back to the title.
func (f *ArticleFetcher) identifyMainClaim(ctx context.Context, article *Article) string {
	if f.client == nil {
		return article.Title
	}

	body := article.Text
	if len(body) > 3000 {
		body = body[:3000]
	}

	prompt := fmt.Sprintf(`Identify the single main factual claim made by this article. Respond with ONLY the claim as one declarative sentence, no preamble.

Title: %s

Article:
%s`, article.Title, body)

	claim, err := f.client.Complete(ctx, llm.CompletionRequest{
		Prompt:      prompt,
		Temperature: 0.1,
		MaxTokens:   200,
	})
	if err != nil || strings.TrimSpace(claim) == "" {
		return article.Title
	}
	return strings.TrimSpace(claim)
}

// parseArticle extracts the document title and readable paragraph text
func parseArticle(rawHTML string) (title, text string) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", ""
	}

	var paragraphs []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "aside":
				return
			case "title":
				if title == "" {
					title = strings.TrimSpace(textContent(n))
				}
				return
			case "p":
				if p := strings.TrimSpace(textContent(n)); p != "" {
					paragraphs = append(paragraphs, p)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return title, strings.Join(paragraphs, "\n\n")
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}

func withScheme(rawURL string) string {
	if !strings.Contains(rawURL, "://") {
		return "https://" + rawURL
	}
	return rawURL
}
