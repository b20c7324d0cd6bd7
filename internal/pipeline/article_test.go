package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"veracity/internal/llm"
	"veracity/internal/model"
)

const testPage = `<!DOCTYPE html>
<html>
<head><title>Dam breaks in northern region</title>
<script>var tracking = true;</script>
<style>p { color: black; }</style>
</head>
<body>
<nav><p>Home | News | Sports</p></nav>
<p>Officials confirmed the dam failure on Tuesday.</p>
<p>Thousands were evacuated from the surrounding villages.</p>
<aside><p>Related stories</p></aside>
<footer><p>Copyright notice</p></footer>
</body>
</html>`

// fakeCompletion implements llm.Client
type fakeCompletion struct {
	response string
	err      error
}

func (c *fakeCompletion) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	return c.response, c.err
}

func testHTTPConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:           5 * time.Second,
		UserAgent:         "test-agent",
		MaxBodyBytes:      1 << 20,
		RequestsPerSecond: 100,
		Burst:             10,
	}
}

func TestParseArticle(t *testing.T) {
	title, text := parseArticle(testPage)

	if title != "Dam breaks in northern region" {
		t.Errorf("unexpected title: %q", title)
	}
	if !strings.Contains(text, "Officials confirmed the dam failure on Tuesday.") {
		t.Errorf("missing paragraph text: %q", text)
	}
	if !strings.Contains(text, "Thousands were evacuated") {
		t.Errorf("missing second paragraph: %q", text)
	}
	// nav/aside/footer/script/style content is excluded
	for _, excluded := range []string{"Home | News", "Related stories", "Copyright notice", "tracking", "color: black"} {
		if strings.Contains(text, excluded) {
			t.Errorf("chrome content leaked into article text: %q", excluded)
		}
	}
}

func TestArticleFetcher_Extract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("User-Agent"); got != "test-agent" {
			t.Errorf("unexpected user agent: %q", got)
		}
		fmt.Fprint(w, testPage)
	}))
	defer srv.Close()

	fetcher := NewArticleFetcher(testHTTPConfig(), &fakeCompletion{
		response: "A dam broke in the northern region on Tuesday.",
	})

	article, err := fetcher.Extract(context.Background(), srv.URL+"/story")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	if article.Title != "Dam breaks in northern region" {
		t.Errorf("unexpected title: %q", article.Title)
	}
	if article.MainClaim != "A dam broke in the northern region on Tuesday." {
		t.Errorf("unexpected main claim: %q", article.MainClaim)
	}
	if !strings.Contains(article.Text, "Officials confirmed") {
		t.Errorf("unexpected text: %q", article.Text)
	}
}

func TestArticleFetcher_MainClaimFallsBackToTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, testPage)
	}))
	defer srv.Close()

	fetcher := NewArticleFetcher(testHTTPConfig(), &fakeCompletion{err: fmt.Errorf("service unavailable")})

	article, err := fetcher.Extract(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if article.MainClaim != "Dam breaks in northern region" {
		t.Errorf("expected title fallback, got %q", article.MainClaim)
	}
}

func TestArticleFetcher_RobotsDisallow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			fmt.Fprint(w, "User-agent: *\nDisallow: /\n")
			return
		}
		fmt.Fprint(w, testPage)
	}))
	defer srv.Close()

	fetcher := NewArticleFetcher(testHTTPConfig(), nil)

	if _, err := fetcher.Extract(context.Background(), srv.URL+"/story"); err == nil {
		t.Fatal("expected robots.txt disallow error")
	}
}

func TestArticleFetcher_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	fetcher := NewArticleFetcher(testHTTPConfig(), nil)

	if _, err := fetcher.Extract(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestArticleFetcher_InvalidURL(t *testing.T) {
	fetcher := NewArticleFetcher(testHTTPConfig(), nil)

	if _, err := fetcher.Extract(context.Background(), "not a url at all"); err == nil {
		t.Fatal("expected error for invalid URL")
	}
}

func TestWithScheme(t *testing.T) {
	if got := withScheme("example.com/a"); got != "https://example.com/a" {
		t.Errorf("expected https scheme added, got %q", got)
	}
	if got := withScheme("http://example.com"); got != "http://example.com" {
		t.Errorf("existing scheme must be kept, got %q", got)
	}
}
