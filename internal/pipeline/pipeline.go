// Package pipeline orchestrates one claim verification run:
// media/URL extraction, normalization, content-addressed cache lookup,
// input moderation, parallel research, verdict synthesis, output
// moderation, and best-effort persistence.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"veracity/internal/cache"
	"veracity/internal/model"
	"veracity/internal/moderate"
	"veracity/internal/normalize"
)

const cacheNote = "Retrieved from previous research"

// Normalizer turns raw claim text into a structured claim
type Normalizer interface {
	Normalize(ctx context.Context, rawText, optionalContext string) model.StructuredClaim
}

// Gate is the dual moderation checkpoint
type Gate interface {
	ScreenInput(ctx context.Context, text string) model.ModerationDecision
	ScreenOutput(ctx context.Context, explanation string) model.ModerationDecision
}

// MediaExtractor converts a media asset into extracted text
type MediaExtractor interface {
	Extract(ctx context.Context, asset model.MediaAsset) (string, error)
}

// Researcher runs the parallel research phase
type Researcher interface {
	Research(ctx context.Context, query string, claim model.StructuredClaim) model.ResearchBundle
}

// Synthesizer merges weighted research into a verdict
type Synthesizer interface {
	Synthesize(ctx context.Context, claimText string, claim model.StructuredClaim, bundle model.ResearchBundle) model.Verdict
}

// ArticleExtractor fetches and distills a URL input
type ArticleExtractor interface {
	Extract(ctx context.Context, rawURL string) (*Article, error)
}

// Recorder keeps the durable record of completed runs
type Recorder interface {
	Save(ctx context.Context, cacheKey string, resp model.CheckResponse) error
}

// Deps are the pipeline's collaborators, constructed explicitly so
// tests can substitute doubles. Media, Articles, and Recorder are
// optional; Cache may be nil for cache-bypass.
type Deps struct {
	Normalizer  Normalizer
	Gate        Gate
	Cache       *cache.Store
	Media       MediaExtractor
	Researcher  Researcher
	Synthesizer Synthesizer
	Articles    ArticleExtractor
	Recorder    Recorder

	// Logf receives verbose progress output; nil discards it
	Logf func(format string, args ...any)
}

// Pipeline processes claim verification requests. Safe for concurrent
// use: the only shared mutable state is the cache, whose writes are
// per-key and atomic.
type Pipeline struct {
	deps Deps
}

// New creates a pipeline from its collaborators
func New(deps Deps) *Pipeline {
	if deps.Logf == nil {
		deps.Logf = func(string, ...any) {}
	}
	return &Pipeline{deps: deps}
}

// Check runs the full pipeline for one raw input and returns the
// response surface. Fatal errors (unextractable media, empty input)
// return an error; every degradation short of that produces a
// response.
func (p *Pipeline) Check(ctx context.Context, input model.RawInput) (*model.CheckResponse, error) {
	claimText, meta, err := p.resolveInput(ctx, input)
	if err != nil {
		return nil, err
	}

	structured := p.deps.Normalizer.Normalize(ctx, claimText, "")
	key := cache.Key(structured.Claim)
	p.deps.Logf("claim key: %s", key)

	if entry, ok := p.deps.Cache.Lookup(key); ok {
		p.deps.Logf("cache hit")
		resp := p.responseFromEntry(claimText, entry)
		meta.apply(resp)
		return resp, nil
	}

	if dec := p.deps.Gate.ScreenInput(ctx, claimText); dec.Blocked() {
		p.deps.Logf("input blocked: %s", dec.Category)
		// Cache only the decision, never the offending content
		_ = p.deps.Cache.Write(key, model.CacheEntry{RejectedCategory: dec.Category})
		resp := &model.CheckResponse{
			ClaimText:   claimText,
			Status:      model.StatusRejected,
			Explanation: dec.Reason,
			Sources:     []string{},
		}
		meta.apply(resp)
		return resp, nil
	}

	query := normalize.SearchQuery(structured)
	p.deps.Logf("research query: %s", query)

	bundle := p.deps.Researcher.Research(ctx, query, structured)
	v := p.deps.Synthesizer.Synthesize(ctx, claimText, structured, bundle)

	if dec := p.deps.Gate.ScreenOutput(ctx, v.Explanation); dec.Blocked() {
		p.deps.Logf("output blocked: %s", dec.Category)
		v.Explanation = moderate.NeutralRefusal
	}

	resp := buildResponse(claimText, structured, bundle, v)
	meta.apply(resp)

	// Cache only runs where research actually happened; a run with
	// both providers down would pin Unverified for the TTL.
	if bundle.Primary.Available || bundle.Supplementary.Available {
		entry := model.CacheEntry{
			Structured: structured,
			Research:   bundle,
			Verdict:    v,
			CreatedAt:  time.Now().UTC(),
		}
		if err := p.deps.Cache.Write(key, entry); err != nil {
			p.deps.Logf("cache write failed: %v", err)
		}
	} else {
		p.deps.Logf("skipping cache write: no research available")
	}

	if p.deps.Recorder != nil {
		if err := p.deps.Recorder.Save(ctx, key, *resp); err != nil {
			p.deps.Logf("persistence failed: %v", err)
		}
	}

	return resp, nil
}

// inputMeta carries input-specific response metadata through the run
type inputMeta struct {
	mediaType     string
	mediaFilename string
	extractedText string

	url            string
	articleTitle   string
	articleSource  string
	articlePreview string
}

func (m inputMeta) apply(resp *model.CheckResponse) {
	resp.MediaType = m.mediaType
	resp.MediaFilename = m.mediaFilename
	resp.ExtractedText = m.extractedText
	resp.URL = m.url
	resp.ArticleTitle = m.articleTitle
	resp.ArticleSource = m.articleSource
	resp.ArticlePreview = m.articlePreview
}

// resolveInput reduces the three input variants to claim text. Media
// extraction failures are fatal; URL extraction degrades to a
// URL-reference claim.
func (p *Pipeline) resolveInput(ctx context.Context, input model.RawInput) (string, inputMeta, error) {
	claimText := strings.TrimSpace(input.Text)
	var meta inputMeta

	switch {
	case input.Media != nil:
		if p.deps.Media == nil {
			return "", meta, fmt.Errorf("media input is not supported in this configuration")
		}
		extracted, err := p.deps.Media.Extract(ctx, *input.Media)
		if err != nil {
			return "", meta, err
		}
		meta.mediaType = input.Media.ContentType
		meta.mediaFilename = input.Media.Filename
		meta.extractedText = extracted

		if claimText != "" {
			claimText = fmt.Sprintf("%s\n\nContext from %s: %s", claimText, input.Media.Kind, extracted)
		} else {
			claimText = fmt.Sprintf("Claims from %s: %s", input.Media.Kind, extracted)
		}

	case input.URL != "":
		meta.url = input.URL
		if p.deps.Articles == nil {
			return "", meta, fmt.Errorf("URL input is not supported in this configuration")
		}
		article, err := p.deps.Articles.Extract(ctx, input.URL)
		if err != nil {
			// Never reject a URL input outright; research proceeds on
			// the reference alone.
			p.deps.Logf("article extraction failed: %v", err)
			claimText = fmt.Sprintf("Information from URL: %s", input.URL)
			break
		}
		meta.articleTitle = article.Title
		meta.articleSource = article.Source
		meta.articlePreview = preview(article.Text, 500)

		claimText = article.MainClaim
		if claimText == "" {
			claimText = fmt.Sprintf("Information from URL: %s", input.URL)
		}
		if article.Title != "" {
			claimText = fmt.Sprintf("%s\n\nSource article: %s (%s)", claimText, article.Title, article.Source)
		}

	case claimText == "":
		return "", meta, fmt.Errorf("empty input: provide claim text, a URL, or a media file")
	}

	return claimText, meta, nil
}

func buildResponse(claimText string, structured model.StructuredClaim, bundle model.ResearchBundle, v model.Verdict) *model.CheckResponse {
	resp := &model.CheckResponse{
		ClaimText:       claimText,
		Status:          v.Status,
		Explanation:     v.Explanation,
		Sources:         v.Sources,
		ResearchSummary: bundle.Primary.Summary,
		Findings:        bundle.Primary.Findings,
		Structured:      &structured,
		Discovery:       bundle.Discovery,
	}

	if !bundle.Primary.Available {
		resp.Notes = append(resp.Notes, "primary research unavailable")
	}
	if !bundle.Supplementary.Available {
		resp.Notes = append(resp.Notes, "supplementary research unavailable")
	}
	return resp
}

// responseFromEntry rebuilds the response surface from a cached run
func (p *Pipeline) responseFromEntry(claimText string, entry *model.CacheEntry) *model.CheckResponse {
	if entry.RejectedCategory != "" {
		return &model.CheckResponse{
			ClaimText:   claimText,
			Status:      model.StatusRejected,
			Explanation: "This request was previously rejected by content screening and cannot be processed.",
			Sources:     []string{},
			Cached:      true,
			CacheNote:   cacheNote,
		}
	}

	resp := buildResponse(claimText, entry.Structured, entry.Research, entry.Verdict)
	resp.Cached = true
	resp.CacheNote = cacheNote
	return resp
}

func preview(text string, limit int) string {
	text = strings.TrimSpace(text)
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
