package research

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"veracity/internal/model"
)

const discoveryBaseURL = "https://api.twitter.com/2"

// shorteners whose expanded URL still needs unwinding
var shorteners = []string{"bit.ly", "t.co", "tinyurl"}

// XDiscovery searches social-media discussion of a claim and extracts
// only outbound links to external domains. The platform is never a
// source of truth: engagement metrics are not read, and discovered
// links carry LOW evidentiary weight downstream.
type XDiscovery struct {
	httpClient  *http.Client
	bearerToken string
	baseURL     string
	searchLimit int
}

// NewXDiscovery creates the supplementary discovery provider
func NewXDiscovery(bearerToken string, searchLimit int, httpClient *http.Client) (*XDiscovery, error) {
	if bearerToken == "" {
		return nil, fmt.Errorf("discovery bearer token is required")
	}
	if searchLimit <= 0 {
		searchLimit = 25
	}
	if searchLimit > 100 {
		searchLimit = 100
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &XDiscovery{
		httpClient:  httpClient,
		bearerToken: bearerToken,
		baseURL:     discoveryBaseURL,
		searchLimit: searchLimit,
	}, nil
}

type urlEntity struct {
	ExpandedURL string `json:"expanded_url"`
	UnwoundURL  string `json:"unwound_url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type discoveredPost struct {
	Entities struct {
		URLs []urlEntity `json:"urls"`
	} `json:"entities"`
}

type searchResponse struct {
	Data []discoveredPost `json:"data"`
}

// Discover searches recent discussion for posts carrying links and
// returns the classified external sources found.
func (d *XDiscovery) Discover(ctx context.Context, query string, claim model.StructuredClaim) (*model.DiscoveryAnalysis, error) {
	searchQuery := buildDiscoveryQuery(query, claim)

	posts, err := d.searchPosts(ctx, searchQuery)
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return &model.DiscoveryAnalysis{
			HasRelevantPosts:  false,
			PostsAnalyzed:     0,
			ExternalSources:   []model.ExternalSource{},
			DiscussionSummary: "No relevant posts found discussing this claim.",
			AnalysisNote:      "No verifiable external sources found via discussion search.",
			SearchQueryUsed:   searchQuery,
		}, nil
	}

	sources := extractExternalSources(posts)

	return &model.DiscoveryAnalysis{
		HasRelevantPosts:  true,
		PostsAnalyzed:     len(posts),
		ExternalSources:   sources,
		DiscussionSummary: summarizeDiscussion(posts, sources),
		AnalysisNote:      analysisNote(sources),
		SearchQueryUsed:   searchQuery,
	}, nil
}

func (d *XDiscovery) searchPosts(ctx context.Context, query string) ([]discoveredPost, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", strconv.Itoa(d.searchLimit))
	params.Set("tweet.fields", "entities,created_at")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/tweets/search/recent?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+d.bearerToken)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discovery search: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("discovery search: authentication failed")
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("discovery search: rate limited")
	default:
		return nil, fmt.Errorf("discovery search: unexpected status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return decoded.Data, nil
}

// buildDiscoveryQuery favors the top entities for broad matching,
// filters to posts carrying links, and excludes reposts.
func buildDiscoveryQuery(query string, claim model.StructuredClaim) string {
	var base string
	if len(claim.Entities) > 0 {
		limit := len(claim.Entities)
		if limit > 2 {
			limit = 2
		}
		base = strings.Join(claim.Entities[:limit], " ")
	} else {
		source := claim.Claim
		if source == "" {
			source = query
		}
		var words []string
		for _, w := range strings.Fields(source) {
			if len(w) > 3 {
				words = append(words, w)
			}
			if len(words) == 4 {
				break
			}
		}
		base = strings.Join(words, " ")
	}

	full := base + " has:links -is:retweet"
	if len(full) > 500 {
		full = full[:500]
	}
	return full
}

// extractExternalSources collects outbound links, one per domain,
// classified by credibility tier and ordered primary-first. Platform
// internal links are skipped; engagement data is never read.
func extractExternalSources(posts []discoveredPost) []model.ExternalSource {
	var sources []model.ExternalSource
	seen := make(map[string]bool)

	for _, post := range posts {
		for _, entity := range post.Entities.URLs {
			link := entity.ExpandedURL
			if link == "" || strings.Contains(link, "twitter.com") || strings.Contains(link, "x.com") {
				continue
			}
			for _, s := range shorteners {
				if strings.Contains(link, s) && entity.UnwoundURL != "" {
					link = entity.UnwoundURL
					break
				}
			}

			parsed, err := url.Parse(link)
			if err != nil || parsed.Host == "" {
				continue
			}
			domain := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
			if seen[domain] {
				continue
			}
			seen[domain] = true

			description := entity.Description
			if len(description) > 200 {
				description = description[:200]
			}

			sources = append(sources, model.ExternalSource{
				URL:         link,
				Domain:      domain,
				Title:       entity.Title,
				Description: description,
				Tier:        TierFor(domain),
			})
		}
	}

	sort.SliceStable(sources, func(i, j int) bool {
		return tierRank(sources[i].Tier) < tierRank(sources[j].Tier)
	})

	if len(sources) > 10 {
		sources = sources[:10]
	}
	return sources
}

func summarizeDiscussion(posts []discoveredPost, sources []model.ExternalSource) string {
	credible := 0
	for _, src := range sources {
		if src.Tier == model.TierPrimary || src.Tier == model.TierSecondary {
			credible++
		}
	}

	summary := fmt.Sprintf("Found %d posts discussing this topic. ", len(posts))
	if credible > 0 {
		summary += fmt.Sprintf("%d linked to credible news sources or official websites.", credible)
	} else {
		summary += "No posts contained links to credible news sources."
	}
	return summary
}

func analysisNote(sources []model.ExternalSource) string {
	if len(sources) == 0 {
		return "No verifiable external sources found via discussion search."
	}

	primary, secondary := 0, 0
	for _, src := range sources {
		switch src.Tier {
		case model.TierPrimary:
			primary++
		case model.TierSecondary:
			secondary++
		}
	}

	switch {
	case primary > 0:
		return fmt.Sprintf("Discussion linked to %d primary source(s) and %d secondary source(s) that may corroborate research findings.", primary, secondary)
	case secondary > 0:
		return fmt.Sprintf("Discussion linked to %d secondary news source(s) that may provide additional context.", secondary)
	default:
		return "Discussion linked only to sources of unknown credibility."
	}
}
