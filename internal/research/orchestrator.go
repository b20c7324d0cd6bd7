// Package research fans a structured claim out to a primary
// deep-research provider and a supplementary discovery provider in
// parallel, joining on both before synthesis. Either slot may fail or
// time out without aborting the other; the orchestrator always returns
// a bundle.
package research

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"veracity/internal/model"
)

// Provider is the primary deep-research collaborator
type Provider interface {
	Research(ctx context.Context, query string, claim model.StructuredClaim) (model.ResearchResult, error)
}

// DiscoveryProvider is the supplementary social-discussion
// collaborator. It surfaces outbound links only; engagement signals
// never enter the payload.
type DiscoveryProvider interface {
	Discover(ctx context.Context, query string, claim model.StructuredClaim) (*model.DiscoveryAnalysis, error)
}

// Orchestrator runs the two providers concurrently with independent
// per-slot timeouts.
type Orchestrator struct {
	primary   Provider
	discovery DiscoveryProvider

	primaryTimeout   time.Duration
	discoveryTimeout time.Duration
}

// NewOrchestrator wires the two providers. Either provider may be
// nil, in which case its slot is always unavailable.
func NewOrchestrator(primary Provider, discovery DiscoveryProvider, primaryTimeout, discoveryTimeout time.Duration) *Orchestrator {
	if primaryTimeout <= 0 {
		primaryTimeout = 60 * time.Second
	}
	if discoveryTimeout <= 0 {
		discoveryTimeout = 30 * time.Second
	}
	return &Orchestrator{
		primary:          primary,
		discovery:        discovery,
		primaryTimeout:   primaryTimeout,
		discoveryTimeout: discoveryTimeout,
	}
}

// Research dispatches both providers and joins on both. A provider
// failure or timeout marks its slot unavailable rather than erroring:
// losing one (or both) providers is not a fatal condition.
func (o *Orchestrator) Research(ctx context.Context, query string, claim model.StructuredClaim) model.ResearchBundle {
	var bundle model.ResearchBundle

	var g errgroup.Group

	g.Go(func() error {
		if o.primary == nil {
			bundle.Primary = emptySlot(model.WeightHigh)
			return nil
		}

		pctx, cancel := context.WithTimeout(ctx, o.primaryTimeout)
		defer cancel()

		result, err := o.primary.Research(pctx, query, claim)
		if err != nil {
			bundle.Primary = emptySlot(model.WeightHigh)
			return nil
		}
		result.Weight = model.WeightHigh
		result.Available = true
		bundle.Primary = result
		return nil
	})

	g.Go(func() error {
		if o.discovery == nil {
			bundle.Supplementary = emptySlot(model.WeightLow)
			return nil
		}

		dctx, cancel := context.WithTimeout(ctx, o.discoveryTimeout)
		defer cancel()

		analysis, err := o.discovery.Discover(dctx, query, claim)
		if err != nil || analysis == nil {
			bundle.Supplementary = emptySlot(model.WeightLow)
			return nil
		}
		bundle.Discovery = analysis
		bundle.Supplementary = supplementaryResult(analysis)
		return nil
	})

	// Goroutines always return nil; Wait is a pure join
	_ = g.Wait()

	return bundle
}

func emptySlot(weight model.EvidenceWeight) model.ResearchResult {
	return model.ResearchResult{
		Findings:  []string{},
		Sources:   []string{},
		Weight:    weight,
		Available: false,
	}
}

// supplementaryResult flattens a discovery analysis into the low-tier
// research slot: discussion summary plus the discovered source URLs.
func supplementaryResult(analysis *model.DiscoveryAnalysis) model.ResearchResult {
	sources := make([]string, 0, len(analysis.ExternalSources))
	findings := make([]string, 0, len(analysis.ExternalSources))
	for _, src := range analysis.ExternalSources {
		sources = append(sources, src.URL)
		if src.Title != "" {
			findings = append(findings, "["+string(src.Tier)+"] "+src.Domain+": "+src.Title)
		}
	}

	summary := analysis.DiscussionSummary
	if summary == "" {
		summary = analysis.AnalysisNote
	}

	return model.ResearchResult{
		Summary:   summary,
		Findings:  findings,
		Sources:   sources,
		Weight:    model.WeightLow,
		Available: true,
	}
}
