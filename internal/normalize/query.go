package normalize

import (
	"strings"

	"veracity/internal/model"
)

const (
	minQueryLen = 50
	maxQueryLen = 200
)

// vague time periods that add nothing to a search query
var vaguePeriods = map[string]bool{
	"recent":  true,
	"now":     true,
	"current": true,
	"unknown": true,
}

// SearchQuery builds an optimized research query from a structured
// claim: claim text first, then a concrete time period and short
// context, topped up with entities when the query is thin.
func SearchQuery(sc model.StructuredClaim) string {
	var parts []string

	if sc.Claim != "" {
		parts = append(parts, sc.Claim)
	}
	if sc.TimePeriod != "" && !vaguePeriods[strings.ToLower(sc.TimePeriod)] {
		parts = append(parts, sc.TimePeriod)
	}
	if sc.Context != "" && len(sc.Context) < 100 {
		parts = append(parts, sc.Context)
	}

	query := strings.Join(parts, " ")

	if len(query) < minQueryLen && len(sc.Entities) > 0 {
		limit := len(sc.Entities)
		if limit > 3 {
			limit = 3
		}
		query = strings.TrimSpace(query + " " + strings.Join(sc.Entities[:limit], " "))
	}

	if len(query) > maxQueryLen {
		query = sc.Claim
		if len(query) > maxQueryLen {
			query = query[:maxQueryLen]
		}
	}

	if strings.TrimSpace(query) == "" {
		query = sc.OriginalInput
		if len(query) > maxQueryLen {
			query = query[:maxQueryLen]
		}
	}

	return strings.TrimSpace(query)
}
