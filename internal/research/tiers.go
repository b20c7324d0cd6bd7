package research

import (
	"strings"

	"veracity/internal/model"
)

// primaryDomains are official, government, academic, and wire-agency
// sources.
var primaryDomains = map[string]bool{
	"reuters.com": true,
	"apnews.com":  true,
	"afp.com":     true,

	"bbc.com":   true,
	"bbc.co.uk": true,
	"npr.org":   true,
	"pbs.org":   true,

	"europa.eu": true,
	"un.org":    true,
	"who.int":   true,

	"nature.com":              true,
	"sciencedirect.com":       true,
	"pubmed.ncbi.nlm.nih.gov": true,
}

// primarySuffixes cover government and academic TLD families
var primarySuffixes = []string{".gov", ".edu", ".ac.uk", ".gov.uk", ".gov.in"}

// secondaryDomains are established press and fact-checkers
var secondaryDomains = map[string]bool{
	"nytimes.com":        true,
	"washingtonpost.com": true,
	"theguardian.com":    true,
	"wsj.com":            true,
	"economist.com":      true,
	"ft.com":             true,

	"cnn.com":        true,
	"nbcnews.com":    true,
	"abcnews.go.com": true,
	"cbsnews.com":    true,

	"thehindu.com":      true,
	"indianexpress.com": true,
	"ndtv.com":          true,
	"indiatoday.in":     true,
	"deccanherald.com":  true,
	"thequint.com":      true,
	"scroll.in":         true,
	"theprint.in":       true,
	"livemint.com":      true,

	"snopes.com":     true,
	"factcheck.org":  true,
	"politifact.com": true,
	"altnews.in":     true,
}

// TierFor classifies a domain into a credibility tier
func TierFor(domain string) model.CredibilityTier {
	domain = strings.ToLower(strings.TrimPrefix(domain, "www."))

	if primaryDomains[domain] {
		return model.TierPrimary
	}
	for _, suffix := range primarySuffixes {
		if strings.HasSuffix(domain, suffix) {
			return model.TierPrimary
		}
	}

	if secondaryDomains[domain] {
		return model.TierSecondary
	}
	for known := range secondaryDomains {
		if strings.HasSuffix(domain, "."+known) {
			return model.TierSecondary
		}
	}

	return model.TierUnknown
}

// tierRank orders sources primary -> secondary -> unknown
func tierRank(tier model.CredibilityTier) int {
	switch tier {
	case model.TierPrimary:
		return 0
	case model.TierSecondary:
		return 1
	default:
		return 2
	}
}
