package scoring

import "checklist-assessment-service/internal/domain"

// Tier percentages for multiple-choice keywords.
const (
	TierExcellent     = 100
	TierGood          = 75
	TierFair          = 50
	TierPoor          = 0
	TierNotApplicable = 100
	TierFallback      = 25
)

var keywordTiers = buildTiers(map[int][]string{
	TierExcellent: {
		"Excellent",
		"Comprehensive",
		"Detailed explanation",
		"Actively encouraged",
		"Complete and accurate",
		"Arranged when needed",
		"Discussed thoroughly",
		"Used multiple sources",
	},
	TierGood: {
		"Good",
		"Adequate",
		"Basic advice",
		"Responded well",
		"Mostly complete",
		"Used one source",
	},
	TierFair: {
		"Fair",
		"Basic",
		"Brief mention",
		"Minimal encouragement",
		"Basic documentation",
		"Mentioned briefly",
		"Discussed briefly",
	},
	TierPoor: {
		"Poor",
		"Inadequate",
		"Not discussed",
		"Discouraged questions",
		"Relied on memory",
		"No consultation",
	},
})

// N/A answers share the 100% value with the excellent tier, so they are kept
// in their own table.
var notApplicable = map[string]struct{}{
	"Not applicable":       {},
	"Not needed":           {},
	"Should have arranged": {},
	"Unclear":              {},
}

func buildTiers(in map[int][]string) map[string]int {
	out := make(map[string]int)
	for percent, words := range in {
		for _, w := range words {
			out[w] = percent
		}
	}
	return out
}

// KeywordPercent returns the tier percentage for an exact option string.
func KeywordPercent(option string) (int, bool) {
	if p, ok := keywordTiers[option]; ok {
		return p, true
	}
	if _, ok := notApplicable[option]; ok {
		return TierNotApplicable, true
	}
	return 0, false
}

// KeywordTier scores multiple-choice answers by quality keyword, falling back
// to 25% for options outside the known tiers.
type KeywordTier struct {
	rules rules
}

func NewKeywordTier(opts ...Option) *KeywordTier {
	return &KeywordTier{rules: newRules(opts)}
}

func (p *KeywordTier) Name() domain.ScoringPolicy { return domain.PolicyKeywordTier }

func (p *KeywordTier) Score(option string, c domain.Criterion) int {
	return p.rules.score(option, c, func(option string, c domain.Criterion) int {
		if percent, ok := KeywordPercent(option); ok {
			return percentOf(c.Points, percent)
		}
		return percentOf(c.Points, TierFallback)
	})
}
