package scoring

import "checklist-assessment-service/internal/domain"

// PositionalFloor is the percentage awarded to the last listed option.
const PositionalFloor = 10

// PositionalDecay scores multiple-choice answers by their position in the
// option list: the first option earns 100%, decaying linearly to 10% for the
// last. Known quality keywords take precedence over position.
type PositionalDecay struct {
	rules rules
}

func NewPositionalDecay(opts ...Option) *PositionalDecay {
	return &PositionalDecay{rules: newRules(opts)}
}

func (p *PositionalDecay) Name() domain.ScoringPolicy { return domain.PolicyPositionalDecay }

func (p *PositionalDecay) Score(option string, c domain.Criterion) int {
	return p.rules.score(option, c, func(option string, c domain.Criterion) int {
		if percent, ok := KeywordPercent(option); ok {
			return percentOf(c.Points, percent)
		}
		idx := indexOf(c.Options, option)
		if idx < 0 {
			return percentOf(c.Points, TierFallback)
		}
		n := len(c.Options)
		if n == 1 {
			return c.Points
		}
		// percent = 100 - idx*(100-floor)/(n-1), kept as a fraction to round exactly.
		den := 100 * (n - 1)
		num := c.Points * (100*(n-1) - (100-PositionalFloor)*idx)
		if floor := c.Points * PositionalFloor * (n - 1); num < floor {
			num = floor
		}
		return roundHalfUp(num, den)
	})
}

func indexOf(options []string, option string) int {
	for i, o := range options {
		if o == option {
			return i
		}
	}
	return -1
}
