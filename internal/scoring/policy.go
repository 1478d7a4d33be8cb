package scoring

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"checklist-assessment-service/internal/domain"
)

// DefaultTextMinLength is the trimmed length a text answer needs for full points.
const DefaultTextMinLength = 3

// Policy maps a selected option to awarded points for one criterion.
// Implementations always return a value in [0, criterion.Points].
type Policy interface {
	Name() domain.ScoringPolicy
	Score(option string, c domain.Criterion) int
}

// Option tunes the rules shared by every policy.
type Option func(*rules)

// WithPositiveLabels adds binary labels that earn full points.
func WithPositiveLabels(labels ...string) Option {
	return func(r *rules) { r.extra = append(r.extra, labels...) }
}

// WithTextMinLength overrides the minimum trimmed length for text answers.
func WithTextMinLength(n int) Option {
	return func(r *rules) {
		if n > 0 {
			r.textMin = n
		}
	}
}

// For builds the policy a catalog asks for. An empty name selects keyword tiers.
func For(c domain.Catalog, opts ...Option) (Policy, error) {
	opts = append([]Option{WithPositiveLabels(c.PositiveLabels...)}, opts...)
	switch c.Scoring {
	case "", domain.PolicyKeywordTier:
		return NewKeywordTier(opts...), nil
	case domain.PolicyPositionalDecay:
		return NewPositionalDecay(opts...), nil
	default:
		return nil, fmt.Errorf("unknown scoring policy %q", c.Scoring)
	}
}

// rules holds the behaviour common to all policies; only multiple-choice
// scoring differs between them.
type rules struct {
	extra   []string
	textMin int
	labels  LabelSet
}

func newRules(opts []Option) rules {
	r := rules{textMin: DefaultTextMinLength}
	for _, opt := range opts {
		opt(&r)
	}
	r.labels = NewLabelSet(r.extra)
	return r
}

func (r rules) score(option string, c domain.Criterion, multiple func(string, domain.Criterion) int) int {
	if c.Points <= 0 || strings.TrimSpace(option) == "" {
		return 0
	}
	var points int
	switch c.InputType {
	case domain.InputBinary:
		if r.labels.Positive(option) {
			points = c.Points
		}
	case domain.InputMultiple:
		points = multiple(option, c)
	case domain.InputShortText, domain.InputLongText:
		if utf8.RuneCountInString(strings.TrimSpace(option)) >= r.textMin {
			points = c.Points
		}
	default:
		return 0
	}
	return clamp(points, c.Points)
}

// percentOf returns points*percent/100 rounded half up.
func percentOf(points, percent int) int {
	return roundHalfUp(points*percent, 100)
}

func roundHalfUp(num, den int) int {
	if den <= 0 || num <= 0 {
		return 0
	}
	return (2*num + den) / (2 * den)
}

func clamp(v, limit int) int {
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}
