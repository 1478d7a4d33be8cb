package catalog

import (
	"fmt"
	"strings"

	"checklist-assessment-service/internal/domain"
	"checklist-assessment-service/internal/scoring"
)

// MalformedError lists every authoring problem found in a catalog.
type MalformedError struct {
	CatalogID string
	Problems  []string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("catalog %q is malformed: %s", e.CatalogID, strings.Join(e.Problems, "; "))
}

// Validate checks the authoring invariants of a catalog, including that each
// section's stated total equals the sum of its criteria points.
func Validate(c domain.Catalog) error {
	m := &MalformedError{CatalogID: c.ID}
	add := func(format string, args ...any) {
		m.Problems = append(m.Problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(c.ID) == "" {
		add("missing id")
	}
	switch c.Scoring {
	case "", domain.PolicyKeywordTier, domain.PolicyPositionalDecay:
	default:
		add("unknown scoring policy %q", c.Scoring)
	}
	if len(c.Sections) == 0 {
		add("no sections")
	}

	for si, s := range c.Sections {
		if strings.TrimSpace(s.Name) == "" {
			add("section %d: missing name", si)
		}
		if len(s.Criteria) == 0 {
			add("section %d (%s): no criteria", si, s.Name)
		}
		sum := 0
		for ci, cr := range s.Criteria {
			where := fmt.Sprintf("section %d criterion %d", si, ci)
			if cr.Points < 0 {
				add("%s: negative points", where)
			}
			sum += cr.Points
			switch {
			case !cr.InputType.Known():
				add("%s: unknown input type %q", where, cr.InputType)
			case cr.InputType.IsChoice() && len(cr.Options) == 0:
				add("%s: %s criterion without options", where, cr.InputType)
			case cr.InputType.IsText() && len(cr.Options) > 0:
				add("%s: %s criterion must not list options", where, cr.InputType)
			}
			if cr.InputType == domain.InputBinary && len(cr.Options) > 0 && !hasPositive(cr.Options, c.PositiveLabels) {
				add("%s: no option is a recognised positive label", where)
			}
		}
		if sum != s.TotalPoints {
			add("section %d (%s): totalPoints %d but criteria sum to %d", si, s.Name, s.TotalPoints, sum)
		}
	}

	if len(m.Problems) > 0 {
		return m
	}
	return nil
}

func hasPositive(options, extra []string) bool {
	labels := scoring.NewLabelSet(extra)
	for _, o := range options {
		if labels.Positive(o) {
			return true
		}
	}
	return false
}
