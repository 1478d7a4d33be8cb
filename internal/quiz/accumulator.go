package quiz

import (
	"checklist-assessment-service/internal/domain"
	"checklist-assessment-service/internal/scoring"
)

// Accumulator records scored answers for one catalog.
type Accumulator struct {
	catalog domain.Catalog
	policy  scoring.Policy
}

func NewAccumulator(c domain.Catalog, p scoring.Policy) *Accumulator {
	return &Accumulator{catalog: c, policy: p}
}

// Catalog returns the catalog answers are scored against.
func (a *Accumulator) Catalog() domain.Catalog {
	return a.catalog
}

// SetAnswer scores the option and stores it, replacing any previous answer
// for the same criterion.
func (a *Accumulator) SetAnswer(rs domain.ResponseSet, section, criterion int, option string) (domain.Answer, error) {
	c, err := a.catalog.Criterion(section, criterion)
	if err != nil {
		return domain.Answer{}, err
	}
	answer := domain.Answer{SelectedOption: option, Points: a.policy.Score(option, c)}
	rs.Put(section, criterion, answer)
	return answer, nil
}

// Calculate folds the response set into section and total scores.
func (a *Accumulator) Calculate(rs domain.ResponseSet) domain.ScoreSummary {
	return CalculateScores(a.catalog, rs)
}

// CalculateScores sums recorded points per catalog section. Unanswered criteria
// contribute zero; answers at indices outside the catalog are ignored.
func CalculateScores(c domain.Catalog, rs domain.ResponseSet) domain.ScoreSummary {
	summary := domain.ScoreSummary{SectionScores: make([]domain.SectionScore, 0, len(c.Sections))}
	for si, section := range c.Sections {
		score := 0
		if answers, ok := rs[si]; ok {
			for ci := range section.Criteria {
				if a, ok := answers[ci]; ok {
					score += a.Points
				}
			}
		}
		summary.SectionScores = append(summary.SectionScores, domain.SectionScore{
			Section:     section.Name,
			Score:       score,
			TotalPoints: section.TotalPoints,
		})
		summary.TotalScore += score
	}
	return summary
}
