package domain

// InputType selects how a criterion is answered and scored.
type InputType string

const (
	InputBinary    InputType = "binary"
	InputMultiple  InputType = "multiple"
	InputShortText InputType = "shortText"
	InputLongText  InputType = "longText"
)

// IsChoice reports whether the input type offers a fixed option list.
func (t InputType) IsChoice() bool {
	return t == InputBinary || t == InputMultiple
}

// IsText reports whether the input type is free text.
func (t InputType) IsText() bool {
	return t == InputShortText || t == InputLongText
}

// Known reports whether the input type is one of the supported kinds.
func (t InputType) Known() bool {
	return t.IsChoice() || t.IsText()
}

// ScoringPolicy names the strategy used for multiple-choice criteria.
type ScoringPolicy string

const (
	PolicyKeywordTier     ScoringPolicy = "keyword-tier"
	PolicyPositionalDecay ScoringPolicy = "positional-decay"
)

// Criterion is one scorable question within a section.
type Criterion struct {
	Description string    `json:"description" yaml:"description"`
	Points      int       `json:"points" yaml:"points"`
	InputType   InputType `json:"inputType" yaml:"inputType"`
	Options     []string  `json:"options,omitempty" yaml:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// Section groups criteria under a heading with a stated point total.
type Section struct {
	Name        string      `json:"section" yaml:"section"`
	TotalPoints int         `json:"totalPoints" yaml:"totalPoints"`
	Criteria    []Criterion `json:"criteria" yaml:"criteria"`
}

// Catalog is the ordered, immutable question definition for one assessment.
type Catalog struct {
	ID       string        `json:"id" yaml:"id"`
	Title    string        `json:"title,omitempty" yaml:"title,omitempty"`
	Scoring  ScoringPolicy `json:"scoring,omitempty" yaml:"scoring,omitempty"`
	// PositiveLabels extends the default set of binary labels that earn full points.
	PositiveLabels []string  `json:"positiveLabels,omitempty" yaml:"positiveLabels,omitempty"`
	Sections       []Section `json:"sections" yaml:"sections"`
}

// TotalQuestions counts criteria across all sections.
func (c Catalog) TotalQuestions() int {
	total := 0
	for _, s := range c.Sections {
		total += len(s.Criteria)
	}
	return total
}

// TotalPossible sums the stated section totals.
func (c Catalog) TotalPossible() int {
	total := 0
	for _, s := range c.Sections {
		total += s.TotalPoints
	}
	return total
}

// Criterion returns the criterion at (section, criterion) or ErrQuestionOutOfRange.
func (c Catalog) Criterion(section, criterion int) (Criterion, error) {
	if section < 0 || section >= len(c.Sections) {
		return Criterion{}, ErrQuestionOutOfRange
	}
	criteria := c.Sections[section].Criteria
	if criterion < 0 || criterion >= len(criteria) {
		return Criterion{}, ErrQuestionOutOfRange
	}
	return criteria[criterion], nil
}
