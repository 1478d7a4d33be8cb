package domain

// Answer is a recorded selection and the points it earned.
type Answer struct {
	SelectedOption string `json:"selectedOption"`
	Points         int    `json:"points"`
}

// ResponseSet maps sectionIndex -> criterionIndex -> Answer.
// Keys exist only for answered criteria.
type ResponseSet map[int]map[int]Answer

// Put stores an answer, replacing any previous one at the same key.
func (r ResponseSet) Put(section, criterion int, a Answer) {
	if r[section] == nil {
		r[section] = make(map[int]Answer)
	}
	r[section][criterion] = a
}

// Get returns the answer at the key, if any.
func (r ResponseSet) Get(section, criterion int) (Answer, bool) {
	a, ok := r[section][criterion]
	return a, ok
}

// Len counts recorded answers.
func (r ResponseSet) Len() int {
	n := 0
	for _, answers := range r {
		n += len(answers)
	}
	return n
}

// Clone returns a deep copy.
func (r ResponseSet) Clone() ResponseSet {
	out := make(ResponseSet, len(r))
	for s, answers := range r {
		inner := make(map[int]Answer, len(answers))
		for c, a := range answers {
			inner[c] = a
		}
		out[s] = inner
	}
	return out
}

// SectionScore is the rollup of awarded vs possible points for one section.
type SectionScore struct {
	Section     string `json:"section"`
	Score       int    `json:"score"`
	TotalPoints int    `json:"totalPoints"`
}

// ScoreSummary is the aggregate result of a response set.
type ScoreSummary struct {
	TotalScore    int            `json:"totalScore"`
	SectionScores []SectionScore `json:"sectionScores"`
}
