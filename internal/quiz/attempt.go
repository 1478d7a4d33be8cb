package quiz

import (
	"encoding/json"
	"time"

	"checklist-assessment-service/internal/domain"
)

// Stage is the lifecycle position of an attempt.
type Stage string

const (
	// StagePending waits for user info; no question is shown yet.
	StagePending    Stage = "pending"
	StageInProgress Stage = "in_progress"
	// StageCompleted is terminal until Reset.
	StageCompleted Stage = "completed"
)

// Attempt is the navigation state of one in-progress assessment. All changes
// go through its transition methods.
type Attempt struct {
	id        string
	catalogID string
	now       func() time.Time

	stage     Stage
	user      domain.UserInfo
	section   int
	criterion int
	responses domain.ResponseSet
	summary   domain.ScoreSummary
	updatedAt time.Time
}

func NewAttempt(id, catalogID string) *Attempt {
	return NewAttemptWithClock(id, catalogID, time.Now)
}

// NewAttemptWithClock allows deterministic timestamps in tests.
func NewAttemptWithClock(id, catalogID string, now func() time.Time) *Attempt {
	a := &Attempt{id: id, catalogID: catalogID, now: now}
	a.Reset()
	return a
}

func (a *Attempt) ID() string { return a.id }

func (a *Attempt) CatalogID() string { return a.catalogID }

func (a *Attempt) Stage() Stage { return a.stage }

func (a *Attempt) User() domain.UserInfo { return a.user }

func (a *Attempt) UpdatedAt() time.Time { return a.updatedAt }

// Position returns the current (section, criterion) indices.
func (a *Attempt) Position() (int, int) { return a.section, a.criterion }

func (a *Attempt) Completed() bool { return a.stage == StageCompleted }

// Responses returns a copy of the recorded answers.
func (a *Attempt) Responses() domain.ResponseSet { return a.responses.Clone() }

// Summary returns the scores computed on completion.
func (a *Attempt) Summary() (domain.ScoreSummary, bool) {
	return a.summary, a.stage == StageCompleted
}

// Begin captures user info and moves to the first question.
func (a *Attempt) Begin(gate Gate, info domain.UserInfo) error {
	if a.stage != StagePending {
		return domain.ErrAttemptStarted
	}
	if err := gate.Check(info); err != nil {
		return err
	}
	a.user = gate.Normalize(info)
	a.stage = StageInProgress
	a.section, a.criterion = 0, 0
	a.touch()
	return nil
}

// Answer scores and records an option for any question of the catalog.
func (a *Attempt) Answer(acc *Accumulator, section, criterion int, option string) (domain.Answer, error) {
	if err := a.requireInProgress(); err != nil {
		return domain.Answer{}, err
	}
	answer, err := acc.SetAnswer(a.responses, section, criterion, option)
	if err != nil {
		return domain.Answer{}, err
	}
	a.touch()
	return answer, nil
}

// Advance moves to the next question; past the last one the attempt is
// completed and its scores are calculated.
func (a *Attempt) Advance(acc *Accumulator) error {
	if err := a.requireInProgress(); err != nil {
		return err
	}
	sections := acc.Catalog().Sections
	if a.section >= len(sections) {
		return domain.ErrQuestionOutOfRange
	}
	switch {
	case a.criterion < len(sections[a.section].Criteria)-1:
		a.criterion++
	case a.section < len(sections)-1:
		a.section++
		a.criterion = 0
	default:
		a.summary = acc.Calculate(a.responses)
		a.stage = StageCompleted
	}
	a.touch()
	return nil
}

// Retreat moves to the previous question. At the first question it does nothing.
func (a *Attempt) Retreat(acc *Accumulator) error {
	if err := a.requireInProgress(); err != nil {
		return err
	}
	switch {
	case a.criterion > 0:
		a.criterion--
	case a.section > 0 && a.section <= len(acc.Catalog().Sections):
		a.section--
		a.criterion = len(acc.Catalog().Sections[a.section].Criteria) - 1
	default:
		return nil
	}
	a.touch()
	return nil
}

// Reset returns to the pending state, discarding user info and answers.
func (a *Attempt) Reset() {
	a.stage = StagePending
	a.user = domain.UserInfo{}
	a.section, a.criterion = 0, 0
	a.responses = domain.ResponseSet{}
	a.summary = domain.ScoreSummary{}
	a.touch()
}

// CurrentQuestionNumber is the 1-based position in the flattened question list.
func (a *Attempt) CurrentQuestionNumber(c domain.Catalog) int {
	n := 0
	for i := 0; i < a.section && i < len(c.Sections); i++ {
		n += len(c.Sections[i].Criteria)
	}
	return n + a.criterion + 1
}

// ProgressPercent is CurrentQuestionNumber as a percentage of all questions.
func (a *Attempt) ProgressPercent(c domain.Catalog) float64 {
	total := c.TotalQuestions()
	if total == 0 {
		return 0
	}
	return 100 * float64(a.CurrentQuestionNumber(c)) / float64(total)
}

func (a *Attempt) requireInProgress() error {
	switch a.stage {
	case StagePending:
		return domain.ErrAttemptNotStarted
	case StageCompleted:
		return domain.ErrAttemptCompleted
	}
	return nil
}

func (a *Attempt) touch() {
	if a.now != nil {
		a.updatedAt = a.now()
	}
}

// View is the client-facing snapshot of an attempt.
type View struct {
	ID                    string               `json:"id"`
	CatalogID             string               `json:"catalogId"`
	Stage                 Stage                `json:"stage"`
	User                  *domain.UserInfo     `json:"user,omitempty"`
	Section               int                  `json:"section"`
	Criterion             int                  `json:"criterion"`
	CurrentQuestion       *domain.Criterion    `json:"currentQuestion,omitempty"`
	CurrentQuestionNumber int                  `json:"currentQuestionNumber"`
	TotalQuestions        int                  `json:"totalQuestions"`
	ProgressPercent       float64              `json:"progressPercent"`
	Responses             domain.ResponseSet   `json:"responses"`
	Summary               *domain.ScoreSummary `json:"summary,omitempty"`
	UpdatedAt             time.Time            `json:"updatedAt"`
}

// View renders the attempt against its catalog.
func (a *Attempt) View(c domain.Catalog) View {
	v := View{
		ID:                    a.id,
		CatalogID:             a.catalogID,
		Stage:                 a.stage,
		Section:               a.section,
		Criterion:             a.criterion,
		CurrentQuestionNumber: a.CurrentQuestionNumber(c),
		TotalQuestions:        c.TotalQuestions(),
		ProgressPercent:       a.ProgressPercent(c),
		Responses:             a.Responses(),
		UpdatedAt:             a.updatedAt,
	}
	if a.stage != StagePending {
		user := a.user
		v.User = &user
	}
	if a.stage == StageInProgress {
		if cr, err := c.Criterion(a.section, a.criterion); err == nil {
			v.CurrentQuestion = &cr
		}
	}
	if a.stage == StageCompleted {
		summary := a.summary
		v.Summary = &summary
	}
	return v
}

// snapshot is the stored form used by attempt stores.
type snapshot struct {
	ID        string              `json:"id"`
	CatalogID string              `json:"catalogId"`
	Stage     Stage               `json:"stage"`
	User      domain.UserInfo     `json:"user"`
	Section   int                 `json:"section"`
	Criterion int                 `json:"criterion"`
	Responses domain.ResponseSet  `json:"responses"`
	Summary   domain.ScoreSummary `json:"summary"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func (a *Attempt) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshot{
		ID:        a.id,
		CatalogID: a.catalogID,
		Stage:     a.stage,
		User:      a.user,
		Section:   a.section,
		Criterion: a.criterion,
		Responses: a.responses,
		Summary:   a.summary,
		UpdatedAt: a.updatedAt,
	})
}

func (a *Attempt) UnmarshalJSON(data []byte) error {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s.Responses == nil {
		s.Responses = domain.ResponseSet{}
	}
	*a = Attempt{
		id:        s.ID,
		catalogID: s.CatalogID,
		now:       time.Now,
		stage:     s.Stage,
		user:      s.User,
		section:   s.Section,
		criterion: s.Criterion,
		responses: s.Responses,
		summary:   s.Summary,
		updatedAt: s.UpdatedAt,
	}
	return nil
}
