package app

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"checklist-assessment-service/internal/domain"
	"checklist-assessment-service/internal/quiz"
	"checklist-assessment-service/internal/scoring"
)

var (
	dummyNames  = []string{"Alice Johnson", "Bob Smith", "Carol Davis", "David Wilson", "Emma Brown", "Frank Miller"}
	dummyEmails = []string{"alice@example.com", "bob@test.com", "carol@demo.org", "david@sample.net", "emma@random.co", "frank@temp.io"}
	dummyText   = []string{
		"Thailand, Vietnam, Cambodia for backpacking trip",
		"India for spiritual journey",
		"Kenya and Tanzania for safari",
		"Peru for hiking Machu Picchu",
		"Morocco and Egypt for cultural tour",
		"2 weeks in Thailand, 1 week in Vietnam, 1 week in Cambodia",
		"3 weeks throughout India",
		"1 week Morocco, 1 week Egypt",
	}
)

// Seeder creates randomized submissions for smoke-testing the admin views.
// Answers are drawn from each criterion's options and scored by the catalog
// policy, so seeded records look like real ones.
type Seeder struct {
	submissions *SubmissionService
	catalogs    CatalogRepository
	catalogID   string

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSeeder(submissions *SubmissionService, catalogs CatalogRepository, catalogID string) *Seeder {
	return NewSeederWithRand(submissions, catalogs, catalogID, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewSeederWithRand is test-only for reproducible records.
func NewSeederWithRand(submissions *SubmissionService, catalogs CatalogRepository, catalogID string, rnd *rand.Rand) *Seeder {
	return &Seeder{submissions: submissions, catalogs: catalogs, catalogID: catalogID, rnd: rnd}
}

// CreateDummy stores one random submission and returns its id.
func (s *Seeder) CreateDummy(ctx context.Context) (int64, error) {
	c, err := s.catalogs.GetCatalog(ctx, s.catalogID)
	if err != nil {
		return 0, err
	}
	policy, err := scoring.For(c)
	if err != nil {
		return 0, fmt.Errorf("catalog %s: %w", c.ID, err)
	}
	acc := quiz.NewAccumulator(c, policy)

	s.mu.Lock()
	user := domain.UserInfo{
		Name:           pick(s.rnd, dummyNames),
		Email:          pick(s.rnd, dummyEmails),
		AccessorsName:  pick(s.rnd, dummyNames),
		AccessorsEmail: pick(s.rnd, dummyEmails),
	}
	rs := domain.ResponseSet{}
	for si, section := range c.Sections {
		for ci, criterion := range section.Criteria {
			// Leave roughly one in ten questions unanswered.
			if s.rnd.Intn(10) == 0 {
				continue
			}
			option := pick(s.rnd, dummyText)
			if criterion.InputType.IsChoice() {
				option = pick(s.rnd, criterion.Options)
			}
			if _, err := acc.SetAnswer(rs, si, ci, option); err != nil {
				s.mu.Unlock()
				return 0, err
			}
		}
	}
	s.mu.Unlock()

	return s.submissions.Record(ctx, "seed", user, rs, acc.Calculate(rs))
}

func pick(rnd *rand.Rand, from []string) string {
	if len(from) == 0 {
		return ""
	}
	return from[rnd.Intn(len(from))]
}
