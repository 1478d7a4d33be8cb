package app_test

import (
	"context"
	"errors"
	"time"

	"checklist-assessment-service/internal/app"
	"checklist-assessment-service/internal/catalog"
	"checklist-assessment-service/internal/domain"
	"checklist-assessment-service/internal/infra/memory"
)

func smallCatalog() domain.Catalog {
	return domain.Catalog{
		ID: "small",
		Sections: []domain.Section{
			{
				Name:        "Introduction",
				TotalPoints: 8,
				Criteria: []domain.Criterion{
					{Description: "Introduced self", Points: 5, InputType: domain.InputBinary, Options: []string{"Yes", "No"}},
					{Description: "Rapport", Points: 3, InputType: domain.InputMultiple, Options: []string{"Excellent", "Good", "Fair", "Poor"}},
				},
			},
			{
				Name:        "History",
				TotalPoints: 2,
				Criteria: []domain.Criterion{
					{Description: "Destination", Points: 2, InputType: domain.InputShortText},
				},
			},
		},
	}
}

func catalogs() app.CatalogRepository {
	all := catalog.Builtin()
	all["small"] = smallCatalog()
	return memory.NewCatalogRepository(memory.NewStaticCatalogLoader(all), time.Minute)
}

var fixedNow = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }

// failingStore rejects every write.
type failingStore struct {
	*memory.SubmissionStore
}

var errStorageDown = errors.New("storage down")

func (failingStore) Save(context.Context, domain.SubmissionRecord) (int64, error) {
	return 0, errStorageDown
}
