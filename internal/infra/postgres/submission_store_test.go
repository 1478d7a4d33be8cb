package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"checklist-assessment-service/internal/domain"
)

var responseColumns = []string{
	"id", "name", "email", "accessors_name", "accessors_email",
	"responses", "total_score", "section_scores", "completed_at",
}

func newMockStore(t *testing.T) (*SubmissionStore, sqlmock.Sqlmock) {
	t.Helper()
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return NewSubmissionStore(db), mock
}

func TestSubmissionStoreSave(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "quiz_responses"`) + `.*` + regexp.QuoteMeta(`RETURNING "id"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := store.Save(context.Background(), domain.SubmissionRecord{
		Name:          "Jane Doe",
		Email:         domain.EmailNotProvided,
		Responses:     `{"0":{"0":{"selectedOption":"Yes","points":5}}}`,
		TotalScore:    5,
		SectionScores: "[]",
		CompletedAt:   time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionStoreSaveFailure(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "quiz_responses"`)).WillReturnError(errors.New("connection refused"))

	_, err := store.Save(context.Background(), domain.SubmissionRecord{Name: "Jane"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSubmissionStoreListNewestFirst(t *testing.T) {
	store, mock := newMockStore(t)
	newer := time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)
	older := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "quiz_responses" AS "qr" ORDER BY completed_at DESC, id DESC`)).
		WillReturnRows(sqlmock.NewRows(responseColumns).
			AddRow(int64(2), "Bob", "bob@test.com", "Dr A", "a@clinic.org", "{}", 9, "[]", newer).
			AddRow(int64(1), "Alice", domain.EmailNotProvided, nil, nil, "{}", 3, "[]", older))

	records, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Bob", records[0].Name)
	assert.Equal(t, "Dr A", records[0].AccessorsName)
	assert.Equal(t, "", records[1].AccessorsName)
	assert.True(t, records[0].CompletedAt.Equal(newer))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionStoreGet(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE (id = 3)`)).
		WillReturnRows(sqlmock.NewRows(responseColumns).
			AddRow(int64(3), "Carol", "carol@demo.org", nil, nil, "{}", 12, "[]", time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE (id = 4)`)).
		WillReturnRows(sqlmock.NewRows(responseColumns))

	rec, err := store.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 12, rec.TotalScore)

	_, err = store.Get(context.Background(), 4)
	assert.ErrorIs(t, err, domain.ErrSubmissionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionStoreDeleteTwice(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "quiz_responses"`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "quiz_responses"`)).WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := store.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
