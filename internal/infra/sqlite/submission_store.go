package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"checklist-assessment-service/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// timeLayout is fixed-width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000Z"

// SubmissionStore persists submissions in a local SQLite file.
type SubmissionStore struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates or opens the database at path, applies pragmas and makes sure
// the quiz_responses table has every column. Safe to call on an existing file.
func Open(path string) (*SubmissionStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &SubmissionStore{db: db, now: time.Now}, nil
}

func (s *SubmissionStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	// Files created before assessor fields existed lack these columns.
	existing, err := columns(db, "quiz_responses")
	if err != nil {
		return err
	}
	for _, col := range []string{"accessors_name", "accessors_email"} {
		if existing[col] {
			continue
		}
		if _, err := db.Exec(fmt.Sprintf("ALTER TABLE quiz_responses ADD COLUMN %s TEXT", col)); err != nil {
			return fmt.Errorf("failed to add column %s: %w", col, err)
		}
	}
	return nil
}

func columns(db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			dfltValue  sql.NullString
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &primaryKey); err != nil {
			return nil, err
		}
		out[name] = true
	}
	return out, rows.Err()
}

func (s *SubmissionStore) Save(ctx context.Context, rec domain.SubmissionRecord) (int64, error) {
	completedAt := rec.CompletedAt
	if completedAt.IsZero() {
		completedAt = s.now()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO quiz_responses
			(name, email, accessors_name, accessors_email, responses, total_score, section_scores, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Name,
		rec.Email,
		nullable(rec.AccessorsName),
		nullable(rec.AccessorsEmail),
		rec.Responses,
		rec.TotalScore,
		rec.SectionScores,
		completedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save quiz response: %w", err)
	}
	return res.LastInsertId()
}

const selectColumns = `id, name, email, accessors_name, accessors_email, responses, total_score, section_scores, completed_at`

func (s *SubmissionStore) List(ctx context.Context) ([]domain.SubmissionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM quiz_responses ORDER BY julianday(completed_at) DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz responses: %w", err)
	}
	defer rows.Close()

	var out []domain.SubmissionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to get quiz responses: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get quiz responses: %w", err)
	}
	if out == nil {
		out = []domain.SubmissionRecord{}
	}
	return out, nil
}

func (s *SubmissionStore) Get(ctx context.Context, id int64) (domain.SubmissionRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM quiz_responses WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SubmissionRecord{}, domain.ErrSubmissionNotFound
	}
	if err != nil {
		return domain.SubmissionRecord{}, fmt.Errorf("failed to get quiz response: %w", err)
	}
	return rec, nil
}

func (s *SubmissionStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quiz_responses WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete quiz response: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete quiz response: %w", err)
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (domain.SubmissionRecord, error) {
	var (
		rec            domain.SubmissionRecord
		email          sql.NullString
		accessorsName  sql.NullString
		accessorsEmail sql.NullString
		completedAt    sql.NullString
	)
	err := row.Scan(
		&rec.ID,
		&rec.Name,
		&email,
		&accessorsName,
		&accessorsEmail,
		&rec.Responses,
		&rec.TotalScore,
		&rec.SectionScores,
		&completedAt,
	)
	if err != nil {
		return domain.SubmissionRecord{}, err
	}
	rec.Email = email.String
	rec.AccessorsName = accessorsName.String
	rec.AccessorsEmail = accessorsEmail.String
	rec.CompletedAt = parseTime(completedAt.String)
	return rec, nil
}

// parseTime accepts the stored layout plus the forms CURRENT_TIMESTAMP and
// older clients produced.
func parseTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
