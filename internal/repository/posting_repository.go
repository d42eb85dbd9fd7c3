package repository

import (
	"context"
	"fmt"
	"time"

	"career-insights/internal/database"
	"career-insights/internal/domain/posting"

	"github.com/google/uuid"
)

const postingsTable = "job_postings"

var postingColumns = []string{"id", "row_number", "job_title", "state", "city", "average_salary", "skills", "imported_at"}

type PostingRepository interface {
	Load(ctx context.Context) ([]posting.Record, error)
	Fingerprint(ctx context.Context) (string, error)
	Import(ctx context.Context, records []posting.Record, replace bool) (int64, error)
}

type PostgresPostingRepository struct {
	db  database.DB
	now func() time.Time
}

func NewPostgresPostingRepository(db database.DB) *PostgresPostingRepository {
	return &PostgresPostingRepository{db: db, now: time.Now}
}

func (r *PostgresPostingRepository) Name() string { return "postgres" }

// Load returns postings in the order they were imported.
func (r *PostgresPostingRepository) Load(ctx context.Context) ([]posting.Record, error) {
	rows, err := r.db.Query(ctx,
		`SELECT job_title, state, city, average_salary, skills
		 FROM job_postings
		 ORDER BY row_number ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]posting.Record, 0)
	for rows.Next() {
		var rec posting.Record
		var skills []string
		if err := rows.Scan(&rec.JobTitle, &rec.State, &rec.City, &rec.AverageSalary, &skills); err != nil {
			return nil, err
		}
		if skills == nil {
			skills = make([]string, 0)
		}
		rec.Skills = skills
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Fingerprint changes whenever an import adds or replaces rows.
func (r *PostgresPostingRepository) Fingerprint(ctx context.Context) (string, error) {
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(1), COALESCE(MAX(imported_at), 'epoch'::timestamptz) FROM job_postings`,
	)
	var count int
	var last time.Time
	if err := row.Scan(&count, &last); err != nil {
		return "", err
	}
	return fmt.Sprintf("postgres:%d:%d", count, last.UTC().UnixNano()), nil
}

// Import appends records, or replaces the table contents when replace is
// set, in a single transaction.
func (r *PostgresPostingRepository) Import(ctx context.Context, records []posting.Record, replace bool) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if replace {
		if _, err := tx.Exec(ctx, `DELETE FROM job_postings`); err != nil {
			return 0, fmt.Errorf("clear job_postings: %w", err)
		}
	}

	var offset int
	if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(row_number), 0) FROM job_postings`).Scan(&offset); err != nil {
		return 0, err
	}

	importedAt := r.now().UTC()
	rows := make([][]any, 0, len(records))
	for i, rec := range records {
		skills := rec.Skills
		if skills == nil {
			skills = []string{}
		}
		rows = append(rows, []any{
			uuid.New(),
			offset + i + 1,
			rec.JobTitle,
			rec.State,
			rec.City,
			rec.AverageSalary,
			skills,
			importedAt,
		})
	}

	n, err := tx.CopyFrom(ctx, postingsTable, postingColumns, rows)
	if err != nil {
		return 0, fmt.Errorf("copy job_postings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}
