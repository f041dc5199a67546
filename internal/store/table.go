package store

import (
	"context"
	"database/sql"
	"fmt"

	"jobscrape/internal/domain"
)

// EnsureSchema creates the jobs table. There is no versioning; an existing
// table is used as is.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
  keyword TEXT,
  title TEXT,
  company TEXT,
  location TEXT,
  url TEXT,
  connection TEXT
);
`); err != nil {
		return fmt.Errorf("create jobs table: %w", err)
	}
	return nil
}

func (d *DB) Name() string { return "sqlite" }

// Write inserts one row. Each call is its own implicit transaction, so the
// row is durable when Write returns.
func (d *DB) Write(ctx context.Context, p domain.JobPosting) error {
	_, err := d.Pool.ExecContext(ctx, `
INSERT INTO jobs (keyword, title, company, location, url, connection)
VALUES (?, ?, ?, ?, ?, ?);`,
		p.Keyword, p.Title, p.Company, p.Location, p.URL, p.Connection,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// ListPostings returns every row in insertion order.
func ListPostings(ctx context.Context, db *sql.DB) ([]domain.JobPosting, error) {
	rows, err := db.QueryContext(ctx, `
SELECT keyword, title, company, location, url, connection
FROM jobs
ORDER BY rowid;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.JobPosting
	for rows.Next() {
		var p domain.JobPosting
		var kw, title, company, loc, url, conn sql.NullString
		if err := rows.Scan(&kw, &title, &company, &loc, &url, &conn); err != nil {
			return nil, err
		}
		p.Keyword = kw.String
		p.Title = title.String
		p.Company = company.String
		p.Location = loc.String
		p.URL = url.String
		p.Connection = conn.String
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func CountPostings(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs;`).Scan(&n)
	return n, err
}
