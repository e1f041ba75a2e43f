package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/UnknownOlympus/jobheat/internal/models"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS jobs (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		job_title          TEXT,
		company_name       TEXT,
		location           TEXT,
		lat                REAL,
		lng                REAL,
		salary_string      TEXT,
		job_weight         REAL,
		geocoding_attempts INTEGER NOT NULL DEFAULT 0,
		geocoding_error    TEXT
	);
`

const sqliteSelectJobs = `
	SELECT id, COALESCE(job_title, ''), COALESCE(company_name, ''), COALESCE(location, ''),
		lat, lng, COALESCE(salary_string, ''), job_weight, geocoding_attempts, COALESCE(geocoding_error, '')
	FROM jobs
`

// SQLiteRepository stores job postings in a local SQLite file.
type SQLiteRepository struct {
	db  *sql.DB
	log *slog.Logger
}

// OpenSQLite opens (creating if needed) the database file at path.
func OpenSQLite(ctx context.Context, path string, log *slog.Logger) (*SQLiteRepository, error) {
	const pingTimeout = 2 * time.Second

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	// sqlite allows a single writer
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}

	if _, err = db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create jobs table: %w", err)
	}

	return &SQLiteRepository{db: db, log: log}, nil
}

// ListJobs retrieves every posting in insertion order.
func (r *SQLiteRepository) ListJobs(ctx context.Context) ([]models.JobPosting, error) {
	rows, err := r.db.QueryContext(ctx, sqliteSelectJobs+` ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	return scanSQLiteJobs(rows)
}

// FetchJobsForGeocoding retrieves postings with a location and no usable coordinates.
func (r *SQLiteRepository) FetchJobsForGeocoding(ctx context.Context, limit int) ([]models.JobPosting, error) {
	rows, err := r.db.QueryContext(ctx, sqliteSelectJobs+`
		WHERE
			(lat IS NULL OR lat = 0 OR lng IS NULL OR lng = 0)
			AND geocoding_attempts < ?
			AND location IS NOT NULL AND location <> ''
		ORDER BY id
		LIMIT ?;`, MaxGeocodingAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs without coordinates: %w", err)
	}
	defer rows.Close()

	return scanSQLiteJobs(rows)
}

func scanSQLiteJobs(rows *sql.Rows) ([]models.JobPosting, error) {
	jobs := []models.JobPosting{}
	for rows.Next() {
		var (
			job           models.JobPosting
			id            int64
			lat, lng, wgt sql.NullFloat64
		)
		if err := rows.Scan(
			&id, &job.Title, &job.CompanyName, &job.Location,
			&lat, &lng, &job.SalaryString, &wgt, &job.GeocodingAttempts, &job.GeocodingError,
		); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		job.ID = strconv.FormatInt(id, 10)
		job.Lat = nullableFloat(lat)
		job.Lng = nullableFloat(lng)
		job.Weight = nullableFloat(wgt)
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return jobs, nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

// UpdateJobCoordinates stores the coordinates of a posting and clears its geocoding error.
func (r *SQLiteRepository) UpdateJobCoordinates(ctx context.Context, jobID string, coords models.Coordinates) error {
	id, err := parseNumericID(jobID)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE jobs SET lat = ?, lng = ?, geocoding_error = NULL WHERE id = ?;`,
		coords.Latitude, coords.Longitude, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update job coordinates: %w", err)
	}

	return nil
}

// IncrementFailureCount bumps the geocoding attempt count of a posting and records the failure.
func (r *SQLiteRepository) IncrementFailureCount(ctx context.Context, jobID string, errMsg string) error {
	id, err := parseNumericID(jobID)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE jobs SET geocoding_attempts = geocoding_attempts + 1, geocoding_error = ? WHERE id = ?;`,
		errMsg, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update geocoding error and number of attempts: %w", err)
	}

	return nil
}

// ReplaceJobs deletes every stored posting and inserts jobs in one transaction.
func (r *SQLiteRepository) ReplaceJobs(ctx context.Context, jobs []models.JobPosting) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `DELETE FROM jobs;`); err != nil {
		return 0, fmt.Errorf("failed to delete jobs: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO jobs (job_title, company_name, location, lat, lng, salary_string, job_weight)
		VALUES (?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, job := range jobs {
		if _, err = stmt.ExecContext(ctx,
			job.Title, job.CompanyName, job.Location, job.Lat, job.Lng, job.SalaryString, job.Weight,
		); err != nil {
			return 0, fmt.Errorf("failed to insert job: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit jobs: %w", err)
	}

	return len(jobs), nil
}

// Ping checks that the database file is usable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database handle.
func (r *SQLiteRepository) Close(context.Context) error {
	return r.db.Close()
}
