package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/UnknownOlympus/jobheat/internal/models"
	"github.com/jackc/pgx/v5"
)

// PostgresRepository stores job postings in the jobs table of a PostgreSQL database.
type PostgresRepository struct {
	db  Database
	log *slog.Logger
}

// NewPostgresRepository creates a new instance of PostgresRepository with the provided Database.
func NewPostgresRepository(db Database, log *slog.Logger) *PostgresRepository {
	return &PostgresRepository{db: db, log: log}
}

// ListJobs retrieves every posting in insertion order.
func (r *PostgresRepository) ListJobs(ctx context.Context) ([]models.JobPosting, error) {
	query := `
		SELECT id, COALESCE(job_title, ''), COALESCE(company_name, ''), COALESCE(location, ''),
			lat, lng, COALESCE(salary_string, ''), job_weight
		FROM jobs
		ORDER BY id;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs, err := r.scanJobs(rows)
	if err != nil {
		return nil, err
	}
	r.log.DebugContext(ctx, "Jobs loaded from postgres", "count", len(jobs))

	return jobs, nil
}

// FetchJobsForGeocoding retrieves postings that have a location but no usable
// coordinates and have not exhausted their geocoding attempts.
//
// Parameters:
// - ctx: The context for the operation, allowing for cancellation and timeout.
// - limit: The maximum number of postings to retrieve.
func (r *PostgresRepository) FetchJobsForGeocoding(ctx context.Context, limit int) ([]models.JobPosting, error) {
	query := `
		SELECT id, COALESCE(job_title, ''), COALESCE(company_name, ''), COALESCE(location, ''),
			lat, lng, COALESCE(salary_string, ''), job_weight
		FROM jobs
		WHERE
			(lat IS NULL OR lat = 0 OR lng IS NULL OR lng = 0)
			AND geocoding_attempts < $1
			AND location IS NOT NULL AND location <> ''
		ORDER BY id
		LIMIT $2;
	`

	rows, err := r.db.Query(ctx, query, MaxGeocodingAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs without coordinates: %w", err)
	}
	defer rows.Close()

	return r.scanJobs(rows)
}

func (r *PostgresRepository) scanJobs(rows pgx.Rows) ([]models.JobPosting, error) {
	jobs := []models.JobPosting{}
	for rows.Next() {
		var (
			job models.JobPosting
			id  int64
		)
		if err := rows.Scan(
			&id, &job.Title, &job.CompanyName, &job.Location,
			&job.Lat, &job.Lng, &job.SalaryString, &job.Weight,
		); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		job.ID = strconv.FormatInt(id, 10)
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return jobs, nil
}

// UpdateJobCoordinates stores the coordinates of a posting and clears its geocoding error.
func (r *PostgresRepository) UpdateJobCoordinates(ctx context.Context, jobID string, coords models.Coordinates) error {
	id, err := parseNumericID(jobID)
	if err != nil {
		return err
	}

	query := `
		UPDATE jobs
		SET
			lat = $1,
			lng = $2,
			geocoding_error = NULL
		WHERE
			id = $3;
	`

	if _, err = r.db.Exec(ctx, query, coords.Latitude, coords.Longitude, id); err != nil {
		return fmt.Errorf("failed to update job coordinates: %w", err)
	}

	return nil
}

// IncrementFailureCount bumps the geocoding attempt count of a posting and records the failure.
func (r *PostgresRepository) IncrementFailureCount(ctx context.Context, jobID string, errMsg string) error {
	id, err := parseNumericID(jobID)
	if err != nil {
		return err
	}

	query := `
		UPDATE jobs
		SET
			geocoding_attempts = geocoding_attempts + 1,
			geocoding_error = $1
		WHERE id = $2;
	`

	if _, err = r.db.Exec(ctx, query, errMsg, id); err != nil {
		return fmt.Errorf("failed to update geocoding error and number of attempts: %w", err)
	}

	return nil
}

// ReplaceJobs deletes every stored posting and inserts jobs in one transaction.
func (r *PostgresRepository) ReplaceJobs(ctx context.Context, jobs []models.JobPosting) (int, error) {
	insert := `
		INSERT INTO jobs (job_title, company_name, location, lat, lng, salary_string, job_weight)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM jobs;`); err != nil {
		_ = tx.Rollback(ctx)
		return 0, fmt.Errorf("failed to delete jobs: %w", err)
	}

	for _, job := range jobs {
		if _, err = tx.Exec(ctx, insert,
			job.Title, job.CompanyName, job.Location, job.Lat, job.Lng, job.SalaryString, job.Weight,
		); err != nil {
			_ = tx.Rollback(ctx)
			return 0, fmt.Errorf("failed to insert job: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit jobs: %w", err)
	}

	return len(jobs), nil
}

// Ping checks that the database answers.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// Close releases the connection pool.
func (r *PostgresRepository) Close(context.Context) error {
	r.db.Close()
	return nil
}

func parseNumericID(jobID string) (int64, error) {
	id, err := strconv.ParseInt(jobID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid job id %q: %w", jobID, err)
	}
	return id, nil
}
