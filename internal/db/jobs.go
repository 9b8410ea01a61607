package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/freelance-matcher/internal/types"
)

// CreateJob inserts a new job request with a NULL embedding and returns its
// ID. The embedding is written later by a separate single update; readers in
// between see the row without a vector.
func (db *DB) CreateJob(ctx context.Context, input types.JobRequestCreateInput) (uuid.UUID, error) {
	locJSON, err := marshalNullable(input.Location)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal location: %w", err)
	}
	twJSON, err := marshalNullable(input.TimeWindow)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal time window: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO job_requests (description, location, time_window, budget)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		input.Description, locJSON, twJSON, input.Budget,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job: %w", err)
	}
	return id, nil
}

// GetJob retrieves a job request by ID, or nil when it does not exist.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*types.JobRequest, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, description, location, time_window, budget, embedding, created_at, updated_at
		 FROM job_requests WHERE id = $1`,
		id,
	)
	job, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// UpdateJobEmbedding writes the computed embedding in a single atomic update.
func (db *DB) UpdateJobEmbedding(ctx context.Context, id uuid.UUID, vector []float64) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE job_requests SET embedding = $1, updated_at = NOW() WHERE id = $2`,
		vector, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update job embedding: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", id)
	}
	return nil
}

// ListJobs retrieves all job requests, oldest first. Used by backfill.
func (db *DB) ListJobs(ctx context.Context) ([]types.JobRequest, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, description, location, time_window, budget, embedding, created_at, updated_at
		 FROM job_requests ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []types.JobRequest
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func scanJob(row pgx.Row) (*types.JobRequest, error) {
	var job types.JobRequest
	var locJSON, twJSON []byte
	if err := row.Scan(&job.ID, &job.Description, &locJSON, &twJSON, &job.Budget,
		&job.Embedding, &job.CreatedAt, &job.UpdatedAt); err != nil {
		return nil, err
	}
	if len(locJSON) > 0 {
		if err := json.Unmarshal(locJSON, &job.Location); err != nil {
			return nil, fmt.Errorf("failed to parse location: %w", err)
		}
	}
	if len(twJSON) > 0 {
		if err := json.Unmarshal(twJSON, &job.TimeWindow); err != nil {
			return nil, fmt.Errorf("failed to parse time window: %w", err)
		}
	}
	return &job, nil
}

// marshalNullable marshals v to JSON, mapping nil pointers to SQL NULL.
func marshalNullable(v any) ([]byte, error) {
	switch t := v.(type) {
	case *types.LocationData:
		if t == nil {
			return nil, nil
		}
	case *types.TimeWindowData:
		if t == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}
