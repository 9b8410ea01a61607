package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/freelance-matcher/internal/types"
)

// CreateFreelancer inserts a new profile with a NULL embedding and returns
// its ID.
func (db *DB) CreateFreelancer(ctx context.Context, input types.FreelancerUpsertInput) (uuid.UUID, error) {
	availJSON, locJSON, err := marshalFreelancerNested(input)
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO freelancer_profiles
		   (description, skills, example_tasks, availability, location, pricing_style, hourly_rate)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		input.Description, input.Skills, input.ExampleTasks, availJSON, locJSON,
		nullableString(input.PricingStyle), input.HourlyRate,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create freelancer: %w", err)
	}
	return id, nil
}

// UpdateFreelancer rewrites the profile fields and clears the stored
// embedding: every field here feeds the composite text, so the old vector is
// stale until recomputed.
func (db *DB) UpdateFreelancer(ctx context.Context, id uuid.UUID, input types.FreelancerUpsertInput) error {
	availJSON, locJSON, err := marshalFreelancerNested(input)
	if err != nil {
		return err
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE freelancer_profiles
		 SET description = $1, skills = $2, example_tasks = $3, availability = $4,
		     location = $5, pricing_style = $6, hourly_rate = $7,
		     embedding = NULL, updated_at = NOW()
		 WHERE id = $8`,
		input.Description, input.Skills, input.ExampleTasks, availJSON, locJSON,
		nullableString(input.PricingStyle), input.HourlyRate, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update freelancer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("freelancer not found: %s", id)
	}
	return nil
}

// GetFreelancer retrieves a profile by ID, or nil when it does not exist.
func (db *DB) GetFreelancer(ctx context.Context, id uuid.UUID) (*types.FreelancerProfile, error) {
	row := db.pool.QueryRow(ctx, freelancerSelect+` WHERE id = $1`, id)
	f, err := scanFreelancer(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get freelancer: %w", err)
	}
	return f, nil
}

// UpdateFreelancerEmbedding writes the computed embedding in a single update.
func (db *DB) UpdateFreelancerEmbedding(ctx context.Context, id uuid.UUID, vector []float64) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE freelancer_profiles SET embedding = $1, updated_at = NOW() WHERE id = $2`,
		vector, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update freelancer embedding: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("freelancer not found: %s", id)
	}
	return nil
}

// ListFreelancers retrieves all profiles, oldest first. Used by backfill.
func (db *DB) ListFreelancers(ctx context.Context) ([]types.FreelancerProfile, error) {
	rows, err := db.pool.Query(ctx, freelancerSelect+` ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list freelancers: %w", err)
	}
	defer rows.Close()
	return collectFreelancers(rows)
}

// ListCandidates retrieves the match candidate pool: only profiles with a
// computed embedding, optionally pre-filtered by city. Ordering is fixed at
// the SQL level so downstream tie-breaking stays deterministic.
func (db *DB) ListCandidates(ctx context.Context, city *string) ([]types.FreelancerProfile, error) {
	query := freelancerSelect + ` WHERE embedding IS NOT NULL`
	args := []any{}
	if city != nil && *city != "" {
		query += ` AND location->>'city' ILIKE $1`
		args = append(args, *city)
	}
	query += ` ORDER BY updated_at DESC, id ASC`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()
	return collectFreelancers(rows)
}

const freelancerSelect = `SELECT id, description, skills, example_tasks, availability,
	location, pricing_style, hourly_rate, embedding, created_at, updated_at
	FROM freelancer_profiles`

func scanFreelancer(row pgx.Row) (*types.FreelancerProfile, error) {
	var f types.FreelancerProfile
	var availJSON, locJSON []byte
	var pricingStyle *string
	if err := row.Scan(&f.ID, &f.Description, &f.Skills, &f.ExampleTasks, &availJSON,
		&locJSON, &pricingStyle, &f.HourlyRate, &f.Embedding, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	if pricingStyle != nil {
		f.PricingStyle = *pricingStyle
	}
	if len(availJSON) > 0 {
		if err := json.Unmarshal(availJSON, &f.Availability); err != nil {
			return nil, fmt.Errorf("failed to parse availability: %w", err)
		}
	}
	if len(locJSON) > 0 {
		if err := json.Unmarshal(locJSON, &f.Location); err != nil {
			return nil, fmt.Errorf("failed to parse location: %w", err)
		}
	}
	return &f, nil
}

func collectFreelancers(rows pgx.Rows) ([]types.FreelancerProfile, error) {
	var freelancers []types.FreelancerProfile
	for rows.Next() {
		f, err := scanFreelancer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan freelancer: %w", err)
		}
		freelancers = append(freelancers, *f)
	}
	return freelancers, rows.Err()
}

func marshalFreelancerNested(input types.FreelancerUpsertInput) (availJSON, locJSON []byte, err error) {
	if input.Availability != nil {
		availJSON, err = json.Marshal(input.Availability)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal availability: %w", err)
		}
	}
	if input.Location != nil {
		locJSON, err = json.Marshal(input.Location)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal location: %w", err)
		}
	}
	return availJSON, locJSON, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
