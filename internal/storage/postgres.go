package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/terra-clan/interview-engine/internal/models"
)

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int32
	MaxIdleConns int32
	MaxLifetime  time.Duration
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(ctx context.Context, cfg PostgresConfig) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	} else {
		poolConfig.MaxConns = 25
	}

	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = cfg.MaxIdleConns
	} else {
		poolConfig.MinConns = 5
	}

	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// Ping checks database connectivity
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// CreateInterview creates a new interview record
func (r *PostgresRepository) CreateInterview(ctx context.Context, iv *models.Interview) error {
	slotsJSON, err := json.Marshal(iv.Slots)
	if err != nil {
		return fmt.Errorf("failed to marshal slots: %w", err)
	}

	query := `
		INSERT INTO interviews (id, candidate_name, candidate_email, candidate_phone, job_title, current_index, status, slots, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.pool.Exec(ctx, query,
		iv.ID,
		iv.Candidate.Name,
		iv.Candidate.Email,
		nullString(iv.Candidate.Phone),
		iv.Candidate.JobTitle,
		iv.CurrentIndex,
		string(iv.Status),
		slotsJSON,
		iv.StartedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}

	return nil
}

// GetInterview retrieves an interview by ID
func (r *PostgresRepository) GetInterview(ctx context.Context, id string) (*models.Interview, error) {
	query := `
		SELECT id, candidate_name, candidate_email, candidate_phone, job_title, current_index, status, slots, final_evaluation, started_at, completed_at
		FROM interviews
		WHERE id = $1
	`

	var iv models.Interview
	var statusStr string
	var phone sql.NullString
	var completedAt sql.NullTime
	var slotsJSON, finalJSON []byte

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&iv.ID,
		&iv.Candidate.Name,
		&iv.Candidate.Email,
		&phone,
		&iv.Candidate.JobTitle,
		&iv.CurrentIndex,
		&statusStr,
		&slotsJSON,
		&finalJSON,
		&iv.StartedAt,
		&completedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}

	iv.Status = models.InterviewStatus(statusStr)
	iv.Candidate.Phone = phone.String

	if completedAt.Valid {
		iv.CompletedAt = &completedAt.Time
	}

	if err := json.Unmarshal(slotsJSON, &iv.Slots); err != nil {
		return nil, fmt.Errorf("failed to unmarshal slots: %w", err)
	}

	if finalJSON != nil {
		if err := json.Unmarshal(finalJSON, &iv.FinalEvaluation); err != nil {
			return nil, fmt.Errorf("failed to unmarshal final evaluation: %w", err)
		}
	}

	return &iv, nil
}

// UpdateProgress persists the slots and current index in one write
func (r *PostgresRepository) UpdateProgress(ctx context.Context, iv *models.Interview) error {
	slotsJSON, err := json.Marshal(iv.Slots)
	if err != nil {
		return fmt.Errorf("failed to marshal slots: %w", err)
	}

	query := `
		UPDATE interviews
		SET slots = $2, current_index = $3
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, iv.ID, slotsJSON, iv.CurrentIndex)
	if err != nil {
		return fmt.Errorf("failed to update interview: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("interview not found: %s", iv.ID)
	}

	return nil
}

// CompleteInterview persists the terminal state in one write
func (r *PostgresRepository) CompleteInterview(ctx context.Context, iv *models.Interview) error {
	slotsJSON, err := json.Marshal(iv.Slots)
	if err != nil {
		return fmt.Errorf("failed to marshal slots: %w", err)
	}

	finalJSON, err := json.Marshal(iv.FinalEvaluation)
	if err != nil {
		return fmt.Errorf("failed to marshal final evaluation: %w", err)
	}

	query := `
		UPDATE interviews
		SET slots = $2, status = $3, final_evaluation = $4, completed_at = $5
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		iv.ID,
		slotsJSON,
		string(iv.Status),
		finalJSON,
		nullTime(iv.CompletedAt),
	)

	if err != nil {
		return fmt.Errorf("failed to complete interview: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("interview not found: %s", iv.ID)
	}

	return nil
}

// DeleteCompletedBefore removes completed interviews older than the cutoff
func (r *PostgresRepository) DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM interviews
		WHERE status = 'completed'
		  AND completed_at < $1
	`

	result, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete completed interviews: %w", err)
	}

	return result.RowsAffected(), nil
}

// Helper functions for nullable values

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
