package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"forsign-esign/internal/domain/entity"
	"forsign-esign/internal/domain/repository"
	"forsign-esign/internal/infrastructure/database"
	"forsign-esign/internal/infrastructure/httpclient"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 500
)

const apiLogColumns = `id, correlation_id, endpoint, method, request_body, response_body, status_code, duration_ms, error, created_at`

type apiLogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAPILogRepository returns nil when the database is disabled.
func NewAPILogRepository(db *database.Database, logger *zap.Logger) repository.APILogRepository {
	if db == nil {
		return nil
	}
	return &apiLogRepository{
		db:     db.DB,
		logger: logger,
	}
}

// NewAPILogSaver exposes the repository to the HTTP client. A nil repository
// yields a nil saver so the client skips auditing.
func NewAPILogSaver(repo repository.APILogRepository) httpclient.APILogSaver {
	if repo == nil {
		return nil
	}
	return repo
}

// Save saves an API log entry to the database
func (r *apiLogRepository) Save(ctx context.Context, log *entity.APILog) error {
	query := `
		INSERT INTO api_logs (correlation_id, endpoint, method, request_body, response_body, status_code, duration_ms, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		log.CorrelationID,
		log.Endpoint,
		log.Method,
		log.RequestBody,
		log.ResponseBody,
		log.StatusCode,
		log.Duration,
		log.Error,
		log.CreatedAt,
	).Scan(&log.ID)

	if err != nil {
		r.logger.Error("Failed to save API log",
			zap.String("endpoint", log.Endpoint),
			zap.String("correlation_id", log.CorrelationID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to save API log: %w", err)
	}

	return nil
}

// FindAll returns the most recent entries first. limit is clamped to (0, 500].
func (r *apiLogRepository) FindAll(ctx context.Context, limit int) ([]entity.APILog, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	limit = min(limit, maxLogLimit)

	query := `SELECT ` + apiLogColumns + ` FROM api_logs ORDER BY created_at DESC, id DESC LIMIT $1`
	return r.query(ctx, query, limit)
}

func (r *apiLogRepository) FindByCorrelationID(ctx context.Context, correlationID string) ([]entity.APILog, error) {
	query := `SELECT ` + apiLogColumns + ` FROM api_logs WHERE correlation_id = $1 ORDER BY created_at ASC, id ASC`
	return r.query(ctx, query, correlationID)
}

func (r *apiLogRepository) query(ctx context.Context, query string, args ...any) ([]entity.APILog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query API logs: %w", err)
	}
	defer rows.Close()

	logs := []entity.APILog{}
	for rows.Next() {
		var log entity.APILog
		if err := rows.Scan(
			&log.ID,
			&log.CorrelationID,
			&log.Endpoint,
			&log.Method,
			&log.RequestBody,
			&log.ResponseBody,
			&log.StatusCode,
			&log.Duration,
			&log.Error,
			&log.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan API log: %w", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate API logs: %w", err)
	}
	return logs, nil
}
