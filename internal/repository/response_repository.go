package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"donorlink/internal/domain"
)

type ResponseRepository interface {
	Create(ctx context.Context, resp *domain.Response) error
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Response, error)
}

type responseRepository struct {
	db *sqlx.DB
}

func NewResponseRepository(db *sqlx.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) Create(ctx context.Context, resp *domain.Response) error {
	query := `
		INSERT INTO responses (id, request_id, donor_id, decision)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		resp.ID, resp.RequestID, resp.DonorID, resp.Decision,
	).Scan(&resp.CreatedAt)
}

func (r *responseRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Response, error) {
	var responses []domain.Response
	query := `SELECT * FROM responses WHERE request_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &responses, query, requestID)
	return responses, err
}
