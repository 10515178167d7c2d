package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"donorlink/internal/domain"
)

type RequestRepository interface {
	Create(ctx context.Context, req *domain.BloodRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BloodRequest, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]domain.BloodRequest, error)
	List(ctx context.Context, bloodType *string) ([]domain.BloodRequest, error)
	Accept(ctx context.Context, requestID, donorID uuid.UUID) error
	DeleteWithResponses(ctx context.Context, id uuid.UUID) error
}

type requestRepository struct {
	db *sqlx.DB
}

func NewRequestRepository(db *sqlx.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *domain.BloodRequest) error {
	query := `
		INSERT INTO requests (id, requester_id, blood_type, urgency, latitude, longitude, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		req.ID, req.RequesterID, req.BloodType, req.Urgency,
		req.Latitude, req.Longitude, req.Status,
	).Scan(&req.CreatedAt)
}

func (r *requestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BloodRequest, error) {
	var req domain.BloodRequest
	query := `SELECT * FROM requests WHERE id = $1`

	err := r.db.GetContext(ctx, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]domain.BloodRequest, error) {
	var requests []domain.BloodRequest
	query := `SELECT * FROM requests WHERE requester_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &requests, query, requesterID)
	return requests, err
}

// List scans all requests, optionally pre-filtered by blood type, for
// in-memory spatial refinement.
func (r *requestRepository) List(ctx context.Context, bloodType *string) ([]domain.BloodRequest, error) {
	var requests []domain.BloodRequest

	if bloodType != nil {
		query := `SELECT * FROM requests WHERE blood_type = $1`
		err := r.db.SelectContext(ctx, &requests, query, *bloodType)
		return requests, err
	}

	query := `SELECT * FROM requests`
	err := r.db.SelectContext(ctx, &requests, query)
	return requests, err
}

// Accept marks a request accepted and assigns the donor. Concurrent accepts
// are last-write-wins on donor_id; there is no conflict detection.
func (r *requestRepository) Accept(ctx context.Context, requestID, donorID uuid.UUID) error {
	query := `UPDATE requests SET status = $2, donor_id = $3 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, requestID, domain.RequestAccepted, donorID)
	return err
}

// DeleteWithResponses removes a request and every response referencing it in
// a single transaction.
func (r *requestRepository) DeleteWithResponses(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM responses WHERE request_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM requests WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}
