package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"donorlink/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	SetFCMToken(ctx context.Context, userID uuid.UUID, token string) error
	SetAvatarURL(ctx context.Context, userID uuid.UUID, avatarURL string) error
	List(ctx context.Context, bloodType *string) ([]domain.User, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, phone, full_name, email, blood_type, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		user.ID, user.Phone, user.FullName, user.Email,
		user.BloodType, user.Latitude, user.Longitude,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE phone = $1`

	err := r.db.GetContext(ctx, &user, query, phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET full_name = :full_name, email = :email, blood_type = :blood_type,
			latitude = :latitude, longitude = :longitude, updated_at = NOW()
		WHERE id = :id`

	_, err := r.db.NamedExecContext(ctx, query, user)
	return err
}

func (r *userRepository) SetFCMToken(ctx context.Context, userID uuid.UUID, token string) error {
	query := `UPDATE users SET fcm_token = $2, token_updated_at = NOW(), updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, userID, token)
	return err
}

func (r *userRepository) SetAvatarURL(ctx context.Context, userID uuid.UUID, avatarURL string) error {
	query := `UPDATE users SET avatar_url = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, userID, avatarURL)
	return err
}

// List scans every profile, optionally pre-filtered by blood type. Spatial
// refinement happens in memory; there is no geo index on this table.
func (r *userRepository) List(ctx context.Context, bloodType *string) ([]domain.User, error) {
	var users []domain.User

	if bloodType != nil {
		query := `SELECT * FROM users WHERE blood_type = $1`
		err := r.db.SelectContext(ctx, &users, query, *bloodType)
		return users, err
	}

	query := `SELECT * FROM users`
	err := r.db.SelectContext(ctx, &users, query)
	return users, err
}
