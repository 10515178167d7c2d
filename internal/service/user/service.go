package user

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"donorlink/internal/config"
	"donorlink/internal/domain"
	"donorlink/internal/repository"
	"donorlink/internal/service/geo"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidBloodType = errors.New("invalid blood type")
	ErrLocationNotSet   = errors.New("profile location not set")
	ErrStorageDisabled  = errors.New("avatar storage is not configured")
)

type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input domain.UpdateProfileInput) (*domain.User, error)
	SaveFCMToken(ctx context.Context, id uuid.UUID, token string) error
	UploadAvatar(ctx context.Context, id uuid.UUID, fileSize int64, mimeType string, reader io.Reader) (string, error)
	NearbyDonors(ctx context.Context, callerID uuid.UUID, radiusKm float64, bloodType *string) ([]domain.DonorMatch, error)
}

type service struct {
	userRepo    repository.UserRepository
	geoSvc      geo.Service
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(userRepo repository.UserRepository, geoSvc geo.Service, minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		userRepo:    userRepo,
		geoSvc:      geoSvc,
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile applies partial profile changes. Setting blood type and
// location is what makes a profile eligible for donor matching.
func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, input domain.UpdateProfileInput) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = input.FullName
	}
	if input.Email != nil {
		user.Email = input.Email
	}
	if input.BloodType != nil {
		if !domain.BloodType(*input.BloodType).IsValid() {
			return nil, ErrInvalidBloodType
		}
		user.BloodType = input.BloodType
	}
	if input.Location != nil {
		user.Latitude = &input.Location.Lat
		user.Longitude = &input.Location.Lng
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SaveFCMToken records the push-delivery token for the user's device,
// replacing any previous one (token refresh does the same thing).
func (s *service) SaveFCMToken(ctx context.Context, id uuid.UUID, token string) error {
	return s.userRepo.SetFCMToken(ctx, id, token)
}

func (s *service) UploadAvatar(ctx context.Context, id uuid.UUID, fileSize int64, mimeType string, reader io.Reader) (string, error) {
	if s.minioClient == nil {
		return "", ErrStorageDisabled
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return "", err
	}

	storagePath := fmt.Sprintf("avatars/%s", id.String())

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	avatarURL := s.publicURL(storagePath)
	if err := s.userRepo.SetAvatarURL(ctx, id, avatarURL); err != nil {
		return "", err
	}

	return avatarURL, nil
}

// NearbyDonors finds donors around the caller's stored location, excluding
// the caller.
func (s *service) NearbyDonors(ctx context.Context, callerID uuid.UUID, radiusKm float64, bloodType *string) ([]domain.DonorMatch, error) {
	caller, err := s.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	loc := caller.Location()
	if loc == nil {
		return nil, ErrLocationNotSet
	}

	matches, err := s.geoSvc.FindDonorsWithinRadius(ctx, *loc, radiusKm, bloodType)
	if err != nil {
		return nil, err
	}

	filtered := matches[:0]
	for _, m := range matches {
		if m.ID != callerID {
			filtered = append(filtered, m)
		}
	}

	return filtered, nil
}

func (s *service) publicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, storagePath)
}
