package unit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"donorlink/internal/config"
	"donorlink/internal/domain"
	"donorlink/internal/repository"
	"donorlink/internal/service/auth"
	"donorlink/tests/mocks"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
		OTPExpiry:        5 * time.Minute,
		OTPResendWindow:  time.Minute,
	}
}

type authServiceMocks struct {
	userRepo    *mocks.UserRepository
	sessionRepo *mocks.SessionRepository
	otpRepo     *mocks.OTPRepository
	smsSender   *mocks.SMSSender
}

func newAuthService() (auth.Service, *authServiceMocks) {
	m := &authServiceMocks{
		userRepo:    new(mocks.UserRepository),
		sessionRepo: new(mocks.SessionRepository),
		otpRepo:     new(mocks.OTPRepository),
		smsSender:   new(mocks.SMSSender),
	}
	svc := auth.NewService(m.userRepo, m.sessionRepo, m.otpRepo, m.smsSender, testAuthConfig())
	return svc, m
}

func TestAuthService_RequestOTP(t *testing.T) {
	ctx := context.Background()
	phone := "+6281234567890"

	t.Run("Success", func(t *testing.T) {
		svc, m := newAuthService()

		m.otpRepo.On("Throttle", ctx, phone, time.Minute).Return(true, nil).Once()
		m.otpRepo.On("Store", ctx, phone, mock.MatchedBy(func(hash string) bool {
			return hash != ""
		}), 5*time.Minute).Return(nil).Once()
		m.smsSender.On("Send", ctx, phone, mock.MatchedBy(func(message string) bool {
			return len(message) > 0
		})).Return(nil).Once()

		err := svc.RequestOTP(ctx, phone)

		assert.NoError(t, err)
		m.otpRepo.AssertExpectations(t)
		m.smsSender.AssertExpectations(t)
	})

	t.Run("Invalid Phone", func(t *testing.T) {
		svc, m := newAuthService()

		err := svc.RequestOTP(ctx, "081234567890")

		assert.ErrorIs(t, err, auth.ErrInvalidPhone)
		m.otpRepo.AssertNotCalled(t, "Throttle", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Throttled", func(t *testing.T) {
		svc, m := newAuthService()

		m.otpRepo.On("Throttle", ctx, phone, time.Minute).Return(false, nil).Once()

		err := svc.RequestOTP(ctx, phone)

		assert.ErrorIs(t, err, auth.ErrTooManyRequests)
		m.otpRepo.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.smsSender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthService_VerifyOTP(t *testing.T) {
	ctx := context.Background()
	phone := "+6281234567890"
	code := "123456"

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	assert.NoError(t, err)

	t.Run("First Login Creates User", func(t *testing.T) {
		svc, m := newAuthService()

		m.otpRepo.On("Get", ctx, phone).Return(string(hash), nil).Once()
		m.otpRepo.On("Delete", ctx, phone).Return(nil).Once()
		m.userRepo.On("GetByPhone", ctx, phone).Return(nil, nil).Once()
		m.userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Phone == phone
		})).Return(nil).Once()
		m.sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		user, tokens, err := svc.VerifyOTP(ctx, phone, code)

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, phone, user.Phone)
		assert.NotNil(t, tokens)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)

		claims, err := svc.ValidateAccessToken(tokens.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, phone, claims.Phone)

		m.userRepo.AssertExpectations(t)
		m.sessionRepo.AssertExpectations(t)
	})

	t.Run("Returning User", func(t *testing.T) {
		svc, m := newAuthService()

		existing := &domain.User{ID: uuid.New(), Phone: phone, BloodType: stringPtr("B+")}

		m.otpRepo.On("Get", ctx, phone).Return(string(hash), nil).Once()
		m.otpRepo.On("Delete", ctx, phone).Return(nil).Once()
		m.userRepo.On("GetByPhone", ctx, phone).Return(existing, nil).Once()
		m.sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		user, tokens, err := svc.VerifyOTP(ctx, phone, code)

		assert.NoError(t, err)
		assert.Equal(t, existing.ID, user.ID)
		assert.NotNil(t, tokens)
		m.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Wrong Code", func(t *testing.T) {
		svc, m := newAuthService()

		m.otpRepo.On("Get", ctx, phone).Return(string(hash), nil).Once()

		user, tokens, err := svc.VerifyOTP(ctx, phone, "000000")

		assert.ErrorIs(t, err, auth.ErrInvalidOTP)
		assert.Nil(t, user)
		assert.Nil(t, tokens)
		m.otpRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("No Pending Code", func(t *testing.T) {
		svc, m := newAuthService()

		m.otpRepo.On("Get", ctx, phone).Return("", nil).Once()

		user, tokens, err := svc.VerifyOTP(ctx, phone, code)

		assert.ErrorIs(t, err, auth.ErrInvalidOTP)
		assert.Nil(t, user)
		assert.Nil(t, tokens)
	})
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	svc, _ := newAuthService()

	t.Run("Malformed Token", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken("not-a-jwt")

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
		assert.Nil(t, claims)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("Revokes Session", func(t *testing.T) {
		svc, m := newAuthService()

		sessionID := uuid.New()
		m.sessionRepo.On("GetByTokenHash", ctx, mock.Anything).
			Return(&repository.Session{ID: sessionID, UserID: uuid.New()}, nil).Once()
		m.sessionRepo.On("Revoke", ctx, sessionID).Return(nil).Once()

		err := svc.Logout(ctx, "some-refresh-token")

		assert.NoError(t, err)
		m.sessionRepo.AssertExpectations(t)
	})

	t.Run("Unknown Token Is A No-Op", func(t *testing.T) {
		svc, m := newAuthService()

		m.sessionRepo.On("GetByTokenHash", ctx, mock.Anything).Return(nil, nil).Once()

		err := svc.Logout(ctx, "stale-token")

		assert.NoError(t, err)
		m.sessionRepo.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything)
	})
}

func stringPtr(s string) *string {
	return &s
}
