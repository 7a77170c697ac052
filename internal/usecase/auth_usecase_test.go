package usecase

import (
	"context"
	"testing"
	"time"

	"medical-record/config"
	"medical-record/internal/delivery/dto"
	"medical-record/internal/domain/entity"
	"medical-record/internal/repository"
	"medical-record/internal/service"
	"medical-record/internal/service/mocks"
	"medical-record/pkg/apperror"
	"medical-record/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type authFixture struct {
	ctx        context.Context
	auth       AuthUsecase
	tokens     *mocks.MockTokenStore
	cache      *mocks.MockReportCache
	jwtService *jwt.JWTService
	admin      *entity.Caller
}

func newAuthFixture(t *testing.T) *authFixture {
	ctrl := gomock.NewController(t)
	db := newTestDB(t)
	log := newTestLogger()

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		Issuer:        "medical-record-test",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	})
	tokens := mocks.NewMockTokenStore(ctrl)
	cache := mocks.NewMockReportCache(ctrl)

	auth := NewAuthUsecase(
		db,
		log,
		repository.NewUserRepository(),
		repository.NewDoctorRepository(),
		repository.NewPatientRepository(),
		repository.NewSpecialtyRepository(),
		service.NewAuditService(log, repository.NewAuditLogRepository()),
		cache,
		jwtService,
		tokens,
	)

	return &authFixture{
		ctx:        context.Background(),
		auth:       auth,
		tokens:     tokens,
		cache:      cache,
		jwtService: jwtService,
		admin:      &entity.Caller{UserID: uuid.New(), Role: entity.RoleAdmin},
	}
}

func (f *authFixture) register(t *testing.T, req *dto.RegisterRequest) *dto.UserResponse {
	t.Helper()
	res, err := f.auth.Register(f.ctx, f.admin, req)
	require.NoError(t, err)
	return res
}

func TestRegisterDoctorAndPatient(t *testing.T) {
	f := newAuthFixture(t)
	f.cache.EXPECT().InvalidateAll(gomock.Any()).Return(nil).Times(2)

	doctor := f.register(t, &dto.RegisterRequest{
		Username: "doctor1",
		Password: "doctor123",
		Role:     "DOCTOR",
		Doctor:   &dto.DoctorRequest{UIN: "1234567890", Name: "Dr. Ivan Petrov", IsGP: true},
	})
	require.NotNil(t, doctor.Doctor)
	assert.Equal(t, "DOCTOR", doctor.Role)
	assert.True(t, doctor.Doctor.IsGP)

	patient := f.register(t, &dto.RegisterRequest{
		Username: "patient1",
		Password: "patient123",
		Role:     "PATIENT",
		Patient:  &dto.PatientRequest{Name: "Georgi Dimitrov", EGN: "8501011234", GPID: &doctor.Doctor.ID},
	})
	require.NotNil(t, patient.Patient)
	assert.Equal(t, "8501011234", patient.Patient.EGN)

	caller, err := f.auth.ResolveCaller(f.ctx, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RolePatient, caller.Role)
	require.NotNil(t, caller.PatientID)
	assert.Equal(t, patient.Patient.ID, *caller.PatientID)
	assert.Nil(t, caller.DoctorID)

	users, err := f.auth.GetAllUsers(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, users.Total)
}

func TestRegisterRollsBackOnRecordFailure(t *testing.T) {
	f := newAuthFixture(t)
	f.cache.EXPECT().InvalidateAll(gomock.Any()).Return(nil).Times(1)

	f.register(t, &dto.RegisterRequest{
		Username: "doctor1",
		Password: "doctor123",
		Role:     "DOCTOR",
		Doctor:   &dto.DoctorRequest{UIN: "1234567890", Name: "Dr. Ivan Petrov"},
	})

	_, err := f.auth.Register(f.ctx, f.admin, &dto.RegisterRequest{
		Username: "doctor2",
		Password: "doctor123",
		Role:     "DOCTOR",
		Doctor:   &dto.DoctorRequest{UIN: "1234567890", Name: "Dr. Duplicate"},
	})
	assert.ErrorIs(t, err, ErrUINAlreadyExists)

	// The account must not survive without its doctor record.
	users, err := f.auth.GetAllUsers(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, users.Total)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	f := newAuthFixture(t)

	f.register(t, &dto.RegisterRequest{Username: "admin", Password: "admin123", Role: "ADMIN"})

	_, err := f.auth.Register(f.ctx, f.admin, &dto.RegisterRequest{Username: "admin", Password: "other123", Role: "ADMIN"})
	assert.ErrorIs(t, err, ErrUsernameExists)
	assert.Equal(t, apperror.KindDuplicate, apperror.KindOf(err))
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, &dto.RegisterRequest{Username: "admin", Password: "admin123", Role: "ADMIN"})

	f.tokens.EXPECT().Store(gomock.Any(), jwt.AccessToken, user.ID, gomock.Any(), 15*time.Minute).Return(nil)
	f.tokens.EXPECT().Store(gomock.Any(), jwt.RefreshToken, user.ID, gomock.Any(), time.Hour).Return(nil)

	tokens, err := f.auth.Login(f.ctx, &dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.EqualValues(t, 900, tokens.ExpiresIn)

	claims, err := f.jwtService.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, jwt.AccessToken, claims.TokenType)

	_, err = f.auth.Login(f.ctx, &dto.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Login(f.ctx, &dto.LoginRequest{Username: "nobody", Password: "admin123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateAccessToken(t *testing.T) {
	f := newAuthFixture(t)
	userID := uuid.New()

	access, accessID, err := f.jwtService.GenerateAccessToken(userID, "admin", "ADMIN")
	require.NoError(t, err)
	refresh, _, err := f.jwtService.GenerateRefreshToken(userID, "admin", "ADMIN")
	require.NoError(t, err)

	t.Run("whitelisted", func(t *testing.T) {
		f.tokens.EXPECT().Exists(gomock.Any(), jwt.AccessToken, userID, accessID).Return(true, nil)
		claims, err := f.auth.ValidateAccessToken(f.ctx, access)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
	})

	t.Run("revoked", func(t *testing.T) {
		f.tokens.EXPECT().Exists(gomock.Any(), jwt.AccessToken, userID, accessID).Return(false, nil)
		_, err := f.auth.ValidateAccessToken(f.ctx, access)
		assert.ErrorIs(t, err, ErrTokenRevoked)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		_, err := f.auth.ValidateAccessToken(f.ctx, refresh)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := f.auth.ValidateAccessToken(f.ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
	})
}

func TestRefreshTokenRotates(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, &dto.RegisterRequest{Username: "admin", Password: "admin123", Role: "ADMIN"})

	refresh, refreshID, err := f.jwtService.GenerateRefreshToken(user.ID, "admin", "ADMIN")
	require.NoError(t, err)

	gomock.InOrder(
		f.tokens.EXPECT().Exists(gomock.Any(), jwt.RefreshToken, user.ID, refreshID).Return(true, nil),
		f.tokens.EXPECT().Revoke(gomock.Any(), jwt.RefreshToken, user.ID, refreshID).Return(nil),
	)
	f.tokens.EXPECT().Store(gomock.Any(), gomock.Any(), user.ID, gomock.Any(), gomock.Any()).Return(nil).Times(2)

	res, err := f.auth.RefreshToken(f.ctx, &dto.RefreshTokenRequest{RefreshToken: refresh})
	require.NoError(t, err)
	assert.NotEqual(t, refresh, res.RefreshToken)

	f.tokens.EXPECT().Exists(gomock.Any(), jwt.RefreshToken, user.ID, refreshID).Return(false, nil)
	_, err = f.auth.RefreshToken(f.ctx, &dto.RefreshTokenRequest{RefreshToken: refresh})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestLogoutRevokesBothTokens(t *testing.T) {
	f := newAuthFixture(t)
	userID := uuid.New()

	f.tokens.EXPECT().Revoke(gomock.Any(), jwt.AccessToken, userID, "access-id").Return(nil)
	f.tokens.EXPECT().Revoke(gomock.Any(), jwt.RefreshToken, userID, "refresh-id").Return(nil)
	require.NoError(t, f.auth.Logout(f.ctx, userID, "access-id", "refresh-id"))

	f.tokens.EXPECT().Revoke(gomock.Any(), jwt.AccessToken, userID, "access-id").Return(nil)
	require.NoError(t, f.auth.Logout(f.ctx, userID, "access-id", ""))
}

func TestDeleteUserKeepsRecords(t *testing.T) {
	f := newAuthFixture(t)
	f.cache.EXPECT().InvalidateAll(gomock.Any()).Return(nil)

	user := f.register(t, &dto.RegisterRequest{
		Username: "doctor1",
		Password: "doctor123",
		Role:     "DOCTOR",
		Doctor:   &dto.DoctorRequest{UIN: "1234567890", Name: "Dr. Ivan Petrov", IsGP: true},
	})

	// Token cleanup failing does not undo the deletion.
	f.tokens.EXPECT().RevokeAll(gomock.Any(), user.ID).Return(assert.AnError)
	require.NoError(t, f.auth.DeleteUser(f.ctx, f.admin, user.ID))

	_, err := f.auth.GetUser(f.ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.auth.ResolveCaller(f.ctx, user.ID)
	assert.ErrorIs(t, err, ErrInvalidToken)

	assert.ErrorIs(t, f.auth.DeleteUser(f.ctx, f.admin, user.ID), ErrUserNotFound)
}
