package usecase

import (
	"context"

	"medical-record/internal/converter"
	"medical-record/internal/delivery/dto"
	"medical-record/internal/domain/entity"
	"medical-record/internal/domain/repository"
	"medical-record/internal/service"
	"medical-record/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthUsecase interface {
	Register(ctx context.Context, caller *entity.Caller, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	GetAllUsers(ctx context.Context) (*dto.UserListResponse, error)
	DeleteUser(ctx context.Context, caller *entity.Caller, id uuid.UUID) error
	// ValidateAccessToken checks signature, type and whitelist membership.
	ValidateAccessToken(ctx context.Context, token string) (*jwt.Claims, error)
	// ResolveCaller loads the identity and its linked doctor and patient records.
	ResolveCaller(ctx context.Context, userID uuid.UUID) (*entity.Caller, error)
}

type authUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	userRepo      repository.UserRepository
	doctorRepo    repository.DoctorRepository
	patientRepo   repository.PatientRepository
	specialtyRepo repository.SpecialtyRepository
	auditService  service.AuditService
	reportCache   service.ReportCache
	jwtService    *jwt.JWTService
	tokenStore    service.TokenStore
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	specialtyRepo repository.SpecialtyRepository,
	auditService service.AuditService,
	reportCache service.ReportCache,
	jwtService *jwt.JWTService,
	tokenStore service.TokenStore,
) AuthUsecase {
	return &authUsecase{
		db:            db,
		log:           log,
		userRepo:      userRepo,
		doctorRepo:    doctorRepo,
		patientRepo:   patientRepo,
		specialtyRepo: specialtyRepo,
		auditService:  auditService,
		reportCache:   reportCache,
		jwtService:    jwtService,
		tokenStore:    tokenStore,
	}
}

func (u *authUsecase) Register(ctx context.Context, caller *entity.Caller, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user, err := entity.NewUser(req.Username, string(hashedPassword), entity.Role(req.Role))
	if err != nil {
		return nil, err
	}

	exists, err := u.userRepo.ExistsByUsername(tx, user.Username)
	if err != nil {
		u.log.Warnf("Failed to check username: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrUsernameExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	var (
		doctor  *entity.Doctor
		patient *entity.Patient
	)
	switch {
	case user.Role == entity.RoleDoctor && req.Doctor != nil:
		doctor, err = registerDoctor(tx, u.log, u.doctorRepo, u.specialtyRepo, req.Doctor, &user.ID)
	case user.Role == entity.RolePatient && req.Patient != nil:
		patient, err = registerPatient(tx, u.log, u.patientRepo, u.doctorRepo, req.Patient, &user.ID)
	}
	if err != nil {
		return nil, err
	}

	today := entity.Today()
	response := converter.UserToResponse(user, doctor, patient, today)
	if err := u.auditService.LogCreate(ctx, tx, actorOf(caller), entity.AuditActionUserRegister, "user", user.ID.String(), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if doctor != nil || patient != nil {
		invalidateReports(ctx, u.reportCache, u.log)
	}

	return response, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByUsername(u.db.WithContext(ctx), req.Username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshTokenID string) error {
	if err := u.tokenStore.Revoke(ctx, jwt.AccessToken, userID, accessTokenID); err != nil {
		u.log.Warnf("Failed to revoke access token: %+v", err)
		return err
	}

	if refreshTokenID == "" {
		return nil
	}
	if err := u.tokenStore.Revoke(ctx, jwt.RefreshToken, userID, refreshTokenID); err != nil {
		u.log.Warnf("Failed to revoke refresh token: %+v", err)
		return err
	}

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	exists, err := u.tokenStore.Exists(ctx, jwt.RefreshToken, claims.UserID, claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to check refresh token: %+v", err)
		return nil, err
	}
	if !exists {
		return nil, ErrTokenRevoked
	}

	// Rotation: the old refresh token is single use.
	if err := u.tokenStore.Revoke(ctx, jwt.RefreshToken, claims.UserID, claims.TokenID); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Username, user.Role.String())
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Username, user.Role.String())
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.tokenStore.Store(ctx, jwt.AccessToken, user.ID, accessTokenID, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, err
	}
	if err := u.tokenStore.Store(ctx, jwt.RefreshToken, user.ID, refreshTokenID, u.jwtService.GetRefreshExpiry()); err != nil {
		u.log.Warnf("Failed to store refresh token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	return u.GetUser(ctx, userID)
}

func (u *authUsecase) GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	db := u.db.WithContext(ctx)
	user, err := u.userRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	doctor, patient, err := u.linkedRecords(db, user.ID)
	if err != nil {
		return nil, err
	}

	return converter.UserToResponse(user, doctor, patient, entity.Today()), nil
}

func (u *authUsecase) GetAllUsers(ctx context.Context) (*dto.UserListResponse, error) {
	db := u.db.WithContext(ctx)
	users, err := u.userRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to find all users: %+v", err)
		return nil, err
	}

	today := entity.Today()
	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		doctor, patient, err := u.linkedRecords(db, users[i].ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *converter.UserToResponse(&users[i], doctor, patient, today))
	}

	return &dto.UserListResponse{
		Users: responses,
		Total: len(responses),
	}, nil
}

// DeleteUser removes the account only. Linked doctor and patient records
// survive with their user link cleared.
func (u *authUsecase) DeleteUser(ctx context.Context, caller *entity.Caller, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := u.doctorRepo.UnlinkUser(tx, id); err != nil {
		u.log.Warnf("Failed to unlink doctor from user: %+v", err)
		return err
	}
	if err := u.patientRepo.UnlinkUser(tx, id); err != nil {
		u.log.Warnf("Failed to unlink patient from user: %+v", err)
		return err
	}

	if err := u.userRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete user: %+v", err)
		return err
	}

	oldValue := converter.UserToResponse(user, nil, nil, entity.Today())
	if err := u.auditService.LogDelete(ctx, tx, actorOf(caller), entity.AuditActionUserDelete, "user", id.String(), oldValue); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if err := u.tokenStore.RevokeAll(ctx, id); err != nil {
		u.log.Warnf("Failed to revoke tokens of deleted user: %+v", err)
	}

	return nil
}

func (u *authUsecase) ValidateAccessToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := u.jwtService.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.AccessToken {
		return nil, ErrInvalidToken
	}

	exists, err := u.tokenStore.Exists(ctx, jwt.AccessToken, claims.UserID, claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to check access token: %+v", err)
		return nil, err
	}
	if !exists {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

func (u *authUsecase) ResolveCaller(ctx context.Context, userID uuid.UUID) (*entity.Caller, error) {
	db := u.db.WithContext(ctx)
	user, err := u.userRepo.FindByID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	doctor, patient, err := u.linkedRecords(db, userID)
	if err != nil {
		return nil, err
	}

	caller := &entity.Caller{UserID: user.ID, Role: user.Role}
	if doctor != nil {
		caller.DoctorID = &doctor.ID
	}
	if patient != nil {
		caller.PatientID = &patient.ID
	}
	return caller, nil
}

func (u *authUsecase) linkedRecords(db *gorm.DB, userID uuid.UUID) (*entity.Doctor, *entity.Patient, error) {
	doctor, err := u.doctorRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by user ID: %+v", err)
		return nil, nil, err
	}
	patient, err := u.patientRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient by user ID: %+v", err)
		return nil, nil, err
	}
	return doctor, patient, nil
}
