package usecase

import (
	"context"

	"medical-record/internal/converter"
	"medical-record/internal/delivery/dto"
	"medical-record/internal/domain/entity"
	"medical-record/internal/domain/repository"
	"medical-record/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SpecialtyUsecase interface {
	CreateSpecialty(ctx context.Context, caller *entity.Caller, req *dto.SpecialtyRequest) (*dto.SpecialtyResponse, error)
	GetSpecialty(ctx context.Context, id uuid.UUID) (*dto.SpecialtyResponse, error)
	GetAllSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error)
	UpdateSpecialty(ctx context.Context, caller *entity.Caller, id uuid.UUID, req *dto.SpecialtyRequest) (*dto.SpecialtyResponse, error)
	DeleteSpecialty(ctx context.Context, caller *entity.Caller, id uuid.UUID) error
}

type specialtyUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	specialtyRepo repository.SpecialtyRepository
	auditService  service.AuditService
}

func NewSpecialtyUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	specialtyRepo repository.SpecialtyRepository,
	auditService service.AuditService,
) SpecialtyUsecase {
	return &specialtyUsecase{
		db:            db,
		log:           log,
		specialtyRepo: specialtyRepo,
		auditService:  auditService,
	}
}

func (u *specialtyUsecase) CreateSpecialty(ctx context.Context, caller *entity.Caller, req *dto.SpecialtyRequest) (*dto.SpecialtyResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	specialty, err := entity.NewSpecialty(req.Name)
	if err != nil {
		return nil, err
	}

	exists, err := u.specialtyRepo.ExistsByName(tx, specialty.Name, nil)
	if err != nil {
		u.log.Warnf("Failed to check specialty name: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrSpecialtyNameExists
	}

	if err := u.specialtyRepo.Create(tx, specialty); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrSpecialtyNameExists
		}
		u.log.Warnf("Failed to create specialty: %+v", err)
		return nil, err
	}

	response := converter.SpecialtyToResponse(specialty)
	if err := u.auditService.LogCreate(ctx, tx, actorOf(caller), entity.AuditActionSpecialtyCreate, "specialty", specialty.ID.String(), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *specialtyUsecase) GetSpecialty(ctx context.Context, id uuid.UUID) (*dto.SpecialtyResponse, error) {
	specialty, err := u.specialtyRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find specialty: %+v", err)
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}

	return converter.SpecialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) GetAllSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error) {
	specialties, err := u.specialtyRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all specialties: %+v", err)
		return nil, err
	}

	return &dto.SpecialtyListResponse{
		Specialties: converter.SpecialtiesToResponses(specialties),
		Total:       len(specialties),
	}, nil
}

func (u *specialtyUsecase) UpdateSpecialty(ctx context.Context, caller *entity.Caller, id uuid.UUID, req *dto.SpecialtyRequest) (*dto.SpecialtyResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	specialty, err := u.specialtyRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find specialty: %+v", err)
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}

	oldValue := converter.SpecialtyToResponse(specialty)

	if err := specialty.Rename(req.Name); err != nil {
		return nil, err
	}

	exists, err := u.specialtyRepo.ExistsByName(tx, specialty.Name, &specialty.ID)
	if err != nil {
		u.log.Warnf("Failed to check specialty name: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrSpecialtyNameExists
	}

	if err := u.specialtyRepo.Update(tx, specialty); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrSpecialtyNameExists
		}
		u.log.Warnf("Failed to update specialty: %+v", err)
		return nil, err
	}

	newValue := converter.SpecialtyToResponse(specialty)
	if err := u.auditService.LogUpdate(ctx, tx, actorOf(caller), entity.AuditActionSpecialtyUpdate, "specialty", specialty.ID.String(), oldValue, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

func (u *specialtyUsecase) DeleteSpecialty(ctx context.Context, caller *entity.Caller, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	specialty, err := u.specialtyRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find specialty: %+v", err)
		return err
	}
	if specialty == nil {
		return ErrSpecialtyNotFound
	}

	if err := u.specialtyRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete specialty: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actorOf(caller), entity.AuditActionSpecialtyDelete, "specialty", id.String(), converter.SpecialtyToResponse(specialty)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
