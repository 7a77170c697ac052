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

// SickLeaveUsecase exposes sick leaves read-only apart from deletion; they
// are issued and changed through examinations.
type SickLeaveUsecase interface {
	GetSickLeave(ctx context.Context, id uuid.UUID) (*dto.SickLeaveResponse, error)
	GetAllSickLeaves(ctx context.Context) (*dto.SickLeaveListResponse, error)
	GetSickLeaveByExamination(ctx context.Context, examinationID uuid.UUID) (*dto.SickLeaveResponse, error)
	GetSickLeavesByPatient(ctx context.Context, patientID uuid.UUID) (*dto.SickLeaveListResponse, error)
	DeleteSickLeave(ctx context.Context, caller *entity.Caller, id uuid.UUID) error
}

type sickLeaveUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	sickLeaveRepo repository.SickLeaveRepository
	auditService  service.AuditService
	reportCache   service.ReportCache
}

func NewSickLeaveUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	sickLeaveRepo repository.SickLeaveRepository,
	auditService service.AuditService,
	reportCache service.ReportCache,
) SickLeaveUsecase {
	return &sickLeaveUsecase{
		db:            db,
		log:           log,
		sickLeaveRepo: sickLeaveRepo,
		auditService:  auditService,
		reportCache:   reportCache,
	}
}

func (u *sickLeaveUsecase) GetSickLeave(ctx context.Context, id uuid.UUID) (*dto.SickLeaveResponse, error) {
	sickLeave, err := u.sickLeaveRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find sick leave: %+v", err)
		return nil, err
	}
	if sickLeave == nil {
		return nil, ErrSickLeaveNotFound
	}

	return converter.SickLeaveToResponse(sickLeave), nil
}

func (u *sickLeaveUsecase) GetAllSickLeaves(ctx context.Context) (*dto.SickLeaveListResponse, error) {
	sickLeaves, err := u.sickLeaveRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all sick leaves: %+v", err)
		return nil, err
	}

	return &dto.SickLeaveListResponse{
		SickLeaves: converter.SickLeavesToResponses(sickLeaves),
		Total:      len(sickLeaves),
	}, nil
}

func (u *sickLeaveUsecase) GetSickLeaveByExamination(ctx context.Context, examinationID uuid.UUID) (*dto.SickLeaveResponse, error) {
	sickLeave, err := u.sickLeaveRepo.FindByExaminationID(u.db.WithContext(ctx), examinationID)
	if err != nil {
		u.log.Warnf("Failed to find sick leave by examination: %+v", err)
		return nil, err
	}
	if sickLeave == nil {
		return nil, ErrSickLeaveNotFound
	}

	return converter.SickLeaveToResponse(sickLeave), nil
}

func (u *sickLeaveUsecase) GetSickLeavesByPatient(ctx context.Context, patientID uuid.UUID) (*dto.SickLeaveListResponse, error) {
	sickLeaves, err := u.sickLeaveRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find sick leaves by patient: %+v", err)
		return nil, err
	}

	return &dto.SickLeaveListResponse{
		SickLeaves: converter.SickLeavesToResponses(sickLeaves),
		Total:      len(sickLeaves),
	}, nil
}

// DeleteSickLeave removes the certificate only; its examination remains.
func (u *sickLeaveUsecase) DeleteSickLeave(ctx context.Context, caller *entity.Caller, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	sickLeave, err := u.sickLeaveRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find sick leave: %+v", err)
		return err
	}
	if sickLeave == nil {
		return ErrSickLeaveNotFound
	}

	if err := u.sickLeaveRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete sick leave: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actorOf(caller), entity.AuditActionSickLeaveDelete, "sick_leave", id.String(), converter.SickLeaveToResponse(sickLeave)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	invalidateReports(ctx, u.reportCache, u.log)

	return nil
}
