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

type DiagnosisUsecase interface {
	CreateDiagnosis(ctx context.Context, caller *entity.Caller, req *dto.DiagnosisRequest) (*dto.DiagnosisResponse, error)
	GetDiagnosis(ctx context.Context, id uuid.UUID) (*dto.DiagnosisResponse, error)
	GetDiagnosisByCode(ctx context.Context, code string) (*dto.DiagnosisResponse, error)
	GetAllDiagnoses(ctx context.Context) (*dto.DiagnosisListResponse, error)
	SearchDiagnoses(ctx context.Context, name string) (*dto.DiagnosisListResponse, error)
	UpdateDiagnosis(ctx context.Context, caller *entity.Caller, id uuid.UUID, req *dto.DiagnosisRequest) (*dto.DiagnosisResponse, error)
	DeleteDiagnosis(ctx context.Context, caller *entity.Caller, id uuid.UUID) error
}

type diagnosisUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	diagnosisRepo   repository.DiagnosisRepository
	examinationRepo repository.ExaminationRepository
	auditService    service.AuditService
	reportCache     service.ReportCache
}

func NewDiagnosisUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	diagnosisRepo repository.DiagnosisRepository,
	examinationRepo repository.ExaminationRepository,
	auditService service.AuditService,
	reportCache service.ReportCache,
) DiagnosisUsecase {
	return &diagnosisUsecase{
		db:              db,
		log:             log,
		diagnosisRepo:   diagnosisRepo,
		examinationRepo: examinationRepo,
		auditService:    auditService,
		reportCache:     reportCache,
	}
}

func (u *diagnosisUsecase) CreateDiagnosis(ctx context.Context, caller *entity.Caller, req *dto.DiagnosisRequest) (*dto.DiagnosisResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	diagnosis, err := entity.NewDiagnosis(req.Code, req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	exists, err := u.diagnosisRepo.ExistsByCode(tx, diagnosis.Code, nil)
	if err != nil {
		u.log.Warnf("Failed to check diagnosis code: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrDiagnosisCodeExists
	}

	if err := u.diagnosisRepo.Create(tx, diagnosis); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrDiagnosisCodeExists
		}
		u.log.Warnf("Failed to create diagnosis: %+v", err)
		return nil, err
	}

	response := converter.DiagnosisToResponse(diagnosis)
	if err := u.auditService.LogCreate(ctx, tx, actorOf(caller), entity.AuditActionDiagnosisCreate, "diagnosis", diagnosis.ID.String(), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *diagnosisUsecase) GetDiagnosis(ctx context.Context, id uuid.UUID) (*dto.DiagnosisResponse, error) {
	diagnosis, err := u.diagnosisRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find diagnosis: %+v", err)
		return nil, err
	}
	if diagnosis == nil {
		return nil, ErrDiagnosisNotFound
	}

	return converter.DiagnosisToResponse(diagnosis), nil
}

func (u *diagnosisUsecase) GetDiagnosisByCode(ctx context.Context, code string) (*dto.DiagnosisResponse, error) {
	diagnosis, err := u.diagnosisRepo.FindByCode(u.db.WithContext(ctx), code)
	if err != nil {
		u.log.Warnf("Failed to find diagnosis by code: %+v", err)
		return nil, err
	}
	if diagnosis == nil {
		return nil, ErrDiagnosisNotFound
	}

	return converter.DiagnosisToResponse(diagnosis), nil
}

func (u *diagnosisUsecase) GetAllDiagnoses(ctx context.Context) (*dto.DiagnosisListResponse, error) {
	diagnoses, err := u.diagnosisRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all diagnoses: %+v", err)
		return nil, err
	}

	return &dto.DiagnosisListResponse{
		Diagnoses: converter.DiagnosesToResponses(diagnoses),
		Total:     len(diagnoses),
	}, nil
}

func (u *diagnosisUsecase) SearchDiagnoses(ctx context.Context, name string) (*dto.DiagnosisListResponse, error) {
	diagnoses, err := u.diagnosisRepo.SearchByName(u.db.WithContext(ctx), name)
	if err != nil {
		u.log.Warnf("Failed to search diagnoses: %+v", err)
		return nil, err
	}

	return &dto.DiagnosisListResponse{
		Diagnoses: converter.DiagnosesToResponses(diagnoses),
		Total:     len(diagnoses),
	}, nil
}

func (u *diagnosisUsecase) UpdateDiagnosis(ctx context.Context, caller *entity.Caller, id uuid.UUID, req *dto.DiagnosisRequest) (*dto.DiagnosisResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	diagnosis, err := u.diagnosisRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find diagnosis: %+v", err)
		return nil, err
	}
	if diagnosis == nil {
		return nil, ErrDiagnosisNotFound
	}

	oldValue := converter.DiagnosisToResponse(diagnosis)

	if err := diagnosis.Revise(req.Code, req.Name, req.Description); err != nil {
		return nil, err
	}

	exists, err := u.diagnosisRepo.ExistsByCode(tx, diagnosis.Code, &diagnosis.ID)
	if err != nil {
		u.log.Warnf("Failed to check diagnosis code: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrDiagnosisCodeExists
	}

	if err := u.diagnosisRepo.Update(tx, diagnosis); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrDiagnosisCodeExists
		}
		u.log.Warnf("Failed to update diagnosis: %+v", err)
		return nil, err
	}

	newValue := converter.DiagnosisToResponse(diagnosis)
	if err := u.auditService.LogUpdate(ctx, tx, actorOf(caller), entity.AuditActionDiagnosisUpdate, "diagnosis", diagnosis.ID.String(), oldValue, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	invalidateReports(ctx, u.reportCache, u.log)

	return newValue, nil
}

// DeleteDiagnosis refuses while any examination still carries the diagnosis.
func (u *diagnosisUsecase) DeleteDiagnosis(ctx context.Context, caller *entity.Caller, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	diagnosis, err := u.diagnosisRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find diagnosis: %+v", err)
		return err
	}
	if diagnosis == nil {
		return ErrDiagnosisNotFound
	}

	used, err := u.examinationRepo.CountByDiagnosisID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to count examinations for diagnosis: %+v", err)
		return err
	}
	if used > 0 {
		return ErrDiagnosisInUse
	}

	if err := u.diagnosisRepo.Delete(tx, id); err != nil {
		if isForeignKeyError(err) {
			return ErrDiagnosisInUse
		}
		u.log.Warnf("Failed to delete diagnosis: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actorOf(caller), entity.AuditActionDiagnosisDelete, "diagnosis", id.String(), converter.DiagnosisToResponse(diagnosis)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	invalidateReports(ctx, u.reportCache, u.log)

	return nil
}
