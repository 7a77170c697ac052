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

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, caller *entity.Caller, req *dto.DoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	GetDoctorByUIN(ctx context.Context, uin string) (*dto.DoctorResponse, error)
	GetDoctorByUserID(ctx context.Context, userID uuid.UUID) (*dto.DoctorResponse, error)
	GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetGPs(ctx context.Context) (*dto.DoctorListResponse, error)
	GetDoctorsBySpecialty(ctx context.Context, specialtyID uuid.UUID) (*dto.DoctorListResponse, error)
	UpdateDoctor(ctx context.Context, caller *entity.Caller, id uuid.UUID, req *dto.DoctorRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, caller *entity.Caller, id uuid.UUID) error
}

type doctorUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	specialtyRepo   repository.SpecialtyRepository
	examinationRepo repository.ExaminationRepository
	auditService    service.AuditService
	reportCache     service.ReportCache
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	specialtyRepo repository.SpecialtyRepository,
	examinationRepo repository.ExaminationRepository,
	auditService service.AuditService,
	reportCache service.ReportCache,
) DoctorUsecase {
	return &doctorUsecase{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		specialtyRepo:   specialtyRepo,
		examinationRepo: examinationRepo,
		auditService:    auditService,
		reportCache:     reportCache,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, caller *entity.Caller, req *dto.DoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := registerDoctor(tx, u.log, u.doctorRepo, u.specialtyRepo, req, nil)
	if err != nil {
		return nil, err
	}

	response := converter.DoctorToResponse(doctor, 0)
	if err := u.auditService.LogCreate(ctx, tx, actorOf(caller), entity.AuditActionDoctorCreate, "doctor", doctor.ID.String(), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	invalidateReports(ctx, u.reportCache, u.log)

	return response, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	db := u.db.WithContext(ctx)
	doctor, err := u.doctorRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return u.toResponse(db, doctor)
}

func (u *doctorUsecase) GetDoctorByUIN(ctx context.Context, uin string) (*dto.DoctorResponse, error) {
	db := u.db.WithContext(ctx)
	doctor, err := u.doctorRepo.FindByUIN(db, uin)
	if err != nil {
		u.log.Warnf("Failed to find doctor by UIN: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return u.toResponse(db, doctor)
}

func (u *doctorUsecase) GetDoctorByUserID(ctx context.Context, userID uuid.UUID) (*dto.DoctorResponse, error) {
	db := u.db.WithContext(ctx)
	doctor, err := u.doctorRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by user: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return u.toResponse(db, doctor)
}

func (u *doctorUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	db := u.db.WithContext(ctx)
	doctors, err := u.doctorRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	return u.toListResponse(db, doctors)
}

func (u *doctorUsecase) GetGPs(ctx context.Context) (*dto.DoctorListResponse, error) {
	db := u.db.WithContext(ctx)
	doctors, err := u.doctorRepo.FindGPs(db)
	if err != nil {
		u.log.Warnf("Failed to find general practitioners: %+v", err)
		return nil, err
	}

	return u.toListResponse(db, doctors)
}

func (u *doctorUsecase) GetDoctorsBySpecialty(ctx context.Context, specialtyID uuid.UUID) (*dto.DoctorListResponse, error) {
	db := u.db.WithContext(ctx)
	doctors, err := u.doctorRepo.FindBySpecialtyID(db, specialtyID)
	if err != nil {
		u.log.Warnf("Failed to find doctors by specialty: %+v", err)
		return nil, err
	}

	return u.toListResponse(db, doctors)
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, caller *entity.Caller, id uuid.UUID, req *dto.DoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	oldValue, err := u.toResponse(tx, doctor)
	if err != nil {
		return nil, err
	}

	specialties, err := resolveSpecialties(tx, u.log, u.specialtyRepo, req.SpecialtyIDs)
	if err != nil {
		return nil, err
	}
	if doctor.IsGP && !req.IsGP {
		patients, err := u.doctorRepo.CountPatients(tx, doctor.ID)
		if err != nil {
			u.log.Warnf("Failed to count GP patients: %+v", err)
			return nil, err
		}
		if patients > 0 {
			return nil, ErrDoctorHasGPPatients
		}
	}

	if err := doctor.Revise(req.UIN, req.Name, req.IsGP, specialties); err != nil {
		return nil, err
	}

	exists, err := u.doctorRepo.ExistsByUIN(tx, doctor.UIN, &doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to check doctor UIN: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrUINAlreadyExists
	}

	if err := u.doctorRepo.Update(tx, doctor); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrUINAlreadyExists
		}
		u.log.Warnf("Failed to update doctor: %+v", err)
		return nil, err
	}

	newValue, err := u.toResponse(tx, doctor)
	if err != nil {
		return nil, err
	}
	if err := u.auditService.LogUpdate(ctx, tx, actorOf(caller), entity.AuditActionDoctorUpdate, "doctor", doctor.ID.String(), oldValue, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	invalidateReports(ctx, u.reportCache, u.log)

	return newValue, nil
}

// DeleteDoctor refuses while examinations reference the doctor. Patients
// registered with the doctor as GP are left without a GP.
func (u *doctorUsecase) DeleteDoctor(ctx context.Context, caller *entity.Caller, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	examinations, err := u.examinationRepo.CountByDoctorID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to count examinations for doctor: %+v", err)
		return err
	}
	if examinations > 0 {
		return ErrDoctorHasExaminations
	}

	if err := u.doctorRepo.Delete(tx, id); err != nil {
		if isForeignKeyError(err) {
			return ErrDoctorHasExaminations
		}
		u.log.Warnf("Failed to delete doctor: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actorOf(caller), entity.AuditActionDoctorDelete, "doctor", id.String(), converter.DoctorToSummary(doctor)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	invalidateReports(ctx, u.reportCache, u.log)

	return nil
}

func (u *doctorUsecase) toResponse(db *gorm.DB, doctor *entity.Doctor) (*dto.DoctorResponse, error) {
	count, err := u.doctorRepo.CountPatients(db, doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to count patients for doctor: %+v", err)
		return nil, err
	}
	return converter.DoctorToResponse(doctor, count), nil
}

func (u *doctorUsecase) toListResponse(db *gorm.DB, doctors []entity.Doctor) (*dto.DoctorListResponse, error) {
	responses := make([]dto.DoctorResponse, 0, len(doctors))
	for i := range doctors {
		response, err := u.toResponse(db, &doctors[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *response)
	}

	return &dto.DoctorListResponse{
		Doctors: responses,
		Total:   len(responses),
	}, nil
}

// registerDoctor validates and persists a doctor inside tx, optionally linked
// to an identity account. It is shared by standalone creation and account
// registration.
func registerDoctor(
	tx *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	specialtyRepo repository.SpecialtyRepository,
	req *dto.DoctorRequest,
	userID *uuid.UUID,
) (*entity.Doctor, error) {
	specialties, err := resolveSpecialties(tx, log, specialtyRepo, req.SpecialtyIDs)
	if err != nil {
		return nil, err
	}

	doctor, err := entity.NewDoctor(req.UIN, req.Name, req.IsGP, specialties)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		doctor.LinkUser(*userID)
	}

	exists, err := doctorRepo.ExistsByUIN(tx, doctor.UIN, nil)
	if err != nil {
		log.Warnf("Failed to check doctor UIN: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrUINAlreadyExists
	}

	if err := doctorRepo.Create(tx, doctor); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrUINAlreadyExists
		}
		log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	return doctor, nil
}

// resolveSpecialties loads every referenced specialty; any unknown id fails
// the whole request.
func resolveSpecialties(tx *gorm.DB, log *logrus.Logger, specialtyRepo repository.SpecialtyRepository, ids []uuid.UUID) ([]entity.Specialty, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	specialties, err := specialtyRepo.FindByIDs(tx, unique)
	if err != nil {
		log.Warnf("Failed to find specialties: %+v", err)
		return nil, err
	}
	if len(specialties) != len(unique) {
		return nil, ErrSpecialtyNotFound
	}
	return specialties, nil
}
