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

type PatientUsecase interface {
	CreatePatient(ctx context.Context, caller *entity.Caller, req *dto.PatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	GetPatientByEGN(ctx context.Context, egn string) (*dto.PatientResponse, error)
	GetPatientByUserID(ctx context.Context, userID uuid.UUID) (*dto.PatientResponse, error)
	GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error)
	GetPatientsByGP(ctx context.Context, gpID uuid.UUID) (*dto.PatientListResponse, error)
	GetPatientsByDiagnosis(ctx context.Context, diagnosisID uuid.UUID) (*dto.PatientListResponse, error)
	UpdatePatient(ctx context.Context, caller *entity.Caller, id uuid.UUID, req *dto.PatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, caller *entity.Caller, id uuid.UUID) error
}

type patientUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	examinationRepo repository.ExaminationRepository
	auditService    service.AuditService
	reportCache     service.ReportCache
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	examinationRepo repository.ExaminationRepository,
	auditService service.AuditService,
	reportCache service.ReportCache,
) PatientUsecase {
	return &patientUsecase{
		db:              db,
		log:             log,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		examinationRepo: examinationRepo,
		auditService:    auditService,
		reportCache:     reportCache,
	}
}

func (u *patientUsecase) CreatePatient(ctx context.Context, caller *entity.Caller, req *dto.PatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := registerPatient(tx, u.log, u.patientRepo, u.doctorRepo, req, nil)
	if err != nil {
		return nil, err
	}

	response := converter.PatientToResponse(patient, entity.Today())
	if err := u.auditService.LogCreate(ctx, tx, actorOf(caller), entity.AuditActionPatientCreate, "patient", patient.ID.String(), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	invalidateReports(ctx, u.reportCache, u.log)

	return response, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient, entity.Today()), nil
}

func (u *patientUsecase) GetPatientByEGN(ctx context.Context, egn string) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByEGN(u.db.WithContext(ctx), egn)
	if err != nil {
		u.log.Warnf("Failed to find patient by EGN: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient, entity.Today()), nil
}

func (u *patientUsecase) GetPatientByUserID(ctx context.Context, userID uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find patient by user: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient, entity.Today()), nil
}

func (u *patientUsecase) GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all patients: %+v", err)
		return nil, err
	}

	return toPatientList(patients), nil
}

func (u *patientUsecase) GetPatientsByGP(ctx context.Context, gpID uuid.UUID) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindByGPID(u.db.WithContext(ctx), gpID)
	if err != nil {
		u.log.Warnf("Failed to find patients by GP: %+v", err)
		return nil, err
	}

	return toPatientList(patients), nil
}

func (u *patientUsecase) GetPatientsByDiagnosis(ctx context.Context, diagnosisID uuid.UUID) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindByDiagnosisID(u.db.WithContext(ctx), diagnosisID)
	if err != nil {
		u.log.Warnf("Failed to find patients by diagnosis: %+v", err)
		return nil, err
	}

	return toPatientList(patients), nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, caller *entity.Caller, id uuid.UUID, req *dto.PatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	today := entity.Today()
	oldValue := converter.PatientToResponse(patient, today)

	lastPayment, err := parseOptionalDate(req.LastInsurancePayment)
	if err != nil {
		return nil, err
	}
	gp, err := resolveGP(tx, u.log, u.doctorRepo, req.GPID)
	if err != nil {
		return nil, err
	}
	if err := patient.Revise(req.Name, req.EGN, lastPayment, gp); err != nil {
		return nil, err
	}

	exists, err := u.patientRepo.ExistsByEGN(tx, patient.EGN, &patient.ID)
	if err != nil {
		u.log.Warnf("Failed to check patient EGN: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrEGNAlreadyExists
	}

	if err := u.patientRepo.Update(tx, patient); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrEGNAlreadyExists
		}
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	newValue := converter.PatientToResponse(patient, today)
	if err := u.auditService.LogUpdate(ctx, tx, actorOf(caller), entity.AuditActionPatientUpdate, "patient", patient.ID.String(), oldValue, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	invalidateReports(ctx, u.reportCache, u.log)

	return newValue, nil
}

// DeletePatient refuses while examinations reference the patient.
func (u *patientUsecase) DeletePatient(ctx context.Context, caller *entity.Caller, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	examinations, err := u.examinationRepo.CountByPatientID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to count examinations for patient: %+v", err)
		return err
	}
	if examinations > 0 {
		return ErrPatientHasExaminations
	}

	if err := u.patientRepo.Delete(tx, id); err != nil {
		if isForeignKeyError(err) {
			return ErrPatientHasExaminations
		}
		u.log.Warnf("Failed to delete patient: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actorOf(caller), entity.AuditActionPatientDelete, "patient", id.String(), converter.PatientToSummary(patient, entity.Today())); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	invalidateReports(ctx, u.reportCache, u.log)

	return nil
}

func toPatientList(patients []entity.Patient) *dto.PatientListResponse {
	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients, entity.Today()),
		Total:    len(patients),
	}
}

// registerPatient validates and persists a patient inside tx, optionally
// linked to an identity account.
func registerPatient(
	tx *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	req *dto.PatientRequest,
	userID *uuid.UUID,
) (*entity.Patient, error) {
	lastPayment, err := parseOptionalDate(req.LastInsurancePayment)
	if err != nil {
		return nil, err
	}
	gp, err := resolveGP(tx, log, doctorRepo, req.GPID)
	if err != nil {
		return nil, err
	}

	patient, err := entity.NewPatient(req.Name, req.EGN, lastPayment, gp)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		patient.LinkUser(*userID)
	}

	exists, err := patientRepo.ExistsByEGN(tx, patient.EGN, nil)
	if err != nil {
		log.Warnf("Failed to check patient EGN: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrEGNAlreadyExists
	}

	if err := patientRepo.Create(tx, patient); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrEGNAlreadyExists
		}
		log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	return patient, nil
}

// resolveGP loads the referenced doctor. Eligibility is checked by the
// patient entity, so a non-GP doctor yields a validation error there.
func resolveGP(tx *gorm.DB, log *logrus.Logger, doctorRepo repository.DoctorRepository, gpID *uuid.UUID) (*entity.Doctor, error) {
	if gpID == nil || *gpID == uuid.Nil {
		return nil, nil
	}
	gp, err := doctorRepo.FindByID(tx, *gpID)
	if err != nil {
		log.Warnf("Failed to find GP: %+v", err)
		return nil, err
	}
	if gp == nil {
		return nil, ErrGPNotFound
	}
	return gp, nil
}
