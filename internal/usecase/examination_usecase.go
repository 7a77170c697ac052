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

// ClinicalMetrics counts clinically significant events.
type ClinicalMetrics interface {
	IncrementExaminationsFiled()
	IncrementSickLeavesIssued()
}

type ExaminationUsecase interface {
	CreateExamination(ctx context.Context, caller *entity.Caller, req *dto.ExaminationRequest) (*dto.ExaminationResponse, error)
	GetExamination(ctx context.Context, id uuid.UUID) (*dto.ExaminationResponse, error)
	GetAllExaminations(ctx context.Context) (*dto.ExaminationListResponse, error)
	GetExaminationsByPatient(ctx context.Context, patientID uuid.UUID) (*dto.ExaminationListResponse, error)
	GetExaminationsByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.ExaminationListResponse, error)
	UpdateExamination(ctx context.Context, caller *entity.Caller, id uuid.UUID, req *dto.ExaminationRequest) (*dto.ExaminationResponse, error)
	DeleteExamination(ctx context.Context, caller *entity.Caller, id uuid.UUID) error
}

type examinationUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	examinationRepo repository.ExaminationRepository
	sickLeaveRepo   repository.SickLeaveRepository
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	diagnosisRepo   repository.DiagnosisRepository
	auditService    service.AuditService
	reportCache     service.ReportCache
	metrics         ClinicalMetrics
}

func NewExaminationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	examinationRepo repository.ExaminationRepository,
	sickLeaveRepo repository.SickLeaveRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	diagnosisRepo repository.DiagnosisRepository,
	auditService service.AuditService,
	reportCache service.ReportCache,
	metrics ClinicalMetrics,
) ExaminationUsecase {
	return &examinationUsecase{
		db:              db,
		log:             log,
		examinationRepo: examinationRepo,
		sickLeaveRepo:   sickLeaveRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		diagnosisRepo:   diagnosisRepo,
		auditService:    auditService,
		reportCache:     reportCache,
		metrics:         metrics,
	}
}

// CreateExamination files an examination and its optional sick leave in one
// transaction. The doctor is the one named in the request, or else the
// caller's own linked doctor record.
func (u *examinationUsecase) CreateExamination(ctx context.Context, caller *entity.Caller, req *dto.ExaminationRequest) (*dto.ExaminationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	date, err := parseDate(req.ExaminationDate)
	if err != nil {
		return nil, err
	}
	period, err := sickLeavePeriod(req.SickLeave)
	if err != nil {
		return nil, err
	}

	patient, err := u.findPatient(tx, req.PatientID)
	if err != nil {
		return nil, err
	}
	doctor, err := u.resolveDoctor(tx, caller, req.DoctorID)
	if err != nil {
		return nil, err
	}
	diagnosis, err := u.findDiagnosis(tx, req.DiagnosisID)
	if err != nil {
		return nil, err
	}

	today := entity.Today()
	examination, err := entity.NewExamination(date, patient, doctor, diagnosis, req.Treatment, req.Prescription, today)
	if err != nil {
		return nil, err
	}
	issued, err := examination.ApplySickLeave(period)
	if err != nil {
		return nil, err
	}

	if err := u.examinationRepo.Create(tx, examination); err != nil {
		u.log.Warnf("Failed to create examination: %+v", err)
		return nil, err
	}
	if issued {
		if err := u.sickLeaveRepo.Create(tx, examination.SickLeave); err != nil {
			u.log.Warnf("Failed to create sick leave: %+v", err)
			return nil, err
		}
	}

	response := converter.ExaminationToResponse(examination, today)
	if err := u.auditService.LogCreate(ctx, tx, actorOf(caller), entity.AuditActionExaminationCreate, "examination", examination.ID.String(), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	invalidateReports(ctx, u.reportCache, u.log)

	u.log.Infof("Examination %s filed by doctor %s for patient %s", examination.ID, doctor.ID, patient.ID)
	u.countFiled(issued)

	return response, nil
}

func (u *examinationUsecase) GetExamination(ctx context.Context, id uuid.UUID) (*dto.ExaminationResponse, error) {
	examination, err := u.examinationRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find examination: %+v", err)
		return nil, err
	}
	if examination == nil {
		return nil, ErrExaminationNotFound
	}

	return converter.ExaminationToResponse(examination, entity.Today()), nil
}

func (u *examinationUsecase) GetAllExaminations(ctx context.Context) (*dto.ExaminationListResponse, error) {
	examinations, err := u.examinationRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all examinations: %+v", err)
		return nil, err
	}

	return toExaminationList(examinations), nil
}

func (u *examinationUsecase) GetExaminationsByPatient(ctx context.Context, patientID uuid.UUID) (*dto.ExaminationListResponse, error) {
	examinations, err := u.examinationRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find examinations by patient: %+v", err)
		return nil, err
	}

	return toExaminationList(examinations), nil
}

func (u *examinationUsecase) GetExaminationsByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.ExaminationListResponse, error) {
	examinations, err := u.examinationRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find examinations by doctor: %+v", err)
		return nil, err
	}

	return toExaminationList(examinations), nil
}

// UpdateExamination re-resolves patient and diagnosis. Any doctor id in the
// request is ignored; the examining doctor never changes. The sick leave is
// created when absent and rescheduled in place otherwise.
func (u *examinationUsecase) UpdateExamination(ctx context.Context, caller *entity.Caller, id uuid.UUID, req *dto.ExaminationRequest) (*dto.ExaminationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	examination, err := u.examinationRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find examination: %+v", err)
		return nil, err
	}
	if examination == nil {
		return nil, ErrExaminationNotFound
	}

	today := entity.Today()
	oldValue := converter.ExaminationToResponse(examination, today)

	date, err := parseDate(req.ExaminationDate)
	if err != nil {
		return nil, err
	}
	period, err := sickLeavePeriod(req.SickLeave)
	if err != nil {
		return nil, err
	}
	patient, err := u.findPatient(tx, req.PatientID)
	if err != nil {
		return nil, err
	}
	diagnosis, err := u.findDiagnosis(tx, req.DiagnosisID)
	if err != nil {
		return nil, err
	}

	if err := examination.Revise(date, patient, diagnosis, req.Treatment, req.Prescription, today); err != nil {
		return nil, err
	}
	hadSickLeave := examination.SickLeave != nil
	issued, err := examination.ApplySickLeave(period)
	if err != nil {
		return nil, err
	}

	if err := u.examinationRepo.Update(tx, examination); err != nil {
		u.log.Warnf("Failed to update examination: %+v", err)
		return nil, err
	}
	switch {
	case issued:
		if err := u.sickLeaveRepo.Create(tx, examination.SickLeave); err != nil {
			u.log.Warnf("Failed to create sick leave: %+v", err)
			return nil, err
		}
	case hadSickLeave && !period.IsEmpty():
		if err := u.sickLeaveRepo.Update(tx, examination.SickLeave); err != nil {
			u.log.Warnf("Failed to update sick leave: %+v", err)
			return nil, err
		}
	}

	newValue := converter.ExaminationToResponse(examination, today)
	if err := u.auditService.LogUpdate(ctx, tx, actorOf(caller), entity.AuditActionExaminationUpdate, "examination", examination.ID.String(), oldValue, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	invalidateReports(ctx, u.reportCache, u.log)

	if issued {
		u.log.Infof("Sick leave %s issued for examination %s", examination.SickLeave.ID, examination.ID)
		if u.metrics != nil {
			u.metrics.IncrementSickLeavesIssued()
		}
	}

	return newValue, nil
}

// DeleteExamination removes the examination together with its sick leave.
func (u *examinationUsecase) DeleteExamination(ctx context.Context, caller *entity.Caller, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	examination, err := u.examinationRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find examination: %+v", err)
		return err
	}
	if examination == nil {
		return ErrExaminationNotFound
	}

	if err := u.sickLeaveRepo.DeleteByExaminationID(tx, id); err != nil {
		u.log.Warnf("Failed to delete sick leave: %+v", err)
		return err
	}
	if err := u.examinationRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete examination: %+v", err)
		return err
	}

	oldValue := converter.ExaminationToResponse(examination, entity.Today())
	if err := u.auditService.LogDelete(ctx, tx, actorOf(caller), entity.AuditActionExaminationDelete, "examination", id.String(), oldValue); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	invalidateReports(ctx, u.reportCache, u.log)

	return nil
}

func (u *examinationUsecase) findPatient(tx *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

func (u *examinationUsecase) findDiagnosis(tx *gorm.DB, id *uuid.UUID) (*entity.Diagnosis, error) {
	if id == nil || *id == uuid.Nil {
		return nil, nil
	}
	diagnosis, err := u.diagnosisRepo.FindByID(tx, *id)
	if err != nil {
		u.log.Warnf("Failed to find diagnosis: %+v", err)
		return nil, err
	}
	if diagnosis == nil {
		return nil, ErrDiagnosisNotFound
	}
	return diagnosis, nil
}

// resolveDoctor prefers an explicit doctor id and falls back to the doctor
// record linked to the caller.
func (u *examinationUsecase) resolveDoctor(tx *gorm.DB, caller *entity.Caller, doctorID *uuid.UUID) (*entity.Doctor, error) {
	id, ok := caller.LinkedDoctorID()
	if doctorID != nil && *doctorID != uuid.Nil {
		id, ok = *doctorID, true
	}
	if !ok {
		return nil, ErrNoDoctorForCaller
	}

	doctor, err := u.doctorRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

func (u *examinationUsecase) countFiled(sickLeaveIssued bool) {
	if u.metrics == nil {
		return
	}
	u.metrics.IncrementExaminationsFiled()
	if sickLeaveIssued {
		u.metrics.IncrementSickLeavesIssued()
	}
}

func sickLeavePeriod(req *dto.SickLeaveRequest) (*entity.SickLeavePeriod, error) {
	if req == nil {
		return nil, nil
	}
	period := &entity.SickLeavePeriod{NumberOfDays: req.NumberOfDays}
	if req.StartDate != "" {
		start, err := parseDate(req.StartDate)
		if err != nil {
			return nil, err
		}
		period.StartDate = &start
	}
	return period, nil
}

func toExaminationList(examinations []entity.Examination) *dto.ExaminationListResponse {
	return &dto.ExaminationListResponse{
		Examinations: converter.ExaminationsToResponses(examinations, entity.Today()),
		Total:        len(examinations),
	}
}
