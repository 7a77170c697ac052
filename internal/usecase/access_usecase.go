package usecase

import (
	"context"

	"medical-record/internal/domain/entity"
	"medical-record/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AccessUsecase answers ownership questions for the transport layer. Each
// predicate is false for an anonymous caller or an unknown record, and
// ownership is always decided by the account link stored on the record.
type AccessUsecase interface {
	IsOwnerPatient(ctx context.Context, patientID uuid.UUID, caller *entity.Caller) (bool, error)
	CanAccessExamination(ctx context.Context, examinationID uuid.UUID, caller *entity.Caller) (bool, error)
	IsDoctorForExamination(ctx context.Context, examinationID uuid.UUID, caller *entity.Caller) (bool, error)
	IsDoctorWithID(ctx context.Context, doctorID uuid.UUID, caller *entity.Caller) (bool, error)
}

type accessUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	examinationRepo repository.ExaminationRepository
}

func NewAccessUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	examinationRepo repository.ExaminationRepository,
) AccessUsecase {
	return &accessUsecase{
		db:              db,
		log:             log,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		examinationRepo: examinationRepo,
	}
}

func ownedBy(userID *uuid.UUID, caller *entity.Caller) bool {
	return caller != nil && userID != nil && *userID == caller.UserID
}

func (u *accessUsecase) IsOwnerPatient(ctx context.Context, patientID uuid.UUID, caller *entity.Caller) (bool, error) {
	if caller == nil {
		return false, nil
	}
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return false, err
	}
	return patient != nil && ownedBy(patient.UserID, caller), nil
}

func (u *accessUsecase) CanAccessExamination(ctx context.Context, examinationID uuid.UUID, caller *entity.Caller) (bool, error) {
	examination, err := u.findExamination(ctx, examinationID, caller)
	if err != nil || examination == nil {
		return false, err
	}

	if examination.Patient != nil && ownedBy(examination.Patient.UserID, caller) {
		return true, nil
	}
	return examination.Doctor != nil && ownedBy(examination.Doctor.UserID, caller), nil
}

func (u *accessUsecase) IsDoctorForExamination(ctx context.Context, examinationID uuid.UUID, caller *entity.Caller) (bool, error) {
	examination, err := u.findExamination(ctx, examinationID, caller)
	if err != nil || examination == nil {
		return false, err
	}
	return examination.Doctor != nil && ownedBy(examination.Doctor.UserID, caller), nil
}

func (u *accessUsecase) IsDoctorWithID(ctx context.Context, doctorID uuid.UUID, caller *entity.Caller) (bool, error) {
	if caller == nil {
		return false, nil
	}
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return false, err
	}
	return doctor != nil && ownedBy(doctor.UserID, caller), nil
}

func (u *accessUsecase) findExamination(ctx context.Context, id uuid.UUID, caller *entity.Caller) (*entity.Examination, error) {
	if caller == nil {
		return nil, nil
	}
	examination, err := u.examinationRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find examination by ID: %+v", err)
		return nil, err
	}
	return examination, nil
}
