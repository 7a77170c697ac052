package usecase

import (
	"context"
	"fmt"
	"io"
	"testing"

	"medical-record/internal/delivery/dto"
	"medical-record/internal/domain/entity"
	"medical-record/internal/infrastructure/database"
	"medical-record/internal/repository"
	"medical-record/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database with foreign keys on
// and the full schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the shared in-memory database alive and
	// serializes transactions.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type clinicSuite struct {
	suite.Suite

	ctx   context.Context
	db    *gorm.DB
	log   *logrus.Logger
	admin *entity.Caller

	specialties  SpecialtyUsecase
	diagnoses    DiagnosisUsecase
	doctors      DoctorUsecase
	patients     PatientUsecase
	examinations ExaminationUsecase
	sickLeaves   SickLeaveUsecase
	reports      ReportUsecase
	access       AccessUsecase
	auditLogs    AuditLogUsecase
}

func TestClinicSuite(t *testing.T) {
	suite.Run(t, new(clinicSuite))
}

func (s *clinicSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = newTestDB(s.T())
	s.log = newTestLogger()
	s.admin = &entity.Caller{UserID: uuid.New(), Role: entity.RoleAdmin}

	specialtyRepo := repository.NewSpecialtyRepository()
	diagnosisRepo := repository.NewDiagnosisRepository()
	doctorRepo := repository.NewDoctorRepository()
	patientRepo := repository.NewPatientRepository()
	examinationRepo := repository.NewExaminationRepository()
	sickLeaveRepo := repository.NewSickLeaveRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	reportRepo := repository.NewReportRepository()

	auditService := service.NewAuditService(s.log, auditLogRepo)
	cache := service.NoopReportCache{}

	s.specialties = NewSpecialtyUsecase(s.db, s.log, specialtyRepo, auditService)
	s.diagnoses = NewDiagnosisUsecase(s.db, s.log, diagnosisRepo, examinationRepo, auditService, cache)
	s.doctors = NewDoctorUsecase(s.db, s.log, doctorRepo, specialtyRepo, examinationRepo, auditService, cache)
	s.patients = NewPatientUsecase(s.db, s.log, patientRepo, doctorRepo, examinationRepo, auditService, cache)
	s.examinations = NewExaminationUsecase(s.db, s.log, examinationRepo, sickLeaveRepo, patientRepo, doctorRepo, diagnosisRepo, auditService, cache, nil)
	s.sickLeaves = NewSickLeaveUsecase(s.db, s.log, sickLeaveRepo, auditService, cache)
	s.reports = NewReportUsecase(s.db, s.log, reportRepo, examinationRepo, cache, nil)
	s.access = NewAccessUsecase(s.db, s.log, patientRepo, doctorRepo, examinationRepo)
	s.auditLogs = NewAuditLogUsecase(s.db, s.log, auditLogRepo)
}

// Fixtures

func (s *clinicSuite) createSpecialty(name string) *dto.SpecialtyResponse {
	res, err := s.specialties.CreateSpecialty(s.ctx, s.admin, &dto.SpecialtyRequest{Name: name})
	s.Require().NoError(err)
	return res
}

func (s *clinicSuite) createDiagnosis(code, name string) *dto.DiagnosisResponse {
	res, err := s.diagnoses.CreateDiagnosis(s.ctx, s.admin, &dto.DiagnosisRequest{Code: code, Name: name})
	s.Require().NoError(err)
	return res
}

func (s *clinicSuite) createDoctor(uin, name string, isGP bool, specialtyIDs ...uuid.UUID) *dto.DoctorResponse {
	res, err := s.doctors.CreateDoctor(s.ctx, s.admin, &dto.DoctorRequest{
		UIN:          uin,
		Name:         name,
		IsGP:         isGP,
		SpecialtyIDs: specialtyIDs,
	})
	s.Require().NoError(err)
	return res
}

func (s *clinicSuite) createPatient(name, egn string, gpID *uuid.UUID, lastPayment string) *dto.PatientResponse {
	req := &dto.PatientRequest{Name: name, EGN: egn, GPID: gpID}
	if lastPayment != "" {
		req.LastInsurancePayment = &lastPayment
	}
	res, err := s.patients.CreatePatient(s.ctx, s.admin, req)
	s.Require().NoError(err)
	return res
}

func (s *clinicSuite) fileExamination(date string, patientID, doctorID uuid.UUID, diagnosisID *uuid.UUID, sickLeave *dto.SickLeaveRequest) *dto.ExaminationResponse {
	res, err := s.examinations.CreateExamination(s.ctx, s.admin, &dto.ExaminationRequest{
		ExaminationDate: date,
		PatientID:       patientID,
		DoctorID:        &doctorID,
		DiagnosisID:     diagnosisID,
		SickLeave:       sickLeave,
	})
	s.Require().NoError(err)
	return res
}

// linkUser inserts an identity account and attaches it to a doctor or
// patient record, returning the caller that account resolves to.
func (s *clinicSuite) linkUser(role entity.Role, doctorID, patientID *uuid.UUID) *entity.Caller {
	user, err := entity.NewUser("user-"+uuid.NewString()[:8], "hash", role)
	s.Require().NoError(err)
	s.Require().NoError(s.db.Create(user).Error)

	caller := &entity.Caller{UserID: user.ID, Role: role}
	if doctorID != nil {
		s.Require().NoError(s.db.Model(&entity.Doctor{}).Where("id = ?", *doctorID).Update("user_id", user.ID).Error)
		caller.DoctorID = doctorID
	}
	if patientID != nil {
		s.Require().NoError(s.db.Model(&entity.Patient{}).Where("id = ?", *patientID).Update("user_id", user.ID).Error)
		caller.PatientID = patientID
	}
	return caller
}

func ptr[T any](v T) *T {
	return &v
}

// count returns the number of stored rows of model.
func (s *clinicSuite) count(model any) int64 {
	var n int64
	s.Require().NoError(s.db.Model(model).Count(&n).Error)
	return n
}
