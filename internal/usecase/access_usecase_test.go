package usecase

import (
	"medical-record/internal/domain/entity"

	"github.com/google/uuid"
)

func (s *clinicSuite) TestAccessPredicates() {
	f := s.newExaminationFixture()
	exam := s.fileExamination(daysAgo(1), f.patient.ID, f.gp.ID, nil, nil)

	patientCaller := s.linkUser(entity.RolePatient, nil, &f.patient.ID)
	gpCaller := s.linkUser(entity.RoleDoctor, &f.gp.ID, nil)
	specialistCaller := s.linkUser(entity.RoleDoctor, &f.specialist.ID, nil)
	stranger := &entity.Caller{UserID: uuid.New(), Role: entity.RolePatient}

	check := func(ok bool, err error) bool {
		s.Require().NoError(err)
		return ok
	}

	s.Run("owner patient", func() {
		s.True(check(s.access.IsOwnerPatient(s.ctx, f.patient.ID, patientCaller)))
		s.False(check(s.access.IsOwnerPatient(s.ctx, f.patient.ID, stranger)))
		s.False(check(s.access.IsOwnerPatient(s.ctx, f.patient.ID, nil)))
		s.False(check(s.access.IsOwnerPatient(s.ctx, uuid.New(), patientCaller)))
	})

	s.Run("examination access", func() {
		s.True(check(s.access.CanAccessExamination(s.ctx, exam.ID, patientCaller)))
		s.True(check(s.access.CanAccessExamination(s.ctx, exam.ID, gpCaller)))
		s.False(check(s.access.CanAccessExamination(s.ctx, exam.ID, specialistCaller)))
		s.False(check(s.access.CanAccessExamination(s.ctx, exam.ID, stranger)))
		s.False(check(s.access.CanAccessExamination(s.ctx, uuid.New(), gpCaller)))
	})

	s.Run("examining doctor", func() {
		s.True(check(s.access.IsDoctorForExamination(s.ctx, exam.ID, gpCaller)))
		s.False(check(s.access.IsDoctorForExamination(s.ctx, exam.ID, patientCaller)))
		s.False(check(s.access.IsDoctorForExamination(s.ctx, exam.ID, specialistCaller)))
		s.False(check(s.access.IsDoctorForExamination(s.ctx, exam.ID, nil)))
	})

	s.Run("doctor identity", func() {
		s.True(check(s.access.IsDoctorWithID(s.ctx, f.gp.ID, gpCaller)))
		s.False(check(s.access.IsDoctorWithID(s.ctx, f.gp.ID, specialistCaller)))
		s.False(check(s.access.IsDoctorWithID(s.ctx, uuid.New(), gpCaller)))
	})
}

// Ownership follows the stored account link, not a record id the caller
// merely claims.
func (s *clinicSuite) TestAccessIgnoresClaimedRecordIDs() {
	f := s.newExaminationFixture()
	forged := &entity.Caller{UserID: uuid.New(), Role: entity.RolePatient, PatientID: &f.patient.ID}

	ok, err := s.access.IsOwnerPatient(s.ctx, f.patient.ID, forged)
	s.Require().NoError(err)
	s.False(ok)
}
