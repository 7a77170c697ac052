package usecase

import (
	"medical-record/internal/delivery/dto"
	"medical-record/internal/domain/entity"
	"medical-record/pkg/apperror"

	"github.com/google/uuid"
)

type examinationFixture struct {
	gp         *dto.DoctorResponse
	specialist *dto.DoctorResponse
	patient    *dto.PatientResponse
	diagnosis  *dto.DiagnosisResponse
}

func (s *clinicSuite) newExaminationFixture() examinationFixture {
	gp := s.createDoctor("1234567890", "Dr. Ivan Petrov", true)
	return examinationFixture{
		gp:         gp,
		specialist: s.createDoctor("0987654321", "Dr. Maria Georgieva", false),
		patient:    s.createPatient("Georgi Dimitrov", "8501011234", &gp.ID, daysAgo(60)),
		diagnosis:  s.createDiagnosis("J06.9", "Acute upper respiratory infection"),
	}
}

func (s *clinicSuite) TestCreateExaminationWithoutSickLeave() {
	f := s.newExaminationFixture()

	res, err := s.examinations.CreateExamination(s.ctx, s.admin, &dto.ExaminationRequest{
		ExaminationDate: daysAgo(1),
		PatientID:       f.patient.ID,
		DoctorID:        &f.gp.ID,
		DiagnosisID:     &f.diagnosis.ID,
		Treatment:       "Rest and fluids",
		SickLeave:       &dto.SickLeaveRequest{},
	})
	s.Require().NoError(err)
	s.Nil(res.SickLeave)
	s.Equal(daysAgo(1), res.ExaminationDate)
	s.Equal(f.gp.ID, res.Doctor.ID)
	s.Equal(f.diagnosis.ID, res.Diagnosis.ID)

	all, err := s.sickLeaves.GetAllSickLeaves(s.ctx)
	s.Require().NoError(err)
	s.Zero(all.Total)
}

func (s *clinicSuite) TestCreateExaminationWithSickLeave() {
	f := s.newExaminationFixture()

	res, err := s.examinations.CreateExamination(s.ctx, s.admin, &dto.ExaminationRequest{
		ExaminationDate: daysAgo(0),
		PatientID:       f.patient.ID,
		DoctorID:        &f.gp.ID,
		SickLeave:       &dto.SickLeaveRequest{StartDate: daysAgo(0), NumberOfDays: 5},
	})
	s.Require().NoError(err)
	s.Require().NotNil(res.SickLeave)
	s.Equal(5, res.SickLeave.NumberOfDays)
	s.Equal(entity.Today().AddDate(0, 0, 4).Format(entity.DateLayout), res.SickLeave.EndDate)

	byExam, err := s.sickLeaves.GetSickLeaveByExamination(s.ctx, res.ID)
	s.Require().NoError(err)
	s.Equal(res.SickLeave.ID, byExam.ID)

	byPatient, err := s.sickLeaves.GetSickLeavesByPatient(s.ctx, f.patient.ID)
	s.Require().NoError(err)
	s.Equal(1, byPatient.Total)
}

func (s *clinicSuite) TestCreateExaminationRejectsBadInput() {
	f := s.newExaminationFixture()

	tests := []struct {
		name string
		req  dto.ExaminationRequest
		want error
	}{
		{
			name: "future date",
			req:  dto.ExaminationRequest{ExaminationDate: entity.Today().AddDate(0, 0, 1).Format(entity.DateLayout), PatientID: f.patient.ID, DoctorID: &f.gp.ID},
			want: entity.ErrExaminationDateInFuture,
		},
		{
			name: "malformed date",
			req:  dto.ExaminationRequest{ExaminationDate: "01/02/2024", PatientID: f.patient.ID, DoctorID: &f.gp.ID},
			want: ErrInvalidDateFormat,
		},
		{
			name: "unknown patient",
			req:  dto.ExaminationRequest{ExaminationDate: daysAgo(0), PatientID: uuid.New(), DoctorID: &f.gp.ID},
			want: ErrPatientNotFound,
		},
		{
			name: "unknown doctor",
			req:  dto.ExaminationRequest{ExaminationDate: daysAgo(0), PatientID: f.patient.ID, DoctorID: ptr(uuid.New())},
			want: ErrDoctorNotFound,
		},
		{
			name: "unknown diagnosis",
			req:  dto.ExaminationRequest{ExaminationDate: daysAgo(0), PatientID: f.patient.ID, DoctorID: &f.gp.ID, DiagnosisID: ptr(uuid.New())},
			want: ErrDiagnosisNotFound,
		},
		{
			name: "sick leave without days",
			req: dto.ExaminationRequest{ExaminationDate: daysAgo(0), PatientID: f.patient.ID, DoctorID: &f.gp.ID,
				SickLeave: &dto.SickLeaveRequest{StartDate: daysAgo(0)}},
			want: entity.ErrSickLeaveDaysInvalid,
		},
		{
			name: "sick leave without start",
			req: dto.ExaminationRequest{ExaminationDate: daysAgo(0), PatientID: f.patient.ID, DoctorID: &f.gp.ID,
				SickLeave: &dto.SickLeaveRequest{NumberOfDays: 3}},
			want: entity.ErrSickLeaveStartMissing,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := tt.req
			_, err := s.examinations.CreateExamination(s.ctx, s.admin, &req)
			s.ErrorIs(err, tt.want)
		})
	}

	all, err := s.examinations.GetAllExaminations(s.ctx)
	s.Require().NoError(err)
	s.Zero(all.Total)
}

func (s *clinicSuite) TestCreateExaminationResolvesDoctorFromCaller() {
	f := s.newExaminationFixture()
	doctorCaller := s.linkUser(entity.RoleDoctor, &f.specialist.ID, nil)

	res, err := s.examinations.CreateExamination(s.ctx, doctorCaller, &dto.ExaminationRequest{
		ExaminationDate: daysAgo(0),
		PatientID:       f.patient.ID,
	})
	s.Require().NoError(err)
	s.Equal(f.specialist.ID, res.Doctor.ID)

	// An explicit doctor wins over the caller's own record.
	res, err = s.examinations.CreateExamination(s.ctx, doctorCaller, &dto.ExaminationRequest{
		ExaminationDate: daysAgo(0),
		PatientID:       f.patient.ID,
		DoctorID:        &f.gp.ID,
	})
	s.Require().NoError(err)
	s.Equal(f.gp.ID, res.Doctor.ID)

	_, err = s.examinations.CreateExamination(s.ctx, s.admin, &dto.ExaminationRequest{
		ExaminationDate: daysAgo(0),
		PatientID:       f.patient.ID,
	})
	s.ErrorIs(err, ErrNoDoctorForCaller)
	s.Equal(apperror.KindForbidden, apperror.KindOf(err))
}

func (s *clinicSuite) TestUpdateExaminationKeepsDoctor() {
	f := s.newExaminationFixture()
	created := s.fileExamination(daysAgo(3), f.patient.ID, f.gp.ID, nil, nil)
	other := s.createPatient("Maria Ivanova", "9002025678", nil, "")

	res, err := s.examinations.UpdateExamination(s.ctx, s.admin, created.ID, &dto.ExaminationRequest{
		ExaminationDate: daysAgo(2),
		PatientID:       other.ID,
		DoctorID:        &f.specialist.ID,
		DiagnosisID:     &f.diagnosis.ID,
		Prescription:    "Paracetamol 500mg",
	})
	s.Require().NoError(err)
	s.Equal(f.gp.ID, res.Doctor.ID)
	s.Equal(other.ID, res.Patient.ID)
	s.Equal(daysAgo(2), res.ExaminationDate)
	s.Equal("Paracetamol 500mg", res.Prescription)

	reloaded, err := s.examinations.GetExamination(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(f.gp.ID, reloaded.Doctor.ID)
	s.Equal(f.diagnosis.ID, reloaded.Diagnosis.ID)
}

func (s *clinicSuite) TestUpdateExaminationUpsertsSickLeave() {
	f := s.newExaminationFixture()
	created := s.fileExamination(daysAgo(3), f.patient.ID, f.gp.ID, nil, nil)

	update := func(sl *dto.SickLeaveRequest) *dto.ExaminationResponse {
		res, err := s.examinations.UpdateExamination(s.ctx, s.admin, created.ID, &dto.ExaminationRequest{
			ExaminationDate: daysAgo(3),
			PatientID:       f.patient.ID,
			SickLeave:       sl,
		})
		s.Require().NoError(err)
		return res
	}

	first := update(&dto.SickLeaveRequest{StartDate: daysAgo(3), NumberOfDays: 2})
	s.Require().NotNil(first.SickLeave)

	second := update(&dto.SickLeaveRequest{StartDate: daysAgo(2), NumberOfDays: 10})
	s.Require().NotNil(second.SickLeave)
	s.Equal(first.SickLeave.ID, second.SickLeave.ID)
	s.Equal(10, second.SickLeave.NumberOfDays)
	s.Equal(daysAgo(2), second.SickLeave.StartDate)

	// Omitting the sick leave leaves the existing one in place.
	third := update(nil)
	s.Require().NotNil(third.SickLeave)
	s.Equal(first.SickLeave.ID, third.SickLeave.ID)

	all, err := s.sickLeaves.GetAllSickLeaves(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, all.Total)
}

func (s *clinicSuite) TestUpdateMissingExamination() {
	f := s.newExaminationFixture()
	_, err := s.examinations.UpdateExamination(s.ctx, s.admin, uuid.New(), &dto.ExaminationRequest{
		ExaminationDate: daysAgo(0),
		PatientID:       f.patient.ID,
	})
	s.ErrorIs(err, ErrExaminationNotFound)
}

func (s *clinicSuite) TestDeleteExaminationCascadesSickLeave() {
	f := s.newExaminationFixture()
	created := s.fileExamination(daysAgo(1), f.patient.ID, f.gp.ID, nil, &dto.SickLeaveRequest{StartDate: daysAgo(1), NumberOfDays: 3})

	s.Require().NoError(s.examinations.DeleteExamination(s.ctx, s.admin, created.ID))

	_, err := s.examinations.GetExamination(s.ctx, created.ID)
	s.ErrorIs(err, ErrExaminationNotFound)
	_, err = s.sickLeaves.GetSickLeave(s.ctx, created.SickLeave.ID)
	s.ErrorIs(err, ErrSickLeaveNotFound)

	s.ErrorIs(s.examinations.DeleteExamination(s.ctx, s.admin, created.ID), ErrExaminationNotFound)

	// With its only examination gone the patient can be removed.
	s.NoError(s.patients.DeletePatient(s.ctx, s.admin, f.patient.ID))
}

func (s *clinicSuite) TestDeleteSickLeaveKeepsExamination() {
	f := s.newExaminationFixture()
	created := s.fileExamination(daysAgo(1), f.patient.ID, f.gp.ID, nil, &dto.SickLeaveRequest{StartDate: daysAgo(1), NumberOfDays: 3})

	s.Require().NoError(s.sickLeaves.DeleteSickLeave(s.ctx, s.admin, created.SickLeave.ID))

	reloaded, err := s.examinations.GetExamination(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Nil(reloaded.SickLeave)
}

func (s *clinicSuite) TestExaminationListings() {
	f := s.newExaminationFixture()
	other := s.createPatient("Maria Ivanova", "9002025678", nil, "")
	s.fileExamination(daysAgo(5), f.patient.ID, f.gp.ID, nil, nil)
	s.fileExamination(daysAgo(1), f.patient.ID, f.specialist.ID, nil, nil)
	s.fileExamination(daysAgo(3), other.ID, f.specialist.ID, nil, nil)

	all, err := s.examinations.GetAllExaminations(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(3, all.Total)
	s.Equal(daysAgo(1), all.Examinations[0].ExaminationDate)

	byPatient, err := s.examinations.GetExaminationsByPatient(s.ctx, f.patient.ID)
	s.Require().NoError(err)
	s.Equal(2, byPatient.Total)

	byDoctor, err := s.examinations.GetExaminationsByDoctor(s.ctx, f.specialist.ID)
	s.Require().NoError(err)
	s.Equal(2, byDoctor.Total)
}
