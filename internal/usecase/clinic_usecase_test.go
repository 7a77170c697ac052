package usecase

import (
	"medical-record/internal/delivery/dto"
	"medical-record/internal/domain/entity"
	"medical-record/pkg/apperror"

	"github.com/google/uuid"
)

func (s *clinicSuite) TestSpecialtyNameIsUnique() {
	s.createSpecialty("Cardiology")

	_, err := s.specialties.CreateSpecialty(s.ctx, s.admin, &dto.SpecialtyRequest{Name: "Cardiology"})
	s.ErrorIs(err, ErrSpecialtyNameExists)
	s.Equal(apperror.KindDuplicate, apperror.KindOf(err))
}

func (s *clinicSuite) TestSpecialtyRename() {
	cardio := s.createSpecialty("Cardiology")
	s.createSpecialty("Neurology")

	_, err := s.specialties.UpdateSpecialty(s.ctx, s.admin, cardio.ID, &dto.SpecialtyRequest{Name: "Neurology"})
	s.ErrorIs(err, ErrSpecialtyNameExists)

	res, err := s.specialties.UpdateSpecialty(s.ctx, s.admin, cardio.ID, &dto.SpecialtyRequest{Name: "Cardiology"})
	s.Require().NoError(err)
	s.Equal("Cardiology", res.Name)

	_, err = s.specialties.UpdateSpecialty(s.ctx, s.admin, uuid.New(), &dto.SpecialtyRequest{Name: "Pediatrics"})
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *clinicSuite) TestDeleteSpecialtyDetachesDoctors() {
	cardio := s.createSpecialty("Cardiology")
	doctor := s.createDoctor("0987654321", "Dr. Maria Georgieva", false, cardio.ID)
	s.Require().Len(doctor.Specialties, 1)

	s.Require().NoError(s.specialties.DeleteSpecialty(s.ctx, s.admin, cardio.ID))

	reloaded, err := s.doctors.GetDoctor(s.ctx, doctor.ID)
	s.Require().NoError(err)
	s.Empty(reloaded.Specialties)
}

func (s *clinicSuite) TestDiagnosisCodeIsUnique() {
	s.createDiagnosis("I10", "Essential hypertension")

	_, err := s.diagnoses.CreateDiagnosis(s.ctx, s.admin, &dto.DiagnosisRequest{Code: "I10", Name: "Hypertension"})
	s.ErrorIs(err, ErrDiagnosisCodeExists)
}

func (s *clinicSuite) TestSearchDiagnosesByName() {
	s.createDiagnosis("J06.9", "Acute upper respiratory infection")
	s.createDiagnosis("J20.9", "Acute bronchitis")
	s.createDiagnosis("I10", "Essential hypertension")

	res, err := s.diagnoses.SearchDiagnoses(s.ctx, "acute")
	s.Require().NoError(err)
	s.Equal(2, res.Total)

	found, err := s.diagnoses.GetDiagnosisByCode(s.ctx, "I10")
	s.Require().NoError(err)
	s.Equal("Essential hypertension", found.Name)
}

func (s *clinicSuite) TestDeleteDiagnosisInUseIsRejected() {
	gp := s.createDoctor("1234567890", "Dr. Ivan Petrov", true)
	patient := s.createPatient("Georgi Dimitrov", "8501011234", &gp.ID, "")
	diagnosis := s.createDiagnosis("I10", "Essential hypertension")
	s.fileExamination(entity.Today().Format(entity.DateLayout), patient.ID, gp.ID, &diagnosis.ID, nil)

	err := s.diagnoses.DeleteDiagnosis(s.ctx, s.admin, diagnosis.ID)
	s.ErrorIs(err, ErrDiagnosisInUse)

	_, err = s.diagnoses.GetDiagnosis(s.ctx, diagnosis.ID)
	s.NoError(err)
}

func (s *clinicSuite) TestDoctorUINIsUnique() {
	s.createDoctor("1234567890", "Dr. Ivan Petrov", true)

	doctors, audits := s.count(&entity.Doctor{}), s.count(&entity.AuditLog{})

	_, err := s.doctors.CreateDoctor(s.ctx, s.admin, &dto.DoctorRequest{UIN: "1234567890", Name: "Dr. Other"})
	s.ErrorIs(err, ErrUINAlreadyExists)
	s.Equal(apperror.KindDuplicate, apperror.KindOf(err))

	s.Equal(doctors, s.count(&entity.Doctor{}))
	s.Equal(audits, s.count(&entity.AuditLog{}))
}

func (s *clinicSuite) TestGPWithPatientsCannotBeDemoted() {
	gp := s.createDoctor("1234567890", "Dr. Ivan Petrov", true)
	patient := s.createPatient("Georgi Dimitrov", "8501011234", &gp.ID, "")

	_, err := s.doctors.UpdateDoctor(s.ctx, s.admin, gp.ID, &dto.DoctorRequest{UIN: "1234567890", Name: "Dr. Ivan Petrov", IsGP: false})
	s.ErrorIs(err, ErrDoctorHasGPPatients)
	s.Equal(apperror.KindValidation, apperror.KindOf(err))

	stored, err := s.doctors.GetDoctor(s.ctx, gp.ID)
	s.Require().NoError(err)
	s.True(stored.IsGP)

	perGP, err := s.reports.GetPatientCountPerGP(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(perGP, 1)
	s.EqualValues(1, perGP[0].PatientCount)

	// Once the patient is gone the doctor may stop being a GP.
	s.Require().NoError(s.patients.DeletePatient(s.ctx, s.admin, patient.ID))
	res, err := s.doctors.UpdateDoctor(s.ctx, s.admin, gp.ID, &dto.DoctorRequest{UIN: "1234567890", Name: "Dr. Ivan Petrov", IsGP: false})
	s.Require().NoError(err)
	s.False(res.IsGP)
}

func (s *clinicSuite) TestDoctorWithUnknownSpecialty() {
	_, err := s.doctors.CreateDoctor(s.ctx, s.admin, &dto.DoctorRequest{
		UIN:          "1234567890",
		Name:         "Dr. Ivan Petrov",
		SpecialtyIDs: []uuid.UUID{uuid.New()},
	})
	s.ErrorIs(err, ErrSpecialtyNotFound)
}

func (s *clinicSuite) TestUpdateDoctorReplacesSpecialties() {
	cardio := s.createSpecialty("Cardiology")
	neuro := s.createSpecialty("Neurology")
	doctor := s.createDoctor("0987654321", "Dr. Maria Georgieva", false, cardio.ID)

	res, err := s.doctors.UpdateDoctor(s.ctx, s.admin, doctor.ID, &dto.DoctorRequest{
		UIN:          "0987654321",
		Name:         "Dr. Maria Georgieva",
		SpecialtyIDs: []uuid.UUID{neuro.ID},
	})
	s.Require().NoError(err)
	s.Require().Len(res.Specialties, 1)
	s.Equal(neuro.ID, res.Specialties[0].ID)

	byNeuro, err := s.doctors.GetDoctorsBySpecialty(s.ctx, neuro.ID)
	s.Require().NoError(err)
	s.Equal(1, byNeuro.Total)

	byCardio, err := s.doctors.GetDoctorsBySpecialty(s.ctx, cardio.ID)
	s.Require().NoError(err)
	s.Zero(byCardio.Total)
}

func (s *clinicSuite) TestGetGPsListsOnlyGPs() {
	s.createDoctor("1234567890", "Dr. Ivan Petrov", true)
	s.createDoctor("0987654321", "Dr. Maria Georgieva", false)

	res, err := s.doctors.GetGPs(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(1, res.Total)
	s.Equal("1234567890", res.Doctors[0].UIN)
}

func (s *clinicSuite) TestPatientRequiresGPEligibleDoctor() {
	specialist := s.createDoctor("0987654321", "Dr. Maria Georgieva", false)

	_, err := s.patients.CreatePatient(s.ctx, s.admin, &dto.PatientRequest{
		Name: "Georgi Dimitrov",
		EGN:  "8501011234",
		GPID: &specialist.ID,
	})
	s.ErrorIs(err, entity.ErrGPNotEligible)
	s.Equal(apperror.KindValidation, apperror.KindOf(err))

	_, err = s.patients.CreatePatient(s.ctx, s.admin, &dto.PatientRequest{
		Name: "Georgi Dimitrov",
		EGN:  "8501011234",
		GPID: ptr(uuid.New()),
	})
	s.ErrorIs(err, ErrGPNotFound)
}

func (s *clinicSuite) TestPatientEGNIsUnique() {
	s.createPatient("Georgi Dimitrov", "8501011234", nil, "")
	patients, audits := s.count(&entity.Patient{}), s.count(&entity.AuditLog{})

	_, err := s.patients.CreatePatient(s.ctx, s.admin, &dto.PatientRequest{Name: "Someone Else", EGN: "8501011234"})
	s.ErrorIs(err, ErrEGNAlreadyExists)
	s.Equal(patients, s.count(&entity.Patient{}))
	s.Equal(audits, s.count(&entity.AuditLog{}))

	other := s.createPatient("Maria Ivanova", "9002025678", nil, "")
	_, err = s.patients.UpdatePatient(s.ctx, s.admin, other.ID, &dto.PatientRequest{Name: "Maria Ivanova", EGN: "8501011234"})
	s.ErrorIs(err, ErrEGNAlreadyExists)
}

func (s *clinicSuite) TestPatientInsuranceStatus() {
	today := entity.Today()
	recent := today.AddDate(0, -2, 0).Format(entity.DateLayout)
	expired := entity.MinusMonths(today, entity.InsuranceValidityMonths).Format(entity.DateLayout)

	insured := s.createPatient("Georgi Dimitrov", "8501011234", nil, recent)
	lapsed := s.createPatient("Maria Ivanova", "9002025678", nil, expired)
	never := s.createPatient("Petar Petrov", "7705051111", nil, "")

	s.True(insured.HasValidInsurance)
	s.False(lapsed.HasValidInsurance)
	s.False(never.HasValidInsurance)

	reloaded, err := s.patients.GetPatientByEGN(s.ctx, "8501011234")
	s.Require().NoError(err)
	s.Require().NotNil(reloaded.LastInsurancePayment)
	s.Equal(recent, *reloaded.LastInsurancePayment)
	s.True(reloaded.HasValidInsurance)
}

func (s *clinicSuite) TestPatientsByGPAndDiagnosis() {
	gp := s.createDoctor("1234567890", "Dr. Ivan Petrov", true)
	other := s.createDoctor("1111111111", "Dr. Other GP", true)
	first := s.createPatient("Georgi Dimitrov", "8501011234", &gp.ID, "")
	s.createPatient("Maria Ivanova", "9002025678", &other.ID, "")

	byGP, err := s.patients.GetPatientsByGP(s.ctx, gp.ID)
	s.Require().NoError(err)
	s.Require().Equal(1, byGP.Total)
	s.Equal(first.ID, byGP.Patients[0].ID)

	diagnosis := s.createDiagnosis("I10", "Essential hypertension")
	today := entity.Today().Format(entity.DateLayout)
	s.fileExamination(today, first.ID, gp.ID, &diagnosis.ID, nil)
	s.fileExamination(today, first.ID, gp.ID, &diagnosis.ID, nil)

	byDiagnosis, err := s.patients.GetPatientsByDiagnosis(s.ctx, diagnosis.ID)
	s.Require().NoError(err)
	s.Require().Equal(1, byDiagnosis.Total)
	s.Equal(first.ID, byDiagnosis.Patients[0].ID)
}

func (s *clinicSuite) TestDeletePatientWithExaminationsIsRejected() {
	gp := s.createDoctor("1234567890", "Dr. Ivan Petrov", true)
	patient := s.createPatient("Georgi Dimitrov", "8501011234", &gp.ID, "")
	s.fileExamination(entity.Today().Format(entity.DateLayout), patient.ID, gp.ID, nil, nil)

	err := s.patients.DeletePatient(s.ctx, s.admin, patient.ID)
	s.ErrorIs(err, ErrPatientHasExaminations)

	err = s.doctors.DeleteDoctor(s.ctx, s.admin, gp.ID)
	s.ErrorIs(err, ErrDoctorHasExaminations)
}

func (s *clinicSuite) TestDeleteGPClearsPatientGP() {
	gp := s.createDoctor("1234567890", "Dr. Ivan Petrov", true)
	patient := s.createPatient("Georgi Dimitrov", "8501011234", &gp.ID, "")

	s.Require().NoError(s.doctors.DeleteDoctor(s.ctx, s.admin, gp.ID))

	reloaded, err := s.patients.GetPatient(s.ctx, patient.ID)
	s.Require().NoError(err)
	s.Nil(reloaded.GP)

	_, err = s.doctors.GetDoctor(s.ctx, gp.ID)
	s.ErrorIs(err, ErrDoctorNotFound)
}

func (s *clinicSuite) TestWritesAreAudited() {
	specialty := s.createSpecialty("Cardiology")
	_, err := s.specialties.UpdateSpecialty(s.ctx, s.admin, specialty.ID, &dto.SpecialtyRequest{Name: "Cardiology & Vascular"})
	s.Require().NoError(err)
	s.Require().NoError(s.specialties.DeleteSpecialty(s.ctx, s.admin, specialty.ID))

	logs, err := s.auditLogs.GetAllAuditLogs(s.ctx, entity.AuditLogFilter{EntityName: "specialty", EntityID: specialty.ID.String()})
	s.Require().NoError(err)
	s.Require().Equal(3, logs.Total)

	actions := make([]string, 0, len(logs.Logs))
	for _, l := range logs.Logs {
		actions = append(actions, l.Action)
		s.Require().NotNil(l.ActorID)
		s.Equal(s.admin.UserID, *l.ActorID)
	}
	s.ElementsMatch([]string{
		entity.AuditActionSpecialtyCreate,
		entity.AuditActionSpecialtyUpdate,
		entity.AuditActionSpecialtyDelete,
	}, actions)

	one, err := s.auditLogs.GetAuditLog(s.ctx, logs.Logs[0].ID)
	s.Require().NoError(err)
	s.Equal(logs.Logs[0].Action, one.Action)

	_, err = s.auditLogs.GetAuditLog(s.ctx, 1_000_000)
	s.ErrorIs(err, ErrAuditLogNotFound)
}

func (s *clinicSuite) TestFailedWriteLeavesNoAuditEntry() {
	s.createSpecialty("Cardiology")
	_, err := s.specialties.CreateSpecialty(s.ctx, s.admin, &dto.SpecialtyRequest{Name: "Cardiology"})
	s.Require().Error(err)

	logs, err := s.auditLogs.GetAllAuditLogs(s.ctx, entity.AuditLogFilter{EntityName: "specialty"})
	s.Require().NoError(err)
	s.Equal(1, logs.Total)
}

func daysAgo(n int) string {
	return entity.Today().AddDate(0, 0, -n).Format(entity.DateLayout)
}
