package dto

type DiagnosisFrequencyResponse struct {
	Diagnosis DiagnosisResponse `json:"diagnosis"`
	Frequency int64             `json:"frequency"`
}

type DoctorPatientCountResponse struct {
	Doctor       DoctorSummary `json:"doctor"`
	PatientCount int64         `json:"patient_count"`
}

type DoctorExaminationCountResponse struct {
	Doctor           DoctorSummary `json:"doctor"`
	ExaminationCount int64         `json:"examination_count"`
}

type DoctorSickLeaveCountResponse struct {
	Doctor         DoctorSummary `json:"doctor"`
	SickLeaveCount int64         `json:"sick_leave_count"`
}

type MonthSickLeaveCountResponse struct {
	Month int   `json:"month"`
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

type PatientExaminationsResponse struct {
	Patient      PatientSummary        `json:"patient"`
	Examinations []ExaminationResponse `json:"examinations"`
}
