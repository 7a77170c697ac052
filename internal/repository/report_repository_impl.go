package repository

import (
	"sort"

	"medical-record/internal/domain/entity"
	domainRepo "medical-record/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reportRepository struct{}

func NewReportRepository() domainRepo.ReportRepository {
	return &reportRepository{}
}

// MostFrequentDiagnoses counts examinations per diagnosis. Diagnoses never
// used in an examination are left out.
func (r *reportRepository) MostFrequentDiagnoses(db *gorm.DB) ([]entity.DiagnosisFrequency, error) {
	var rows []entity.IDCount
	err := db.Model(&entity.Examination{}).
		Select("diagnosis_id AS id, COUNT(*) AS count").
		Where("diagnosis_id IS NOT NULL").
		Group("diagnosis_id").
		Order("count DESC").
		Order("diagnosis_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var diagnoses []entity.Diagnosis
	if err := db.Where("id IN ?", idsOf(rows)).Find(&diagnoses).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]entity.Diagnosis, len(diagnoses))
	for _, d := range diagnoses {
		byID[d.ID] = d
	}

	result := make([]entity.DiagnosisFrequency, 0, len(rows))
	for _, row := range rows {
		result = append(result, entity.DiagnosisFrequency{Diagnosis: byID[row.ID], Frequency: row.Count})
	}
	return result, nil
}

// PatientCountPerGP includes GPs without patients.
func (r *reportRepository) PatientCountPerGP(db *gorm.DB) ([]entity.DoctorPatientCount, error) {
	rows, doctors, err := r.countPerDoctor(db, db.Model(&entity.Doctor{}).
		Select("doctors.id AS id, COUNT(patients.id) AS count").
		Joins("LEFT JOIN patients ON patients.gp_id = doctors.id").
		Where("doctors.is_gp = ?", true))
	if err != nil {
		return nil, err
	}
	result := make([]entity.DoctorPatientCount, 0, len(rows))
	for _, row := range rows {
		result = append(result, entity.DoctorPatientCount{Doctor: doctors[row.ID], PatientCount: row.Count})
	}
	return result, nil
}

// ExaminationCountPerDoctor includes doctors without examinations.
func (r *reportRepository) ExaminationCountPerDoctor(db *gorm.DB) ([]entity.DoctorExaminationCount, error) {
	rows, doctors, err := r.countPerDoctor(db, db.Model(&entity.Doctor{}).
		Select("doctors.id AS id, COUNT(examinations.id) AS count").
		Joins("LEFT JOIN examinations ON examinations.doctor_id = doctors.id"))
	if err != nil {
		return nil, err
	}
	result := make([]entity.DoctorExaminationCount, 0, len(rows))
	for _, row := range rows {
		result = append(result, entity.DoctorExaminationCount{Doctor: doctors[row.ID], ExaminationCount: row.Count})
	}
	return result, nil
}

// DoctorsBySickLeaveCount uses inner joins, so doctors that never issued a
// sick leave do not appear.
func (r *reportRepository) DoctorsBySickLeaveCount(db *gorm.DB) ([]entity.DoctorSickLeaveCount, error) {
	rows, doctors, err := r.countPerDoctor(db, db.Model(&entity.Doctor{}).
		Select("doctors.id AS id, COUNT(sick_leaves.id) AS count").
		Joins("JOIN examinations ON examinations.doctor_id = doctors.id").
		Joins("JOIN sick_leaves ON sick_leaves.examination_id = examinations.id"))
	if err != nil {
		return nil, err
	}
	result := make([]entity.DoctorSickLeaveCount, 0, len(rows))
	for _, row := range rows {
		result = append(result, entity.DoctorSickLeaveCount{Doctor: doctors[row.ID], SickLeaveCount: row.Count})
	}
	return result, nil
}

func (r *reportRepository) countPerDoctor(db, q *gorm.DB) ([]entity.IDCount, map[uuid.UUID]entity.Doctor, error) {
	var rows []entity.IDCount
	err := q.Group("doctors.id").
		Order("count DESC").
		Order("doctors.id").
		Scan(&rows).Error
	if err != nil {
		return nil, nil, err
	}

	var doctors []entity.Doctor
	if err := db.Where("id IN ?", idsOf(rows)).Find(&doctors).Error; err != nil {
		return nil, nil, err
	}
	byID := make(map[uuid.UUID]entity.Doctor, len(doctors))
	for _, d := range doctors {
		byID[d.ID] = d
	}
	return rows, byID, nil
}

// SickLeaveCountsByMonth groups in memory: month extraction differs between
// SQL dialects and the row count is bounded by the number of certificates.
func (r *reportRepository) SickLeaveCountsByMonth(db *gorm.DB) ([]entity.MonthSickLeaveCount, error) {
	var sickLeaves []entity.SickLeave
	if err := db.Select("start_date").Order("start_date").Find(&sickLeaves).Error; err != nil {
		return nil, err
	}

	type month struct {
		year  int
		month int
	}
	index := make(map[month]int)
	var result []entity.MonthSickLeaveCount
	for _, sl := range sickLeaves {
		key := month{year: sl.StartDate.Year(), month: int(sl.StartDate.Month())}
		i, ok := index[key]
		if !ok {
			i = len(result)
			index[key] = i
			result = append(result, entity.MonthSickLeaveCount{Month: sl.StartDate.Month(), Year: sl.StartDate.Year()})
		}
		result[i].Count++
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result, nil
}

func idsOf(rows []entity.IDCount) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids
}
