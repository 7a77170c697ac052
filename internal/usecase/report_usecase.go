package usecase

import (
	"context"
	"fmt"

	"medical-record/internal/converter"
	"medical-record/internal/delivery/dto"
	"medical-record/internal/domain/entity"
	"medical-record/internal/domain/repository"
	"medical-record/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReportMetrics counts report cache outcomes per report name.
type ReportMetrics interface {
	IncrementReportCacheHit(report string)
	IncrementReportCacheMiss(report string)
}

// ReportUsecase serves read-only aggregations. Ties keep the database order
// with the entity id as secondary key.
type ReportUsecase interface {
	GetMostFrequentDiagnoses(ctx context.Context) ([]dto.DiagnosisFrequencyResponse, error)
	GetPatientCountPerGP(ctx context.Context) ([]dto.DoctorPatientCountResponse, error)
	GetExaminationCountPerDoctor(ctx context.Context) ([]dto.DoctorExaminationCountResponse, error)
	GetDoctorsWithMostSickLeaves(ctx context.Context) ([]dto.DoctorSickLeaveCountResponse, error)
	GetSickLeaveCountsByMonth(ctx context.Context) ([]dto.MonthSickLeaveCountResponse, error)
	GetExaminationsGroupedByPatient(ctx context.Context) ([]dto.PatientExaminationsResponse, error)
	GetExaminationsInPeriod(ctx context.Context, req *dto.ExaminationPeriodRequest) (*dto.ExaminationListResponse, error)
	GetDoctorExaminationsInPeriod(ctx context.Context, doctorID uuid.UUID, req *dto.ExaminationPeriodRequest) (*dto.ExaminationListResponse, error)
}

type reportUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	reportRepo      repository.ReportRepository
	examinationRepo repository.ExaminationRepository
	cache           service.ReportCache
	metrics         ReportMetrics
}

func NewReportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	reportRepo repository.ReportRepository,
	examinationRepo repository.ExaminationRepository,
	cache service.ReportCache,
	metrics ReportMetrics,
) ReportUsecase {
	if cache == nil {
		cache = service.NoopReportCache{}
	}
	return &reportUsecase{
		db:              db,
		log:             log,
		reportRepo:      reportRepo,
		examinationRepo: examinationRepo,
		cache:           cache,
		metrics:         metrics,
	}
}

// cachedReport serves key from the cache or computes it with load. Cache
// failures are logged and never change the result.
func cachedReport[T any](ctx context.Context, u *reportUsecase, name, key string, load func(db *gorm.DB) (T, error)) (T, error) {
	var result T
	hit, err := u.cache.Get(ctx, key, &result)
	if err != nil {
		u.log.Warnf("Failed to read report %s from cache: %+v", name, err)
	}
	if err == nil && hit {
		if u.metrics != nil {
			u.metrics.IncrementReportCacheHit(name)
		}
		return result, nil
	}
	if u.metrics != nil {
		u.metrics.IncrementReportCacheMiss(name)
	}

	result, err = load(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to build report %s: %+v", name, err)
		return result, err
	}

	if err := u.cache.Set(ctx, key, result); err != nil {
		u.log.Warnf("Failed to store report %s in cache: %+v", name, err)
	}
	return result, nil
}

func (u *reportUsecase) GetMostFrequentDiagnoses(ctx context.Context) ([]dto.DiagnosisFrequencyResponse, error) {
	return cachedReport(ctx, u, "most_frequent_diagnoses", "diagnoses:most-frequent", func(db *gorm.DB) ([]dto.DiagnosisFrequencyResponse, error) {
		rows, err := u.reportRepo.MostFrequentDiagnoses(db)
		if err != nil {
			return nil, err
		}
		return converter.DiagnosisFrequenciesToResponses(rows), nil
	})
}

func (u *reportUsecase) GetPatientCountPerGP(ctx context.Context) ([]dto.DoctorPatientCountResponse, error) {
	return cachedReport(ctx, u, "patient_count_per_gp", "doctors:patient-count", func(db *gorm.DB) ([]dto.DoctorPatientCountResponse, error) {
		rows, err := u.reportRepo.PatientCountPerGP(db)
		if err != nil {
			return nil, err
		}
		return converter.DoctorPatientCountsToResponses(rows), nil
	})
}

func (u *reportUsecase) GetExaminationCountPerDoctor(ctx context.Context) ([]dto.DoctorExaminationCountResponse, error) {
	return cachedReport(ctx, u, "examination_count_per_doctor", "doctors:examination-count", func(db *gorm.DB) ([]dto.DoctorExaminationCountResponse, error) {
		rows, err := u.reportRepo.ExaminationCountPerDoctor(db)
		if err != nil {
			return nil, err
		}
		return converter.DoctorExaminationCountsToResponses(rows), nil
	})
}

func (u *reportUsecase) GetDoctorsWithMostSickLeaves(ctx context.Context) ([]dto.DoctorSickLeaveCountResponse, error) {
	return cachedReport(ctx, u, "doctors_by_sick_leaves", "doctors:sick-leave-count", func(db *gorm.DB) ([]dto.DoctorSickLeaveCountResponse, error) {
		rows, err := u.reportRepo.DoctorsBySickLeaveCount(db)
		if err != nil {
			return nil, err
		}
		return converter.DoctorSickLeaveCountsToResponses(rows), nil
	})
}

func (u *reportUsecase) GetSickLeaveCountsByMonth(ctx context.Context) ([]dto.MonthSickLeaveCountResponse, error) {
	return cachedReport(ctx, u, "sick_leaves_by_month", "sick-leaves:by-month", func(db *gorm.DB) ([]dto.MonthSickLeaveCountResponse, error) {
		rows, err := u.reportRepo.SickLeaveCountsByMonth(db)
		if err != nil {
			return nil, err
		}
		return converter.MonthSickLeaveCountsToResponses(rows), nil
	})
}

// GetExaminationsGroupedByPatient partitions all examinations by patient.
// Groups appear in the order their first examination was read. The cache key
// carries the date because responses include today's insurance status.
func (u *reportUsecase) GetExaminationsGroupedByPatient(ctx context.Context) ([]dto.PatientExaminationsResponse, error) {
	key := "examinations:by-patient:" + entity.Today().Format(entity.DateLayout)
	return cachedReport(ctx, u, "examinations_by_patient", key, func(db *gorm.DB) ([]dto.PatientExaminationsResponse, error) {
		examinations, err := u.examinationRepo.FindAll(db)
		if err != nil {
			return nil, err
		}

		index := make(map[uuid.UUID]int)
		var groups []entity.PatientExaminations
		for _, e := range examinations {
			i, ok := index[e.PatientID]
			if !ok {
				i = len(groups)
				index[e.PatientID] = i
				group := entity.PatientExaminations{}
				if e.Patient != nil {
					group.Patient = *e.Patient
				}
				groups = append(groups, group)
			}
			groups[i].Examinations = append(groups[i].Examinations, e)
		}

		return converter.PatientExaminationsToResponses(groups, entity.Today()), nil
	})
}

func (u *reportUsecase) GetExaminationsInPeriod(ctx context.Context, req *dto.ExaminationPeriodRequest) (*dto.ExaminationListResponse, error) {
	return u.examinationsInPeriod(ctx, nil, req)
}

func (u *reportUsecase) GetDoctorExaminationsInPeriod(ctx context.Context, doctorID uuid.UUID, req *dto.ExaminationPeriodRequest) (*dto.ExaminationListResponse, error) {
	return u.examinationsInPeriod(ctx, &doctorID, req)
}

func (u *reportUsecase) examinationsInPeriod(ctx context.Context, doctorID *uuid.UUID, req *dto.ExaminationPeriodRequest) (*dto.ExaminationListResponse, error) {
	from, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	period, err := entity.NewExaminationPeriod(from, to, doctorID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("examinations:period:%s:%s", from.Format(entity.DateLayout), to.Format(entity.DateLayout))
	if doctorID != nil {
		key += ":" + doctorID.String()
	}
	// Responses carry insurance status as of today.
	key += ":" + entity.Today().Format(entity.DateLayout)

	return cachedReport(ctx, u, "examinations_in_period", key, func(db *gorm.DB) (*dto.ExaminationListResponse, error) {
		examinations, err := u.examinationRepo.FindInPeriod(db, period)
		if err != nil {
			return nil, err
		}
		return toExaminationList(examinations), nil
	})
}
