package database

import (
	"context"
	"fmt"
	"time"

	"medical-record/internal/domain/entity"
	"medical-record/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedAccount struct {
	username string
	password string
	role     entity.Role
}

var seedDiagnoses = []struct {
	code, name, description string
}{
	{"J06.9", "Acute upper respiratory infection", "Acute upper respiratory infection, unspecified"},
	{"J20.9", "Acute bronchitis", "Acute bronchitis, unspecified"},
	{"I10", "Essential (primary) hypertension", "Elevated blood pressure"},
	{"K29.7", "Gastritis", "Gastritis, unspecified"},
	{"M54.5", "Low back pain", "Lumbago, unspecified"},
}

// Seed loads the initial reference data and demo accounts. It does nothing
// when any account already exists, so it is safe to run on every start.
func Seed(ctx context.Context, db *gorm.DB, log *logrus.Logger) error {
	userRepo := repository.NewUserRepository()
	specialtyRepo := repository.NewSpecialtyRepository()
	diagnosisRepo := repository.NewDiagnosisRepository()
	doctorRepo := repository.NewDoctorRepository()
	patientRepo := repository.NewPatientRepository()

	tx := db.WithContext(ctx).Begin()
	defer tx.Rollback()

	count, err := userRepo.Count(tx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		log.Info("Seed skipped, accounts already exist")
		return nil
	}

	specialties := make(map[string]entity.Specialty)
	for _, name := range []string{"General Medicine", "Cardiology", "Neurology", "Pediatrics", "Orthopedics"} {
		specialty, err := entity.NewSpecialty(name)
		if err != nil {
			return err
		}
		if err := specialtyRepo.Create(tx, specialty); err != nil {
			return fmt.Errorf("failed to seed specialty %s: %w", name, err)
		}
		specialties[name] = *specialty
	}

	for _, d := range seedDiagnoses {
		diagnosis, err := entity.NewDiagnosis(d.code, d.name, d.description)
		if err != nil {
			return err
		}
		if err := diagnosisRepo.Create(tx, diagnosis); err != nil {
			return fmt.Errorf("failed to seed diagnosis %s: %w", d.code, err)
		}
	}

	users := make(map[string]*entity.User)
	for _, a := range []seedAccount{
		{"admin", "admin123", entity.RoleAdmin},
		{"doctor1", "doctor123", entity.RoleDoctor},
		{"doctor2", "doctor123", entity.RoleDoctor},
		{"patient1", "patient123", entity.RolePatient},
		{"patient2", "patient123", entity.RolePatient},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user, err := entity.NewUser(a.username, string(hash), a.role)
		if err != nil {
			return err
		}
		if err := userRepo.Create(tx, user); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", a.username, err)
		}
		users[a.username] = user
	}

	gp, err := entity.NewDoctor("1234567890", "Dr. Ivan Petrov", true,
		[]entity.Specialty{specialties["General Medicine"]})
	if err != nil {
		return err
	}
	gp.LinkUser(users["doctor1"].ID)

	specialist, err := entity.NewDoctor("0987654321", "Dr. Maria Georgieva", false,
		[]entity.Specialty{specialties["Cardiology"], specialties["Neurology"]})
	if err != nil {
		return err
	}
	specialist.LinkUser(users["doctor2"].ID)

	for _, doctor := range []*entity.Doctor{gp, specialist} {
		if err := doctorRepo.Create(tx, doctor); err != nil {
			return fmt.Errorf("failed to seed doctor %s: %w", doctor.UIN, err)
		}
	}

	today := entity.Today()
	for _, p := range []struct {
		username, name, egn string
		paid                time.Time
	}{
		{"patient1", "Georgi Dimitrov", "8501011234", entity.MinusMonths(today, 2)},
		// Insurance lapsed: paid outside the validity window.
		{"patient2", "Maria Ivanova", "9002025678", entity.MinusMonths(today, 8)},
	} {
		paid := p.paid
		patient, err := entity.NewPatient(p.name, p.egn, &paid, gp)
		if err != nil {
			return err
		}
		patient.LinkUser(users[p.username].ID)
		if err := patientRepo.Create(tx, patient); err != nil {
			return fmt.Errorf("failed to seed patient %s: %w", p.egn, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	log.Info("Initial data has been loaded successfully")
	log.Info("Seeded accounts: admin/admin123, doctor1/doctor123 (GP), doctor2/doctor123, patient1/patient123, patient2/patient123")
	return nil
}
