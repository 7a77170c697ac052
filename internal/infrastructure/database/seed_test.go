package database

import (
	"context"
	"fmt"
	"io"
	"testing"

	"medical-record/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(Models()...))
	return db
}

func TestSeedIsIdempotent(t *testing.T) {
	db := openSQLite(t)
	log := logrus.New()
	log.SetOutput(io.Discard)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, db, log))
	require.NoError(t, Seed(ctx, db, log))

	count := func(model any) int64 {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		return n
	}
	assert.EqualValues(t, 5, count(&entity.User{}))
	assert.EqualValues(t, 5, count(&entity.Specialty{}))
	assert.EqualValues(t, 5, count(&entity.Diagnosis{}))
	assert.EqualValues(t, 2, count(&entity.Doctor{}))
	assert.EqualValues(t, 2, count(&entity.Patient{}))

	var patients []entity.Patient
	require.NoError(t, db.Order("egn").Find(&patients).Error)
	today := entity.Today()
	assert.True(t, patients[0].HasValidInsurance(today), "patient1 is insured")
	assert.False(t, patients[1].HasValidInsurance(today), "patient2 has lapsed")
	for _, p := range patients {
		assert.NotNil(t, p.GPID)
		assert.NotNil(t, p.UserID)
	}
}
