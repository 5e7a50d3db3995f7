package persistence

import (
	"testing"
	"time"

	"AeroComply/internal/modules/compliance/domain/entity"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 每个连接是独立的内存库，固定为单连接
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&entity.RiskAlert{},
		&entity.DeferralRequest{},
		&entity.ScheduledTask{},
		&entity.LifeLimitedComponent{},
		&entity.LandingGearComponent{},
		&entity.DefectReport{},
		&entity.Certificate{},
	))
	return db
}

func ptr[T any](v T) *T { return &v }

func day(n int) time.Duration { return time.Duration(n) * 24 * time.Hour }
