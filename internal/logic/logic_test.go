package logic

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/model"
)

// newTestDB 内存库，表结构与生产一致
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Team{},
		&model.Member{},
		&model.Todo{},
		&model.News{},
		&model.Announcement{},
	))
	return db
}
