// file: services/testutil_test.go
package services

import (
	"testing"
	"time"

	"YukthiCTF/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// 内存库只在单个连接里存在，连接池必须收成 1
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Challenge{},
		&models.FlagKey{},
		&models.Team{},
		&models.Attempt{},
		&models.Solve{},
		&models.Award{},
		&models.GameConfig{},
	))
	return db
}

// newTestSettings 直接灌入快照，绕开数据库刷新
func newTestSettings(db *gorm.DB, snapshot *Settings) *SettingsService {
	s := &SettingsService{db: db, interval: time.Minute}
	if snapshot == nil {
		snapshot = defaultSettings()
	}
	s.cur.Store(snapshot)
	return s
}

func seedTeam(t *testing.T, db *gorm.DB, id uint32, name string, status models.TeamStatus) {
	t.Helper()
	require.NoError(t, db.Create(&models.Team{ID: id, TeamName: name, TeamStatus: status}).Error)
}

func seedChallenge(t *testing.T, db *gorm.DB, chal models.Challenge, keys ...models.FlagKey) {
	t.Helper()
	require.NoError(t, db.Create(&chal).Error)
	for i := range keys {
		keys[i].ChallengeID = chal.ID
		require.NoError(t, db.Create(&keys[i]).Error)
	}
}

func testIdentity(teamID uint32) Identity {
	return Identity{
		UserID:   teamID*10 + 1,
		TeamID:   teamID,
		Username: "user",
		Verified: true,
		IP:       "127.0.0.1",
	}
}
