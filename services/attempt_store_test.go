// file: services/attempt_store_test.go
package services

import (
	"testing"
	"time"

	"YukthiCTF/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSolveDuplicateIsAlreadySolved(t *testing.T) {
	db := newTestDB(t)
	store := NewAttemptStore(db)

	solve := func() *models.Solve {
		return &models.Solve{ChallengeID: 100, TeamID: 1, UserID: 11, Value: 100, SolvedAt: testBase}
	}
	attempt := func() *models.Attempt {
		return &models.Attempt{
			ChallengeID: 100, TeamID: 1, UserID: 11,
			SubmittedFlag: "flag{abc}", Result: models.AttemptResultCorrect, SubmittedAt: testBase,
		}
	}

	require.NoError(t, store.RecordSolve(solve(), attempt()))
	// 第二次写入撞唯一索引，且不应该重试出第二条 correct 流水
	err := store.RecordSolve(solve(), attempt())
	require.ErrorIs(t, err, ErrAlreadySolved)

	var solves, attempts int64
	require.NoError(t, db.Model(&models.Solve{}).Count(&solves).Error)
	require.NoError(t, db.Model(&models.Attempt{}).Count(&attempts).Error)
	assert.EqualValues(t, 1, solves)
	assert.EqualValues(t, 1, attempts)

	ok, err := store.HasSolve(1, 100)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRecordWrongReplayIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	store := NewAttemptStore(db)

	nonce := "11111111-2222-3333-4444-555555555555"
	mk := func() *models.Attempt {
		return &models.Attempt{
			ChallengeID: 100, TeamID: 1, UserID: 11,
			SubmittedFlag: "wrong1", Result: models.AttemptResultWrong,
			SubmittedAt: testBase, Nonce: &nonce,
		}
	}

	require.NoError(t, store.RecordWrong(mk()))
	// 响应丢失后重放同一条写入：撞 nonce 唯一索引，按成功处理
	require.NoError(t, store.RecordWrong(mk()))

	var attempts int64
	require.NoError(t, db.Model(&models.Attempt{}).Count(&attempts).Error)
	assert.EqualValues(t, 1, attempts)
}

func TestCountAttemptsSinceWindowEdge(t *testing.T) {
	db := newTestDB(t)
	store := NewAttemptStore(db)

	at := func(offset time.Duration) *models.Attempt {
		return &models.Attempt{
			ChallengeID: 100, TeamID: 1, UserID: 11,
			SubmittedFlag: "x", Result: models.AttemptResultWrong, SubmittedAt: testBase.Add(offset),
		}
	}
	require.NoError(t, store.RecordWrong(at(-2*time.Minute)))
	require.NoError(t, store.RecordWrong(at(-time.Minute))) // 恰在窗口边界上，不计
	require.NoError(t, store.RecordWrong(at(-30*time.Second)))
	require.NoError(t, store.RecordWrong(at(0)))

	count, err := store.CountAttemptsSince(1, testBase.Add(-time.Minute))
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestCountWrongIgnoresCorrectAndOtherTeams(t *testing.T) {
	db := newTestDB(t)
	store := NewAttemptStore(db)

	mk := func(teamID uint32, result models.AttemptResult) *models.Attempt {
		return &models.Attempt{
			ChallengeID: 100, TeamID: teamID, UserID: teamID * 10,
			SubmittedFlag: "x", Result: result, SubmittedAt: testBase,
		}
	}
	require.NoError(t, store.RecordWrong(mk(1, models.AttemptResultWrong)))
	require.NoError(t, store.RecordWrong(mk(1, models.AttemptResultWrong)))
	require.NoError(t, store.RecordWrong(mk(1, models.AttemptResultCorrect)))
	require.NoError(t, store.RecordWrong(mk(2, models.AttemptResultWrong)))

	count, err := store.CountWrong(1, 100)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestLoadChallengeWithKeys(t *testing.T) {
	db := newTestDB(t)
	store := NewAttemptStore(db)

	seedChallenge(t, db, models.Challenge{
		ID: 100, ChallengeName: "rev100", Category: "reverse", Value: 100,
		State: models.ChallengeStateVisible,
	},
		models.FlagKey{KeyType: models.KeyTypeStatic, Secret: "flag{abc}"},
		models.FlagKey{KeyType: models.KeyTypeRegex, Secret: `flag\{r\d+\}`},
	)

	chal, err := store.LoadChallengeWithKeys(100)
	require.NoError(t, err)
	assert.Equal(t, "rev100", chal.ChallengeName)
	assert.Len(t, chal.Keys, 2)

	_, err = store.LoadChallengeWithKeys(999)
	require.ErrorIs(t, err, ErrChallengeNotFound)
}
