// file: services/attempt_store.go
package services

import (
	"errors"
	"strings"
	"time"

	"YukthiCTF/models"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/gorm"
)

var (
	// ErrAlreadySolved Solve 唯一索引冲突：该队伍已解出此题
	ErrAlreadySolved = errors.New("该队伍已解出此题")

	// ErrChallengeNotFound 题目不存在或不可见
	ErrChallengeNotFound = errors.New("题目不存在")
)

// AttemptStore 提交流水与 Solve 的数据访问层。
// 写入带指数退避重试：重试一条已落库的 Solve 会撞唯一索引，
// 被识别为 ErrAlreadySolved 而不是产生第二条 Solve
type AttemptStore struct {
	db *gorm.DB
}

func NewAttemptStore(db *gorm.DB) *AttemptStore {
	return &AttemptStore{db: db}
}

// CountAttemptsSince 该队伍 since 之后的提交总数（不分对错），用于频率限制
func (s *AttemptStore) CountAttemptsSince(teamID uint32, since time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&models.Attempt{}).
		Where("team_id = ? AND submitted_at > ?", teamID, since).
		Count(&count).Error
	return count, err
}

// CountWrong 该队伍在某题上的错误提交数，用于次数配额
func (s *AttemptStore) CountWrong(teamID, challengeID uint32) (int64, error) {
	var count int64
	err := s.db.Model(&models.Attempt{}).
		Where("team_id = ? AND challenge_id = ? AND result = ?", teamID, challengeID, models.AttemptResultWrong).
		Count(&count).Error
	return count, err
}

// HasSolve 该队伍是否已解出某题
func (s *AttemptStore) HasSolve(teamID, challengeID uint32) (bool, error) {
	var count int64
	err := s.db.Model(&models.Solve{}).
		Where("team_id = ? AND challenge_id = ?", teamID, challengeID).
		Count(&count).Error
	return count > 0, err
}

// LoadChallengeWithKeys 读取题目及其全部 Key
func (s *AttemptStore) LoadChallengeWithKeys(challengeID uint32) (*models.Challenge, error) {
	var chal models.Challenge
	if err := s.db.Preload("Keys").First(&chal, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	return &chal, nil
}

// errAttemptReplayed 重试的插入撞上 nonce 唯一索引
var errAttemptReplayed = errors.New("attempt already recorded")

// RecordWrong 追加一条错误提交。响应丢失后的重试靠 attempt 的
// nonce 唯一索引去重：撞索引说明上一次写入已经落库，按成功处理，
// 不会让同一次提交重复消耗配额
func (s *AttemptStore) RecordWrong(attempt *models.Attempt) error {
	err := s.withRetry(func() error {
		if err := s.db.Create(attempt).Error; err != nil {
			if isDuplicateKey(err) {
				return backoff.Permanent(errAttemptReplayed)
			}
			return err
		}
		return nil
	})
	if errors.Is(err, errAttemptReplayed) {
		return nil
	}
	return err
}

// RecordSolve 在一个事务里写入 Solve 和对应的 correct 流水，
// 整体成功或整体失败，不会出现只写了一半的提交记录
func (s *AttemptStore) RecordSolve(solve *models.Solve, attempt *models.Attempt) error {
	return s.withRetry(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(solve).Error; err != nil {
				if isDuplicateKey(err) {
					return backoff.Permanent(ErrAlreadySolved)
				}
				return err
			}
			return tx.Create(attempt).Error
		})
	})
}

// isDuplicateKey 驱动没开启错误翻译时退回到错误文本识别
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

// withRetry 存储层瞬时故障重试三次后放弃，向上层表现为可重试失败
func (s *AttemptStore) withRetry(op func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 50 * time.Millisecond
	bo.MaxElapsedTime = 2 * time.Second
	err := backoff.Retry(op, backoff.WithMaxRetries(bo, 3))

	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		return perm.Err
	}
	return err
}
