// file: models/attempt.go
package models

import (
	"time"
)

type AttemptResult string

const (
	AttemptResultCorrect AttemptResult = "correct"
	AttemptResultWrong   AttemptResult = "wrong"
)

// Attempt 提交流水账，只追加、不更新、不删除。
// 次数配额和提交频率都从这张表统计，排行榜重算也以它为准。
type Attempt struct {
	ID            uint64        `gorm:"primarykey"`
	ChallengeID   uint32        `gorm:"not null;index:idx_attempt_team_chal,priority:2"`
	TeamID        uint32        `gorm:"not null;index:idx_attempt_team_chal,priority:1;index:idx_attempt_team_time,priority:1"`
	UserID        uint32        `gorm:"not null"`
	SubmittedFlag string        `gorm:"size:255;not null"`
	Result        AttemptResult `gorm:"size:10;not null"`
	SubmittedAt   time.Time     `gorm:"not null;index:idx_attempt_team_time,priority:2"`
	IPAddress     string        `gorm:"size:45"`

	// 每次提交生成一个 nonce。存储层重试撞上这个唯一索引，
	// 说明上一次写入其实已经落库，不会把同一次提交记成两条
	Nonce *string `gorm:"size:36;uniqueIndex:uniq_attempt_nonce"`
}

func (Attempt) TableName() string {
	return "yukthi_attempt"
}
