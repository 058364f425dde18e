// file: models/solve.go
package models

import (
	"time"
)

// Solve 每个 (队伍, 题目) 至多一条，由唯一索引在写入时兜底保证；
// 插入冲突即视为"已解出"，这是并发提交下防止重复得分的最后防线
type Solve struct {
	ID          uint64    `gorm:"primarykey"`
	ChallengeID uint32    `gorm:"not null;uniqueIndex:uniq_solve_team_chal,priority:2"`
	TeamID      uint32    `gorm:"not null;uniqueIndex:uniq_solve_team_chal,priority:1"`
	UserID      uint32    `gorm:"not null"`
	Value       uint      `gorm:"not null"` // 解出时题目分值的快照
	SolvedAt    time.Time `gorm:"not null;index"`
}

func (Solve) TableName() string {
	return "yukthi_solve"
}
