// file: models/award.go
package models

import (
	"time"
)

// Award 管理员手动加减分，独立于题目，计分时与 Solve 合并
type Award struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TeamID    uint32    `gorm:"not null;index" json:"team_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Category  string    `gorm:"size:50" json:"category"`
	Value     int       `gorm:"not null" json:"value"` // 可以为负（罚分）
	AwardedAt time.Time `gorm:"not null;index" json:"awarded_at"`
}

func (Award) TableName() string {
	return "yukthi_award"
}
