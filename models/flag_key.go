// file: models/flag_key.go
package models

import (
	"time"
)

// KeyType 决定该 Key 使用哪种匹配策略，见 services 中的 checker 注册表
type KeyType string

const (
	KeyTypeStatic          KeyType = "static"
	KeyTypeCaseInsensitive KeyType = "case_insensitive"
	KeyTypeRegex           KeyType = "regex"
)

// FlagKey 一道题目可以挂多个 Key，任意一个匹配即判对；
// 匹配策略跟着 Key 走，同一道题的多个 Key 可以混用不同策略
type FlagKey struct {
	ID          uint64  `gorm:"primarykey"`
	ChallengeID uint32  `gorm:"not null;index"`
	KeyType     KeyType `gorm:"size:30;not null;default:'static'"`
	Secret      string  `gorm:"size:255;not null"`
	CreatedAt   time.Time
}

func (FlagKey) TableName() string {
	return "yukthi_flag_key"
}
