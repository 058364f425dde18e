// file: models/challenge.go
package models

import (
	"time"
)

type ChallengeState string

const (
	ChallengeStateVisible ChallengeState = "visible"
	ChallengeStateHidden  ChallengeState = "hidden"
)

type Challenge struct {
	ID            uint32         `gorm:"primarykey"`
	ChallengeName string         `gorm:"size:100;unique;not null"`
	Category      string         `gorm:"size:50;not null"`
	Author        string         `gorm:"size:50"`
	Description   string         `gorm:"type:text"`
	Hint          string         `gorm:"type:text"`
	Value         uint           `gorm:"not null"`
	MaxAttempts   uint           `gorm:"default:0"` // 0 = 不限次数
	State         ChallengeState `gorm:"size:20;default:'hidden'"`
	Keys          []FlagKey      `gorm:"foreignKey:ChallengeID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Challenge) TableName() string {
	return "yukthi_challenge"
}
