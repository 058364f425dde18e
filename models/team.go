// file: models/team.go
package models

import (
	"time"
)

type TeamStatus string

const (
	TeamStatusActive TeamStatus = "active"
	TeamStatusBanned TeamStatus = "banned"
	TeamStatusHidden TeamStatus = "hidden"
)

// Team 封禁队伍不进入任何计分输出，但其提交仍然照常记录、
// 照常消耗频率和次数配额，防止封禁后继续爆破探测
type Team struct {
	ID         uint32     `gorm:"primarykey" json:"id"`
	TeamName   string     `gorm:"size:100;unique;not null" json:"team_name"`
	TeamStatus TeamStatus `gorm:"size:20;default:'active'" json:"team_status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Team) TableName() string {
	return "yukthi_team"
}
