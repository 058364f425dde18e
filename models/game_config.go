// file: models/game_config.go
package models

import (
	"time"
)

// GameConfig 比赛全局配置，固定只有 id=1 一行（沿用单场比赛的假设）。
// services.SettingsService 周期性把它读成不可变快照，提交链路只读快照，
// 避免一次提交中途配置变化造成判定不一致。
type GameConfig struct {
	ID       uint   `gorm:"primarykey" json:"id,omitempty"`
	GameName string `gorm:"size:100;not null" json:"game_name"`

	// 起止时间为空表示不限
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`

	// 封榜时间：此刻之后的 Solve/Award 不进入公开榜单，本队视角除外
	FreezeTime *time.Time `json:"freeze_time"`

	// 比赛结束后是否还允许查看题目和榜单（不允许补交得分）
	ViewAfterEnd bool `gorm:"default:0" json:"view_after_end"`

	// 隐藏分数模式：各题解出人数返回 -1 哨兵值，solvers 列表不返回
	HideScores bool `gorm:"default:0" json:"hide_scores"`

	// 每队每分钟最大提交数
	MaxKPM uint `gorm:"default:10" json:"max_kpm"`

	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

func (GameConfig) TableName() string {
	return "yukthi_game_config"
}
