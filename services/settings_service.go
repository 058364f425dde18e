// file: services/settings_service.go
package services

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"YukthiCTF/models"

	"gorm.io/gorm"
)

// WindowState 比赛窗口状态
type WindowState int

const (
	WindowNotStarted WindowState = iota
	WindowLive
	WindowEnded
)

func (w WindowState) String() string {
	switch w {
	case WindowNotStarted:
		return "not_started"
	case WindowLive:
		return "live"
	case WindowEnded:
		return "ended"
	}
	return "unknown"
}

// Settings 比赛配置的不可变快照。每次提交在入口处取一份快照，
// 整条判定链路只读这一份，配置中途刷新不影响进行中的请求。
type Settings struct {
	GameName     string
	StartTime    *time.Time // nil = 不限
	EndTime      *time.Time // nil = 不限
	FreezeTime   *time.Time // nil = 不封榜
	ViewAfterEnd bool
	HideScores   bool
	MaxKPM       uint
}

// WindowState 纯函数判定窗口状态
func (s *Settings) WindowState(now time.Time) WindowState {
	if s.StartTime != nil && now.Before(*s.StartTime) {
		return WindowNotStarted
	}
	if s.EndTime != nil && now.After(*s.EndTime) {
		return WindowEnded
	}
	return WindowLive
}

// CanView 是否允许查看题目/榜单。管理员不受窗口限制，
// 但查看权限不等于得分权限：得分只看 WindowLive
func (s *Settings) CanView(now time.Time, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	switch s.WindowState(now) {
	case WindowNotStarted:
		return false
	case WindowEnded:
		return s.ViewAfterEnd
	}
	return true
}

func defaultSettings() *Settings {
	return &Settings{
		GameName: "YukthiCTF",
		MaxKPM:   10,
	}
}

// SettingsService 周期性把 GameConfig(id=1) 读成快照
type SettingsService struct {
	db       *gorm.DB
	interval time.Duration
	cur      atomic.Pointer[Settings]
}

func NewSettingsService(db *gorm.DB, interval time.Duration) *SettingsService {
	s := &SettingsService{db: db, interval: interval}
	s.cur.Store(defaultSettings())
	if err := s.Refresh(); err != nil {
		log.Printf("Initial settings load failed, using defaults: %v", err)
	}
	return s
}

// Current 返回当前快照，调用方不得修改
func (s *SettingsService) Current() *Settings {
	return s.cur.Load()
}

// Refresh 重新读取配置行。行不存在时保留默认配置（比赛未配置 = 全程开放）
func (s *SettingsService) Refresh() error {
	var cfg models.GameConfig
	if err := s.db.First(&cfg, 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.cur.Store(defaultSettings())
			return nil
		}
		return err
	}

	maxKPM := cfg.MaxKPM
	if maxKPM == 0 {
		maxKPM = 10
	}
	s.cur.Store(&Settings{
		GameName:     cfg.GameName,
		StartTime:    cfg.StartTime,
		EndTime:      cfg.EndTime,
		FreezeTime:   cfg.FreezeTime,
		ViewAfterEnd: cfg.ViewAfterEnd,
		HideScores:   cfg.HideScores,
		MaxKPM:       maxKPM,
	})
	return nil
}

// StartAutoRefresh 按固定间隔刷新快照，直到 ctx 取消
func (s *SettingsService) StartAutoRefresh(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Refresh(); err != nil {
					log.Printf("Failed to refresh game settings: %v", err)
				}
			}
		}
	}()
}
