// file: controllers/game_controller.go
package controllers

import (
	"time"

	"YukthiCTF/database"
	"YukthiCTF/models"
	"YukthiCTF/services"
	"YukthiCTF/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// GetGameStatus 查询比赛状态和剩余时间
func GetGameStatus(c *gin.Context) {
	cfg := settingsSvc.Current()
	now := time.Now()

	state := cfg.WindowState(now)
	var remaining string
	switch state {
	case services.WindowNotStarted:
		remaining = cfg.StartTime.Sub(now).Round(time.Second).String()
	case services.WindowLive:
		if cfg.EndTime != nil {
			remaining = cfg.EndTime.Sub(now).Round(time.Second).String()
		}
	default:
		remaining = "0s"
	}

	utils.Success(c, "success", gin.H{
		"game_name":      cfg.GameName,
		"status":         state.String(),
		"now":            now.Format("2006-01-02 15:04:05"),
		"remaining_time": remaining,
		"frozen":         cfg.FreezeTime != nil && !now.Before(*cfg.FreezeTime),
	})
}

// UpsertGameConfig 创建或修改比赛配置（固定 id=1），
// 配置快照在下一个刷新周期生效
func UpsertGameConfig(c *gin.Context) {
	var req models.GameConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	req.ID = 1
	if err := database.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"game_name", "start_time", "end_time", "freeze_time",
			"view_after_end", "hide_scores", "max_kpm",
		}),
	}).Create(&req).Error; err != nil {
		utils.Error(c, 5000, "Failed to create/update game config: "+err.Error())
		return
	}

	// 管理员改完不等刷新周期，立即生效
	if err := settingsSvc.Refresh(); err != nil {
		utils.Error(c, 5000, "配置已保存但刷新失败: "+err.Error())
		return
	}
	scoreboardSvc.InvalidateCache()

	utils.Success(c, "Game config created/updated successfully", nil)
}
