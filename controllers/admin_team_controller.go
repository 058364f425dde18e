// file: controllers/admin_team_controller.go
package controllers

import (
	"strconv"

	"YukthiCTF/database"
	"YukthiCTF/models"
	"YukthiCTF/utils"

	"github.com/gin-gonic/gin"
)

func AdminGetTeams(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	search := c.Query("search")

	var teams []models.Team
	var total int64

	db := database.DB.Model(&models.Team{})
	if search != "" {
		db = db.Where("team_name LIKE ?", "%"+search+"%")
	}

	db.Count(&total)
	db.Order("id desc").Offset((page - 1) * limit).Limit(limit).Find(&teams)

	utils.Success(c, "success", gin.H{
		"total": total,
		"teams": teams,
	})
}

// AdminUpdateTeamStatus 封禁/解封队伍。封禁立即生效于计分输出，
// 提交仍会被记录并消耗配额
func AdminUpdateTeamStatus(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的队伍ID")
		return
	}

	var req struct {
		Status models.TeamStatus `json:"status" binding:"required,oneof=active banned hidden"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "无效的状态值")
		return
	}

	var team models.Team
	if err := database.DB.First(&team, teamID).Error; err != nil {
		utils.Error(c, 4004, "队伍不存在")
		return
	}

	if err := database.DB.Model(&team).Update("team_status", req.Status).Error; err != nil {
		utils.Error(c, 5000, "更新队伍状态失败")
		return
	}

	scoreboardSvc.InvalidateCache()
	utils.Success(c, "Team status updated successfully", gin.H{
		"team_id": team.ID,
		"status":  req.Status,
	})
}
