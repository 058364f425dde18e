// file: controllers/award_controller.go
package controllers

import (
	"strconv"
	"time"

	"YukthiCTF/database"
	"YukthiCTF/models"
	"YukthiCTF/utils"

	"github.com/gin-gonic/gin"
)

// CreateAward —— 管理员手动加减分
func CreateAward(c *gin.Context) {
	var req struct {
		TeamID   uint32 `json:"team_id" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Category string `json:"category"`
		Value    int    `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	var team models.Team
	if err := database.DB.First(&team, req.TeamID).Error; err != nil {
		utils.Error(c, 4004, "队伍不存在")
		return
	}

	award := models.Award{
		TeamID:    req.TeamID,
		Name:      req.Name,
		Category:  req.Category,
		Value:     req.Value,
		AwardedAt: time.Now(),
	}
	if err := database.DB.Create(&award).Error; err != nil {
		utils.Error(c, 5000, "创建奖励失败: "+err.Error())
		return
	}

	scoreboardSvc.InvalidateCache()
	utils.Success(c, "Award created successfully", gin.H{"id": award.ID})
}

// ListAwards —— 管理员查询奖励记录，支持按队伍筛选
func ListAwards(c *gin.Context) {
	db := database.DB.Model(&models.Award{})
	if teamID := c.Query("team_id"); teamID != "" {
		db = db.Where("team_id = ?", teamID)
	}

	var awards []models.Award
	if err := db.Order("awarded_at desc").Find(&awards).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}
	utils.Success(c, "success", gin.H{"awards": awards})
}

// DeleteAward —— 撤销一条奖励
func DeleteAward(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	result := database.DB.Delete(&models.Award{}, id)
	if result.Error != nil {
		utils.Error(c, 5000, "删除失败")
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, 4004, "奖励不存在")
		return
	}

	scoreboardSvc.InvalidateCache()
	utils.Success(c, "Award deleted successfully", nil)
}
