// file: controllers/record_controller.go
package controllers

import (
	"errors"
	"time"

	"YukthiCTF/database"
	"YukthiCTF/models"
	"YukthiCTF/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetFlagLogs 管理员查询 Flag 提交流水
func GetFlagLogs(c *gin.Context) {
	type LogDetail struct {
		ID            uint64               `json:"id"`
		ChallengeID   uint32               `json:"challenge_id"`
		ChallengeName string               `json:"challenge_name"`
		TeamID        uint32               `json:"team_id"`
		TeamName      string               `json:"team_name"`
		UserID        uint32               `json:"user_id"`
		SubmittedFlag string               `json:"submitted_flag"`
		Result        models.AttemptResult `json:"result"`
		SubmittedAt   time.Time            `json:"submitted_at"`
		IPAddress     string               `json:"ip_address"`
	}

	db := database.DB.Table("yukthi_attempt a").
		Select("a.id, a.challenge_id, c.challenge_name, a.team_id, t.team_name, a.user_id, a.submitted_flag, a.result, a.submitted_at, a.ip_address").
		Joins("LEFT JOIN yukthi_challenge c ON a.challenge_id = c.id").
		Joins("LEFT JOIN yukthi_team t ON a.team_id = t.id")

	if teamID := c.Query("team_id"); teamID != "" {
		db = db.Where("a.team_id = ?", teamID)
	}
	if challengeID := c.Query("challenge_id"); challengeID != "" {
		db = db.Where("a.challenge_id = ?", challengeID)
	}
	if result := c.Query("result"); result != "" {
		db = db.Where("a.result = ?", result)
	}

	var results []LogDetail
	if err := db.Order("a.submitted_at desc").Find(&results).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	utils.Success(c, "success", results)
}

// CompareFlagSubmissions 对比提交过同一个 flag 的队伍，排查跨队伍抄袭
func CompareFlagSubmissions(c *gin.Context) {
	flag := c.Query("flag")
	if flag == "" {
		utils.Error(c, 1001, "Missing 'flag' query parameter")
		return
	}

	var first models.Attempt
	err := database.DB.Where("submitted_flag = ?", flag).First(&first).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, 4004, "No submissions found for this flag")
			return
		}
		utils.Error(c, 5000, "Database error")
		return
	}

	type CompareResult struct {
		TeamID      uint32               `json:"team_id"`
		TeamName    string               `json:"team_name"`
		UserID      uint32               `json:"user_id"`
		Result      models.AttemptResult `json:"result"`
		SubmittedAt time.Time            `json:"submitted_at"`
	}

	var results []CompareResult
	database.DB.Table("yukthi_attempt a").
		Select("a.team_id, t.team_name, a.user_id, a.result, a.submitted_at").
		Joins("JOIN yukthi_team t ON a.team_id = t.id").
		Where("a.submitted_flag = ?", flag).
		Order("a.submitted_at asc").
		Find(&results)

	utils.Success(c, "success", gin.H{
		"flag_value":  flag,
		"submissions": results,
	})
}
