// file: controllers/challenge_controller.go
package controllers

import (
	"errors"
	"strconv"
	"time"

	"YukthiCTF/database"
	"YukthiCTF/dto"
	"YukthiCTF/middlewares"
	"YukthiCTF/models"
	"YukthiCTF/services"
	"YukthiCTF/utils"

	"github.com/gin-gonic/gin"
)

// ListChallenges —— 题目列表，受比赛窗口限制。
// 隐藏题目只返回 id/name/value/category 占位信息
func ListChallenges(c *gin.Context) {
	cfg := settingsSvc.Current()
	if !cfg.CanView(time.Now(), middlewares.IsAdmin(c)) {
		windowError(c, cfg)
		return
	}

	var challenges []models.Challenge
	if err := database.DB.Order("value asc").Find(&challenges).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	items := make([]dto.ChallengeItemResp, 0, len(challenges))
	for _, ch := range challenges {
		if ch.State == models.ChallengeStateHidden {
			items = append(items, dto.ChallengeItemResp{
				ID:            ch.ID,
				ChallengeName: ch.ChallengeName,
				Category:      ch.Category,
				Value:         ch.Value,
				Hidden:        true,
			})
			continue
		}
		items = append(items, dto.ChallengeItemResp{
			ID:            ch.ID,
			ChallengeName: ch.ChallengeName,
			Category:      ch.Category,
			Value:         ch.Value,
			MaxAttempts:   ch.MaxAttempts,
			Hint:          ch.Hint,
			Description:   ch.Description,
		})
	}

	utils.Success(c, "success", gin.H{
		"total":      len(items),
		"challenges": items,
	})
}

// GetChallengeDetail —— 题目详情，隐藏题目对普通用户表现为锁定
func GetChallengeDetail(c *gin.Context) {
	cfg := settingsSvc.Current()
	if !cfg.CanView(time.Now(), middlewares.IsAdmin(c)) {
		windowError(c, cfg)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))

	var challenge models.Challenge
	if err := database.DB.First(&challenge, id).Error; err != nil {
		utils.Error(c, 4004, "题目不存在")
		return
	}
	if challenge.State == models.ChallengeStateHidden && !middlewares.IsAdmin(c) {
		utils.Success(c, "success", gin.H{"locked": true})
		return
	}

	utils.Success(c, "success", dto.ChallengeItemResp{
		ID:            challenge.ID,
		ChallengeName: challenge.ChallengeName,
		Category:      challenge.Category,
		Value:         challenge.Value,
		MaxAttempts:   challenge.MaxAttempts,
		Hint:          challenge.Hint,
		Description:   challenge.Description,
	})
}

// SubmitFlag —— 提交 Flag，判定逻辑全部在提交网关里
func SubmitFlag(c *gin.Context) {
	challengeID, _ := strconv.Atoi(c.Param("id"))

	var req dto.SubmitFlagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()

	identity := currentIdentity(c)
	result, err := submitSvc.Submit(identity, uint32(challengeID), req.Flag)
	if err != nil {
		if errors.Is(err, services.ErrChallengeNotFound) {
			utils.Error(c, 4004, "题目不存在")
			return
		}
		// 配置错误或存储重试耗尽
		utils.ServerError(c, "提交处理失败，请稍后重试")
		return
	}

	utils.Success(c, "success", dto.SubmitFlagResp{
		Status:  result.Outcome.StatusCode(),
		Message: result.Message,
	})
}

// GetSolveCounts —— 各题解出数（隐藏分数模式下为 -1 哨兵值）
func GetSolveCounts(c *gin.Context) {
	cfg := settingsSvc.Current()
	if !cfg.CanView(time.Now(), middlewares.IsAdmin(c)) {
		windowError(c, cfg)
		return
	}

	counts, err := scoreboardSvc.SolveCounts()
	if err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}
	utils.Success(c, "success", counts)
}

// GetSolvers —— 某题解出队伍列表，隐藏分数模式下不返回
func GetSolvers(c *gin.Context) {
	cfg := settingsSvc.Current()
	if !cfg.CanView(time.Now(), middlewares.IsAdmin(c)) {
		windowError(c, cfg)
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))
	solvers, err := scoreboardSvc.Solvers(uint32(id))
	if err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	resp := make([]dto.SolverResp, 0, len(solvers))
	for _, entry := range solvers {
		resp = append(resp, dto.SolverResp{
			TeamID:   entry.TeamID,
			TeamName: entry.TeamName,
			SolvedAt: entry.SolvedAt.Format("2006-01-02 15:04:05"),
		})
	}
	utils.Success(c, "success", gin.H{"teams": resp})
}

// GetMaxAttempts —— 当前队伍已耗尽尝试次数的题目列表
func GetMaxAttempts(c *gin.Context) {
	teamID := middlewares.TeamID(c)
	if teamID == 0 {
		utils.Error(c, 4001, "未登录")
		return
	}

	var challenges []models.Challenge
	if err := database.DB.Where("max_attempts > 0").Find(&challenges).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	exhausted := make([]uint32, 0)
	for _, ch := range challenges {
		var fails int64
		database.DB.Model(&models.Attempt{}).
			Where("team_id = ? AND challenge_id = ? AND result = ?", teamID, ch.ID, models.AttemptResultWrong).
			Count(&fails)
		if fails >= int64(ch.MaxAttempts) {
			exhausted = append(exhausted, ch.ID)
		}
	}
	utils.Success(c, "success", gin.H{"maxattempts": exhausted})
}
