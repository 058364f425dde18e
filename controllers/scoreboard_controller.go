// file: controllers/scoreboard_controller.go
package controllers

import (
	"strconv"
	"time"

	"YukthiCTF/dto"
	"YukthiCTF/middlewares"
	"YukthiCTF/utils"

	"github.com/gin-gonic/gin"
)

// GetScoreboard —— 查询排行榜。封榜后公开视角只看到 freeze 之前的得分，
// 已登录用户查看时本队一行是实时的
func GetScoreboard(c *gin.Context) {
	cfg := settingsSvc.Current()
	if !cfg.CanView(time.Now(), middlewares.IsAdmin(c)) {
		windowError(c, cfg)
		return
	}

	standings, err := scoreboardSvc.Standings(middlewares.TeamID(c))
	if err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	resp := make([]dto.StandingResp, 0, len(standings))
	for _, st := range standings {
		var last *string
		if st.LastScoreTime != nil {
			formatted := st.LastScoreTime.Format("2006-01-02 15:04:05")
			last = &formatted
		}
		resp = append(resp, dto.StandingResp{
			Rank:          st.Rank,
			TeamID:        st.TeamID,
			TeamName:      st.TeamName,
			Score:         st.Score,
			LastScoreTime: last,
		})
	}
	utils.Success(c, "success", gin.H{"standings": resp})
}

// GetTeamSolves —— 查询队伍得分时间线（Solve + Award 合并）
func GetTeamSolves(c *gin.Context) {
	cfg := settingsSvc.Current()
	if !cfg.CanView(time.Now(), middlewares.IsAdmin(c)) {
		windowError(c, cfg)
		return
	}

	teamID, _ := strconv.Atoi(c.Param("id"))

	events, err := scoreboardSvc.TeamSolves(uint32(teamID), middlewares.TeamID(c))
	if err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	resp := make([]dto.TeamSolveResp, 0, len(events))
	for _, ev := range events {
		resp = append(resp, dto.TeamSolveResp{
			ChallengeID: ev.ChallengeID,
			Name:        ev.Name,
			Category:    ev.Category,
			Value:       ev.Value,
			Time:        ev.Time.Format("2006-01-02 15:04:05"),
		})
	}
	utils.Success(c, "success", gin.H{"solves": resp})
}
