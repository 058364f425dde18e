// file: controllers/helpers.go
package controllers

import (
	"fmt"
	"time"

	"YukthiCTF/models"
	"YukthiCTF/services"
	"YukthiCTF/utils"

	"github.com/gin-gonic/gin"
)

// windowError 统一的窗口外访问提示
func windowError(c *gin.Context, cfg *services.Settings) {
	switch cfg.WindowState(time.Now()) {
	case services.WindowNotStarted:
		utils.Error(c, 4030, fmt.Sprintf("%s 尚未开始", cfg.GameName))
	case services.WindowEnded:
		utils.Error(c, 4031, fmt.Sprintf("%s 已结束", cfg.GameName))
	default:
		utils.Error(c, 4001, "未登录")
	}
}

// currentIdentity 从中间件写入的上下文组装提交者身份
func currentIdentity(c *gin.Context) services.Identity {
	id := services.Identity{IP: c.ClientIP()}
	if v, ok := c.Get("user_id"); ok {
		id.UserID = v.(uint32)
	}
	if v, ok := c.Get("team_id"); ok {
		id.TeamID = v.(uint32)
	}
	if v, ok := c.Get("verified"); ok {
		id.Verified = v.(bool)
	}
	if v, ok := c.Get("user_role"); ok {
		role := v.(models.UserRole)
		id.Admin = role == models.RoleAdmin || role == models.RoleRootAdmin
	}
	if v, ok := c.Get("username"); ok {
		id.Username = v.(string)
	}
	return id
}
