// file: middlewares/auth.go
package middlewares

import (
	"net/http"
	"strings"

	"YukthiCTF/models"
	"YukthiCTF/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware 验证用户是否登录
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			utils.Error(c, 4001, "请求头中 Authorization 为空")
			c.Abort()
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			utils.Error(c, 4002, "Authorization 格式有误")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			utils.Error(c, 4003, "无效的 Token")
			c.Abort()
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// RoleAuthMiddleware 验证用户角色权限
func RoleAuthMiddleware(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleAny, exists := c.Get("user_role")
		if !exists {
			utils.Error(c, 5001, "无法获取用户角色信息")
			c.Abort()
			return
		}

		role := roleAny.(models.UserRole)

		hasPermission := false
		for _, requiredRole := range requiredRoles {
			if role == requiredRole {
				hasPermission = true
				break
			}
		}

		// root_admin 拥有所有权限
		if role == models.RoleRootAdmin {
			hasPermission = true
		}

		if !hasPermission {
			c.JSON(http.StatusForbidden, gin.H{"code": 4003, "msg": "权限不足"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// JWTTryAuthMiddleware 尝试解析Token，即使失败也继续执行；
// 榜单等公开接口用它区分"本队视角"和匿名访问
func JWTTryAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			c.Next()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err == nil {
			setClaims(c, claims)
		}

		c.Next()
	}
}

func setClaims(c *gin.Context, claims *utils.Claims) {
	c.Set("user_id", claims.UserID)
	c.Set("team_id", claims.TeamID)
	c.Set("username", claims.Username)
	c.Set("user_role", claims.Role)
	c.Set("verified", claims.Verified)
}

// IsAdmin 读取上下文中的角色；未登录视为非管理员
func IsAdmin(c *gin.Context) bool {
	roleAny, exists := c.Get("user_role")
	if !exists {
		return false
	}
	role := roleAny.(models.UserRole)
	return role == models.RoleAdmin || role == models.RoleRootAdmin
}

// TeamID 读取上下文中的队伍ID，0 表示未登录
func TeamID(c *gin.Context) uint32 {
	idAny, exists := c.Get("team_id")
	if !exists {
		return 0
	}
	return idAny.(uint32)
}
