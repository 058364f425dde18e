// file: routes/router.go
package routes

import (
	"YukthiCTF/controllers"
	"YukthiCTF/middlewares"
	"YukthiCTF/models"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	apiV1 := r.Group("/api/v1")
	{
		// --- 比赛信息 ---
		apiV1.GET("/game", controllers.GetGameStatus)

		// --- 题目模块 ---
		challengeRoutes := apiV1.Group("/challenges")
		{
			challengeRoutes.GET("", middlewares.JWTTryAuthMiddleware(), controllers.ListChallenges)
			challengeRoutes.GET("/solves", middlewares.JWTTryAuthMiddleware(), controllers.GetSolveCounts)
			challengeRoutes.GET("/maxattempts", middlewares.JWTAuthMiddleware(), controllers.GetMaxAttempts)
			challengeRoutes.GET("/:id", middlewares.JWTTryAuthMiddleware(), controllers.GetChallengeDetail)
			challengeRoutes.GET("/:id/solvers", middlewares.JWTTryAuthMiddleware(), controllers.GetSolvers)
			challengeRoutes.POST("/:id/submit", middlewares.JWTAuthMiddleware(), controllers.SubmitFlag)
		}

		// --- 榜单 ---
		apiV1.GET("/scoreboard", middlewares.JWTTryAuthMiddleware(), controllers.GetScoreboard)
		apiV1.GET("/teams/:id/solves", middlewares.JWTTryAuthMiddleware(), controllers.GetTeamSolves)

		// --- 管理员接口 ---
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.PUT("/game", controllers.UpsertGameConfig)

			adminRoutes.POST("/awards", controllers.CreateAward)
			adminRoutes.GET("/awards", controllers.ListAwards)
			adminRoutes.DELETE("/awards/:id", controllers.DeleteAward)

			adminRoutes.GET("/flags", controllers.GetFlagLogs)
			adminRoutes.GET("/flags/compare", controllers.CompareFlagSubmissions)

			adminRoutes.GET("/teams", controllers.AdminGetTeams)
			adminRoutes.PUT("/teams/:id/status", controllers.AdminUpdateTeamStatus)
		}
	}

	return r
}
