// file: main.go
package main

import (
	"context"
	"log"

	"YukthiCTF/config"
	"YukthiCTF/controllers"
	"YukthiCTF/database"
	"YukthiCTF/routes"
	"YukthiCTF/services"
	"YukthiCTF/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	utils.SetJWTSecret(cfg.JWTSecret)
	database.Connect(cfg.DatabaseDSN)
	database.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// 禁用自动迁移 (推荐)，表结构由运维脚本管理
	// database.DB.AutoMigrate(&models.Challenge{}, &models.FlagKey{}, ...)

	settings := services.NewSettingsService(database.DB, cfg.SettingsRefresh)
	settings.StartAutoRefresh(context.Background())

	scoreboard := services.NewScoreboardService(database.DB, database.RDB, settings)
	submit := services.NewSubmitService(database.DB, settings, scoreboard)

	controllers.Init(settings, submit, scoreboard)

	r := routes.SetupRouter()

	log.Printf("Starting server on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
