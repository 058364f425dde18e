// file: controllers/init.go
package controllers

import (
	"YukthiCTF/services"
)

var (
	settingsSvc   *services.SettingsService
	submitSvc     *services.SubmitService
	scoreboardSvc *services.ScoreboardService
)

// Init 注入各控制器共用的服务实例，由 routes.SetupRouter 调用
func Init(settings *services.SettingsService, submit *services.SubmitService, scoreboard *services.ScoreboardService) {
	settingsSvc = settings
	submitSvc = submit
	scoreboardSvc = scoreboard
}
