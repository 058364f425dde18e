// file: config/config.go
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config 进程级配置，全部来自环境变量。
// 比赛本身的配置（起止时间、封榜时间等）存放在数据库 GameConfig 表中，
// 由 services.SettingsService 周期性刷新，不在这里。
type Config struct {
	ListenAddr string `env:"YUKTHI_LISTEN_ADDR" envDefault:":8080"`

	// MySQL DSN，例如 root:123456@tcp(localhost:3306)/yukthi?charset=utf8mb4&parseTime=True&loc=Local
	DatabaseDSN string `env:"YUKTHI_DB_DSN,required"`

	// Redis 地址，留空则禁用排行榜缓存
	RedisAddr     string `env:"YUKTHI_REDIS_ADDR"`
	RedisPassword string `env:"YUKTHI_REDIS_PASSWORD"`
	RedisDB       int    `env:"YUKTHI_REDIS_DB" envDefault:"0"`

	JWTSecret string `env:"YUKTHI_JWT_SECRET,required"`

	// 比赛配置快照刷新间隔
	SettingsRefresh time.Duration `env:"YUKTHI_SETTINGS_REFRESH" envDefault:"10s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
