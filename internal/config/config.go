package config

import (
	"os"

	log "github.com/sirupsen/logrus"
)

type Config struct {
	AppPort string

	PostgresDSN string
	RedisAddr   string

	CronSpec string

	// 上游服务的 key，缺省时对应数据源静默退化
	Rss2JSONKey string
	GNewsAPIKey string
	NewsAPIKey  string
	TMDBAPIKey  string
}

func Load() *Config {
	cfg := &Config{
		AppPort:     getEnv("APP_PORT", "9000"),
		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=newsdeck password=newsdeck dbname=newsdeck port=5432 sslmode=disable TimeZone=UTC"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		CronSpec:    getEnv("CRON_SPEC", "0 * * * *"),
		Rss2JSONKey: getEnv("RSS2JSON_API_KEY", "free"),
		GNewsAPIKey: getEnv("GNEWS_API_KEY", ""),
		NewsAPIKey:  getEnv("NEWS_API_KEY", ""),
		TMDBAPIKey:  getEnv("TMDB_API_KEY", ""),
	}

	log.Printf("config loaded: port=%s cron=%s", cfg.AppPort, cfg.CronSpec)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
