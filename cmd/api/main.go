package main

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"newsdeck/internal/aggregate"
	"newsdeck/internal/api"
	"newsdeck/internal/cache"
	"newsdeck/internal/config"
	"newsdeck/internal/imagecheck"
	"newsdeck/internal/scheduler"
	"newsdeck/internal/store"
)

func main() {
	cfg := config.Load()

	st, err := store.NewStore(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("init store failed: %v", err)
	}
	if err := st.SeedPosts(store.SeedPostSet); err != nil {
		log.Fatalf("seed posts failed: %v", err)
	}

	snapshots := cache.New(cfg.RedisAddr)

	agg := aggregate.New(
		aggregate.DefaultGroups(cfg),
		aggregate.GroupLabels,
		imagecheck.NewHTTPChecker(),
	)
	fb := &aggregate.FallbackProvider{APIKey: cfg.NewsAPIKey}

	// 每小时后台刷新一轮，预热默认查询的快照
	refresher, err := scheduler.New(cfg.CronSpec, agg, snapshots)
	if err != nil {
		log.Fatalf("init refresher failed: %v", err)
	}
	refresher.Start()

	r := gin.Default()
	apiServer := api.NewServer(agg, fb, snapshots, st)
	apiServer.RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}
