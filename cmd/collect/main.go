package main

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"newsdeck/internal/aggregate"
	"newsdeck/internal/cache"
	"newsdeck/internal/config"
	"newsdeck/internal/imagecheck"
)

// 一个仅执行一轮聚合的命令行入口：适合手动刷新快照或冒烟验证数据源
func main() {
	cfg := config.Load()

	agg := aggregate.New(
		aggregate.DefaultGroups(cfg),
		aggregate.GroupLabels,
		imagecheck.NewHTTPChecker(),
	)

	labels := agg.Labels()
	res, err := agg.Aggregate(labels, aggregate.DefaultLimit)
	if err != nil {
		log.Fatalf("aggregate failed: %v", err)
	}

	snapshots := cache.New(cfg.RedisAddr)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	snapshots.SetResult(ctx, cache.Key(labels, aggregate.DefaultLimit), res)

	log.Printf("collect done: total=%d sources=%d categories=%v",
		res.Meta.Total, len(res.Meta.Sources), res.Meta.Categories)
}
