package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"newsdeck/internal/aggregate"
	"newsdeck/internal/cache"
)

// Refresher 定时预取全部栏目并写入快照缓存，保证用户打开页面时内容已就绪
type Refresher struct {
	cron  *cron.Cron
	agg   *aggregate.Aggregator
	cache *cache.Cache
}

func New(spec string, agg *aggregate.Aggregator, c *cache.Cache) (*Refresher, error) {
	cr := cron.New()

	r := &Refresher{
		cron:  cr,
		agg:   agg,
		cache: c,
	}

	if _, err := cr.AddFunc(spec, r.runOnce); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Refresher) Start() {
	r.cron.Start()
	// 延迟首轮刷新，避免与进程启动期的请求争抢资源
	const startupDelay = 15 * time.Second
	time.AfterFunc(startupDelay, func() {
		go r.runOnce()
	})
}

func (r *Refresher) Stop() {
	r.cron.Stop()
}

// RunOnce 对外暴露的单次刷新入口，方便手动触发
func (r *Refresher) RunOnce() {
	r.runOnce()
}

func (r *Refresher) runOnce() {
	log.Println("start content refresh...")

	labels := r.agg.Labels()
	res, err := r.agg.Aggregate(labels, aggregate.DefaultLimit)
	if err != nil {
		log.Printf("content refresh failed: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r.cache.SetResult(ctx, cache.Key(labels, aggregate.DefaultLimit), res)

	log.Printf("content refresh done: total=%d sources=%d categories=%v",
		res.Meta.Total, len(res.Meta.Sources), res.Meta.Categories)
}
