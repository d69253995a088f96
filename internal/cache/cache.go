package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"newsdeck/internal/aggregate"
)

// 快照保留一小时，与对外的 Cache-Control 提示一致
const snapshotTTL = time.Hour

// Cache 用 Redis 缓存聚合快照，减少对限流上游的请求次数。
// Redis 不可用时全部操作退化为未命中，不影响主流程。
type Cache struct {
	rdb *redis.Client
}

func New(addr string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("warn: redis ping failed: %v", err)
	}

	return &Cache{rdb: rdb}
}

// Key 由请求的栏目与 limit 构成缓存键
func Key(groups []string, limit int) string {
	return fmt.Sprintf("discover:%s:%d", strings.Join(groups, ","), limit)
}

func (c *Cache) GetResult(ctx context.Context, key string) (*aggregate.Result, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	bs, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var res aggregate.Result
	if err := json.Unmarshal(bs, &res); err != nil {
		return nil, false
	}
	return &res, true
}

func (c *Cache) SetResult(ctx context.Context, key string, res *aggregate.Result) {
	if c == nil || c.rdb == nil || res == nil {
		return
	}

	bs, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, bs, snapshotTTL).Err(); err != nil {
		log.Printf("warn: cache set %s failed: %v", key, err)
	}
}
