package cache

import (
	"context"
	"testing"
)

func TestKeyIsStableAndDistinct(t *testing.T) {
	a := Key([]string{"ai_news", "tech_news"}, 50)
	b := Key([]string{"ai_news", "tech_news"}, 50)
	if a != b {
		t.Fatalf("key not stable: %q vs %q", a, b)
	}

	if a == Key([]string{"ai_news"}, 50) {
		t.Fatalf("different groups must produce different keys")
	}
	if a == Key([]string{"ai_news", "tech_news"}, 100) {
		t.Fatalf("different limits must produce different keys")
	}
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *Cache

	if _, ok := c.GetResult(context.Background(), "k"); ok {
		t.Fatalf("nil cache should always miss")
	}
	// nil 缓存上的写入应是空操作，不应 panic
	c.SetResult(context.Background(), "k", nil)
}
