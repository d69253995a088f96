package aggregate

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"newsdeck/internal/adapter"
	"newsdeck/internal/imagecheck"
)

const (
	// DefaultLimit 未指定 limit 时的默认返回条数
	DefaultLimit = 50
	maxLimit     = 200

	validateConcurrency = 8
)

// ErrNoGroups 请求里的栏目没有一个能解析到配置
var ErrNoGroups = errors.New("no requested category group is configured")

// Meta 随文章一起返回的聚合元信息
type Meta struct {
	Total       int       `json:"total"`
	Categories  []string  `json:"categories"`
	Sources     []string  `json:"sources"`
	LastUpdated time.Time `json:"lastUpdated"`
	Fallback    bool      `json:"fallback,omitempty"`
}

// Result 一次聚合调用的完整输出
type Result struct {
	Articles []adapter.Article `json:"articles"`
	Meta     Meta              `json:"metadata"`
}

// Aggregator 按栏目编排各数据源：并发抓取、校验图片、去重、全局排序截断。
// 自身无状态，可被多个请求并发调用。
type Aggregator struct {
	groups  map[string][]adapter.Fetcher
	labels  []string
	checker imagecheck.Checker
}

// New 创建聚合器。labels 给出栏目的规范顺序，为 nil 时按注册顺序不保证。
func New(groups map[string][]adapter.Fetcher, labels []string, checker imagecheck.Checker) *Aggregator {
	if labels == nil {
		for label := range groups {
			labels = append(labels, label)
		}
		sort.Strings(labels)
	}
	return &Aggregator{groups: groups, labels: labels, checker: checker}
}

// Labels 返回全部已配置栏目，作为请求未指定时的默认值
func (a *Aggregator) Labels() []string {
	out := make([]string, 0, len(a.labels))
	for _, label := range a.labels {
		if _, ok := a.groups[label]; ok {
			out = append(out, label)
		}
	}
	return out
}

// Aggregate 聚合指定栏目的内容。未知栏目记录日志后跳过，只有当
// 所有请求的栏目都无法解析时才返回错误；单个数据源失败只会让该源贡献空列表。
func (a *Aggregator) Aggregate(groups []string, limit int) (*Result, error) {
	if limit <= 0 || limit > maxLimit {
		limit = DefaultLimit
	}

	resolved := make([]string, 0, len(groups))
	for _, label := range groups {
		if _, ok := a.groups[label]; !ok {
			log.Printf("aggregate: unknown category group %q, skipping", label)
			continue
		}
		resolved = append(resolved, label)
	}
	if len(resolved) == 0 {
		return nil, fmt.Errorf("%w: requested %v", ErrNoGroups, groups)
	}

	dedup := NewDeduplicator()
	all := make([]adapter.Article, 0, limit*2)

	for _, label := range resolved {
		items := a.collectGroup(label)
		a.enrichGroup(items, label)
		items = dedup.Dedup(items)
		all = append(all, items...)
	}

	// 最新在前；时间相同的保持进入顺序
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].PublishedAt.After(all[j].PublishedAt)
	})
	if len(all) > limit {
		all = all[:limit]
	}

	return &Result{
		Articles: all,
		Meta: Meta{
			Total:       len(all),
			Categories:  resolved,
			Sources:     distinctSources(all),
			LastUpdated: time.Now(),
		},
	}, nil
}

// collectGroup 并发调用一个栏目下的全部数据源，按注册顺序拼接结果。
// 单个源的错误在这里折叠为空列表，不影响兄弟源。
func (a *Aggregator) collectGroup(label string) []adapter.Article {
	fetchers := a.groups[label]
	perFetcher := make([][]adapter.Article, len(fetchers))

	var wg sync.WaitGroup
	for i, f := range fetchers {
		wg.Add(1)
		go func(idx int, f adapter.Fetcher) {
			defer wg.Done()
			items, err := f.Fetch()
			if err != nil {
				log.Printf("aggregate: fetch %s for %s failed: %v", f.Name(), label, err)
				return
			}
			perFetcher[idx] = items
		}(i, f)
	}
	wg.Wait()

	var items []adapter.Article
	for _, batch := range perFetcher {
		items = append(items, batch...)
	}
	return items
}

// enrichGroup 赋栏目标签并校验图片，无效图片统一换成占位图
func (a *Aggregator) enrichGroup(items []adapter.Article, label string) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, validateConcurrency)

	for i := range items {
		items[i].Category = label

		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			if !a.checker.Valid(items[idx].Image) {
				items[idx].Image = imagecheck.Placeholder
			}
		}(i)
	}
	wg.Wait()
}

func distinctSources(items []adapter.Article) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.Source]; ok {
			continue
		}
		seen[it.Source] = struct{}{}
		out = append(out, it.Source)
	}
	return out
}
