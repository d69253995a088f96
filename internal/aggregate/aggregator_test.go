package aggregate

import (
	"errors"
	"strings"
	"testing"
	"time"

	"newsdeck/internal/adapter"
	"newsdeck/internal/imagecheck"
)

// stubFetcher 测试用数据源，返回固定结果或固定错误
type stubFetcher struct {
	name  string
	items []adapter.Article
	err   error
}

func (s *stubFetcher) Name() string { return s.name }

func (s *stubFetcher) Fetch() ([]adapter.Article, error) {
	return s.items, s.err
}

// stubChecker 按前缀放行图片地址
type stubChecker struct {
	validPrefix string
}

func (c *stubChecker) Valid(rawURL string) bool {
	return rawURL != "" && c.validPrefix != "" && strings.HasPrefix(rawURL, c.validPrefix)
}

func at(minutesAgo int) time.Time {
	return time.Now().Add(-time.Duration(minutesAgo) * time.Minute)
}

func TestAggregateDedupAndCategoryAssignment(t *testing.T) {
	groups := map[string][]adapter.Fetcher{
		"ai_news": {
			&stubFetcher{name: "rss", items: []adapter.Article{
				{Title: "Model Release!", URL: "https://a/1", Source: "Feed A", PublishedAt: at(10)},
				{Title: "model release", URL: "https://a/2", Source: "Feed A", PublishedAt: at(20)},
				{Title: "Other Story", URL: "https://a/3", Source: "Feed A", PublishedAt: at(30)},
			}},
			&stubFetcher{name: "reddit", items: []adapter.Article{
				{Title: "Discussion Thread", URL: "https://b/1", Source: "Reddit r/x", PublishedAt: at(5)},
				{Title: "Benchmark Results", URL: "https://b/2", Source: "Reddit r/x", PublishedAt: at(40)},
			}},
		},
	}

	agg := New(groups, []string{"ai_news"}, &stubChecker{})

	res, err := agg.Aggregate([]string{"ai_news"}, 5)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}

	// 3 + 2 条，去掉一条重复标题
	if len(res.Articles) != 4 {
		t.Fatalf("expected 4 articles after dedup, got %d", len(res.Articles))
	}
	for _, a := range res.Articles {
		if a.Category != "ai_news" {
			t.Fatalf("article %q has category %q, want ai_news", a.Title, a.Category)
		}
	}
	for i := 1; i < len(res.Articles); i++ {
		if res.Articles[i].PublishedAt.After(res.Articles[i-1].PublishedAt) {
			t.Fatalf("articles not sorted newest-first at index %d", i)
		}
	}
	if res.Meta.Total != 4 {
		t.Fatalf("meta total = %d, want 4", res.Meta.Total)
	}
}

func TestAggregateRespectsLimitAndSortsGlobally(t *testing.T) {
	groups := map[string][]adapter.Fetcher{
		"a": {&stubFetcher{name: "a", items: []adapter.Article{
			{Title: "A1", URL: "https://a/1", Source: "A", PublishedAt: at(30)},
			{Title: "A2", URL: "https://a/2", Source: "A", PublishedAt: at(10)},
		}}},
		"b": {&stubFetcher{name: "b", items: []adapter.Article{
			{Title: "B1", URL: "https://b/1", Source: "B", PublishedAt: at(20)},
			{Title: "B2", URL: "https://b/2", Source: "B", PublishedAt: at(40)},
		}}},
	}

	agg := New(groups, []string{"a", "b"}, &stubChecker{})

	res, err := agg.Aggregate([]string{"a", "b"}, 3)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if len(res.Articles) != 3 {
		t.Fatalf("expected limit 3 applied, got %d articles", len(res.Articles))
	}
	want := []string{"A2", "B1", "A1"}
	for i, title := range want {
		if res.Articles[i].Title != title {
			t.Fatalf("position %d = %q, want %q", i, res.Articles[i].Title, title)
		}
	}
}

func TestAggregateImageValidationRewritesPlaceholder(t *testing.T) {
	groups := map[string][]adapter.Fetcher{
		"news": {&stubFetcher{name: "src", items: []adapter.Article{
			{Title: "Valid Image", URL: "https://a/1", Image: "https://img.example.com/cat.jpg", Source: "S", PublishedAt: at(1)},
			{Title: "Dead Image", URL: "https://a/2", Image: "https://dead.example.com/x.jpg", Source: "S", PublishedAt: at(2)},
			{Title: "No Image", URL: "https://a/3", Source: "S", PublishedAt: at(3)},
		}}},
	}

	agg := New(groups, []string{"news"}, &stubChecker{validPrefix: "https://img.example.com/"})

	res, err := agg.Aggregate([]string{"news"}, 10)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}

	byTitle := make(map[string]adapter.Article, len(res.Articles))
	for _, a := range res.Articles {
		byTitle[a.Title] = a
	}

	if got := byTitle["Valid Image"].Image; got != "https://img.example.com/cat.jpg" {
		t.Fatalf("valid image rewritten unexpectedly: %q", got)
	}
	if got := byTitle["Dead Image"].Image; got != imagecheck.Placeholder {
		t.Fatalf("dead image = %q, want placeholder", got)
	}
	if got := byTitle["No Image"].Image; got != imagecheck.Placeholder {
		t.Fatalf("missing image = %q, want placeholder", got)
	}
}

func TestAggregateAllAdaptersFailYieldsEmptyNotError(t *testing.T) {
	groups := map[string][]adapter.Fetcher{
		"news": {
			&stubFetcher{name: "x", err: errors.New("boom")},
			&stubFetcher{name: "y", err: errors.New("timeout")},
		},
	}

	agg := New(groups, []string{"news"}, &stubChecker{})

	res, err := agg.Aggregate([]string{"news"}, 10)
	if err != nil {
		t.Fatalf("adapter failures must not fail the call: %v", err)
	}
	if len(res.Articles) != 0 {
		t.Fatalf("expected empty result, got %d articles", len(res.Articles))
	}
	if res.Meta.Total != 0 {
		t.Fatalf("meta total = %d, want 0", res.Meta.Total)
	}
}

func TestAggregateUnknownGroupDegradesPerGroup(t *testing.T) {
	groups := map[string][]adapter.Fetcher{
		"tech_news": {&stubFetcher{name: "src", items: []adapter.Article{
			{Title: "Story", URL: "https://a/1", Source: "S", PublishedAt: at(1)},
		}}},
	}

	agg := New(groups, []string{"tech_news"}, &stubChecker{})

	// 未知栏目混在有效栏目里：有效栏目照常返回
	res, err := agg.Aggregate([]string{"foo", "tech_news"}, 10)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if len(res.Articles) != 1 {
		t.Fatalf("expected valid group articles, got %d", len(res.Articles))
	}
	if len(res.Meta.Categories) != 1 || res.Meta.Categories[0] != "tech_news" {
		t.Fatalf("meta categories = %v, want [tech_news]", res.Meta.Categories)
	}

	// 全部未知：整个调用按解析失败处理
	if _, err := agg.Aggregate([]string{"foo", "bar"}, 10); !errors.Is(err, ErrNoGroups) {
		t.Fatalf("expected ErrNoGroups, got %v", err)
	}
}

func TestAggregateIdempotentUnderStableUpstream(t *testing.T) {
	groups := map[string][]adapter.Fetcher{
		"news": {&stubFetcher{name: "src", items: []adapter.Article{
			{Title: "One", URL: "https://a/1", Source: "S", PublishedAt: at(1)},
			{Title: "Two", URL: "https://a/2", Source: "S", PublishedAt: at(1)},
			{Title: "Three", URL: "https://a/3", Source: "S", PublishedAt: at(2)},
		}}},
	}

	agg := New(groups, []string{"news"}, &stubChecker{})

	first, err := agg.Aggregate([]string{"news"}, 10)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	second, err := agg.Aggregate([]string{"news"}, 10)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}

	if len(first.Articles) != len(second.Articles) {
		t.Fatalf("result sizes differ: %d vs %d", len(first.Articles), len(second.Articles))
	}
	for i := range first.Articles {
		if first.Articles[i].Title != second.Articles[i].Title {
			t.Fatalf("order not stable at %d: %q vs %q", i, first.Articles[i].Title, second.Articles[i].Title)
		}
	}
}
