package aggregate

import (
	"strings"
	"unicode"

	"newsdeck/internal/adapter"
)

// Deduplicator 在一次聚合调用内按规范化标题去重，先出现的一条获胜。
// key 集合只在单次调用内有效，不跨请求持久化。
type Deduplicator struct {
	seen map[string]struct{}
}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: make(map[string]struct{})}
}

func (d *Deduplicator) Dedup(items []adapter.Article) []adapter.Article {
	out := make([]adapter.Article, 0, len(items))
	for _, it := range items {
		key := normalizeTitle(it.Title)
		if _, ok := d.seen[key]; ok {
			continue
		}
		d.seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}

// normalizeTitle 小写化并去掉所有非字母数字非空白字符，用于近似去重
func normalizeTitle(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
