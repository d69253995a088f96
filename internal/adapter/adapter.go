package adapter

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Article 聚合管道中流转的统一结构，category 由聚合器统一赋值
type Article struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	URL         string    `json:"url"`
	Image       string    `json:"image"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
	Category    string    `json:"category"`
}

// Fetcher 抽象每一个上游数据源
type Fetcher interface {
	Name() string
	Fetch() ([]Article, error)
}

const summaryMaxRunes = 200

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// stripTags 去掉描述中的 HTML 标签，只保留正文
func stripTags(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}

// truncateSummary 按 rune 数截断摘要，超长时追加省略号
func truncateSummary(s string) string {
	s = strings.TrimSpace(s)
	rs := []rune(s)
	if len(rs) <= summaryMaxRunes {
		return s
	}
	return string(rs[:summaryMaxRunes]) + "..."
}

// firstImageFromHTML 从条目正文 HTML 中取第一个 <img> 的地址
func firstImageFromHTML(content string) string {
	if content == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img").First().Attr("src")
	return src
}
