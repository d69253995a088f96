package adapter

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"
	log "github.com/sirupsen/logrus"
)

const (
	rssProxyBase        = "https://api.rss2json.com/v1/api.json"
	rssMaxItems         = 10
	rssMaxResponseBytes = 1 << 20 // 1MB
	rssClientTimeout    = 10 * time.Second
)

// rss2json 返回的 pubDate 格式
const rssProxyTimeLayout = "2006-01-02 15:04:05"

// RSSFetcher 通过 rss2json 转换代理抓取一个 RSS 源。
// 代理失败或返回 0 条时，退回直接抓取原始 XML 用 gofeed 解析。
type RSSFetcher struct {
	FeedURL   string
	APIKey    string // 为空时使用免费档
	ProxyBase string // 为空时使用默认代理地址
}

func (r *RSSFetcher) Name() string {
	return "rss:" + r.FeedURL
}

type rssProxyResp struct {
	Status string `json:"status"`
	Feed   struct {
		Title string `json:"title"`
	} `json:"feed"`
	Items []struct {
		Title       string `json:"title"`
		Link        string `json:"link"`
		Description string `json:"description"`
		Content     string `json:"content"`
		PubDate     string `json:"pubDate"`
		Thumbnail   string `json:"thumbnail"`
		Enclosure   struct {
			Link string `json:"link"`
		} `json:"enclosure"`
	} `json:"items"`
}

func (r *RSSFetcher) Fetch() ([]Article, error) {
	articles, err := r.fetchViaProxy()
	if err == nil && len(articles) > 0 {
		return articles, nil
	}
	if err != nil {
		log.Printf("rss: proxy fetch %s failed: %v, trying direct parse", r.FeedURL, err)
	}

	direct, derr := r.fetchDirect()
	if derr != nil {
		if err != nil {
			return nil, err
		}
		return nil, derr
	}
	return direct, nil
}

func (r *RSSFetcher) fetchViaProxy() ([]Article, error) {
	base := r.ProxyBase
	if base == "" {
		base = rssProxyBase
	}
	apiKey := r.APIKey
	if apiKey == "" {
		apiKey = "free"
	}

	q := url.Values{}
	q.Set("rss_url", r.FeedURL)
	q.Set("api_key", apiKey)
	q.Set("count", fmt.Sprintf("%d", rssMaxItems))

	client := &http.Client{Timeout: rssClientTimeout}
	resp, err := client.Get(base + "?" + q.Encode())
	if err != nil {
		return nil, fmt.Errorf("rss: fetch proxy for %s: %w", r.FeedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rss: proxy unexpected status %d for %s", resp.StatusCode, r.FeedURL)
	}

	var data rssProxyResp
	if err := json.NewDecoder(io.LimitReader(resp.Body, rssMaxResponseBytes)).Decode(&data); err != nil {
		return nil, fmt.Errorf("rss: decode proxy response for %s: %w", r.FeedURL, err)
	}
	if data.Status != "ok" {
		return nil, fmt.Errorf("rss: proxy status %q for %s", data.Status, r.FeedURL)
	}

	now := time.Now()
	results := make([]Article, 0, len(data.Items))
	for _, it := range data.Items {
		if it.Title == "" || it.Link == "" {
			continue
		}

		published := now
		if t, err := time.Parse(rssProxyTimeLayout, it.PubDate); err == nil {
			published = t
		}

		image := it.Enclosure.Link
		if image == "" {
			image = it.Thumbnail
		}
		if image == "" {
			image = firstImageFromHTML(it.Content)
		}
		if image == "" {
			image = firstImageFromHTML(it.Description)
		}

		results = append(results, Article{
			Title:       it.Title,
			Summary:     truncateSummary(stripTags(it.Description)),
			URL:         it.Link,
			Image:       image,
			Source:      data.Feed.Title,
			PublishedAt: published,
		})
	}
	return results, nil
}

// fetchDirect 直接抓取源 XML 并用 gofeed 解析，作为代理不可用时的兜底
func (r *RSSFetcher) fetchDirect() ([]Article, error) {
	fp := gofeed.NewParser()
	fp.Client = &http.Client{Timeout: rssClientTimeout}
	fp.UserAgent = "newsdeck/1.0"

	feed, err := fp.ParseURL(r.FeedURL)
	if err != nil {
		return nil, fmt.Errorf("rss: direct parse %s: %w", r.FeedURL, err)
	}

	now := time.Now()
	results := make([]Article, 0, rssMaxItems)
	for _, it := range feed.Items {
		if len(results) >= rssMaxItems {
			break
		}
		if it.Title == "" || it.Link == "" {
			continue
		}

		published := now
		if it.PublishedParsed != nil {
			published = *it.PublishedParsed
		}

		image := ""
		if it.Image != nil {
			image = it.Image.URL
		}
		for _, enc := range it.Enclosures {
			if image != "" {
				break
			}
			image = enc.URL
		}
		if image == "" {
			image = firstImageFromHTML(it.Content)
		}
		if image == "" {
			image = firstImageFromHTML(it.Description)
		}

		results = append(results, Article{
			Title:       it.Title,
			Summary:     truncateSummary(stripTags(it.Description)),
			URL:         it.Link,
			Image:       image,
			Source:      feed.Title,
			PublishedAt: published,
		})
	}
	return results, nil
}
