package aggregate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"newsdeck/internal/adapter"
)

const (
	newsAPIBaseURL        = "https://newsapi.org/v2"
	fallbackMaxItems      = 8
	fallbackMaxBodyBytes  = 1 << 20 // 1MB
	fallbackClientTimeout = 10 * time.Second
	fallbackUserAgent     = "newsdeck/1.0"
)

// FallbackCategory 兜底响应中文章统一使用的栏目标签
const FallbackCategory = "fallback"

// ErrFallbackNotConfigured 缺少 NewsAPI key 时兜底不可用
var ErrFallbackNotConfigured = errors.New("news api key not configured")

// FallbackProvider 聚合整体失败时直接调用 NewsAPI 头条兜底。
// 结果尽力而为：不排序、不去重、不校验图片。
type FallbackProvider struct {
	APIKey  string
	Country string // 为空时默认 in
	BaseURL string // 为空时使用官方地址
}

type newsAPIResp struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (f *FallbackProvider) Fallback(limit int) ([]adapter.Article, error) {
	if f.APIKey == "" {
		return nil, ErrFallbackNotConfigured
	}

	base := f.BaseURL
	if base == "" {
		base = newsAPIBaseURL
	}
	country := f.Country
	if country == "" {
		country = "in"
	}

	q := url.Values{}
	q.Set("country", country)
	q.Set("apiKey", f.APIKey)

	req, err := http.NewRequest(http.MethodGet, base+"/top-headlines?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("fallback: build request: %w", err)
	}
	req.Header.Set("User-Agent", fallbackUserAgent)

	client := &http.Client{Timeout: fallbackClientTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fallback: fetch headlines: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fallback: news api returned status %d", resp.StatusCode)
	}

	var data newsAPIResp
	if err := json.NewDecoder(io.LimitReader(resp.Body, fallbackMaxBodyBytes)).Decode(&data); err != nil {
		return nil, fmt.Errorf("fallback: decode response: %w", err)
	}

	max := fallbackMaxItems
	if limit > 0 && limit < max {
		max = limit
	}

	now := time.Now()
	results := make([]adapter.Article, 0, max)
	for _, a := range data.Articles {
		if len(results) >= max {
			break
		}
		if a.Title == "" || a.URL == "" {
			continue
		}

		published := now
		if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
			published = t
		}

		source := a.Source.Name
		if source == "" {
			source = "Unknown"
		}

		results = append(results, adapter.Article{
			Title:       a.Title,
			Summary:     a.Description,
			URL:         a.URL,
			Image:       a.URLToImage,
			Source:      source,
			PublishedAt: published,
			Category:    FallbackCategory,
		})
	}
	return results, nil
}
