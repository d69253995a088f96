package adapter

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	gnewsBaseURL          = "https://gnews.io/api/v4/top-headlines"
	gnewsMaxItems         = 15
	gnewsMaxResponseBytes = 1 << 20 // 1MB
	gnewsClientTimeout    = 10 * time.Second
)

// GNewsFetcher 调用 token 认证的 GNews 头条 API，按主题与地区取新闻
type GNewsFetcher struct {
	Category string // technology / general / world ...
	Country  string // 为空时默认 in
	Token    string
	BaseURL  string // 为空时使用官方地址
}

func (g *GNewsFetcher) Name() string {
	return "gnews:" + g.Category
}

type gnewsResp struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Image       string `json:"image"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (g *GNewsFetcher) Fetch() ([]Article, error) {
	base := g.BaseURL
	if base == "" {
		base = gnewsBaseURL
	}
	country := g.Country
	if country == "" {
		country = "in"
	}

	q := url.Values{}
	q.Set("token", g.Token)
	q.Set("lang", "en")
	q.Set("max", fmt.Sprintf("%d", gnewsMaxItems))
	q.Set("category", g.Category)
	q.Set("country", country)

	client := &http.Client{Timeout: gnewsClientTimeout}
	resp, err := client.Get(base + "?" + q.Encode())
	if err != nil {
		return nil, fmt.Errorf("gnews: fetch %s: %w", g.Category, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gnews: unexpected status %d for %s", resp.StatusCode, g.Category)
	}

	var data gnewsResp
	if err := json.NewDecoder(io.LimitReader(resp.Body, gnewsMaxResponseBytes)).Decode(&data); err != nil {
		return nil, fmt.Errorf("gnews: decode response for %s: %w", g.Category, err)
	}

	now := time.Now()
	results := make([]Article, 0, len(data.Articles))
	for _, a := range data.Articles {
		if a.Title == "" || a.URL == "" {
			continue
		}

		published := now
		if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
			published = t
		}

		source := a.Source.Name
		if source == "" {
			source = "GNews"
		}

		results = append(results, Article{
			Title:       a.Title,
			Summary:     a.Description,
			URL:         a.URL,
			Image:       a.Image,
			Source:      source,
			PublishedAt: published,
		})
	}
	return results, nil
}
