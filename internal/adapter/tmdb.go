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
	tmdbBaseURL          = "https://api.themoviedb.org/3"
	tmdbDetailBaseURL    = "https://www.themoviedb.org/movie"
	tmdbPosterCDN        = "https://image.tmdb.org/t/p/w500"
	tmdbMaxItems         = 10
	tmdbMaxResponseBytes = 1 << 20 // 1MB
	tmdbClientTimeout    = 10 * time.Second
)

// TMDBFetcher 抓取 TMDB 本周热门电影榜
type TMDBFetcher struct {
	APIKey  string
	BaseURL string // 为空时使用官方地址
}

func (t *TMDBFetcher) Name() string {
	return "tmdb:trending"
}

type tmdbResp struct {
	Results []struct {
		ID          int    `json:"id"`
		Title       string `json:"title"`
		Overview    string `json:"overview"`
		PosterPath  string `json:"poster_path"`
		ReleaseDate string `json:"release_date"`
	} `json:"results"`
}

func (t *TMDBFetcher) Fetch() ([]Article, error) {
	base := t.BaseURL
	if base == "" {
		base = tmdbBaseURL
	}

	q := url.Values{}
	q.Set("api_key", t.APIKey)

	client := &http.Client{Timeout: tmdbClientTimeout}
	resp, err := client.Get(base + "/trending/movie/week?" + q.Encode())
	if err != nil {
		return nil, fmt.Errorf("tmdb: fetch trending: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tmdb: unexpected status %d", resp.StatusCode)
	}

	var data tmdbResp
	if err := json.NewDecoder(io.LimitReader(resp.Body, tmdbMaxResponseBytes)).Decode(&data); err != nil {
		return nil, fmt.Errorf("tmdb: decode response: %w", err)
	}

	now := time.Now()
	results := make([]Article, 0, tmdbMaxItems)
	for _, m := range data.Results {
		if len(results) >= tmdbMaxItems {
			break
		}
		if m.Title == "" {
			continue
		}

		published := now
		if ts, err := time.Parse("2006-01-02", m.ReleaseDate); err == nil {
			published = ts
		}

		image := ""
		if m.PosterPath != "" {
			image = tmdbPosterCDN + m.PosterPath
		}

		results = append(results, Article{
			Title:       m.Title,
			Summary:     truncateSummary(m.Overview),
			URL:         fmt.Sprintf("%s/%d", tmdbDetailBaseURL, m.ID),
			Image:       image,
			Source:      "TMDB",
			PublishedAt: published,
		})
	}
	return results, nil
}
