package adapter

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	redditBaseURL          = "https://www.reddit.com"
	redditMaxItems         = 10
	redditMaxResponseBytes = 2 << 20 // 2MB
	redditClientTimeout    = 10 * time.Second
	redditUserAgent        = "newsdeck/1.0"
)

// RedditFetcher 抓取一个社区的 hot 榜单，只保留带外链的帖子
type RedditFetcher struct {
	Subreddit string // 不带 r/ 前缀
	BaseURL   string // 为空时使用官方地址
}

func (r *RedditFetcher) Name() string {
	return "reddit:r/" + r.Subreddit
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title       string  `json:"title"`
				URL         string  `json:"url"`
				Selftext    string  `json:"selftext"`
				IsSelf      bool    `json:"is_self"`
				Thumbnail   string  `json:"thumbnail"`
				Ups         int     `json:"ups"`
				NumComments int     `json:"num_comments"`
				CreatedUTC  float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (r *RedditFetcher) Fetch() ([]Article, error) {
	base := r.BaseURL
	if base == "" {
		base = redditBaseURL
	}
	listingURL := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", base, r.Subreddit, redditMaxItems)

	req, err := http.NewRequest(http.MethodGet, listingURL, nil)
	if err != nil {
		return nil, fmt.Errorf("reddit: build request for r/%s: %w", r.Subreddit, err)
	}
	// Reddit 对默认 UA 返回 429，必须带自定义 UA
	req.Header.Set("User-Agent", redditUserAgent)

	client := &http.Client{Timeout: redditClientTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reddit: fetch r/%s: %w", r.Subreddit, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit: unexpected status %d for r/%s", resp.StatusCode, r.Subreddit)
	}

	var data redditListing
	if err := json.NewDecoder(io.LimitReader(resp.Body, redditMaxResponseBytes)).Decode(&data); err != nil {
		return nil, fmt.Errorf("reddit: decode listing for r/%s: %w", r.Subreddit, err)
	}

	results := make([]Article, 0, len(data.Data.Children))
	for _, child := range data.Data.Children {
		post := child.Data
		// 跳过纯文本帖（无外链）
		if post.URL == "" || post.IsSelf {
			continue
		}
		if post.Title == "" {
			continue
		}

		summary := truncateSummary(post.Selftext)
		if summary == "" {
			summary = fmt.Sprintf("%d upvotes, %d comments", post.Ups, post.NumComments)
		}

		image := post.Thumbnail
		if image == "self" {
			image = ""
		}

		results = append(results, Article{
			Title:       post.Title,
			Summary:     summary,
			URL:         post.URL,
			Image:       image,
			Source:      "Reddit r/" + r.Subreddit,
			PublishedAt: time.Unix(int64(post.CreatedUTC), 0),
		})
	}
	return results, nil
}
