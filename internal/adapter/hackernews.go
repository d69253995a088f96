package adapter

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	hnBaseURL           = "https://hacker-news.firebaseio.com/v0"
	hnMaxItems          = 15
	hnMaxResponseBytes  = 1 << 20 // 1MB
	hnConcurrency       = 10
	hnClientTimeout     = 10 * time.Second
	hnItemClientTimeout = 5 * time.Second
)

// HackerNewsFetcher 通过官方 Firebase API 抓取 Hacker News 热门故事
type HackerNewsFetcher struct {
	BaseURL string // 为空时使用官方地址
}

func (h *HackerNewsFetcher) Name() string {
	return "hackernews:top"
}

type hnItem struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	Time        int64  `json:"time"`
	Type        string `json:"type"`
}

func (h *HackerNewsFetcher) Fetch() ([]Article, error) {
	base := h.BaseURL
	if base == "" {
		base = hnBaseURL
	}

	client := &http.Client{Timeout: hnClientTimeout}

	resp, err := client.Get(base + "/topstories.json")
	if err != nil {
		return nil, fmt.Errorf("hackernews: fetch top stories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hackernews: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, hnMaxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("hackernews: read top stories: %w", err)
	}

	var ids []int
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, fmt.Errorf("hackernews: unmarshal top stories: %w", err)
	}

	if len(ids) > hnMaxItems {
		ids = ids[:hnMaxItems]
	}

	type indexedItem struct {
		idx  int
		item hnItem
	}

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		sem   = make(chan struct{}, hnConcurrency)
		items = make([]indexedItem, 0, len(ids))
	)

	itemClient := &http.Client{Timeout: hnItemClientTimeout}

	for i, id := range ids {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx, id int) {
			defer wg.Done()
			defer func() { <-sem }()

			it, err := fetchHNItem(itemClient, base, id)
			if err != nil {
				log.Printf("hackernews: fetch item %d: %v", id, err)
				return
			}
			// 只保留带外链的 story，Ask HN 等纯文本帖没有 URL
			if it.Title == "" || it.URL == "" || it.Type != "story" {
				return
			}

			mu.Lock()
			items = append(items, indexedItem{idx: idx, item: it})
			mu.Unlock()
		}(i, id)
	}
	wg.Wait()

	// 按榜单原始顺序输出
	results := make([]Article, 0, len(items))
	for rank := 0; rank < len(ids); rank++ {
		for _, ii := range items {
			if ii.idx != rank {
				continue
			}
			it := ii.item
			results = append(results, Article{
				Title:       it.Title,
				Summary:     fmt.Sprintf("Score: %d | Comments: %d", it.Score, it.Descendants),
				URL:         it.URL,
				Source:      "Hacker News",
				PublishedAt: time.Unix(it.Time, 0),
			})
		}
	}

	if len(results) == 0 {
		log.Println("hackernews: no items fetched")
	}

	return results, nil
}

func fetchHNItem(client *http.Client, base string, id int) (hnItem, error) {
	url := fmt.Sprintf("%s/item/%d.json", base, id)
	resp, err := client.Get(url)
	if err != nil {
		return hnItem{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return hnItem{}, fmt.Errorf("status %d", resp.StatusCode)
	}

	var it hnItem
	if err := json.NewDecoder(io.LimitReader(resp.Body, hnMaxResponseBytes)).Decode(&it); err != nil {
		return hnItem{}, err
	}
	return it, nil
}
