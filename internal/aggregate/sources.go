package aggregate

import (
	"newsdeck/internal/adapter"
	"newsdeck/internal/config"
)

// GroupLabels 所有栏目的规范顺序，也是默认请求覆盖的范围
var GroupLabels = []string{"ai_news", "tech_news", "indian_news", "world_news", "entertainment"}

// DefaultGroups 返回静态的栏目到数据源映射，运行期不可变
func DefaultGroups(cfg *config.Config) map[string][]adapter.Fetcher {
	rss := func(feedURL string) adapter.Fetcher {
		return &adapter.RSSFetcher{FeedURL: feedURL, APIKey: cfg.Rss2JSONKey}
	}
	reddit := func(sub string) adapter.Fetcher {
		return &adapter.RedditFetcher{Subreddit: sub}
	}

	return map[string][]adapter.Fetcher{
		"ai_news": {
			rss("https://feeds.feedburner.com/oreilly/radar"),
			rss("https://blog.google/technology/ai/rss/"),
			rss("https://openai.com/blog/rss.xml"),
			reddit("artificial"),
			reddit("MachineLearning"),
			reddit("OpenAI"),
			reddit("ChatGPT"),
		},
		"tech_news": {
			&adapter.GNewsFetcher{Category: "technology", Token: cfg.GNewsAPIKey},
			&adapter.HackerNewsFetcher{},
			rss("https://feeds.feedburner.com/TechCrunch"),
			rss("https://www.theverge.com/rss/index.xml"),
			rss("https://feeds.arstechnica.com/arstechnica/index"),
		},
		"indian_news": {
			&adapter.GNewsFetcher{Category: "general", Country: "in", Token: cfg.GNewsAPIKey},
			rss("https://timesofindia.indiatimes.com/rssfeedstopstories.cms"),
			rss("https://www.thehindu.com/feeder/default.rss"),
			rss("https://indianexpress.com/print/front-page/feed/"),
			rss("https://economictimes.indiatimes.com/rssfeedsdefault.cms"),
		},
		"world_news": {
			&adapter.GNewsFetcher{Category: "world", Token: cfg.GNewsAPIKey},
			rss("https://feeds.reuters.com/reuters/topNews"),
			rss("https://feeds.bbci.co.uk/news/world/rss.xml"),
			rss("https://rss.cnn.com/rss/edition.rss"),
			rss("https://feeds.npr.org/1001/rss.xml"),
		},
		"entertainment": {
			&adapter.TMDBFetcher{APIKey: cfg.TMDBAPIKey},
			rss("https://variety.com/feed/"),
			rss("https://www.rollingstone.com/feed/"),
		},
	}
}
