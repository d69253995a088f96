package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"newsdeck/internal/adapter"
	"newsdeck/internal/aggregate"
	"newsdeck/internal/cache"
	"newsdeck/internal/store"
)

// Aggregator 聚合管道的能力面，便于测试替换
type Aggregator interface {
	Aggregate(groups []string, limit int) (*aggregate.Result, error)
	Labels() []string
}

// Fallback 聚合整体失败时的兜底数据源
type Fallback interface {
	Fallback(limit int) ([]adapter.Article, error)
}

type Server struct {
	agg   Aggregator
	fb    Fallback
	cache *cache.Cache
	store *store.Store
}

func NewServer(agg Aggregator, fb Fallback, c *cache.Cache, st *store.Store) *Server {
	return &Server{agg: agg, fb: fb, cache: c, store: st}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/discover", s.discover)
		v1.GET("/posts", s.listPosts)
		v1.GET("/posts/:id", s.getPost)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) discover(c *gin.Context) {
	groups := parseGroups(c.Query("categories"))
	if len(groups) == 0 {
		groups = s.agg.Labels()
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(aggregate.DefaultLimit)))
	if err != nil || limit <= 0 {
		limit = aggregate.DefaultLimit
	}

	key := cache.Key(groups, limit)
	if res, ok := s.cache.GetResult(c.Request.Context(), key); ok {
		c.Header("Cache-Control", "public, max-age=3600")
		c.JSON(http.StatusOK, res)
		return
	}

	res, err := s.agg.Aggregate(groups, limit)
	if err != nil {
		log.Printf("discover: aggregation failed: %v, trying fallback", err)
		s.respondFallback(c, limit)
		return
	}

	s.cache.SetResult(c.Request.Context(), key, res)
	c.Header("Cache-Control", "public, max-age=3600")
	c.JSON(http.StatusOK, res)
}

// respondFallback 走单一头条源兜底；兜底也失败时返回结构化错误
func (s *Server) respondFallback(c *gin.Context, limit int) {
	articles, err := s.fb.Fallback(limit)
	if err != nil {
		log.Printf("discover: fallback failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "content aggregation failed",
			"details": err.Error(),
		})
		return
	}

	sources := make([]string, 0, len(articles))
	seen := make(map[string]struct{}, len(articles))
	for _, a := range articles {
		if _, ok := seen[a.Source]; ok {
			continue
		}
		seen[a.Source] = struct{}{}
		sources = append(sources, a.Source)
	}

	c.JSON(http.StatusOK, aggregate.Result{
		Articles: articles,
		Meta: aggregate.Meta{
			Total:       len(articles),
			Categories:  []string{aggregate.FallbackCategory},
			Sources:     sources,
			LastUpdated: time.Now(),
			Fallback:    true,
		},
	})
}

func (s *Server) listPosts(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	posts, err := s.store.ListPosts(c.Query("category"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to list posts",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (s *Server) getPost(c *gin.Context) {
	post, err := s.store.GetPost(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}
	c.JSON(http.StatusOK, post)
}

func parseGroups(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
