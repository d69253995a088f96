package store

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrNotFound 按 slug 查询不到文章
var ErrNotFound = errors.New("post not found")

// Post 静态编辑文章，slug 作为稳定主键
type Post struct {
	ID          string         `gorm:"primaryKey;size:128" json:"id"`
	Title       string         `gorm:"size:512" json:"title"`
	Category    string         `gorm:"size:64;index" json:"category"`
	Subcategory string         `gorm:"size:64" json:"subcategory"`
	Image       string         `gorm:"size:512" json:"image"`
	Date        string         `gorm:"size:10;index" json:"date"` // YYYY-MM-DD
	Excerpt     string         `gorm:"size:1024" json:"excerpt"`
	Content     string         `gorm:"type:text" json:"content"`
	Tags        datatypes.JSON `gorm:"type:jsonb" json:"tags"`
}

type Store struct {
	DB *gorm.DB
}

func NewStore(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Post{}); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

// SeedPosts 确保种子文章存在，已存在的 slug 不覆盖
func (s *Store) SeedPosts(posts []Post) error {
	for i := range posts {
		if err := s.DB.Where("id = ?", posts[i].ID).FirstOrCreate(&posts[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// ListPosts 按日期倒序返回文章，category 为空时不过滤
func (s *Store) ListPosts(category string, limit int) ([]Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var list []Post
	db := s.DB.Model(&Post{})
	if category != "" {
		db = db.Where("category = ?", category)
	}
	if err := db.Order("date DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) GetPost(id string) (*Post, error) {
	var p Post
	if err := s.DB.Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
