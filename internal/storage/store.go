package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ProcessedURL 是 Postgres 账本的一行，URL 唯一
type ProcessedURL struct {
	ID  uint   `gorm:"primaryKey" json:"id"`
	URL string `gorm:"size:1024;uniqueIndex" json:"url"`

	CreatedAt time.Time `json:"createdAt"`
}

// Submission 记录每一次提交的结果，供仪表盘查询历史
type Submission struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Trend    string `gorm:"size:512" json:"trend"`
	URL      string `gorm:"size:1024;index" json:"url"`
	Category string `gorm:"size:64;index" json:"category"`
	Outcome  string `gorm:"size:32;index" json:"outcome"`

	CreatedAt time.Time `json:"createdAt"`
}

type Store struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewStore(dsn, redisAddr string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&ProcessedURL{}, &Submission{}); err != nil {
		return nil, err
	}

	s := &Store{DB: db}

	// Redis 仅用于仪表盘缓存，连不上只降级不报错
	if redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("warn: redis ping failed: %v", err)
		}
		s.Redis = rdb
	}

	return s, nil
}

// SaveSubmission 落一行提交历史
func (s *Store) SaveSubmission(trend, url, category, outcome string) error {
	sub := &Submission{
		Trend:    trend,
		URL:      url,
		Category: category,
		Outcome:  outcome,
	}
	return s.DB.Create(sub).Error
}

// ListSubmissions 返回最近的提交历史，走短 TTL 的 Redis 缓存
func (s *Store) ListSubmissions(limit int) ([]Submission, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	ctx := context.Background()
	cacheKey := fmt.Sprintf("roller:submissions:%d", limit)

	if s.Redis != nil {
		if bs, err := s.Redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached []Submission
			if err := json.Unmarshal(bs, &cached); err == nil {
				return cached, nil
			}
		}
	}

	var list []Submission
	if err := s.DB.Order("created_at DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}

	const cacheTTL = time.Minute
	if s.Redis != nil && len(list) > 0 {
		if bs, err := json.Marshal(list); err == nil {
			_ = s.Redis.Set(ctx, cacheKey, bs, cacheTTL).Err()
		}
	}

	return list, nil
}
