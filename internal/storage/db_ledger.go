package storage

import (
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// DBLedger 用 Postgres processed_urls 表做账本，启动时全量加载进内存。
// Contains 只查内存集合，Record 先落库再更新内存。
type DBLedger struct {
	db *gorm.DB

	mu    sync.RWMutex
	urls  map[string]struct{}
	order []string
}

func NewDBLedger(store *Store) (*DBLedger, error) {
	l := &DBLedger{
		db:   store.DB,
		urls: make(map[string]struct{}),
	}

	var rows []ProcessedURL
	if err := l.db.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: load processed urls: %v", ErrLedger, err)
	}
	for _, r := range rows {
		if _, ok := l.urls[r.URL]; ok {
			continue
		}
		l.urls[r.URL] = struct{}{}
		l.order = append(l.order, r.URL)
	}
	return l, nil
}

func (l *DBLedger) Contains(url string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.urls[url]
	return ok
}

func (l *DBLedger) Record(url string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.urls[url]; ok {
		return nil
	}

	err := l.db.Create(&ProcessedURL{URL: url}).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: record %s: %v", ErrLedger, url, err)
	}

	l.urls[url] = struct{}{}
	l.order = append(l.order, url)
	return nil
}

func (l *DBLedger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.urls)
}

func (l *DBLedger) Recent(limit int) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if limit <= 0 || limit > len(l.order) {
		limit = len(l.order)
	}
	out := make([]string, 0, limit)
	for i := len(l.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, l.order[i])
	}
	return out
}
