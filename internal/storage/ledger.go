package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrLedger 标记去重账本的 I/O 故障。没有可靠的去重记录就可能重复提交，
// 所以这类错误是致命的：调度循环收到后应停止提交。
var ErrLedger = errors.New("storage: ledger unavailable")

// Ledger 记录已确认提交过的词条地址。单写多读：
// 只有处理器会写，仪表盘可以并发读快照。
type Ledger interface {
	Contains(url string) bool
	Record(url string) error
	Count() int
	Recent(limit int) []string
}

// fileLedgerData 与旧版 processed_urls.json 的格式保持兼容
type fileLedgerData struct {
	URLs []string `json:"urls"`
}

// FileLedger 用单个 JSON 文件持久化账本。
// 启动时全量加载进内存，每次 Record 原子重写文件。
type FileLedger struct {
	path string

	mu    sync.RWMutex
	urls  map[string]struct{}
	order []string
}

func NewFileLedger(path string) (*FileLedger, error) {
	l := &FileLedger{
		path: path,
		urls: make(map[string]struct{}),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrLedger, path, err)
	}

	var parsed fileLedgerData
	if err := json.Unmarshal(data, &parsed); err != nil {
		// 文件损坏时拒绝启动，而不是悄悄当成空账本开始重复提交
		return nil, fmt.Errorf("%w: parse %s: %v", ErrLedger, path, err)
	}

	for _, u := range parsed.URLs {
		if _, ok := l.urls[u]; ok {
			continue
		}
		l.urls[u] = struct{}{}
		l.order = append(l.order, u)
	}
	return l, nil
}

func (l *FileLedger) Contains(url string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.urls[url]
	return ok
}

// Record 幂等：重复记录同一地址不是错误，也不会写盘
func (l *FileLedger) Record(url string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.urls[url]; ok {
		return nil
	}
	l.urls[url] = struct{}{}
	l.order = append(l.order, url)

	if err := l.flushLocked(); err != nil {
		// 回滚内存态，保持与磁盘一致
		delete(l.urls, url)
		l.order = l.order[:len(l.order)-1]
		return err
	}
	return nil
}

// flushLocked 先写临时文件再 rename，保证掉电后文件要么旧要么新
func (l *FileLedger) flushLocked() error {
	data, err := json.MarshalIndent(fileLedgerData{URLs: l.order}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrLedger, err)
	}

	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrLedger, tmp, err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return fmt.Errorf("%w: rename %s: %v", ErrLedger, filepath.Base(tmp), err)
	}
	return nil
}

func (l *FileLedger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.urls)
}

// Recent 返回最近记录的地址快照，新的在前
func (l *FileLedger) Recent(limit int) []string {
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
