package sync

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	gosync "sync"
	"time"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/logger"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/model"
)

// Snapshot 本地缓存快照，单个 JSON 文档
type Snapshot struct {
	Teams        []model.Team `json:"teams"`
	News         []model.News `json:"news"`
	Announcement string       `json:"announcement"`
}

// Cache 本地快照缓存。写入防抖：连续变更只落最后一份，
// 防抖就是"清计时器重开"，不做别的批处理
type Cache struct {
	path     string
	debounce time.Duration

	mu      gosync.Mutex
	timer   *time.Timer
	pending []byte
}

// NewCache 创建本地缓存，debounce<=0 时取 300ms
func NewCache(path string, debounce time.Duration) *Cache {
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	return &Cache{path: path, debounce: debounce}
}

// Save 记录一份已编码的快照并重置防抖计时器
func (c *Cache) Save(encoded []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = encoded
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		if err := c.Flush(); err != nil {
			logger.Error("Failed to flush local cache: %v", err)
		}
	})
}

// Flush 立刻把挂起的快照写盘（临时文件+改名，避免写一半被读到）
func (c *Cache) Flush() error {
	c.mu.Lock()
	data := c.pending
	c.pending = nil
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	if data == nil {
		return nil
	}

	dir := filepath.Dir(c.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建缓存目录失败: %w", err)
		}
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("写缓存临时文件失败: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("替换缓存文件失败: %w", err)
	}
	return nil
}

// Load 读取上一次落盘的快照，文件不存在返回 nil 快照
func (c *Cache) Load() (*Snapshot, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("读缓存文件失败: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("解析缓存文件失败: %w", err)
	}
	return &snap, nil
}
