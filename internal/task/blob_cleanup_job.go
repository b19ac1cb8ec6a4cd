package task

import (
	"context"
	"sync"
	"time"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/config"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/logger"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/logic"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/storage"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// BlobCleanupJob 对象存储清理任务。客户端删图只是尽力而为，
// 失败的删除会留下孤儿对象，这里定期扫一遍对象存储，
// 把数据库里无人引用且超过保留期的对象删掉
type BlobCleanupJob struct {
	teamLogic *logic.TeamLogic
	store     *storage.Store
	config    *config.Config
}

// NewBlobCleanupJob 创建对象存储清理任务
func NewBlobCleanupJob(db *gorm.DB, store *storage.Store, cfg *config.Config) *BlobCleanupJob {
	return &BlobCleanupJob{
		teamLogic: logic.NewTeamLogic(db),
		store:     store,
		config:    cfg,
	}
}

// GetName 获取任务名称
func (j *BlobCleanupJob) GetName() string {
	return "blob_cleaner"
}

// GetSchedule 获取调度配置
func (j *BlobCleanupJob) GetSchedule() gocron.JobDefinition {
	interval := j.config.Task.BlobCleanupInterval
	if interval <= 0 {
		interval = 86400
	}
	return gocron.DurationJob(time.Duration(interval) * time.Second)
}

// Execute 执行任务
func (j *BlobCleanupJob) Execute() {
	logger.Info("Starting blob cleanup task")

	referenced, err := j.teamLogic.ReferencedURLs()
	if err != nil {
		logger.Error("Failed to collect referenced URLs: %v", err)
		return
	}

	ttl := time.Duration(j.config.Task.BlobTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	cutoff := time.Now().Add(-ttl)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := ants.NewPool(4)
	if err != nil {
		logger.Error("Failed to create cleanup worker pool: %v", err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	scanned, removed := 0, 0
	var mu sync.Mutex

	for obj := range j.store.ListObjects(ctx) {
		if obj.Err != nil {
			logger.Error("Failed to list objects: %v", obj.Err)
			break
		}
		scanned++
		if _, ok := referenced[j.store.URLFor(obj.Key)]; ok {
			continue
		}
		// 刚上传还没写进小组记录的对象不能动
		if obj.LastModified.After(cutoff) {
			continue
		}

		key := obj.Key
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			if err := j.store.RemoveObject(ctx, key); err != nil {
				logger.Error("Failed to remove orphan object %s: %v", key, err)
				return
			}
			mu.Lock()
			removed++
			mu.Unlock()
			logger.Info("Removed orphan object %s", key)
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit cleanup for %s: %v", key, err)
		}
	}
	wg.Wait()

	logger.Info("Blob cleanup completed, scanned %d objects, removed %d", scanned, removed)
}
