package task

import (
	"math"
	"time"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/config"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/logger"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// CostAuditJob 实耗审计任务。actualCost 字段和消费记录合计
// 是两条写入路径，老客户端可能只写其中一条，定期对账并修正
type CostAuditJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewCostAuditJob 创建实耗审计任务
func NewCostAuditJob(db *gorm.DB, cfg *config.Config) *CostAuditJob {
	return &CostAuditJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *CostAuditJob) GetName() string {
	return "team_cost_auditor"
}

// GetSchedule 获取调度配置
func (j *CostAuditJob) GetSchedule() gocron.JobDefinition {
	interval := j.config.Task.CostAuditInterval
	if interval <= 0 {
		interval = 3600
	}
	return gocron.DurationJob(time.Duration(interval) * time.Second)
}

// Execute 执行任务
func (j *CostAuditJob) Execute() {
	logger.Info("Starting team cost audit task")

	var teams []model.Team
	if err := j.db.Find(&teams).Error; err != nil {
		logger.Error("Failed to fetch teams for cost audit: %v", err)
		return
	}

	fixed := 0
	for i := range teams {
		total := teams[i].RecordTotal()
		// 有消费记录才以记录为准，空记录说明实耗是手填的
		if len(teams[i].ConsumptionRecords) == 0 {
			continue
		}
		if math.Abs(total-teams[i].ActualCost) < 0.005 {
			continue
		}
		logger.Warn("Team %s actual cost drift: field=%.2f records=%.2f",
			teams[i].ID, teams[i].ActualCost, total)
		err := j.db.Model(&model.Team{}).
			Where("id = ?", teams[i].ID).
			Update("actual_cost", total).Error
		if err != nil {
			logger.Error("Failed to fix actual cost for team %s: %v", teams[i].ID, err)
			continue
		}
		fixed++
	}

	logger.Info("Team cost audit completed, checked %d teams, fixed %d", len(teams), fixed)
}
