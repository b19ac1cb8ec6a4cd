package model

// Team 制作小组模型
type Team struct {
	ID      string  `json:"id" gorm:"primaryKey"`
	Title   string  `json:"title" gorm:"not null" binding:"required"`
	IconKey IconKey `json:"iconKey" gorm:"column:icon_key;default:'default'"`

	// 任务信息
	Task     string `json:"task"`
	Cycle    string `json:"cycle"`
	Workload string `json:"workload"`

	// 预算信息
	Budget     float64 `json:"budget" gorm:"default:0"`
	ActualCost float64 `json:"actualCost" gorm:"column:actual_cost;default:0"`

	// 状态
	Progress int        `json:"progress" gorm:"default:0"`
	Status   TeamStatus `json:"status" gorm:"default:'normal'"`
	Notes    string     `json:"notes" gorm:"type:text"`

	// 图片与链接（JSONB 列）
	CoverImage string      `json:"coverImage" gorm:"column:cover_image"`
	Images     FlexStrings `json:"images" gorm:"type:jsonb"`
	Links      FlexLinks   `json:"links" gorm:"type:jsonb"`

	// 作品图（最多保留 2 张，超出淘汰最旧的）
	UnfinishedWorks FlexStrings `json:"unfinishedWorks" gorm:"column:unfinished_works;type:jsonb"`
	FinishedWorks   FlexStrings `json:"finishedWorks" gorm:"column:finished_works;type:jsonb"`

	// 消费记录（JSONB 列）
	ConsumptionRecords FlexRecords `json:"consumptionRecords" gorm:"column:consumption_records;type:jsonb"`

	// 团队解锁密码。仅用于前端编辑入口的门禁，不是服务端鉴权
	Password string `json:"password,omitempty"`

	// 关联（子表，整体替换式更新）
	Todos   []Todo   `json:"todos" gorm:"foreignKey:TeamID"`
	Members []Member `json:"members" gorm:"foreignKey:TeamID"`
}

// TeamStatus 小组状态
type TeamStatus string

const (
	TeamStatusNormal TeamStatus = "normal" // 正常推进
	TeamStatusReview TeamStatus = "review" // 等待审核
	TeamStatusUrgent TeamStatus = "urgent" // 紧急
	TeamStatusDone   TeamStatus = "done"   // 已完成
)

// IconKey 小组图标键
type IconKey string

const (
	IconGhost      IconKey = "ghost"
	IconAI         IconKey = "ai"
	IconStoryboard IconKey = "storyboard"
	IconPost       IconKey = "post"
	IconVoice      IconKey = "voice"
	IconDefault    IconKey = "default"
)

// TableName 自定义表名
func (Team) TableName() string {
	return "teams"
}

// RecordTotal 消费记录金额合计
func (t *Team) RecordTotal() float64 {
	var total float64
	for _, r := range t.ConsumptionRecords {
		total += r.Amount
	}
	return total
}

// Normalize 兜底空集合并合入默认密码，远端数据入本地状态前统一走这里
func (t *Team) Normalize(defaultPassword string) {
	if t.Images == nil {
		t.Images = FlexStrings{}
	}
	if t.Links == nil {
		t.Links = FlexLinks{}
	}
	if t.UnfinishedWorks == nil {
		t.UnfinishedWorks = FlexStrings{}
	}
	if t.FinishedWorks == nil {
		t.FinishedWorks = FlexStrings{}
	}
	if t.ConsumptionRecords == nil {
		t.ConsumptionRecords = FlexRecords{}
	}
	if t.Todos == nil {
		t.Todos = []Todo{}
	}
	if t.Members == nil {
		t.Members = []Member{}
	}
	if t.Status == "" {
		t.Status = TeamStatusNormal
	}
	if t.IconKey == "" {
		t.IconKey = IconDefault
	}
	if t.Password == "" && defaultPassword != "" {
		t.Password = defaultPassword
	}
}
