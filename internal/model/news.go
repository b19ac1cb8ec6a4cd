package model

// News 快讯条目
type News struct {
	ID       string       `json:"id" gorm:"primaryKey"`
	Date     string       `json:"date"`
	Type     NewsType     `json:"type"`
	Priority NewsPriority `json:"priority" gorm:"default:'normal'"`
	Title    string       `json:"title" gorm:"not null"`
	URL      string       `json:"url"`
}

// NewsType 快讯分类
type NewsType string

const (
	NewsTypeRanking  NewsType = "ranking"  // 榜单
	NewsTypeTool     NewsType = "tool"     // 工具
	NewsTypeIndustry NewsType = "industry" // 行业
	NewsTypeInternal NewsType = "internal" // 内部
)

// NewsPriority 快讯优先级
type NewsPriority string

const (
	NewsPriorityNormal NewsPriority = "normal"
	NewsPriorityHigh   NewsPriority = "high"
)

// TableName 自定义表名
func (News) TableName() string {
	return "news"
}
