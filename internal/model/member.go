package model

// Member 小组成员模型。成员任一时刻只归属一个小组，
// 跨组调动按"先移除再插入"处理，而不是原地更新
type Member struct {
	ID         string `json:"id" gorm:"primaryKey"`
	TeamID     string `json:"-" gorm:"column:team_id;index"`
	Name       string `json:"name" gorm:"not null"`
	IsDirector bool   `json:"isDirector" gorm:"column:is_director;default:false"`
	Avatar     string `json:"avatar"`
	Role       string `json:"role"`

	// 总负责人可选：负责项目链接（JSONB 列）
	Projects FlexLinks `json:"projects,omitempty" gorm:"type:jsonb"`
}

// TableName 自定义表名
func (Member) TableName() string {
	return "members"
}
