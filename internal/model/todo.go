package model

// Todo 小组待办，随小组整体落库
type Todo struct {
	ID     string `json:"id" gorm:"primaryKey"`
	TeamID string `json:"-" gorm:"column:team_id;index"`
	Text   string `json:"text" gorm:"not null"`
	Done   bool   `json:"done" gorm:"default:false"`
}

// TableName 自定义表名
func (Todo) TableName() string {
	return "todos"
}

// EphemeralTodo 成员个人待办。只活在客户端内存里，
// 不落远端也不写本地缓存，和 Todo 是两套互不相通的持久化契约
type EphemeralTodo struct {
	ID   string
	Text string
	Done bool
}
