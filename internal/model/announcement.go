package model

// AnnouncementID 公告是单行表，主键恒为 1
const AnnouncementID = 1

// Announcement 全局公告
type Announcement struct {
	ID      int    `json:"id" gorm:"primaryKey"`
	Content string `json:"content" gorm:"type:text"`
}

// TableName 自定义表名
func (Announcement) TableName() string {
	return "announcement"
}
