package logic

import (
	"errors"
	"fmt"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnnouncementLogic 公告业务逻辑，公告是单行表
type AnnouncementLogic struct {
	db *gorm.DB
}

// NewAnnouncementLogic 创建公告业务逻辑
func NewAnnouncementLogic(db *gorm.DB) *AnnouncementLogic {
	return &AnnouncementLogic{db: db}
}

// Get 读取公告内容，无记录时返回空串
func (l *AnnouncementLogic) Get() (string, error) {
	var row model.Announcement
	if err := l.db.First(&row, model.AnnouncementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("获取公告失败: %w", err)
	}
	return row.Content, nil
}

// Set 写入公告内容，不存在则插入
func (l *AnnouncementLogic) Set(content string) error {
	row := model.Announcement{ID: model.AnnouncementID, Content: content}
	if err := l.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"content"}),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("更新公告失败: %w", err)
	}
	return nil
}
