package logic

import (
	"errors"
	"fmt"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/model"
	"gorm.io/gorm"
)

// NewsLogic 快讯业务逻辑
type NewsLogic struct {
	db *gorm.DB
}

// NewNewsLogic 创建快讯业务逻辑
func NewNewsLogic(db *gorm.DB) *NewsLogic {
	return &NewsLogic{db: db}
}

// GetNews 获取全部快讯，按日期倒序
func (l *NewsLogic) GetNews() ([]model.News, error) {
	var news []model.News
	if err := l.db.Order("date DESC, id DESC").Find(&news).Error; err != nil {
		return nil, fmt.Errorf("获取快讯失败: %w", err)
	}
	return news, nil
}

// AddNews 添加快讯
func (l *NewsLogic) AddNews(item *model.News) error {
	if item.ID == "" {
		return errors.New("缺少快讯 id")
	}
	if item.Title == "" {
		return errors.New("缺少快讯标题")
	}
	if err := l.db.Create(item).Error; err != nil {
		return fmt.Errorf("添加快讯失败: %w", err)
	}
	return nil
}

// UpdateNews 更新快讯
func (l *NewsLogic) UpdateNews(item *model.News) error {
	if item.ID == "" {
		return errors.New("缺少快讯 id")
	}
	if err := l.db.Model(&model.News{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"date":     item.Date,
		"type":     item.Type,
		"priority": item.Priority,
		"title":    item.Title,
		"url":      item.URL,
	}).Error; err != nil {
		return fmt.Errorf("更新快讯失败: %w", err)
	}
	return nil
}

// DeleteNews 删除快讯
func (l *NewsLogic) DeleteNews(id string) error {
	if id == "" {
		return errors.New("缺少快讯 id")
	}
	if err := l.db.Where("id = ?", id).Delete(&model.News{}).Error; err != nil {
		return fmt.Errorf("删除快讯失败: %w", err)
	}
	return nil
}
