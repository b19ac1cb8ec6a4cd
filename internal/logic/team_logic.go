package logic

import (
	"errors"
	"fmt"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TeamLogic 小组业务逻辑
type TeamLogic struct {
	db *gorm.DB
}

// NewTeamLogic 创建小组业务逻辑
func NewTeamLogic(db *gorm.DB) *TeamLogic {
	return &TeamLogic{db: db}
}

// GetTeams 获取全部小组，带成员与待办
func (l *TeamLogic) GetTeams() ([]model.Team, error) {
	var teams []model.Team

	if err := l.db.Preload("Members").Preload("Todos").
		Order("id").Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("获取小组列表失败: %w", err)
	}

	// 兜底空集合，避免 JSON 序列化出 null
	for i := range teams {
		teams[i].Normalize("")
	}

	return teams, nil
}

// UpsertTeam 按 id 整行 upsert 小组，成员与待办删旧插新整体替换。
// 行级 upsert 是唯一的互斥边界，并发写以后到者为准
func (l *TeamLogic) UpsertTeam(team *model.Team) error {
	if team.ID == "" {
		return errors.New("缺少小组 id")
	}
	if team.Title == "" {
		return errors.New("缺少小组标题")
	}
	team.Normalize("")

	return l.db.Transaction(func(tx *gorm.DB) error {
		row := *team
		row.Members = nil
		row.Todos = nil

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Omit("Members", "Todos").Create(&row).Error; err != nil {
			return fmt.Errorf("更新小组失败: %w", err)
		}

		// 删除旧的成员和待办，重新插入
		if err := tx.Where("team_id = ?", team.ID).Delete(&model.Member{}).Error; err != nil {
			return fmt.Errorf("清理旧成员失败: %w", err)
		}
		if err := tx.Where("team_id = ?", team.ID).Delete(&model.Todo{}).Error; err != nil {
			return fmt.Errorf("清理旧待办失败: %w", err)
		}

		for i := range team.Members {
			team.Members[i].TeamID = team.ID
		}
		if len(team.Members) > 0 {
			if err := tx.Create(&team.Members).Error; err != nil {
				return fmt.Errorf("写入成员失败: %w", err)
			}
		}

		for i := range team.Todos {
			team.Todos[i].TeamID = team.ID
		}
		if len(team.Todos) > 0 {
			if err := tx.Create(&team.Todos).Error; err != nil {
				return fmt.Errorf("写入待办失败: %w", err)
			}
		}

		return nil
	})
}

// DeleteTeam 删除小组并级联删除其成员与待办
func (l *TeamLogic) DeleteTeam(id string) error {
	if id == "" {
		return errors.New("缺少小组 id")
	}

	return l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&model.Member{}).Error; err != nil {
			return fmt.Errorf("删除小组成员失败: %w", err)
		}
		if err := tx.Where("team_id = ?", id).Delete(&model.Todo{}).Error; err != nil {
			return fmt.Errorf("删除小组待办失败: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&model.Team{}).Error; err != nil {
			return fmt.Errorf("删除小组失败: %w", err)
		}
		return nil
	})
}

// ReferencedURLs 汇总库里引用到的所有对象 URL，供孤儿对象清理使用
func (l *TeamLogic) ReferencedURLs() (map[string]struct{}, error) {
	teams, err := l.GetTeams()
	if err != nil {
		return nil, err
	}

	refs := make(map[string]struct{})
	add := func(u string) {
		if u != "" {
			refs[u] = struct{}{}
		}
	}
	for _, t := range teams {
		add(t.CoverImage)
		for _, u := range t.Images {
			add(u)
		}
		for _, u := range t.UnfinishedWorks {
			add(u)
		}
		for _, u := range t.FinishedWorks {
			add(u)
		}
		for _, m := range t.Members {
			add(m.Avatar)
		}
	}
	return refs, nil
}
