package sync

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/model"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/report"
)

// exportVersion 导出文件格式版本
const exportVersion = 1

// ExportFile 导出/导入的数据文件格式
type ExportFile struct {
	Version      int          `json:"version"`
	ExportedAt   string       `json:"exportedAt"`
	Teams        []model.Team `json:"teams"`
	News         []model.News `json:"news"`
	Announcement string       `json:"announcement"`
}

// ExportSnapshot 导出当前全部状态为 JSON，用于手工备份或搬迁
func (s *Synchronizer) ExportSnapshot() ([]byte, error) {
	s.mu.Lock()
	file := ExportFile{
		Version:      exportVersion,
		ExportedAt:   time.Now().Format(time.RFC3339),
		Teams:        cloneTeams(s.teams),
		News:         append([]model.News(nil), s.news...),
		Announcement: s.announcement,
	}
	s.mu.Unlock()
	return json.MarshalIndent(file, "", "  ")
}

// ImportSnapshot 用一份导出文件整体覆盖当前状态。
// 导入是管理员动作，覆盖后逐个小组推远端
func (s *Synchronizer) ImportSnapshot(data []byte) SyncResult {
	var file ExportFile
	if err := json.Unmarshal(data, &file); err != nil {
		return rejected(fmt.Errorf("parse export file: %w", err))
	}
	if file.Version != exportVersion {
		return rejected(fmt.Errorf("unsupported export version %d", file.Version))
	}

	s.mu.Lock()
	if !s.unlockedAll {
		s.mu.Unlock()
		return rejected(ErrAdminLocked)
	}
	for i := range file.Teams {
		file.Teams[i].Normalize(defaultTeamPasswords[file.Teams[i].ID])
	}
	s.teams = file.Teams
	s.news = file.News
	s.announcement = file.Announcement
	teams := cloneTeams(s.teams)
	mode := s.mode
	s.saveSnapshotLocked()
	s.mu.Unlock()

	result := applied()
	for _, t := range teams {
		if r := s.persistTeam(mode, t); r.Status != StatusApplied {
			result = r
		}
	}
	return result
}

// Report 生成当天的制作日报文本
func (s *Synchronizer) Report(now time.Time) string {
	s.mu.Lock()
	teams := cloneTeams(s.teams)
	s.mu.Unlock()
	return report.Daily(teams, now)
}
