package sync

import (
	"context"
	"strings"
	"time"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/logger"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/model"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/reorder"
)

// ----- 小组 -----

// CreateTeam 新建小组。id 本地生成，不等远端分配，
// 建完立刻就能往里挂成员和待办
func (s *Synchronizer) CreateTeam(title string) (model.Team, SyncResult) {
	if strings.TrimSpace(title) == "" {
		return model.Team{}, rejected(ErrEmptyName)
	}

	s.mu.Lock()
	if !s.unlockedAll {
		s.mu.Unlock()
		return model.Team{}, rejected(ErrAdminLocked)
	}
	team := model.Team{
		ID:      NewID("g"),
		Title:   title,
		IconKey: model.IconDefault,
		Status:  model.TeamStatusNormal,
	}
	team.Normalize("")
	s.teams = append(s.teams, team)
	s.unlocked[team.ID] = true
	payload := cloneTeam(team)
	mode := s.mode
	s.saveSnapshotLocked()
	s.mu.Unlock()

	return payload, s.persistTeam(mode, payload)
}

// UpdateTeam 整体替换一个小组（编辑弹窗保存路径）
func (s *Synchronizer) UpdateTeam(team model.Team) SyncResult {
	if strings.TrimSpace(team.Title) == "" {
		return rejected(ErrEmptyName)
	}
	return s.mutateTeam(team.ID, func(t *model.Team) error {
		team.Normalize(defaultTeamPasswords[team.ID])
		*t = cloneTeam(team)
		return nil
	})
}

// DeleteTeam 删除小组：先移出本地集合，再发远端删除，无两阶段提交
func (s *Synchronizer) DeleteTeam(id string) SyncResult {
	s.mu.Lock()
	if !s.unlockedAll {
		s.mu.Unlock()
		return rejected(ErrAdminLocked)
	}
	idx := s.teamIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return rejected(ErrTeamNotFound)
	}
	s.teams = append(s.teams[:idx], s.teams[idx+1:]...)
	mode := s.mode
	s.saveSnapshotLocked()
	s.mu.Unlock()

	if mode == ModeLocalFallback {
		return degraded()
	}
	if err := s.api.DeleteTeam(context.Background(), id); err != nil {
		logger.Error("Failed to delete team %s remotely: %v", id, err)
		return remoteFailed(err)
	}
	return applied()
}

// MoveTeam 调整小组展示顺序。顺序只是本地意义，远端按 id 排序，
// 所以不发远端，只落本地缓存
func (s *Synchronizer) MoveTeam(from, to int) SyncResult {
	s.mu.Lock()
	if !s.unlockedAll {
		s.mu.Unlock()
		return rejected(ErrAdminLocked)
	}
	s.teams = reorder.Move(s.teams, from, to)
	s.saveSnapshotLocked()
	s.mu.Unlock()
	return applied()
}

// SetProgress 设置小组进度，夹到 0..100
func (s *Synchronizer) SetProgress(teamID string, progress int) SyncResult {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return s.mutateTeam(teamID, func(t *model.Team) error {
		t.Progress = progress
		return nil
	})
}

// ----- 成员 -----

// SaveMember 新建或保存成员。成员只归属一个小组：
// 先从所有小组移除旧记录，再插入目标小组，受影响的小组逐个持久化
func (s *Synchronizer) SaveMember(teamID string, m model.Member) (model.Member, SyncResult) {
	if strings.TrimSpace(m.Name) == "" {
		return model.Member{}, rejected(ErrEmptyName)
	}

	s.mu.Lock()
	target := s.teamIndexLocked(teamID)
	if target < 0 {
		s.mu.Unlock()
		return model.Member{}, rejected(ErrTeamNotFound)
	}
	if !s.canEditLocked(teamID) {
		s.mu.Unlock()
		return model.Member{}, rejected(ErrTeamLocked)
	}

	if m.ID == "" {
		m.ID = NewID("m")
	}
	if m.Role == "" {
		if m.IsDirector {
			m.Role = "总负责人"
		} else {
			m.Role = "执行专员"
		}
	}

	var changed []model.Team
	for i := range s.teams {
		if i == target {
			continue
		}
		before := len(s.teams[i].Members)
		s.teams[i].Members = removeMember(s.teams[i].Members, m.ID)
		if len(s.teams[i].Members) != before {
			changed = append(changed, cloneTeam(s.teams[i]))
		}
	}
	s.teams[target].Members = removeMember(s.teams[target].Members, m.ID)
	m.TeamID = teamID
	s.teams[target].Members = append(s.teams[target].Members, m)
	changed = append(changed, cloneTeam(s.teams[target]))

	mode := s.mode
	s.saveSnapshotLocked()
	s.mu.Unlock()

	result := applied()
	for _, t := range changed {
		if r := s.persistTeam(mode, t); r.Status != StatusApplied {
			result = r
		}
	}
	return m, result
}

// DeleteMember 删除成员并持久化其所在小组
func (s *Synchronizer) DeleteMember(memberID string) SyncResult {
	s.mu.Lock()
	owner := -1
	for i := range s.teams {
		for _, m := range s.teams[i].Members {
			if m.ID == memberID {
				owner = i
				break
			}
		}
		if owner >= 0 {
			break
		}
	}
	if owner < 0 {
		s.mu.Unlock()
		return rejected(ErrTeamNotFound)
	}
	teamID := s.teams[owner].ID
	if !s.canEditLocked(teamID) {
		s.mu.Unlock()
		return rejected(ErrTeamLocked)
	}
	s.teams[owner].Members = removeMember(s.teams[owner].Members, memberID)
	delete(s.memberTodos, memberID)
	payload := cloneTeam(s.teams[owner])
	mode := s.mode
	s.saveSnapshotLocked()
	s.mu.Unlock()

	return s.persistTeam(mode, payload)
}

func removeMember(members []model.Member, id string) []model.Member {
	out := members[:0]
	for _, m := range members {
		if m.ID != id {
			out = append(out, m)
		}
	}
	return out
}

// ----- 小组待办 -----

// AddTodo 新增小组待办
func (s *Synchronizer) AddTodo(teamID, text string) (model.Todo, SyncResult) {
	if strings.TrimSpace(text) == "" {
		return model.Todo{}, rejected(ErrEmptyName)
	}
	todo := model.Todo{ID: NewID("t"), TeamID: teamID, Text: text}
	result := s.mutateTeam(teamID, func(t *model.Team) error {
		t.Todos = append(t.Todos, todo)
		return nil
	})
	return todo, result
}

// ToggleTodo 切换小组待办完成状态
func (s *Synchronizer) ToggleTodo(teamID, todoID string) SyncResult {
	return s.mutateTeam(teamID, func(t *model.Team) error {
		for i := range t.Todos {
			if t.Todos[i].ID == todoID {
				t.Todos[i].Done = !t.Todos[i].Done
			}
		}
		return nil
	})
}

// DeleteTodo 删除小组待办
func (s *Synchronizer) DeleteTodo(teamID, todoID string) SyncResult {
	return s.mutateTeam(teamID, func(t *model.Team) error {
		out := t.Todos[:0]
		for _, todo := range t.Todos {
			if todo.ID != todoID {
				out = append(out, todo)
			}
		}
		t.Todos = out
		return nil
	})
}

// ----- 成员个人待办（仅内存，永不持久化）-----

// MemberTodos 某成员的个人待办
func (s *Synchronizer) MemberTodos(memberID string) []model.EphemeralTodo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.EphemeralTodo, len(s.memberTodos[memberID]))
	copy(out, s.memberTodos[memberID])
	return out
}

// AddMemberTodo 新增成员个人待办。注意这条不走变更协议：
// 不写缓存也不发远端，会话结束即消失
func (s *Synchronizer) AddMemberTodo(memberID, text string) (model.EphemeralTodo, SyncResult) {
	if strings.TrimSpace(text) == "" {
		return model.EphemeralTodo{}, rejected(ErrEmptyName)
	}
	todo := model.EphemeralTodo{ID: NewID("mt"), Text: text}
	s.mu.Lock()
	s.memberTodos[memberID] = append(s.memberTodos[memberID], todo)
	s.mu.Unlock()
	return todo, applied()
}

// ToggleMemberTodo 切换成员个人待办
func (s *Synchronizer) ToggleMemberTodo(memberID, todoID string) SyncResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.memberTodos[memberID] {
		if s.memberTodos[memberID][i].ID == todoID {
			s.memberTodos[memberID][i].Done = !s.memberTodos[memberID][i].Done
		}
	}
	return applied()
}

// DeleteMemberTodo 删除成员个人待办
func (s *Synchronizer) DeleteMemberTodo(memberID, todoID string) SyncResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.memberTodos[memberID]
	out := list[:0]
	for _, todo := range list {
		if todo.ID != todoID {
			out = append(out, todo)
		}
	}
	s.memberTodos[memberID] = out
	return applied()
}

// ----- 快讯 -----

// AddNews 新增快讯
func (s *Synchronizer) AddNews(item model.News) (model.News, SyncResult) {
	if strings.TrimSpace(item.Title) == "" {
		return model.News{}, rejected(ErrEmptyName)
	}

	s.mu.Lock()
	if !s.unlockedAll {
		s.mu.Unlock()
		return model.News{}, rejected(ErrAdminLocked)
	}
	if item.ID == "" {
		item.ID = NewID("n")
	}
	if item.Priority == "" {
		item.Priority = model.NewsPriorityNormal
	}
	// 新快讯插到最前面
	s.news = append([]model.News{item}, s.news...)
	mode := s.mode
	s.saveSnapshotLocked()
	s.mu.Unlock()

	if mode == ModeLocalFallback {
		return item, degraded()
	}
	if err := s.api.AddNews(context.Background(), item); err != nil {
		logger.Error("Failed to persist news %s: %v", item.ID, err)
		return item, remoteFailed(err)
	}
	return item, applied()
}

// UpdateNews 更新快讯
func (s *Synchronizer) UpdateNews(item model.News) SyncResult {
	s.mu.Lock()
	if !s.unlockedAll {
		s.mu.Unlock()
		return rejected(ErrAdminLocked)
	}
	found := false
	for i := range s.news {
		if s.news[i].ID == item.ID {
			s.news[i] = item
			found = true
		}
	}
	if !found {
		s.mu.Unlock()
		return rejected(ErrNewsNotFound)
	}
	mode := s.mode
	s.saveSnapshotLocked()
	s.mu.Unlock()

	if mode == ModeLocalFallback {
		return degraded()
	}
	if err := s.api.UpdateNews(context.Background(), item); err != nil {
		logger.Error("Failed to update news %s: %v", item.ID, err)
		return remoteFailed(err)
	}
	return applied()
}

// DeleteNews 删除快讯
func (s *Synchronizer) DeleteNews(id string) SyncResult {
	s.mu.Lock()
	if !s.unlockedAll {
		s.mu.Unlock()
		return rejected(ErrAdminLocked)
	}
	out := s.news[:0]
	for _, n := range s.news {
		if n.ID != id {
			out = append(out, n)
		}
	}
	s.news = out
	mode := s.mode
	s.saveSnapshotLocked()
	s.mu.Unlock()

	if mode == ModeLocalFallback {
		return degraded()
	}
	if err := s.api.DeleteNews(context.Background(), id); err != nil {
		logger.Error("Failed to delete news %s: %v", id, err)
		return remoteFailed(err)
	}
	return applied()
}

// ----- 公告 -----

// SetAnnouncement 更新公告。本地立即生效，远端写入防抖合并，
// 所以这里只报告本地结果，远端失败走日志
func (s *Synchronizer) SetAnnouncement(content string) SyncResult {
	s.mu.Lock()
	if !s.unlockedAll {
		s.mu.Unlock()
		return rejected(ErrAdminLocked)
	}
	s.announcement = content
	mode := s.mode
	s.saveSnapshotLocked()

	if mode == ModeLocalFallback {
		s.mu.Unlock()
		return degraded()
	}

	if s.annTimer != nil {
		s.annTimer.Stop()
	}
	s.annTimer = time.AfterFunc(s.annDebounce, func() {
		s.mu.Lock()
		latest := s.announcement
		s.mu.Unlock()
		if err := s.api.PutAnnouncement(context.Background(), latest); err != nil {
			logger.Error("Failed to persist announcement: %v", err)
		}
	})
	s.mu.Unlock()
	return applied()
}
