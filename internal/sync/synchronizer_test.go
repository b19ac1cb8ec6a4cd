package sync

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/model"
)

const testAdminSecret = "8888"

func newTestSynchronizer(t *testing.T, g *fakeGateway) *Synchronizer {
	t.Helper()
	return New(Options{
		APIBase:     g.base(),
		CacheFile:   filepath.Join(t.TempDir(), "snapshot.json"),
		AdminSecret: testAdminSecret,
		Debounce:    time.Millisecond,
		AnnDebounce: 20 * time.Millisecond,
	})
}

func ghostTeam() model.Team {
	team := model.Team{
		ID: "ghost", Title: "诡异组", IconKey: model.IconGhost,
		Budget: 5000, ActualCost: 3200, Progress: 35,
		ConsumptionRecords: model.FlexRecords{
			{ID: "c0", Platform: model.PlatformJimeng, Package: "jimeng-3200", Amount: 3200},
		},
		Members: []model.Member{
			{ID: "m1", TeamID: "ghost", Name: "刘家发", IsDirector: true, Role: "总负责人"},
		},
	}
	team.Normalize("")
	return team
}

func TestLoadRemote(t *testing.T) {
	g := newFakeGateway(t)
	g.putTeam(ghostTeam())
	g.announcement = "测试公告"

	s := newTestSynchronizer(t, g)
	s.Load(context.Background())

	assert.Equal(t, ModeRemote, s.Mode())
	assert.False(t, s.Loading())
	assert.Equal(t, "测试公告", s.Announcement())

	team, ok := s.Team("ghost")
	require.True(t, ok)
	assert.Equal(t, "诡异组", team.Title)
	// 远端记录没带密码时合入默认密码
	assert.Equal(t, "1111", team.Password)
}

func TestLoadFallsBackWhenRemoteUnavailable(t *testing.T) {
	g := newFakeGateway(t)
	g.failAll = true

	s := newTestSynchronizer(t, g)
	s.Load(context.Background())

	assert.Equal(t, ModeLocalFallback, s.Mode())
	// 没有缓存时落内置种子数据
	assert.NotEmpty(t, s.Teams())
	assert.NotEmpty(t, s.News())
	assert.NotEmpty(t, s.Announcement())
}

func TestFallbackModeMakesNoOutgoingRequests(t *testing.T) {
	g := newFakeGateway(t)
	g.failAll = true

	s := newTestSynchronizer(t, g)
	s.Load(context.Background())
	require.Equal(t, ModeLocalFallback, s.Mode())

	before := g.totalRequests()
	require.True(t, s.UnlockTeam("ghost", "1111"))
	result := s.SetProgress("ghost", 50)
	assert.Equal(t, StatusDegraded, result.Status)

	_, result = s.AddConsumption("ghost", model.ConsumptionRecord{Amount: 100})
	assert.Equal(t, StatusDegraded, result.Status)

	// 降级后整个会话不再碰远端
	assert.Equal(t, before, g.totalRequests())
}

func TestFallbackRestoresFromCache(t *testing.T) {
	g := newFakeGateway(t)
	g.putTeam(ghostTeam())
	cacheFile := filepath.Join(t.TempDir(), "snapshot.json")

	s1 := New(Options{
		APIBase: g.base(), CacheFile: cacheFile,
		AdminSecret: testAdminSecret, Debounce: time.Millisecond,
	})
	s1.Load(context.Background())
	require.True(t, s1.UnlockTeam("ghost", "1111"))
	require.Equal(t, StatusApplied, s1.SetProgress("ghost", 77).Status)
	require.NoError(t, s1.Flush())

	// 第二个会话远端不可用，要能从缓存还原上次状态
	g.mu.Lock()
	g.failAll = true
	g.mu.Unlock()

	s2 := New(Options{
		APIBase: g.base(), CacheFile: cacheFile,
		AdminSecret: testAdminSecret, Debounce: time.Millisecond,
	})
	s2.Load(context.Background())
	require.Equal(t, ModeLocalFallback, s2.Mode())

	team, ok := s2.Team("ghost")
	require.True(t, ok)
	assert.Equal(t, 77, team.Progress)
}

func TestMutationIsOptimisticAndDoesNotRollBack(t *testing.T) {
	g := newFakeGateway(t)
	g.putTeam(ghostTeam())

	s := newTestSynchronizer(t, g)
	s.Load(context.Background())
	require.True(t, s.UnlockTeam("ghost", "1111"))

	g.mu.Lock()
	g.failPutTeam = true
	g.mu.Unlock()

	result := s.SetProgress("ghost", 90)
	assert.Equal(t, StatusRemoteFailed, result.Status)
	assert.Error(t, result.Err)

	// 远端失败但本地已生效，不回滚
	team, _ := s.Team("ghost")
	assert.Equal(t, 90, team.Progress)
	assert.Equal(t, ModeRemote, s.Mode())
}

func TestLockedTeamRejectsEdits(t *testing.T) {
	g := newFakeGateway(t)
	g.putTeam(ghostTeam())

	s := newTestSynchronizer(t, g)
	s.Load(context.Background())

	result := s.SetProgress("ghost", 90)
	assert.Equal(t, StatusRejected, result.Status)
	assert.ErrorIs(t, result.Err, ErrTeamLocked)

	// 被拒绝的变更不得留下任何痕迹
	team, _ := s.Team("ghost")
	assert.Equal(t, 35, team.Progress)

	assert.False(t, s.UnlockTeam("ghost", "0000"))
	assert.True(t, s.UnlockTeam("ghost", "1111"))
	assert.Equal(t, StatusApplied, s.SetProgress("ghost", 90).Status)
}

func TestUnlockAdmin(t *testing.T) {
	g := newFakeGateway(t)
	g.putTeam(ghostTeam())

	s := newTestSynchronizer(t, g)
	s.Load(context.Background())

	assert.False(t, s.UnlockAdmin("1234"))
	assert.True(t, s.UnlockAdmin(testAdminSecret))
	assert.Equal(t, StatusApplied, s.SetProgress("ghost", 40).Status)

	s.LockAll()
	assert.Equal(t, StatusRejected, s.SetProgress("ghost", 50).Status)
}

func TestAddConsumptionRecomputesActualCost(t *testing.T) {
	g := newFakeGateway(t)
	g.putTeam(ghostTeam())

	s := newTestSynchronizer(t, g)
	s.Load(context.Background())
	require.True(t, s.UnlockTeam("ghost", "1111"))

	rec, result := s.AddConsumption("ghost", model.ConsumptionRecord{
		Platform: model.PlatformJimeng, Package: "jimeng-299", Amount: 299,
	})
	require.Equal(t, StatusApplied, result.Status)
	assert.NotEmpty(t, rec.ID)

	// 实耗永远等于消费记录合计
	team, _ := s.Team("ghost")
	assert.InDelta(t, 3499, team.ActualCost, 0.001)
	require.Len(t, team.ConsumptionRecords, 2)

	result = s.DeleteConsumption("ghost", rec.ID)
	require.Equal(t, StatusApplied, result.Status)
	team, _ = s.Team("ghost")
	assert.InDelta(t, 3200, team.ActualCost, 0.001)
}

func TestSaveMemberMovesAcrossTeams(t *testing.T) {
	g := newFakeGateway(t)
	g.putTeam(ghostTeam())
	other := model.Team{ID: "ai", Title: "AI生成組"}
	other.Normalize("")
	g.putTeam(other)

	s := newTestSynchronizer(t, g)
	s.Load(context.Background())
	require.True(t, s.UnlockAdmin(testAdminSecret))

	// 把 m1 从 ghost 调到 ai
	m, result := s.SaveMember("ai", model.Member{ID: "m1", Name: "刘家发"})
	require.Equal(t, StatusApplied, result.Status)
	assert.Equal(t, "ai", m.TeamID)

	ghost, _ := s.Team("ghost")
	assert.Empty(t, ghost.Members)
	ai, _ := s.Team("ai")
	require.Len(t, ai.Members, 1)
	assert.Equal(t, "m1", ai.Members[0].ID)

	// 两个受影响的小组都推了远端
	assert.GreaterOrEqual(t, g.count("PUT /teams"), 2)
}

func TestSaveMemberRejectsEmptyName(t *testing.T) {
	g := newFakeGateway(t)
	g.putTeam(ghostTeam())

	s := newTestSynchronizer(t, g)
	s.Load(context.Background())
	require.True(t, s.UnlockAdmin(testAdminSecret))

	_, result := s.SaveMember("ghost", model.Member{Name: "   "})
	assert.Equal(t, StatusRejected, result.Status)
	assert.ErrorIs(t, result.Err, ErrEmptyName)
}

func TestTodoLifecycle(t *testing.T) {
	g := newFakeGateway(t)
	g.putTeam(ghostTeam())

	s := newTestSynchronizer(t, g)
	s.Load(context.Background())
	require.True(t, s.UnlockTeam("ghost", "1111"))

	todo, result := s.AddTodo("ghost", "修复光影Bug")
	require.Equal(t, StatusApplied, result.Status)

	require.Equal(t, StatusApplied, s.ToggleTodo("ghost", todo.ID).Status)
	team, _ := s.Team("ghost")
	require.Len(t, team.Todos, 1)
	assert.True(t, team.Todos[0].Done)

	require.Equal(t, StatusApplied, s.DeleteTodo("ghost", todo.ID).Status)
	team, _ = s.Team("ghost")
	assert.Empty(t, team.Todos)
}

func TestMemberTodosAreEphemeral(t *testing.T) {
	g := newFakeGateway(t)
	g.putTeam(ghostTeam())

	s := newTestSynchronizer(t, g)
	s.Load(context.Background())

	before := g.totalRequests()
	todo, result := s.AddMemberTodo("m1", "看分镜稿")
	require.Equal(t, StatusApplied, result.Status)
	require.Equal(t, StatusApplied, s.ToggleMemberTodo("m1", todo.ID).Status)

	todos := s.MemberTodos("m1")
	require.Len(t, todos, 1)
	assert.True(t, todos[0].Done)

	// 个人待办不产生任何远端流量
	assert.Equal(t, before, g.totalRequests())

	require.Equal(t, StatusApplied, s.DeleteMemberTodo("m1", todo.ID).Status)
	assert.Empty(t, s.MemberTodos("m1"))
}

func TestCreateAndDeleteTeam(t *testing.T) {
	g := newFakeGateway(t)
	g.putTeam(ghostTeam())

	s := newTestSynchronizer(t, g)
	s.Load(context.Background())

	_, result := s.CreateTeam("配音组")
	assert.Equal(t, StatusRejected, result.Status)

	require.True(t, s.UnlockAdmin(testAdminSecret))
	team, result := s.CreateTeam("配音组")
	require.Equal(t, StatusApplied, result.Status)
	assert.NotEmpty(t, team.ID)
	assert.Equal(t, model.TeamStatusNormal, team.Status)

	// 新建后立刻可编辑
	require.Equal(t, StatusApplied, s.SetProgress(team.ID, 10).Status)

	require.Equal(t, StatusApplied, s.DeleteTeam(team.ID).Status)
	_, ok := s.Team(team.ID)
	assert.False(t, ok)
}

func TestMoveTeamIsLocalOnly(t *testing.T) {
	g := newFakeGateway(t)
	g.putTeam(ghostTeam())
	other := model.Team{ID: "ai", Title: "AI生成組"}
	other.Normalize("")
	g.putTeam(other)

	s := newTestSynchronizer(t, g)
	s.Load(context.Background())
	require.True(t, s.UnlockAdmin(testAdminSecret))

	before := g.count("PUT /teams")
	require.Equal(t, StatusApplied, s.MoveTeam(0, 1).Status)

	teams := s.Teams()
	require.Len(t, teams, 2)
	// 排序只有本地意义，不推远端
	assert.Equal(t, before, g.count("PUT /teams"))
}

func TestSetAnnouncementDebouncesRemoteWrites(t *testing.T) {
	g := newFakeGateway(t)
	g.putTeam(ghostTeam())

	s := newTestSynchronizer(t, g)
	s.Load(context.Background())
	require.True(t, s.UnlockAdmin(testAdminSecret))

	require.Equal(t, StatusApplied, s.SetAnnouncement("第一版").Status)
	require.Equal(t, StatusApplied, s.SetAnnouncement("第二版").Status)
	require.Equal(t, StatusApplied, s.SetAnnouncement("定稿").Status)

	// 本地立即可见
	assert.Equal(t, "定稿", s.Announcement())

	// 连续编辑合并成一次远端写入，内容取最后一版
	assert.Eventually(t, func() bool {
		return g.count("PUT /announcement") == 1
	}, time.Second, 10*time.Millisecond)

	g.mu.Lock()
	last := g.lastAnn
	g.mu.Unlock()
	assert.Equal(t, "定稿", last)
}

func TestUpdateTeamRejectsEmptyTitle(t *testing.T) {
	g := newFakeGateway(t)
	g.putTeam(ghostTeam())

	s := newTestSynchronizer(t, g)
	s.Load(context.Background())
	require.True(t, s.UnlockAdmin(testAdminSecret))

	team, _ := s.Team("ghost")
	team.Title = ""
	result := s.UpdateTeam(team)
	assert.Equal(t, StatusRejected, result.Status)
	assert.ErrorIs(t, result.Err, ErrEmptyName)
}

func TestUpdateNewsMissingItem(t *testing.T) {
	g := newFakeGateway(t)
	g.putTeam(ghostTeam())

	s := newTestSynchronizer(t, g)
	s.Load(context.Background())
	require.True(t, s.UnlockAdmin(testAdminSecret))

	result := s.UpdateNews(model.News{ID: "n-missing", Title: "不存在的快讯"})
	assert.Equal(t, StatusRejected, result.Status)
	assert.ErrorIs(t, result.Err, ErrNewsNotFound)
}

func TestNewIDFormatAndUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		id := NewID("g")
		assert.Regexp(t, `^g-\d+-[0-9a-z]+$`, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	g := newFakeGateway(t)
	g.putTeam(ghostTeam())
	g.announcement = "导出前公告"

	s := newTestSynchronizer(t, g)
	s.Load(context.Background())
	require.True(t, s.UnlockAdmin(testAdminSecret))

	data, err := s.ExportSnapshot()
	require.NoError(t, err)

	// 改掉状态后用导出文件整体还原
	require.Equal(t, StatusApplied, s.SetProgress("ghost", 99).Status)
	require.Equal(t, StatusApplied, s.ImportSnapshot(data).Status)

	team, _ := s.Team("ghost")
	assert.Equal(t, 35, team.Progress)
	assert.Equal(t, "导出前公告", s.Announcement())

	// 坏文件直接拒绝
	assert.Equal(t, StatusRejected, s.ImportSnapshot([]byte("not json")).Status)
}
