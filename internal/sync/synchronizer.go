package sync

import (
	"context"
	"encoding/json"
	gosync "sync"
	"time"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/config"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/logger"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/model"
	"golang.org/x/sync/errgroup"
)

// Mode 同步器运行模式
type Mode int

const (
	// ModeRemote 远端可用，变更乐观落本地后尽力写远端
	ModeRemote Mode = iota
	// ModeLocalFallback 本地回退模式，整个会话只读写本地缓存
	ModeLocalFallback
)

func (m Mode) String() string {
	if m == ModeLocalFallback {
		return "LOCAL_FALLBACK"
	}
	return "REMOTE"
}

// Options 同步器参数
type Options struct {
	APIBase        string        // REST 网关地址
	CacheFile      string        // 本地快照文件路径
	AdminSecret    string        // 全局管理解锁口令
	Debounce       time.Duration // 本地缓存写入防抖
	AnnDebounce    time.Duration // 公告远端写入防抖
	RequestTimeout time.Duration
}

// Synchronizer 客户端数据同步器。
// 内存里镜像全部小组/快讯/公告，变更先改内存（乐观，立即可见），
// 再防抖写本地缓存，最后尽力写远端；远端失败不回滚
type Synchronizer struct {
	api         *Client
	cache       *Cache
	adminSecret string
	annDebounce time.Duration

	mu           gosync.Mutex
	loading      bool
	mode         Mode
	teams        []model.Team
	news         []model.News
	announcement string

	// 成员个人待办：只在内存，不进缓存也不进远端
	memberTodos map[string][]model.EphemeralTodo

	// 编辑门禁。只控制编辑入口，不是服务端权限边界
	unlockedAll bool
	unlocked    map[string]bool

	annTimer *time.Timer
}

// New 创建同步器
func New(opts Options) *Synchronizer {
	if opts.AnnDebounce <= 0 {
		opts.AnnDebounce = time.Second
	}
	return &Synchronizer{
		api:         NewClient(opts.APIBase, opts.RequestTimeout),
		cache:       NewCache(opts.CacheFile, opts.Debounce),
		adminSecret: opts.AdminSecret,
		annDebounce: opts.AnnDebounce,
		loading:     true,
		mode:        ModeLocalFallback,
		memberTodos: make(map[string][]model.EphemeralTodo),
		unlocked:    make(map[string]bool),
	}
}

// FromConfig 按配置创建同步器
func FromConfig(cfg config.SyncConfig) *Synchronizer {
	return New(Options{
		APIBase:     cfg.APIBase,
		CacheFile:   cfg.CacheFile,
		AdminSecret: cfg.AdminSecret,
		Debounce:    time.Duration(cfg.DebounceMS) * time.Millisecond,
	})
}

// Load 启动加载。并发拉取小组/快讯/公告，任一失败整体转入
// 本地回退模式：有缓存读缓存，没缓存用内置种子数据
func (s *Synchronizer) Load(ctx context.Context) {
	var (
		teams []model.Team
		news  []model.News
		ann   string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.api.GetTeams(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		news, err = s.api.GetNews(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ann, err = s.api.GetAnnouncement(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Warn("Remote load failed, falling back to local cache: %v", err)
		s.loadLocal()
		return
	}

	for i := range teams {
		teams[i].Normalize(defaultTeamPasswords[teams[i].ID])
	}
	if news == nil {
		news = []model.News{}
	}

	s.mu.Lock()
	s.teams = teams
	s.news = news
	s.announcement = ann
	s.mode = ModeRemote
	s.loading = false
	s.mu.Unlock()
	logger.Info("Loaded %d teams from remote store", len(teams))
}

// loadLocal 本地回退：读缓存快照，缺失则落种子数据
func (s *Synchronizer) loadLocal() {
	teams := defaultTeams()
	news := defaultNews()
	ann := defaultAnnouncement

	snap, err := s.cache.Load()
	if err != nil {
		logger.Error("Failed to read local cache: %v", err)
	}
	if snap != nil {
		if snap.Teams != nil {
			teams = snap.Teams
			for i := range teams {
				teams[i].Normalize(defaultTeamPasswords[teams[i].ID])
			}
		}
		if snap.News != nil {
			news = snap.News
		}
		if snap.Announcement != "" {
			ann = snap.Announcement
		}
	}

	s.mu.Lock()
	s.teams = teams
	s.news = news
	s.announcement = ann
	s.mode = ModeLocalFallback
	s.loading = false
	s.mu.Unlock()
	logger.Info("Running in local fallback mode with %d teams", len(teams))
}

// Mode 当前运行模式
func (s *Synchronizer) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Loading 是否还在启动加载
func (s *Synchronizer) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Teams 全部小组的深拷贝
func (s *Synchronizer) Teams() []model.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTeams(s.teams)
}

// Team 按 id 取单个小组的深拷贝
func (s *Synchronizer) Team(id string) (model.Team, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.teamIndexLocked(id)
	if idx < 0 {
		return model.Team{}, false
	}
	return cloneTeam(s.teams[idx]), true
}

// News 全部快讯
func (s *Synchronizer) News() []model.News {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.News, len(s.news))
	copy(out, s.news)
	return out
}

// Announcement 当前公告
func (s *Synchronizer) Announcement() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.announcement
}

// Flush 立刻把挂起的本地缓存写盘
func (s *Synchronizer) Flush() error {
	return s.cache.Flush()
}

// ----- 门禁 -----

// UnlockAdmin 用全局口令一次解锁全部小组
func (s *Synchronizer) UnlockAdmin(secret string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.adminSecret == "" || secret != s.adminSecret {
		return false
	}
	s.unlockedAll = true
	return true
}

// UnlockTeam 用小组密码解锁单个小组
func (s *Synchronizer) UnlockTeam(id, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.teamIndexLocked(id)
	if idx < 0 {
		return false
	}
	if s.teams[idx].Password == "" || password != s.teams[idx].Password {
		return false
	}
	s.unlocked[id] = true
	return true
}

// LockAll 收回全部解锁状态
func (s *Synchronizer) LockAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unlockedAll = false
	s.unlocked = make(map[string]bool)
}

func (s *Synchronizer) canEditLocked(teamID string) bool {
	return s.unlockedAll || s.unlocked[teamID]
}

// ----- 内部工具 -----

func (s *Synchronizer) teamIndexLocked(id string) int {
	for i := range s.teams {
		if s.teams[i].ID == id {
			return i
		}
	}
	return -1
}

// encodeSnapshotLocked 在持锁状态下编码快照，避免并发改切片
func (s *Synchronizer) encodeSnapshotLocked() []byte {
	data, err := json.Marshal(Snapshot{
		Teams:        s.teams,
		News:         s.news,
		Announcement: s.announcement,
	})
	if err != nil {
		logger.Error("Failed to encode snapshot: %v", err)
		return nil
	}
	return data
}

// saveSnapshotLocked 持锁编码并交给缓存防抖落盘
func (s *Synchronizer) saveSnapshotLocked() {
	if data := s.encodeSnapshotLocked(); data != nil {
		s.cache.Save(data)
	}
}

// mutateTeam 单个小组的标准变更路径：
// 门禁检查 → 纯函数算新值 → 立即改内存 → 防抖写缓存 → 尽力写远端
func (s *Synchronizer) mutateTeam(teamID string, fn func(*model.Team) error) SyncResult {
	s.mu.Lock()
	idx := s.teamIndexLocked(teamID)
	if idx < 0 {
		s.mu.Unlock()
		return rejected(ErrTeamNotFound)
	}
	if !s.canEditLocked(teamID) {
		s.mu.Unlock()
		return rejected(ErrTeamLocked)
	}
	if err := fn(&s.teams[idx]); err != nil {
		s.mu.Unlock()
		return rejected(err)
	}
	payload := cloneTeam(s.teams[idx])
	mode := s.mode
	s.saveSnapshotLocked()
	s.mu.Unlock()

	return s.persistTeam(mode, payload)
}

// persistTeam 远端持久化一个小组；本地回退模式直接跳过
func (s *Synchronizer) persistTeam(mode Mode, team model.Team) SyncResult {
	if mode == ModeLocalFallback {
		return degraded()
	}
	if err := s.api.PutTeam(context.Background(), team); err != nil {
		logger.Error("Failed to persist team %s: %v", team.ID, err)
		return remoteFailed(err)
	}
	return applied()
}

// cloneTeam 深拷贝小组，切片全部复制，拷出去的数据和内部状态互不牵连
func cloneTeam(t model.Team) model.Team {
	out := t
	out.Images = append(model.FlexStrings{}, t.Images...)
	out.Links = append(model.FlexLinks{}, t.Links...)
	out.UnfinishedWorks = append(model.FlexStrings{}, t.UnfinishedWorks...)
	out.FinishedWorks = append(model.FlexStrings{}, t.FinishedWorks...)
	out.ConsumptionRecords = append(model.FlexRecords{}, t.ConsumptionRecords...)
	out.Todos = append([]model.Todo{}, t.Todos...)
	out.Members = make([]model.Member, len(t.Members))
	for i, m := range t.Members {
		out.Members[i] = m
		out.Members[i].Projects = append(model.FlexLinks{}, m.Projects...)
	}
	return out
}

func cloneTeams(teams []model.Team) []model.Team {
	out := make([]model.Team, len(teams))
	for i := range teams {
		out[i] = cloneTeam(teams[i])
	}
	return out
}
