package sync

import "errors"

// Status 一次乐观变更的落盘结果
type Status int

const (
	// StatusApplied 本地已生效且远端持久化成功
	StatusApplied Status = iota
	// StatusDegraded 本地已生效，处于本地回退模式，未尝试远端
	StatusDegraded
	// StatusRemoteFailed 本地已生效但远端持久化失败，不回滚，等待人工重试
	StatusRemoteFailed
	// StatusRejected 校验或门禁拒绝，本地状态未发生任何变化
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusDegraded:
		return "degraded"
	case StatusRemoteFailed:
		return "remote_failed"
	default:
		return "rejected"
	}
}

// SyncResult 每个变更操作的返回值。
// 本地状态永远先更新（StatusRejected 除外），远端只是尽力而为
type SyncResult struct {
	Status Status
	Err    error
}

var (
	// ErrTeamNotFound 目标小组不存在
	ErrTeamNotFound = errors.New("小组不存在")
	// ErrNewsNotFound 目标快讯不存在
	ErrNewsNotFound = errors.New("快讯不存在")
	// ErrTeamLocked 小组未解锁。这只是前端门禁，不是服务端权限边界
	ErrTeamLocked = errors.New("小组未解锁")
	// ErrAdminLocked 需要管理员解锁
	ErrAdminLocked = errors.New("需要管理员解锁")
	// ErrEmptyName 必填名称为空
	ErrEmptyName = errors.New("名称不能为空")
)

func applied() SyncResult {
	return SyncResult{Status: StatusApplied}
}

func degraded() SyncResult {
	return SyncResult{Status: StatusDegraded}
}

func remoteFailed(err error) SyncResult {
	return SyncResult{Status: StatusRemoteFailed, Err: err}
}

func rejected(err error) SyncResult {
	return SyncResult{Status: StatusRejected, Err: err}
}
