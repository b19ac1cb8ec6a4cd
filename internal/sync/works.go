package sync

import (
	"context"
	"strings"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/logger"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/model"
)

// WorkList 作品图列表类别
type WorkList string

const (
	WorkListUnfinished WorkList = "unfinished"
	WorkListFinished   WorkList = "finished"
)

const maxWorkImages = 2

// AddWorkImage 往作品列表追加一张图。每个列表最多留两张，
// 超出淘汰最旧的一张，被淘汰的远端图发一次删除请求
func (s *Synchronizer) AddWorkImage(teamID string, list WorkList, url string) SyncResult {
	var evicted []string
	result := s.mutateTeam(teamID, func(t *model.Team) error {
		target := &t.UnfinishedWorks
		if list == WorkListFinished {
			target = &t.FinishedWorks
		}
		*target = append(*target, url)
		for len(*target) > maxWorkImages {
			evicted = append(evicted, (*target)[0])
			*target = (*target)[1:]
		}
		return nil
	})
	for _, old := range evicted {
		s.deleteBlobIfUnused(old)
	}
	return result
}

// RemoveWorkImage 移除一张作品图并清理其远端文件
func (s *Synchronizer) RemoveWorkImage(teamID string, list WorkList, url string) SyncResult {
	removed := false
	result := s.mutateTeam(teamID, func(t *model.Team) error {
		target := &t.UnfinishedWorks
		if list == WorkListFinished {
			target = &t.FinishedWorks
		}
		out := (*target)[:0]
		for _, u := range *target {
			if u == url {
				removed = true
				continue
			}
			out = append(out, u)
		}
		*target = out
		return nil
	})
	if removed {
		s.deleteBlobIfUnused(url)
	}
	return result
}

// SetCoverImage 替换小组封面，旧封面不再被引用时顺手删掉
func (s *Synchronizer) SetCoverImage(teamID, url string) SyncResult {
	var old string
	result := s.mutateTeam(teamID, func(t *model.Team) error {
		old = t.CoverImage
		t.CoverImage = url
		return nil
	})
	if old != "" && old != url {
		s.deleteBlobIfUnused(old)
	}
	return result
}

// AddGalleryImage 往小组相册追加一张图
func (s *Synchronizer) AddGalleryImage(teamID, url string) SyncResult {
	return s.mutateTeam(teamID, func(t *model.Team) error {
		t.Images = append(t.Images, url)
		return nil
	})
}

// RemoveGalleryImage 从相册移除一张图并清理远端文件
func (s *Synchronizer) RemoveGalleryImage(teamID, url string) SyncResult {
	removed := false
	result := s.mutateTeam(teamID, func(t *model.Team) error {
		out := t.Images[:0]
		for _, u := range t.Images {
			if u == url {
				removed = true
				continue
			}
			out = append(out, u)
		}
		t.Images = out
		return nil
	})
	if removed {
		s.deleteBlobIfUnused(url)
	}
	return result
}

// SetMemberAvatar 替换成员头像
func (s *Synchronizer) SetMemberAvatar(teamID, memberID, url string) SyncResult {
	var old string
	result := s.mutateTeam(teamID, func(t *model.Team) error {
		for i := range t.Members {
			if t.Members[i].ID == memberID {
				old = t.Members[i].Avatar
				t.Members[i].Avatar = url
				return nil
			}
		}
		return ErrTeamNotFound
	})
	if old != "" && old != url {
		s.deleteBlobIfUnused(old)
	}
	return result
}

// deleteBlobIfUnused 尽力删除一个不再被引用的远端文件。
// data URI 不是远端文件，降级模式下也不发请求；
// 同一个 URL 可能被多个小组引用（如批量贴图），删前查一遍引用计数。
// 删除失败只记日志，不影响已经生效的本地变更
func (s *Synchronizer) deleteBlobIfUnused(url string) {
	if url == "" || strings.HasPrefix(url, "data:") {
		return
	}

	s.mu.Lock()
	mode := s.mode
	refs := 0
	for i := range s.teams {
		t := &s.teams[i]
		if t.CoverImage == url {
			refs++
		}
		for _, u := range t.Images {
			if u == url {
				refs++
			}
		}
		for _, u := range t.UnfinishedWorks {
			if u == url {
				refs++
			}
		}
		for _, u := range t.FinishedWorks {
			if u == url {
				refs++
			}
		}
		for _, m := range t.Members {
			if m.Avatar == url {
				refs++
			}
		}
	}
	s.mu.Unlock()

	if mode != ModeRemote || refs > 0 {
		return
	}
	if err := s.api.DeleteBlob(context.Background(), url); err != nil {
		logger.Warn("Failed to delete blob %s: %v", url, err)
	}
}
