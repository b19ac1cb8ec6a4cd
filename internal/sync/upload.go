package sync

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/imaging"
)

// ImageKind 上传图片的用途，决定压缩参数
type ImageKind string

const (
	ImageKindWork   ImageKind = "work"   // 作品图，2:3 居中裁剪
	ImageKindAvatar ImageKind = "avatar" // 成员头像
	ImageKindCover  ImageKind = "cover"  // 小组封面
)

func (k ImageKind) options() imaging.Options {
	switch k {
	case ImageKindAvatar:
		return imaging.AvatarOptions()
	case ImageKindCover:
		return imaging.CoverOptions()
	default:
		return imaging.WorkThumbOptions()
	}
}

// UploadImage 压缩并上传一张图片，返回可直接写进小组字段的 URL。
// 原图先统一过压缩管线再出手，避免把手机原片直接塞进对象存储。
// 降级模式下没有远端可传，退化为内嵌 data URI，刷新前仍可展示
func (s *Synchronizer) UploadImage(ctx context.Context, kind ImageKind, filename string, data []byte) (string, error) {
	encoded, err := imaging.Process(data, kind.options())
	if err != nil {
		return "", fmt.Errorf("process image %s: %w", filename, err)
	}

	s.mu.Lock()
	mode := s.mode
	s.mu.Unlock()

	if mode == ModeLocalFallback {
		return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(encoded), nil
	}
	return s.api.Upload(ctx, filename, "image/jpeg", encoded)
}
