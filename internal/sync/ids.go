package sync

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strconv"
	"time"
)

// NewID 生成客户端本地 id：<前缀>-<毫秒时间戳>-<随机后缀>。
// 客户端是 id 的唯一权威，新建实体从不等远端分配，
// 离线也能建团队并立刻往里挂成员和待办
func NewID(prefix string) string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand 不可用时退回时钟纳秒，概率意义上仍然够用
		return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(),
			strconv.FormatInt(time.Now().UnixNano()%0xffffffff, 36))
	}
	suffix := strconv.FormatUint(uint64(binary.BigEndian.Uint32(b[:])), 36)
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), suffix)
}
