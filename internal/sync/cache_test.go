package sync

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/model"
)

func TestCacheSaveFlushLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snapshot.json")
	c := NewCache(path, time.Hour) // 防抖拉满，靠 Flush 落盘

	snap := Snapshot{
		Teams:        []model.Team{{ID: "ghost", Title: "诡异组"}},
		News:         []model.News{{ID: "n1", Title: "测试快讯"}},
		Announcement: "公告",
	}
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	c.Save(data)
	require.NoError(t, c.Flush())

	got, err := c.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Teams, 1)
	assert.Equal(t, "ghost", got.Teams[0].ID)
	assert.Equal(t, "公告", got.Announcement)
}

func TestCacheDebounceKeepsLastWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	c := NewCache(path, 20*time.Millisecond)

	// 连续保存只落最后一份
	c.Save([]byte(`{"announcement":"第一版"}`))
	c.Save([]byte(`{"announcement":"第二版"}`))
	c.Save([]byte(`{"announcement":"定稿"}`))

	assert.Eventually(t, func() bool {
		snap, err := c.Load()
		return err == nil && snap != nil && snap.Announcement == "定稿"
	}, time.Second, 10*time.Millisecond)
}

func TestCacheLoadMissingFile(t *testing.T) {
	c := NewCache(filepath.Join(t.TempDir(), "missing.json"), time.Minute)
	snap, err := c.Load()
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestCacheLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	c := NewCache(path, time.Minute)
	_, err := c.Load()
	assert.Error(t, err)
}

func TestCacheFlushWithoutPendingIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	c := NewCache(path, time.Minute)

	require.NoError(t, c.Flush())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
