package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/model"
)

func TestNewsCRUD(t *testing.T) {
	l := NewNewsLogic(newTestDB(t))

	require.NoError(t, l.AddNews(&model.News{
		ID: "n1", Date: "11-24", Type: model.NewsTypeTool,
		Priority: model.NewsPriorityNormal, Title: "旧闻",
	}))
	require.NoError(t, l.AddNews(&model.News{
		ID: "n2", Date: "11-25", Type: model.NewsTypeInternal,
		Priority: model.NewsPriorityHigh, Title: "新闻",
	}))

	// 日期倒序
	news, err := l.GetNews()
	require.NoError(t, err)
	require.Len(t, news, 2)
	assert.Equal(t, "n2", news[0].ID)

	require.NoError(t, l.UpdateNews(&model.News{
		ID: "n1", Date: "11-24", Type: model.NewsTypeTool,
		Priority: model.NewsPriorityHigh, Title: "旧闻（改）",
	}))
	news, err = l.GetNews()
	require.NoError(t, err)
	assert.Equal(t, "旧闻（改）", news[1].Title)
	assert.Equal(t, model.NewsPriorityHigh, news[1].Priority)

	require.NoError(t, l.DeleteNews("n2"))
	news, err = l.GetNews()
	require.NoError(t, err)
	require.Len(t, news, 1)
	assert.Equal(t, "n1", news[0].ID)

	// 校验
	assert.Error(t, l.AddNews(&model.News{Title: "无 id"}))
	assert.Error(t, l.AddNews(&model.News{ID: "n3"}))
}
