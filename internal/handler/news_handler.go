package handler

import (
	"net/http"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/logic"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NewsHandler struct {
	newsLogic *logic.NewsLogic
}

func NewNewsHandler(db *gorm.DB) *NewsHandler {
	return &NewsHandler{
		newsLogic: logic.NewNewsLogic(db),
	}
}

// GetNews 获取全部快讯
func (h *NewsHandler) GetNews(c *gin.Context) {
	news, err := h.newsLogic.GetNews()
	if err != nil {
		Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	OK(c, news)
}

// AddNews 添加快讯
func (h *NewsHandler) AddNews(c *gin.Context) {
	var item model.News
	if err := c.ShouldBindJSON(&item); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.newsLogic.AddNews(&item); err != nil {
		Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	OK(c, nil)
}

// UpdateNews 更新快讯
func (h *NewsHandler) UpdateNews(c *gin.Context) {
	var item model.News
	if err := c.ShouldBindJSON(&item); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.newsLogic.UpdateNews(&item); err != nil {
		Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	OK(c, nil)
}

// DeleteNews 删除快讯
func (h *NewsHandler) DeleteNews(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		Fail(c, http.StatusBadRequest, "缺少 id")
		return
	}
	if err := h.newsLogic.DeleteNews(id); err != nil {
		Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	OK(c, nil)
}
