package handler

import (
	"net/http"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AnnouncementHandler struct {
	announcementLogic *logic.AnnouncementLogic
}

func NewAnnouncementHandler(db *gorm.DB) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementLogic: logic.NewAnnouncementLogic(db),
	}
}

// GetAnnouncement 读取公告
func (h *AnnouncementHandler) GetAnnouncement(c *gin.Context) {
	content, err := h.announcementLogic.Get()
	if err != nil {
		Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	OK(c, content)
}

// UpdateAnnouncement 写入公告
func (h *AnnouncementHandler) UpdateAnnouncement(c *gin.Context) {
	var body struct {
		Content *string `json:"content"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Content == nil {
		Fail(c, http.StatusBadRequest, "无效的内容")
		return
	}
	if err := h.announcementLogic.Set(*body.Content); err != nil {
		Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	OK(c, nil)
}
