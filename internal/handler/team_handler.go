package handler

import (
	"net/http"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/logic"
	"github.com/ZhehuanUnique/AIGC-Studio/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TeamHandler struct {
	teamLogic *logic.TeamLogic
}

func NewTeamHandler(db *gorm.DB) *TeamHandler {
	return &TeamHandler{
		teamLogic: logic.NewTeamLogic(db),
	}
}

// GetTeams 获取全部小组（含成员/待办/图片/链接/作品/消费记录）
func (h *TeamHandler) GetTeams(c *gin.Context) {
	teams, err := h.teamLogic.GetTeams()
	if err != nil {
		Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	OK(c, teams)
}

// UpsertTeam 按 id 整行 upsert 小组，级联替换成员与待办
func (h *TeamHandler) UpsertTeam(c *gin.Context) {
	var team model.Team
	if err := c.ShouldBindJSON(&team); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.teamLogic.UpsertTeam(&team); err != nil {
		Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	OK(c, nil)
}

// DeleteTeam 删除小组并级联删除成员与待办。id 取 query，兜底取 body
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		var body struct {
			ID string `json:"id"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			id = body.ID
		}
	}
	if id == "" {
		Fail(c, http.StatusBadRequest, "缺少 id")
		return
	}

	if err := h.teamLogic.DeleteTeam(id); err != nil {
		Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	OK(c, nil)
}
