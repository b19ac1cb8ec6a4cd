package sync

import "github.com/ZhehuanUnique/AIGC-Studio/internal/model"

// 内置种子数据：远端和本地缓存都不可用时的兜底状态

const defaultAnnouncement = "🎉 通告：控制面板已上线！包含任务清单与费用管理模块。"

// defaultTeamPasswords 各小组的默认解锁密码。
// 远端记录缺密码时在归一化阶段合入
var defaultTeamPasswords = map[string]string{
	"ghost":      "1111",
	"ai":         "2222",
	"storyboard": "3333",
	"post":       "4444",
}

func defaultTeams() []model.Team {
	teams := []model.Team{
		{
			ID: "ghost", Title: "诡异组", IconKey: model.IconGhost,
			Task: "恐怖氛围渲染与特效合成", Cycle: "W2 (进行中)", Workload: "产出 50+ 场景图",
			Budget: 5000, ActualCost: 3200,
			Progress: 35, Status: model.TeamStatusNormal,
			Notes: "氛围参考：中式民俗恐怖。",
			Links: model.FlexLinks{{Name: "素材库", URL: "#"}},
			Todos: []model.Todo{
				{ID: "t1", Text: "完成第3集墓地场景渲染", Done: true},
				{ID: "t2", Text: "修复光影Bug", Done: false},
			},
			Members: []model.Member{
				{ID: "m1", Name: "刘家发", IsDirector: true, Role: "总负责人"},
				{ID: "m2", Name: "刘畅", Role: "执行专员"},
			},
		},
		{
			ID: "storyboard", Title: "分镜组", IconKey: model.IconStoryboard,
			Task: "脚本拆解/MJ出图", Cycle: "T+1", Workload: "完成 1 话分镜",
			Budget: 2000, ActualCost: 500,
			Progress: 15, Status: model.TeamStatusNormal,
			Notes: "主角一致性Seed: 284910",
			Links: model.FlexLinks{{Name: "在线脚本", URL: "#"}},
			Members: []model.Member{
				{ID: "m12", Name: "彭枫", IsDirector: true, Role: "总负责人"},
			},
		},
	}
	for i := range teams {
		teams[i].Normalize(defaultTeamPasswords[teams[i].ID])
	}
	return teams
}

func defaultNews() []model.News {
	return []model.News{
		{
			ID: "n1", Date: "11-25", Type: model.NewsTypeInternal,
			Priority: model.NewsPriorityHigh,
			Title:    "新功能：导出快照可将当前进度打包发给同事", URL: "#",
		},
		{
			ID: "n2", Date: "11-22", Type: model.NewsTypeRanking,
			Priority: model.NewsPriorityNormal,
			Title:    "剧查查榜单：AI玄幻动态漫登顶平台动漫榜", URL: "#",
		},
	}
}
