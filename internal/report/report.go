package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/model"
)

// Daily 生成制作日报文本：全局进度、预算燃烧、逐组状态与待办摘要。
// 纯函数，无状态无副作用
func Daily(teams []model.Team, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📢 【AIGC漫剧制作日报】 %s\n\n", now.Format("2006/01/02")))

	var totalProgress, totalBudget, totalCost float64
	for _, t := range teams {
		totalProgress += float64(t.Progress)
		totalBudget += t.Budget
		totalCost += t.ActualCost
	}
	avgProgress := 0
	if len(teams) > 0 {
		avgProgress = int(math.Round(totalProgress / float64(len(teams))))
	}
	sb.WriteString(fmt.Sprintf("📊 全局进度：%d%%\n", avgProgress))

	burn := 0
	if totalBudget > 0 {
		burn = int(math.Round(totalCost / totalBudget * 100))
	}
	sb.WriteString(fmt.Sprintf("💰 资金实耗：¥%.0f / ¥%.0f (%d%%)\n\n", totalCost, totalBudget, burn))

	for _, t := range teams {
		sb.WriteString(fmt.Sprintf("%s %s (进度 %d%%)\n", statusIcon(t.Status), t.Title, t.Progress))
		task := t.Task
		if task == "" {
			task = "无"
		}
		sb.WriteString(fmt.Sprintf("   • 任务：%s\n", task))

		var pending []string
		for _, todo := range t.Todos {
			if !todo.Done {
				pending = append(pending, todo.Text)
			}
		}
		if len(pending) > 0 {
			sb.WriteString(fmt.Sprintf("   • 待办：%s\n", strings.Join(pending, "; ")))
		}

		if t.ActualCost > t.Budget {
			sb.WriteString(fmt.Sprintf("   • ⚠️ 警告：预算超支 (¥%.0f)\n", t.ActualCost-t.Budget))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func statusIcon(s model.TeamStatus) string {
	switch s {
	case model.TeamStatusUrgent:
		return "🔴"
	case model.TeamStatusReview:
		return "🟣"
	case model.TeamStatusDone:
		return "⚪"
	default:
		return "🟢"
	}
}
